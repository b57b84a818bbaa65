package admin

import (
	"errors"
	"strings"
	"time"

	siteadmin "locallibrary/internal/admin"
	types "locallibrary/internal/domain/catalog"

	"github.com/google/uuid"
)

const (
	msgInvalidDate = "Enter a valid date."
	msgInvalidUUID = "Enter a valid UUID."
)

// Forms carry the editable values of a record in both directions: they are
// bound from request bodies and rendered back on the change view.

type GenreForm struct {
	Name string `json:"name"`
}

type LanguageForm struct {
	Name string `json:"name"`
}

type AuthorForm struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	DateOfDeath *string `json:"date_of_death"`
}

type BookForm struct {
	Title    string `json:"title"`
	Author   *uint  `json:"author"`
	Summary  string `json:"summary"`
	ISBN     string `json:"isbn"`
	Genre    []uint `json:"genre"`
	Language *uint  `json:"language"`
}

type BookInstanceForm struct {
	ID      string  `json:"id"`
	Book    *uint   `json:"book"`
	Imprint string  `json:"imprint"`
	DueBack *string `json:"due_back"`
	Status  string  `json:"status"`
}

type validatable interface {
	Validate() error
}

func newFormErrors(model string) *types.ValidationError {
	return &types.ValidationError{Model: model, Errors: map[string]string{}}
}

// finish merges model validation into ve and returns ve if anything failed.
func finish(ve *types.ValidationError, v validatable) error {
	if err := v.Validate(); err != nil {
		var mv *types.ValidationError
		if !errors.As(err, &mv) {
			return err
		}
		for field, msg := range mv.Errors {
			ve.Add(field, msg)
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func parseDate(ve *types.ValidationError, field string, raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		ve.Add(field, msgInvalidDate)
		return nil
	}
	return &t
}

func requireRef(ve *types.ValidationError, m siteadmin.ModelAdmin, field string, id *uint) {
	if id == nil && m.Required(field) {
		ve.Add(field, types.MsgRequired)
	}
}

func dateValue(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func (f GenreForm) apply(g *types.Genre) error {
	g.Name = strings.TrimSpace(f.Name)
	return finish(newFormErrors(types.ModelGenre), g)
}

func (f LanguageForm) apply(l *types.Language) error {
	l.Name = strings.TrimSpace(f.Name)
	return finish(newFormErrors(types.ModelLanguage), l)
}

func (f AuthorForm) apply(a *types.Author) error {
	ve := newFormErrors(types.ModelAuthor)
	a.FirstName = strings.TrimSpace(f.FirstName)
	a.LastName = strings.TrimSpace(f.LastName)
	a.DateOfBirth = parseDate(ve, "date_of_birth", f.DateOfBirth)
	a.DateOfDeath = parseDate(ve, "date_of_death", f.DateOfDeath)
	return finish(ve, a)
}

func authorFormOf(a *types.Author) AuthorForm {
	return AuthorForm{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DateOfBirth: dateValue(a.DateOfBirth),
		DateOfDeath: dateValue(a.DateOfDeath),
	}
}

func (f BookForm) apply(m siteadmin.ModelAdmin, b *types.Book) error {
	ve := newFormErrors(types.ModelBook)
	b.Title = strings.TrimSpace(f.Title)
	b.Summary = strings.TrimSpace(f.Summary)
	b.ISBN = strings.TrimSpace(f.ISBN)
	b.AuthorID = f.Author
	b.LanguageID = f.Language
	requireRef(ve, m, "author", f.Author)
	requireRef(ve, m, "language", f.Language)
	if len(f.Genre) == 0 && m.Required("genre") {
		ve.Add("genre", types.MsgRequired)
	}
	return finish(ve, b)
}

func bookFormOf(b *types.Book) BookForm {
	return BookForm{
		Title:    b.Title,
		Author:   b.AuthorID,
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		Genre:    b.GenreIDs(),
		Language: b.LanguageID,
	}
}

// apply fills bi from the form. The id is only read when creating, since
// primary keys are not editable once assigned.
func (f BookInstanceForm) apply(m siteadmin.ModelAdmin, bi *types.BookInstance, creating bool) error {
	ve := newFormErrors(types.ModelBookInstance)
	if creating {
		if raw := strings.TrimSpace(f.ID); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				ve.Add("id", msgInvalidUUID)
			}
			bi.ID = id
		}
	}
	bi.BookID = f.Book
	requireRef(ve, m, "book", f.Book)
	bi.Imprint = strings.TrimSpace(f.Imprint)
	bi.DueBack = parseDate(ve, "due_back", f.DueBack)
	bi.Status = types.LoanStatus(strings.TrimSpace(f.Status))
	return finish(ve, bi)
}

func bookInstanceFormOf(bi *types.BookInstance) BookInstanceForm {
	return BookInstanceForm{
		ID:      bi.ID.String(),
		Book:    bi.BookID,
		Imprint: bi.Imprint,
		DueBack: dateValue(bi.DueBack),
		Status:  string(bi.Status),
	}
}
