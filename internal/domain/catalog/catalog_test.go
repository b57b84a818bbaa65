package catalog

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityStrings(t *testing.T) {
	assert.Equal(t, "Fantasy", Genre{Name: "Fantasy"}.String())
	assert.Equal(t, "English", Language{Name: "English"}.String())
	assert.Equal(t, "Austen, Jane", Author{FirstName: "Jane", LastName: "Austen"}.String())
	assert.Equal(t, "Emma", Book{Title: "Emma"}.String())

	id := uuid.MustParse("0b5b3c5e-56a4-4c5f-9f53-6c2d9a6a9d11")
	bi := BookInstance{ID: id, Book: &Book{Title: "Emma"}}
	assert.Equal(t, "0b5b3c5e-56a4-4c5f-9f53-6c2d9a6a9d11 (Emma)", bi.String())
	assert.Equal(t, "0b5b3c5e-56a4-4c5f-9f53-6c2d9a6a9d11 ()", BookInstance{ID: id}.String())
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "/catalog/genre/1", Genre{ID: 1}.AbsoluteURL())
	assert.Equal(t, "/catalog/language/2", Language{ID: 2}.AbsoluteURL())
	assert.Equal(t, "/catalog/author/3", Author{ID: 3}.AbsoluteURL())
	assert.Equal(t, "/catalog/book/4", Book{ID: 4}.AbsoluteURL())
}

func TestDisplayGenre(t *testing.T) {
	b := Book{Genres: []Genre{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}}
	assert.Equal(t, "A, B, C", b.DisplayGenre())

	b.Genres = []Genre{{Name: "Poetry"}}
	assert.Equal(t, "Poetry", b.DisplayGenre())

	b.Genres = nil
	assert.Equal(t, "", b.DisplayGenre())
}

func TestGenreValidate(t *testing.T) {
	require.NoError(t, (&Genre{Name: "Horror"}).Validate())

	err := (&Genre{}).Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field())
	assert.Equal(t, MsgRequired, ve.Errors["name"])

	err = (&Genre{Name: strings.Repeat("x", 201)}).Validate()
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Ensure this value has at most 200 characters (it has 201).", ve.Errors["name"])
}

func TestBookValidate(t *testing.T) {
	b := &Book{Title: "T", Summary: "S", ISBN: "9780141439518"}
	require.NoError(t, b.Validate())

	b = &Book{Title: "T", Summary: strings.Repeat("s", 1001), ISBN: "97801414395189"}
	var ve *ValidationError
	require.True(t, errors.As(b.Validate(), &ve))
	assert.Equal(t, []string{"isbn", "summary"}, ve.Fields())
	assert.Equal(t, ModelBook, ve.Model)
}

func TestAuthorValidateAndDisplay(t *testing.T) {
	var ve *ValidationError
	require.True(t, errors.As((&Author{FirstName: "Jane"}).Validate(), &ve))
	assert.Equal(t, "last_name", ve.Field())

	born := time.Date(1775, time.December, 16, 0, 0, 0, 0, time.UTC)
	a := Author{FirstName: "Jane", LastName: "Austen", DateOfBirth: &born}
	assert.Equal(t, "1775-12-16", a.Display("date_of_birth"))
	assert.Equal(t, EmptyValue, a.Display("date_of_death"))
	assert.Equal(t, "Austen, Jane", a.Display(FieldLabel))
}

func TestBookInstanceStatus(t *testing.T) {
	bi := &BookInstance{Imprint: "Penguin"}
	require.NoError(t, bi.Validate())
	require.NoError(t, bi.BeforeCreate(nil))
	require.NoError(t, bi.BeforeSave(nil))
	assert.NotEqual(t, uuid.Nil, bi.ID)
	assert.Equal(t, StatusMaintenance, bi.Status)
	assert.Equal(t, "Maintenance", bi.Display("status"))

	bi.Status = "X"
	var ve *ValidationError
	require.True(t, errors.As(bi.Validate(), &ve))
	assert.Equal(t, "status", ve.Field())
}

func TestBookInstanceKeepsExplicitID(t *testing.T) {
	id := uuid.New()
	bi := &BookInstance{ID: id}
	require.NoError(t, bi.BeforeCreate(nil))
	assert.Equal(t, id, bi.ID)
}

func TestLoanStatuses(t *testing.T) {
	choices := LoanStatuses()
	require.Len(t, choices, 4)
	assert.Equal(t, "M", choices[0].Value)
	assert.Equal(t, "On Loan", StatusOnLoan.Label())
	assert.True(t, StatusReserved.Valid())
	assert.False(t, LoanStatus("").Valid())

	choices[0].Label = "changed"
	assert.Equal(t, "Maintenance", StatusMaintenance.Label())
}

func TestBookDisplay(t *testing.T) {
	b := Book{
		Title:  "Persuasion",
		Author: &Author{FirstName: "Jane", LastName: "Austen"},
		Genres: []Genre{{Name: "Romance"}},
	}
	assert.Equal(t, "Persuasion", b.Display("title"))
	assert.Equal(t, "Austen, Jane", b.Display("author"))
	assert.Equal(t, "Romance", b.Display(FieldDisplayGenre))
	assert.Equal(t, EmptyValue, b.Display("language"))
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("X", 5*3600)
	d := DateOf(time.Date(2026, time.October, 15, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), d)
}

func TestErrorMessages(t *testing.T) {
	ve := NewValidationError(ModelGenre, "name", "taken")
	ve.Add("name", "ignored")
	assert.Equal(t, "invalid genre: name: taken", ve.Error())

	rd := &RestrictedDeleteError{Model: ModelAuthor, ID: "7", Dependent: ModelBook, Count: 2}
	assert.Equal(t, "cannot delete author 7: referenced by 2 book row(s)", rd.Error())

	cause := errors.New("boom")
	ie := &IntegrityError{Model: ModelBook, Constraint: "idx_books_isbn", Err: cause}
	assert.ErrorIs(t, ie, cause)
	assert.Contains(t, ie.Error(), "idx_books_isbn")
}
