package catalog

import (
	"time"

	types "locallibrary/internal/domain/catalog"
)

type RefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type BookSummaryDTO struct {
	ID     uint    `json:"id"`
	Title  string  `json:"title"`
	URL    string  `json:"url"`
	Author *RefDTO `json:"author"`
	Genre  string  `json:"genre"`
}

type CopyDTO struct {
	ID          string  `json:"id"`
	Imprint     string  `json:"imprint"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label"`
	DueBack     *string `json:"due_back"`
}

type BookDetailDTO struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Author   *RefDTO   `json:"author"`
	Summary  string    `json:"summary"`
	ISBN     string    `json:"isbn"`
	Language *RefDTO   `json:"language"`
	Genres   []RefDTO  `json:"genres"`
	Copies   []CopyDTO `json:"copies"`
}

type AuthorDTO struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	URL         string           `json:"url"`
	DateOfBirth *string          `json:"date_of_birth"`
	DateOfDeath *string          `json:"date_of_death"`
	Books       []BookSummaryDTO `json:"books,omitempty"`
}

type GroupDTO struct {
	ID    uint             `json:"id"`
	Name  string           `json:"name"`
	URL   string           `json:"url"`
	Books []BookSummaryDTO `json:"books"`
}

type IndexDTO struct {
	NumBooks              int64 `json:"num_books"`
	NumInstances          int64 `json:"num_instances"`
	NumInstancesAvailable int64 `json:"num_instances_available"`
	NumAuthors            int64 `json:"num_authors"`
	NumGenres             int64 `json:"num_genres"`
}

func authorRef(a *types.Author) *RefDTO {
	if a == nil {
		return nil
	}
	return &RefDTO{ID: a.ID, Name: a.String(), URL: a.AbsoluteURL()}
}

func languageRef(l *types.Language) *RefDTO {
	if l == nil {
		return nil
	}
	return &RefDTO{ID: l.ID, Name: l.String(), URL: l.AbsoluteURL()}
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func toBookSummary(b *types.Book) BookSummaryDTO {
	return BookSummaryDTO{
		ID:     b.ID,
		Title:  b.Title,
		URL:    b.AbsoluteURL(),
		Author: authorRef(b.Author),
		Genre:  b.DisplayGenre(),
	}
}

func toBookSummaries(books []*types.Book) []BookSummaryDTO {
	out := make([]BookSummaryDTO, 0, len(books))
	for _, b := range books {
		out = append(out, toBookSummary(b))
	}
	return out
}

func toCopy(bi *types.BookInstance) CopyDTO {
	return CopyDTO{
		ID:          bi.ID.String(),
		Imprint:     bi.Imprint,
		Status:      string(bi.Status),
		StatusLabel: bi.Status.Label(),
		DueBack:     dateString(bi.DueBack),
	}
}

func toBookDetail(b *types.Book, copies []*types.BookInstance) BookDetailDTO {
	genres := make([]RefDTO, 0, len(b.Genres))
	for _, g := range b.Genres {
		genres = append(genres, RefDTO{ID: g.ID, Name: g.String(), URL: g.AbsoluteURL()})
	}
	cs := make([]CopyDTO, 0, len(copies))
	for _, bi := range copies {
		cs = append(cs, toCopy(bi))
	}
	return BookDetailDTO{
		ID:       b.ID,
		Title:    b.Title,
		URL:      b.AbsoluteURL(),
		Author:   authorRef(b.Author),
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		Language: languageRef(b.Language),
		Genres:   genres,
		Copies:   cs,
	}
}

func toAuthor(a *types.Author, books []*types.Book) AuthorDTO {
	dto := AuthorDTO{
		ID:          a.ID,
		Name:        a.String(),
		URL:         a.AbsoluteURL(),
		DateOfBirth: dateString(a.DateOfBirth),
		DateOfDeath: dateString(a.DateOfDeath),
	}
	if books != nil {
		dto.Books = toBookSummaries(books)
	}
	return dto
}
