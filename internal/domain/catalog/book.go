package catalog

import (
	"strings"

	"locallibrary/internal/urls"
)

const ModelBook = "book"

// GenreSummaryLimit caps how many genre names DisplayGenre joins.
const GenreSummaryLimit = 3

// FieldLabel is the display field for a record's identity string.
const FieldLabel = "label"

// FieldDisplayGenre is the computed genre-summary column of a book.
const FieldDisplayGenre = "display_genre"

// Book is a title in the catalog, independent of how many copies exist.
// Genres is not a GORM association: the repository reads it from BookGenre in
// attachment order.
type Book struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`

	AuthorID *uint   `gorm:"index" json:"author_id"`
	Author   *Author `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author,omitempty" validate:"-"`

	Summary string `gorm:"type:text;not null" json:"summary" validate:"required,max=1000"`
	ISBN    string `gorm:"column:isbn;type:varchar(13);not null;uniqueIndex:idx_books_isbn" json:"isbn" validate:"required,max=13"`

	LanguageID *uint     `gorm:"index" json:"language_id"`
	Language   *Language `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"language,omitempty" validate:"-"`

	Genres []Genre `gorm:"-" json:"genres" validate:"-"`
}

// BookGenre is one row of the book/genre association. Rows are read back in
// ID order, which is the order genres were attached.
type BookGenre struct {
	ID      uint   `gorm:"primaryKey"`
	BookID  uint   `gorm:"not null;uniqueIndex:idx_book_genres_pair,priority:1"`
	Book    *Book  `gorm:"constraint:OnDelete:CASCADE;"`
	GenreID uint   `gorm:"not null;index;uniqueIndex:idx_book_genres_pair,priority:2"`
	Genre   *Genre `gorm:"constraint:OnDelete:CASCADE;"`
}

func (b Book) String() string { return b.Title }

func (b Book) AbsoluteURL() string {
	return urls.MustReverse(urls.BookDetail, idString(b.ID))
}

// DisplayGenre joins the names of the first GenreSummaryLimit genres for
// compact list columns.
func (b Book) DisplayGenre() string {
	n := len(b.Genres)
	if n > GenreSummaryLimit {
		n = GenreSummaryLimit
	}
	names := make([]string, 0, n)
	for _, g := range b.Genres[:n] {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func (b *Book) Validate() error {
	return validateModel(ModelBook, b)
}

// GenreIDs returns the ids of the loaded genres in order.
func (b Book) GenreIDs() []uint {
	out := make([]uint, 0, len(b.Genres))
	for _, g := range b.Genres {
		out = append(out, g.ID)
	}
	return out
}

func (b Book) Display(field string) string {
	switch field {
	case FieldLabel, "title":
		return b.Title
	case "id":
		return idString(b.ID)
	case "isbn":
		return b.ISBN
	case "summary":
		return b.Summary
	case "author":
		if b.Author == nil {
			return EmptyValue
		}
		return b.Author.String()
	case "language":
		if b.Language == nil {
			return EmptyValue
		}
		return b.Language.String()
	case FieldDisplayGenre:
		return b.DisplayGenre()
	}
	return EmptyValue
}
