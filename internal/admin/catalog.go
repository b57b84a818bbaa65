package admin

import (
	types "locallibrary/internal/domain/catalog"
)

func loanStatusCodes() []string {
	out := []string{}
	for _, c := range types.LoanStatuses() {
		out = append(out, c.Value)
	}
	return out
}

// CatalogSite registers the five catalog models.
func CatalogSite() *Site {
	s := NewSite()
	for _, m := range []ModelAdmin{
		genreAdmin(), languageAdmin(), bookAdmin(), bookInstanceAdmin(), authorAdmin(),
	} {
		if err := s.Register(m); err != nil {
			panic(err)
		}
	}
	return s
}

// Genre and Language use the defaults: one identity column, one fieldset.
func genreAdmin() ModelAdmin {
	return ModelAdmin{
		Model:         types.ModelGenre,
		VerboseName:   "genre",
		VerbosePlural: "genres",
		Fields: []Field{
			{Name: "name", Label: "Name", Required: true, HelpText: "Enter a book genre (e.g. Business, Personal Development, etc.)"},
		},
		Ordering: []string{"name"},
	}
}

func languageAdmin() ModelAdmin {
	return ModelAdmin{
		Model:         types.ModelLanguage,
		VerboseName:   "language",
		VerbosePlural: "languages",
		Fields: []Field{
			{Name: "name", Label: "Name", Required: true, HelpText: "Enter the language of the book."},
		},
		Ordering: []string{"name"},
	}
}

func bookAdmin() ModelAdmin {
	return ModelAdmin{
		Model:         types.ModelBook,
		VerboseName:   "book",
		VerbosePlural: "books",
		Fields: []Field{
			{Name: "title", Label: "Title", Required: true},
			{Name: "author", Label: "Author", Required: true},
			{Name: "summary", Label: "Summary", Required: true, HelpText: "Enter a brief description of the book"},
			{Name: "isbn", Label: "ISBN", Required: true, HelpText: "Enter the 13 character ISBN number"},
			{Name: "genre", Label: "Genre", Required: true, HelpText: "Select a genre for this book."},
			{Name: "language", Label: "Language", Required: true},
		},
		ListDisplay: []Column{
			{Field: "title", Label: "Title"},
			{Field: "author", Label: "Author"},
			{Field: types.FieldDisplayGenre, Label: "Genre"},
			{Field: "language", Label: "Language"},
		},
		Inlines: []Inline{
			{Model: types.ModelBookInstance, ForeignKey: "book", Fields: []string{"id", "imprint", "due_back", "status"}, Extra: 0},
		},
	}
}

func bookInstanceAdmin() ModelAdmin {
	return ModelAdmin{
		Model:         types.ModelBookInstance,
		VerboseName:   "book instance",
		VerbosePlural: "book instances",
		Fields: []Field{
			{Name: "id", Label: "Id", Required: true, HelpText: "Unique ID for this particular book across whole library"},
			{Name: "book", Label: "Book", Required: true},
			{Name: "imprint", Label: "Imprint", Required: true},
			{Name: "due_back", Label: "Due back"},
			{Name: "status", Label: "Status", HelpText: "Book Availability", Choices: loanStatusCodes()},
		},
		ListDisplay: []Column{
			{Field: "book", Label: "Book"},
			{Field: "status", Label: "Status"},
			{Field: "due_back", Label: "Due back"},
			{Field: "id", Label: "Id"},
		},
		ListFilter: []string{"status", "due_back"},
		Fieldsets: []Fieldset{
			{Fields: []string{"id", "book", "imprint"}},
			{Name: "Availability", Fields: []string{"status", "due_back"}},
		},
		Ordering: []string{"due_back"},
	}
}

func authorAdmin() ModelAdmin {
	return ModelAdmin{
		Model:         types.ModelAuthor,
		VerboseName:   "author",
		VerbosePlural: "authors",
		Fields: []Field{
			{Name: "first_name", Label: "First name", Required: true},
			{Name: "last_name", Label: "Last name", Required: true},
			{Name: "date_of_birth", Label: "Date of birth"},
			{Name: "date_of_death", Label: "Died"},
		},
		ListDisplay: []Column{
			{Field: "last_name", Label: "Last name"},
			{Field: "first_name", Label: "First name"},
			{Field: "date_of_birth", Label: "Date of birth"},
			{Field: "date_of_death", Label: "Died"},
		},
		Inlines: []Inline{
			{Model: types.ModelBook, ForeignKey: "author", Fields: []string{"title", "summary", "isbn", "language"}, Extra: 0},
		},
		Ordering: []string{"last_name", "first_name"},
	}
}

// Required reports whether field must be filled in on the change form.
func (m ModelAdmin) Required(field string) bool {
	f, ok := m.Field(field)
	return ok && f.Required
}
