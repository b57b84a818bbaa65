package testutil

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"locallibrary/database"
	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/pkg/dbctx"
	"locallibrary/internal/platform/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]+`)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.NewNop()
}

// DB returns a freshly migrated in-memory SQLite database private to tb.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := nonWord.ReplaceAllString(tb.Name(), "_") + "_" + uuid.NewString()[:8]
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := database.Open(database.DriverSQLite, dsn, Logger(tb))
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Ctx() dbctx.Context {
	return dbctx.Background()
}

func Date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func SeedGenre(tb testing.TB, db *gorm.DB, name string) *types.Genre {
	tb.Helper()
	g := &types.Genre{Name: name}
	if err := db.Create(g).Error; err != nil {
		tb.Fatalf("seed genre: %v", err)
	}
	return g
}

func SeedLanguage(tb testing.TB, db *gorm.DB, name string) *types.Language {
	tb.Helper()
	l := &types.Language{Name: name}
	if err := db.Create(l).Error; err != nil {
		tb.Fatalf("seed language: %v", err)
	}
	return l
}

func SeedAuthor(tb testing.TB, db *gorm.DB, first, last string) *types.Author {
	tb.Helper()
	a := &types.Author{FirstName: first, LastName: last}
	if err := db.Create(a).Error; err != nil {
		tb.Fatalf("seed author: %v", err)
	}
	return a
}

// SeedBook inserts a book and links genres in the order given.
func SeedBook(tb testing.TB, db *gorm.DB, title, isbn string, author *types.Author, lang *types.Language, genres ...*types.Genre) *types.Book {
	tb.Helper()
	b := &types.Book{Title: title, Summary: "summary of " + title, ISBN: isbn}
	if author != nil {
		b.AuthorID = &author.ID
	}
	if lang != nil {
		b.LanguageID = &lang.ID
	}
	if err := db.Omit("Author", "Language").Create(b).Error; err != nil {
		tb.Fatalf("seed book: %v", err)
	}
	for _, g := range genres {
		if err := db.Create(&types.BookGenre{BookID: b.ID, GenreID: g.ID}).Error; err != nil {
			tb.Fatalf("seed book genre: %v", err)
		}
		b.Genres = append(b.Genres, *g)
	}
	return b
}

func SeedInstance(tb testing.TB, db *gorm.DB, book *types.Book, due *time.Time, status types.LoanStatus) *types.BookInstance {
	tb.Helper()
	bi := &types.BookInstance{Imprint: "Imprint", DueBack: due, Status: status}
	if book != nil {
		bi.BookID = &book.ID
	}
	if err := db.Omit("Book").Create(bi).Error; err != nil {
		tb.Fatalf("seed book instance: %v", err)
	}
	return bi
}
