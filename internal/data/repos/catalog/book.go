package catalog

import (
	"fmt"

	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/pkg/dbctx"
	"locallibrary/internal/platform/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgISBNExists = "Book with this ISBN already exists."

// BookFilter narrows List. Nil fields are ignored.
type BookFilter struct {
	AuthorID   *uint
	LanguageID *uint
	GenreID    *uint
}

type BookRepo interface {
	// Create inserts b and attaches genreIDs in the given order.
	Create(dbc dbctx.Context, b *types.Book, genreIDs []uint) error
	// Update saves b; a nil genreIDs leaves the genre list as it is.
	Update(dbc dbctx.Context, b *types.Book, genreIDs []uint) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Book, error)
	List(dbc dbctx.Context, f BookFilter) ([]*types.Book, error)
	Count(dbc dbctx.Context) (int64, error)
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	return &bookRepo{db: db, log: baseLog.With("repo", "BookRepo")}
}

func (r *bookRepo) Create(dbc dbctx.Context, b *types.Book, genreIDs []uint) error {
	if err := b.Validate(); err != nil {
		return err
	}
	genreIDs = dedupe(genreIDs)
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := r.checkRefs(tx, b, genreIDs); err != nil {
			return err
		}
		if err := r.checkUnique(tx, b); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return err
		}
		if err := replaceGenres(tx, b.ID, genreIDs); err != nil {
			return err
		}
		return loadBookRelations(tx, []*types.Book{b})
	})
	return classifyError(types.ModelBook, err)
}

func (r *bookRepo) Update(dbc dbctx.Context, b *types.Book, genreIDs []uint) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if genreIDs != nil {
		genreIDs = dedupe(genreIDs)
	}
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.Book{}, b.ID); err != nil {
			return err
		}
		if err := r.checkRefs(tx, b, genreIDs); err != nil {
			return err
		}
		if err := r.checkUnique(tx, b); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(b).Error; err != nil {
			return err
		}
		if genreIDs != nil {
			if err := replaceGenres(tx, b.ID, genreIDs); err != nil {
				return err
			}
		}
		return loadBookRelations(tx, []*types.Book{b})
	})
	return classifyError(types.ModelBook, err)
}

// checkRefs verifies that the referenced author, language and genres exist.
func (r *bookRepo) checkRefs(tx *gorm.DB, b *types.Book, genreIDs []uint) error {
	ve := &types.ValidationError{Model: types.ModelBook}

	if b.AuthorID != nil {
		n, err := countWhere(tx, &types.Author{}, "id = ?", *b.AuthorID)
		if err != nil {
			return err
		}
		if n == 0 {
			ve.Add("author", types.MsgInvalidChoice)
		}
	}
	if b.LanguageID != nil {
		n, err := countWhere(tx, &types.Language{}, "id = ?", *b.LanguageID)
		if err != nil {
			return err
		}
		if n == 0 {
			ve.Add("language", types.MsgInvalidChoice)
		}
	}
	if len(genreIDs) > 0 {
		n, err := countWhere(tx, &types.Genre{}, "id IN ?", genreIDs)
		if err != nil {
			return err
		}
		if n != int64(len(genreIDs)) {
			ve.Add("genre", types.MsgInvalidChoice)
		}
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

func (r *bookRepo) checkUnique(tx *gorm.DB, b *types.Book) error {
	n, err := countWhere(tx, &types.Book{}, "isbn = ? AND id <> ?", b.ISBN, b.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return types.NewValidationError(types.ModelBook, "isbn", msgISBNExists)
	}
	return nil
}

// Delete refuses while copies of the book exist. Genre links go with the book.
func (r *bookRepo) Delete(dbc dbctx.Context, id uint) error {
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.Book{}, id); err != nil {
			return err
		}
		n, err := countWhere(tx, &types.BookInstance{}, "book_id = ?", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &types.RestrictedDeleteError{
				Model:     types.ModelBook,
				ID:        fmt.Sprint(id),
				Dependent: types.ModelBookInstance,
				Count:     n,
			}
		}
		if err := tx.Where("book_id = ?", id).Delete(&types.BookGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(&types.Book{}, id).Error
	})
	if err == nil {
		r.log.Info("Book deleted", "book_id", id)
	}
	return classifyError(types.ModelBook, err)
}

func (r *bookRepo) GetByID(dbc dbctx.Context, id uint) (*types.Book, error) {
	db := dbc.DB(r.db)
	var b types.Book
	if err := db.Preload("Author").Preload("Language").First(&b, id).Error; err != nil {
		return nil, err
	}
	if err := loadGenres(db, []*types.Book{&b}); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepo) List(dbc dbctx.Context, f BookFilter) ([]*types.Book, error) {
	db := dbc.DB(r.db)
	q := db.Preload("Author").Preload("Language").Order("id ASC")
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if f.LanguageID != nil {
		q = q.Where("language_id = ?", *f.LanguageID)
	}
	if f.GenreID != nil {
		q = q.Where("id IN (?)", db.Model(&types.BookGenre{}).Select("book_id").Where("genre_id = ?", *f.GenreID))
	}

	var results []*types.Book
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	if err := loadGenres(db, results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).Model(&types.Book{}).Count(&n).Error
	return n, err
}

func replaceGenres(tx *gorm.DB, bookID uint, genreIDs []uint) error {
	if err := tx.Where("book_id = ?", bookID).Delete(&types.BookGenre{}).Error; err != nil {
		return err
	}
	if len(genreIDs) == 0 {
		return nil
	}
	rows := make([]types.BookGenre, 0, len(genreIDs))
	for _, gid := range genreIDs {
		rows = append(rows, types.BookGenre{BookID: bookID, GenreID: gid})
	}
	return tx.Create(&rows).Error
}

func loadBookRelations(tx *gorm.DB, books []*types.Book) error {
	for _, b := range books {
		b.Author = nil
		b.Language = nil
		if b.AuthorID != nil {
			var a types.Author
			if err := tx.First(&a, *b.AuthorID).Error; err != nil {
				return err
			}
			b.Author = &a
		}
		if b.LanguageID != nil {
			var l types.Language
			if err := tx.First(&l, *b.LanguageID).Error; err != nil {
				return err
			}
			b.Language = &l
		}
	}
	return loadGenres(tx, books)
}

// loadGenres fills Genres on each book in attachment order.
func loadGenres(db *gorm.DB, books []*types.Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}

	var links []types.BookGenre
	if err := db.Preload("Genre").Where("book_id IN ?", ids).Order("id ASC").Find(&links).Error; err != nil {
		return err
	}

	byBook := make(map[uint][]types.Genre, len(books))
	for _, l := range links {
		if l.Genre != nil {
			byBook[l.BookID] = append(byBook[l.BookID], *l.Genre)
		}
	}
	for _, b := range books {
		b.Genres = byBook[b.ID]
		if b.Genres == nil {
			b.Genres = []types.Genre{}
		}
	}
	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
