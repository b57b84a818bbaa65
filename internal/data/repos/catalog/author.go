package catalog

import (
	"fmt"

	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/pkg/dbctx"
	"locallibrary/internal/platform/logger"

	"gorm.io/gorm"
)

type AuthorRepo interface {
	Create(dbc dbctx.Context, a *types.Author) error
	Update(dbc dbctx.Context, a *types.Author) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Author, error)
	List(dbc dbctx.Context) ([]*types.Author, error)
	Count(dbc dbctx.Context) (int64, error)
}

type authorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthorRepo(db *gorm.DB, baseLog *logger.Logger) AuthorRepo {
	return &authorRepo{db: db, log: baseLog.With("repo", "AuthorRepo")}
}

func (r *authorRepo) Create(dbc dbctx.Context, a *types.Author) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return classifyError(types.ModelAuthor, dbc.DB(r.db).Create(a).Error)
}

func (r *authorRepo) Update(dbc dbctx.Context, a *types.Author) error {
	if err := a.Validate(); err != nil {
		return err
	}
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.Author{}, a.ID); err != nil {
			return err
		}
		return tx.Save(a).Error
	})
	return classifyError(types.ModelAuthor, err)
}

// Delete refuses while any book still references the author.
func (r *authorRepo) Delete(dbc dbctx.Context, id uint) error {
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.Author{}, id); err != nil {
			return err
		}
		n, err := countWhere(tx, &types.Book{}, "author_id = ?", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &types.RestrictedDeleteError{
				Model:     types.ModelAuthor,
				ID:        fmt.Sprint(id),
				Dependent: types.ModelBook,
				Count:     n,
			}
		}
		return tx.Delete(&types.Author{}, id).Error
	})
	if err == nil {
		r.log.Info("Author deleted", "author_id", id)
	}
	return classifyError(types.ModelAuthor, err)
}

func (r *authorRepo) GetByID(dbc dbctx.Context, id uint) (*types.Author, error) {
	var a types.Author
	if err := dbc.DB(r.db).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *authorRepo) List(dbc dbctx.Context) ([]*types.Author, error) {
	var results []*types.Author
	if err := dbc.DB(r.db).Order(types.AuthorOrder).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *authorRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).Model(&types.Author{}).Count(&n).Error
	return n, err
}
