package catalog

import (
	"time"

	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/pkg/dbctx"
	"locallibrary/internal/platform/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgInstanceExists = "Book instance with this Id already exists."

// BookInstanceFilter narrows List and Count. Zero fields are ignored;
// DueFrom is inclusive and DueTo exclusive.
type BookInstanceFilter struct {
	BookID      *uint
	Status      types.LoanStatus
	DueFrom     *time.Time
	DueTo       *time.Time
	DueBackNull *bool
}

type BookInstanceRepo interface {
	Create(dbc dbctx.Context, bi *types.BookInstance) error
	Update(dbc dbctx.Context, bi *types.BookInstance) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.BookInstance, error)
	// List returns copies ordered by due_back ascending with undated copies last.
	List(dbc dbctx.Context, f BookInstanceFilter) ([]*types.BookInstance, error)
	Count(dbc dbctx.Context, f BookInstanceFilter) (int64, error)
}

type bookInstanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookInstanceRepo(db *gorm.DB, baseLog *logger.Logger) BookInstanceRepo {
	return &bookInstanceRepo{db: db, log: baseLog.With("repo", "BookInstanceRepo")}
}

func (r *bookInstanceRepo) Create(dbc dbctx.Context, bi *types.BookInstance) error {
	if err := bi.Validate(); err != nil {
		return err
	}
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if bi.ID != uuid.Nil {
			n, err := countWhere(tx, &types.BookInstance{}, "id = ?", bi.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return types.NewValidationError(types.ModelBookInstance, "id", msgInstanceExists)
			}
		}
		if err := r.checkRefs(tx, bi); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(bi).Error; err != nil {
			return err
		}
		return r.loadBook(tx, bi)
	})
	return classifyError(types.ModelBookInstance, err)
}

func (r *bookInstanceRepo) Update(dbc dbctx.Context, bi *types.BookInstance) error {
	if err := bi.Validate(); err != nil {
		return err
	}
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.BookInstance{}, bi.ID); err != nil {
			return err
		}
		if err := r.checkRefs(tx, bi); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(bi).Error; err != nil {
			return err
		}
		return r.loadBook(tx, bi)
	})
	return classifyError(types.ModelBookInstance, err)
}

func (r *bookInstanceRepo) checkRefs(tx *gorm.DB, bi *types.BookInstance) error {
	if bi.BookID == nil {
		return nil
	}
	n, err := countWhere(tx, &types.Book{}, "id = ?", *bi.BookID)
	if err != nil {
		return err
	}
	if n == 0 {
		return types.NewValidationError(types.ModelBookInstance, "book", types.MsgInvalidChoice)
	}
	return nil
}

func (r *bookInstanceRepo) loadBook(tx *gorm.DB, bi *types.BookInstance) error {
	bi.Book = nil
	if bi.BookID == nil {
		return nil
	}
	var b types.Book
	if err := tx.First(&b, *bi.BookID).Error; err != nil {
		return err
	}
	bi.Book = &b
	return nil
}

func (r *bookInstanceRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.BookInstance{}, id); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&types.BookInstance{}).Error
	})
	if err == nil {
		r.log.Info("Book instance deleted", "book_instance_id", id)
	}
	return classifyError(types.ModelBookInstance, err)
}

func (r *bookInstanceRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.BookInstance, error) {
	var bi types.BookInstance
	if err := dbc.DB(r.db).Preload("Book").Where("id = ?", id).First(&bi).Error; err != nil {
		return nil, err
	}
	return &bi, nil
}

func (r *bookInstanceRepo) List(dbc dbctx.Context, f BookInstanceFilter) ([]*types.BookInstance, error) {
	var results []*types.BookInstance
	q := applyInstanceFilter(dbc.DB(r.db).Preload("Book"), f).Order(types.BookInstanceOrder)
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookInstanceRepo) Count(dbc dbctx.Context, f BookInstanceFilter) (int64, error) {
	var n int64
	err := applyInstanceFilter(dbc.DB(r.db).Model(&types.BookInstance{}), f).Count(&n).Error
	return n, err
}

func applyInstanceFilter(q *gorm.DB, f BookInstanceFilter) *gorm.DB {
	if f.BookID != nil {
		q = q.Where("book_id = ?", *f.BookID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DueFrom != nil {
		q = q.Where("due_back >= ?", types.DateOf(*f.DueFrom))
	}
	if f.DueTo != nil {
		q = q.Where("due_back < ?", types.DateOf(*f.DueTo))
	}
	if f.DueBackNull != nil {
		if *f.DueBackNull {
			q = q.Where("due_back IS NULL")
		} else {
			q = q.Where("due_back IS NOT NULL")
		}
	}
	return q
}
