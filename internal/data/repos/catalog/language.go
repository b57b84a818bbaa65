package catalog

import (
	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/pkg/dbctx"
	"locallibrary/internal/platform/logger"

	"gorm.io/gorm"
)

const msgLanguageExists = "Language with this Name already exists."

type LanguageRepo interface {
	Create(dbc dbctx.Context, l *types.Language) error
	Update(dbc dbctx.Context, l *types.Language) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Language, error)
	List(dbc dbctx.Context) ([]*types.Language, error)
}

type languageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLanguageRepo(db *gorm.DB, baseLog *logger.Logger) LanguageRepo {
	return &languageRepo{db: db, log: baseLog.With("repo", "LanguageRepo")}
}

func (r *languageRepo) Create(dbc dbctx.Context, l *types.Language) error {
	if err := l.Validate(); err != nil {
		return err
	}
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := r.checkUnique(tx, l); err != nil {
			return err
		}
		return tx.Create(l).Error
	})
	return classifyError(types.ModelLanguage, err)
}

func (r *languageRepo) Update(dbc dbctx.Context, l *types.Language) error {
	if err := l.Validate(); err != nil {
		return err
	}
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.Language{}, l.ID); err != nil {
			return err
		}
		if err := r.checkUnique(tx, l); err != nil {
			return err
		}
		return tx.Save(l).Error
	})
	return classifyError(types.ModelLanguage, err)
}

func (r *languageRepo) checkUnique(tx *gorm.DB, l *types.Language) error {
	n, err := countWhere(tx, &types.Language{}, "name = ? AND id <> ?", l.Name, l.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return types.NewValidationError(types.ModelLanguage, "name", msgLanguageExists)
	}
	return nil
}

// Delete always succeeds for an existing language: books written in it keep
// existing with a null language.
func (r *languageRepo) Delete(dbc dbctx.Context, id uint) error {
	var cleared int64
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.Language{}, id); err != nil {
			return err
		}
		res := tx.Model(&types.Book{}).Where("language_id = ?", id).Update("language_id", nil)
		if res.Error != nil {
			return res.Error
		}
		cleared = res.RowsAffected
		return tx.Delete(&types.Language{}, id).Error
	})
	if err == nil {
		r.log.Info("Language deleted", "language_id", id, "books_cleared", cleared)
	}
	return classifyError(types.ModelLanguage, err)
}

func (r *languageRepo) GetByID(dbc dbctx.Context, id uint) (*types.Language, error) {
	var l types.Language
	if err := dbc.DB(r.db).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *languageRepo) List(dbc dbctx.Context) ([]*types.Language, error) {
	var results []*types.Language
	if err := dbc.DB(r.db).Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
