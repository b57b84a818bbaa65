package catalog

import (
	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/pkg/dbctx"
	"locallibrary/internal/platform/logger"

	"gorm.io/gorm"
)

const (
	msgGenreExists       = "Genre with this Name already exists."
	msgGenreExistsNoCase = "Genre already exists (case insensitive match)"
)

type GenreRepo interface {
	Create(dbc dbctx.Context, g *types.Genre) error
	Update(dbc dbctx.Context, g *types.Genre) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Genre, error)
	List(dbc dbctx.Context) ([]*types.Genre, error)
	Count(dbc dbctx.Context) (int64, error)
}

type genreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenreRepo(db *gorm.DB, baseLog *logger.Logger) GenreRepo {
	return &genreRepo{db: db, log: baseLog.With("repo", "GenreRepo")}
}

func (r *genreRepo) Create(dbc dbctx.Context, g *types.Genre) error {
	if err := g.Validate(); err != nil {
		return err
	}
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := r.checkUnique(tx, g); err != nil {
			return err
		}
		return tx.Create(g).Error
	})
	return classifyError(types.ModelGenre, err)
}

func (r *genreRepo) Update(dbc dbctx.Context, g *types.Genre) error {
	if err := g.Validate(); err != nil {
		return err
	}
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.Genre{}, g.ID); err != nil {
			return err
		}
		if err := r.checkUnique(tx, g); err != nil {
			return err
		}
		return tx.Save(g).Error
	})
	return classifyError(types.ModelGenre, err)
}

// checkUnique rejects a name equal to another genre's ignoring case. The
// unique index on name_key still backs this up at commit.
func (r *genreRepo) checkUnique(tx *gorm.DB, g *types.Genre) error {
	var other types.Genre
	res := tx.Where("name_key = ? AND id <> ?", types.GenreNameKey(g.Name), g.ID).Limit(1).Find(&other)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	msg := msgGenreExistsNoCase
	if other.Name == g.Name {
		msg = msgGenreExists
	}
	return types.NewValidationError(types.ModelGenre, "name", msg)
}

// Delete removes the genre and its book associations. Books are untouched.
func (r *genreRepo) Delete(dbc dbctx.Context, id uint) error {
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &types.Genre{}, id); err != nil {
			return err
		}
		if err := tx.Where("genre_id = ?", id).Delete(&types.BookGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(&types.Genre{}, id).Error
	})
	if err == nil {
		r.log.Info("Genre deleted", "genre_id", id)
	}
	return classifyError(types.ModelGenre, err)
}

func (r *genreRepo) GetByID(dbc dbctx.Context, id uint) (*types.Genre, error) {
	var g types.Genre
	if err := dbc.DB(r.db).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *genreRepo) List(dbc dbctx.Context) ([]*types.Genre, error) {
	var results []*types.Genre
	if err := dbc.DB(r.db).Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *genreRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).Model(&types.Genre{}).Count(&n).Error
	return n, err
}
