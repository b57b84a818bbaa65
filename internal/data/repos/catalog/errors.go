package catalog

import (
	"errors"
	"strings"

	types "locallibrary/internal/domain/catalog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// classifyError turns driver constraint violations into *IntegrityError and
// passes everything else through unchanged.
func classifyError(model string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return &types.IntegrityError{Model: model, Constraint: pgErr.ConstraintName, Err: err}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return &types.IntegrityError{Model: model, Constraint: sqliteConstraint(liteErr.Error()), Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return &types.IntegrityError{Model: model, Err: err}
	}
	return err
}

// sqliteConstraint pulls the column list or index name out of messages like
// "UNIQUE constraint failed: genres.name".
func sqliteConstraint(msg string) string {
	const marker = "constraint failed: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	return strings.Trim(msg[i+len(marker):], "'")
}

func ensureExists(tx *gorm.DB, model interface{}, id interface{}) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func countWhere(tx *gorm.DB, model interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	err := tx.Model(model).Where(query, args...).Count(&n).Error
	return n, err
}
