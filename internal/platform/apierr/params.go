package apierr

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UintParam reads a numeric path parameter. Malformed ids are reported as
// not found, the same as ids with no row behind them.
func UintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%s %q: %w", name, raw, gorm.ErrRecordNotFound)
	}
	return uint(n), nil
}

func UUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", name, raw, gorm.ErrRecordNotFound)
	}
	return id, nil
}
