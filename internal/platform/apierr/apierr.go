package apierr

import (
	"errors"
	"fmt"
	"net/http"

	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Classify maps catalog and persistence errors onto HTTP statuses.
func Classify(err error) *Error {
	var ae *Error
	var ve *types.ValidationError
	var rd *types.RestrictedDeleteError
	var ie *types.IntegrityError

	switch {
	case errors.As(err, &ae):
		return ae
	case errors.As(err, &ve):
		return New(http.StatusBadRequest, "validation_error", err)
	case errors.As(err, &rd):
		return New(http.StatusConflict, "restricted_delete", err)
	case errors.As(err, &ie):
		return New(http.StatusConflict, "integrity_error", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return New(http.StatusNotFound, "not_found", err)
	}
	return New(http.StatusInternalServerError, "internal", err)
}

// Respond writes err as JSON. action completes "Failed to ..." for 5xx.
func Respond(c *gin.Context, log *logger.Logger, err error, action string) {
	ae := Classify(err)

	var ve *types.ValidationError
	var rd *types.RestrictedDeleteError

	switch {
	case errors.As(err, &ve):
		c.JSON(ae.Status, gin.H{"error": "Validation failed", "code": ae.Code, "field": ve.Field(), "errors": ve.Errors})
	case errors.As(err, &rd):
		c.JSON(ae.Status, gin.H{"error": rd.Error(), "code": ae.Code, "dependent": rd.Dependent, "count": rd.Count})
	case ae.Code == "integrity_error":
		log.Warn("Integrity error", "action", action, "error", err)
		c.JSON(ae.Status, gin.H{"error": "Integrity error", "code": ae.Code, "details": err.Error()})
	case ae.Status == http.StatusNotFound:
		c.JSON(ae.Status, gin.H{"error": "Not found", "code": ae.Code})
	case ae.Status >= http.StatusInternalServerError:
		log.Error("Request failed", "action", action, "error", err)
		c.JSON(ae.Status, gin.H{"error": "Failed to " + action})
	default:
		c.JSON(ae.Status, gin.H{"error": ae.Error(), "code": ae.Code})
	}
}
