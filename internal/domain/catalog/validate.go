package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Messages shared by model validation and the repositories.
const (
	MsgRequired      = "This field is required."
	MsgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// EmptyValue is shown in list columns for null values.
const EmptyValue = "-"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names so errors line up with request payloads
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("loan_status", func(fl validator.FieldLevel) bool {
		return LoanStatus(fl.Field().String()).Valid()
	})
	return v
}

func validateModel(model string, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &ValidationError{Model: model, Errors: map[string]string{}}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), fieldMessage(fe))
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		n := utf8.RuneCountInString(fmt.Sprint(fe.Value()))
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), n)
	case "loan_status":
		return fmt.Sprintf("Value %q is not a valid choice.", fe.Value())
	}
	return "Enter a valid value."
}

// DateOf truncates t to midnight UTC of its calendar day. Date columns are
// stored this way so comparisons agree across drivers.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := DateOf(*t)
	return &d
}

func formatDate(t *time.Time) string {
	if t == nil {
		return EmptyValue
	}
	return t.Format(time.DateOnly)
}

func idString(id uint) string {
	return fmt.Sprintf("%d", id)
}
