package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports field-level problems with a record that the caller
// can correct and resubmit. Errors is keyed by field name.
type ValidationError struct {
	Model  string
	Errors map[string]string
}

func NewValidationError(model, field, message string) *ValidationError {
	e := &ValidationError{Model: model, Errors: map[string]string{}}
	e.Add(field, message)
	return e
}

// Add records message for field unless the field already has one.
func (e *ValidationError) Add(field, message string) {
	if e.Errors == nil {
		e.Errors = map[string]string{}
	}
	if _, exists := e.Errors[field]; !exists {
		e.Errors[field] = message
	}
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// Fields returns the offending field names in sorted order.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Field returns the first offending field name.
func (e *ValidationError) Field() string {
	fields := e.Fields()
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e.Errors[f])
	}
	return fmt.Sprintf("invalid %s: %s", e.Model, strings.Join(parts, "; "))
}

// RestrictedDeleteError is returned when a record cannot be deleted because
// other rows still reference it.
type RestrictedDeleteError struct {
	Model     string
	ID        string
	Dependent string
	Count     int64
}

func (e *RestrictedDeleteError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: referenced by %d %s row(s)", e.Model, e.ID, e.Count, e.Dependent)
}

// IntegrityError wraps a constraint violation raised by the database for a
// write that passed application-side validation. The write is rolled back.
type IntegrityError struct {
	Model      string
	Constraint string
	Err        error
}

func (e *IntegrityError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s integrity error on %s: %v", e.Model, e.Constraint, e.Err)
	}
	return fmt.Sprintf("%s integrity error: %v", e.Model, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }
