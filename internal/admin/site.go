// Package admin describes how each catalog model is presented and edited in
// the administration surface: list columns, filters, fieldsets and inline
// related rows. It holds configuration only; rendering is up to the caller.
package admin

import (
	"errors"
	"fmt"
)

var ErrAlreadyRegistered = errors.New("model already registered")

// Displayer is implemented by every catalog model. Display returns the
// presentation value of a field, or a placeholder for empty values.
type Displayer interface {
	Display(field string) string
}

type Column struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// Fieldset groups fields on the change form. An empty Name is an untitled group.
type Fieldset struct {
	Name   string   `json:"name,omitempty"`
	Fields []string `json:"fields"`
}

// Inline edits rows of Model that point at the parent through ForeignKey.
// Extra is the number of blank rows offered for new records.
type Inline struct {
	Model      string   `json:"model"`
	ForeignKey string   `json:"foreign_key"`
	Fields     []string `json:"fields"`
	Extra      int      `json:"extra"`
}

type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	HelpText string   `json:"help_text,omitempty"`
	Required bool     `json:"required"`
	Choices  []string `json:"choices,omitempty"`
}

type ModelAdmin struct {
	Model         string     `json:"model"`
	VerboseName   string     `json:"verbose_name"`
	VerbosePlural string     `json:"verbose_name_plural"`
	Fields        []Field    `json:"fields"`
	ListDisplay   []Column   `json:"list_display"`
	ListFilter    []string   `json:"list_filter,omitempty"`
	Fieldsets     []Fieldset `json:"fieldsets"`
	Inlines       []Inline   `json:"inlines,omitempty"`
	Ordering      []string   `json:"ordering,omitempty"`
}

// Headers returns the list column labels.
func (m ModelAdmin) Headers() []string {
	out := make([]string, 0, len(m.ListDisplay))
	for _, c := range m.ListDisplay {
		out = append(out, c.Label)
	}
	return out
}

// Row renders obj's list columns.
func (m ModelAdmin) Row(obj Displayer) []string {
	out := make([]string, 0, len(m.ListDisplay))
	for _, c := range m.ListDisplay {
		out = append(out, obj.Display(c.Field))
	}
	return out
}

// FieldsetsOrDefault returns the declared fieldsets, or a single untitled
// group of every field when none were declared.
func (m ModelAdmin) FieldsetsOrDefault() []Fieldset {
	if len(m.Fieldsets) > 0 {
		return m.Fieldsets
	}
	names := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		names = append(names, f.Name)
	}
	return []Fieldset{{Fields: names}}
}

func (m ModelAdmin) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (m ModelAdmin) HasFilter(field string) bool {
	for _, f := range m.ListFilter {
		if f == field {
			return true
		}
	}
	return false
}

// Site is a registry of model admins in registration order.
type Site struct {
	models map[string]ModelAdmin
	order  []string
}

func NewSite() *Site {
	return &Site{models: map[string]ModelAdmin{}}
}

func (s *Site) Register(m ModelAdmin) error {
	if m.Model == "" {
		return errors.New("model name is required")
	}
	if _, exists := s.models[m.Model]; exists {
		return fmt.Errorf("%s: %w", m.Model, ErrAlreadyRegistered)
	}
	if len(m.ListDisplay) == 0 {
		m.ListDisplay = []Column{{Field: "label", Label: m.VerboseName}}
	}
	m.Fieldsets = m.FieldsetsOrDefault()
	s.models[m.Model] = m
	s.order = append(s.order, m.Model)
	return nil
}

func (s *Site) Get(model string) (ModelAdmin, bool) {
	m, ok := s.models[model]
	return m, ok
}

func (s *Site) Models() []ModelAdmin {
	out := make([]ModelAdmin, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.models[name])
	}
	return out
}
