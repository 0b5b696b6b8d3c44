package model

import (
	"strings"

	"github.com/muhammadheryan/user-dashboard/constant"
)

// FieldError is a single failed rule attributed to one form field.
type FieldError struct {
	Field   string             `json:"field"`
	Kind    constant.ErrorType `json:"-"`
	Message string             `json:"message"`
}

// ValidationErrors is the ordered result of a form validation.
// An empty list means the form passed.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the first message recorded for field, or "".
func (v ValidationErrors) Get(field string) string {
	for _, e := range v {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}
