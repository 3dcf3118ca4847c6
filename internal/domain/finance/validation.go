package finance

import (
	"fmt"
	"strings"
)

// Violation describes one reference-validation failure on a candidate payment
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult collects the violations found while validating a candidate
// payment. It is a per-call value: callers receive their own instance, never
// shared state.
type ValidationResult struct {
	Violations []Violation `json:"violations"`
}

// Add records a violation
func (r *ValidationResult) Add(field, code, message string) {
	r.Violations = append(r.Violations, Violation{Field: field, Code: code, Message: message})
}

// IsValid returns true when no violations were recorded
func (r *ValidationResult) IsValid() bool {
	return len(r.Violations) == 0
}

// Error implements the error interface so a failed result can propagate as
// the fatal error of the enclosing operation.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return "validation passed"
	}
	parts := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "payment validation failed: " + strings.Join(parts, "; ")
}
