package model

import "fmt"

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// Validation rule names
const (
	RuleRequired = "required"
	RuleMinItems = "min_items"
	RuleRange    = "range"
	RulePositive = "positive"
	RuleFormat   = "format"
	RuleEnum     = "enum"
)

func requiredError(field string) *ValidationError {
	return NewValidationError(field, nil, RuleRequired, "must not be empty")
}
