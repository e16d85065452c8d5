// Package validation checks user-supplied selections against template
// field descriptors before compilation.
//
// The compiler itself never fails on bad input (missing values become
// placeholders), so this layer exists to surface problems early: a
// required field left empty, a select value outside its options, a value
// past its length cap. Interfaces (CLI, HTTP, TUI) run validation before
// compiling and decide for themselves whether warnings block or merely
// annotate.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/models"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors,omitempty"`
	Warnings []ValidationWarning `json:"warnings,omitempty"`
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationWarning represents a field validation warning
type ValidationWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator validates selections and template definitions
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSelections checks the selection values against the template's
// field descriptors. Unknown keys produce warnings, not errors, since
// templates may reference data the field list doesn't declare.
func (v *Validator) ValidateSelections(template *models.Template, selections map[string]string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	for _, field := range template.Fields {
		value, exists := selections[field.Key]

		if field.Required && (!exists || strings.TrimSpace(value) == "") {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field.Key,
				Code:    "REQUIRED_FIELD_MISSING",
				Message: fmt.Sprintf("Field '%s' is required", field.Key),
			})
			continue
		}

		if !exists || value == "" {
			continue
		}

		if field.MaxLength > 0 && utf8.RuneCountInString(value) > field.MaxLength {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field.Key,
				Code:    "MAX_LENGTH_VIOLATION",
				Message: fmt.Sprintf("Field '%s' must be at most %d characters long", field.Key, field.MaxLength),
				Value:   value,
			})
		}

		if len(field.Options) > 0 {
			validOption := false
			for _, option := range field.Options {
				if value == option {
					validOption = true
					break
				}
			}
			if !validOption {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   field.Key,
					Code:    "INVALID_OPTION",
					Message: fmt.Sprintf("Field '%s' must be one of: %s", field.Key, strings.Join(field.Options, ", ")),
					Value:   value,
				})
			}
		}
	}

	known := make(map[string]bool, len(template.Fields))
	for _, field := range template.Fields {
		known[field.Key] = true
	}
	for key := range selections {
		if !known[key] {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   key,
				Message: fmt.Sprintf("Selection '%s' is not declared by template '%s'", key, template.ID),
			})
		}
	}

	return result
}

// ValidateTemplate checks a template definition for structural problems:
// a malformed id, duplicate field keys, selects without options, or
// length limits that contradict each other.
func (v *Validator) ValidateTemplate(template *models.Template) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if !idPattern.MatchString(template.ID) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "id",
			Code:    "INVALID_FORMAT",
			Message: fmt.Sprintf("Template id '%s' must be lowercase alphanumeric with dashes", template.ID),
			Value:   template.ID,
		})
	}

	if strings.TrimSpace(template.Body) == "" {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "body",
			Code:    "MISSING_FIELD",
			Message: "Template body is empty",
		})
	}

	seen := make(map[string]bool)
	for _, field := range template.Fields {
		if field.Key == "" {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "fields",
				Code:    "MISSING_FIELD",
				Message: "Field descriptor is missing a key",
			})
			continue
		}
		if seen[field.Key] {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field.Key,
				Code:    "ALREADY_EXISTS",
				Message: fmt.Sprintf("Field '%s' is declared more than once", field.Key),
			})
		}
		seen[field.Key] = true

		if field.Kind == "select" && len(field.Options) == 0 {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   field.Key,
				Message: fmt.Sprintf("Select field '%s' has no options", field.Key),
			})
		}

		if field.Default != "" && len(field.Options) > 0 {
			found := false
			for _, option := range field.Options {
				if field.Default == option {
					found = true
					break
				}
			}
			if !found {
				result.Warnings = append(result.Warnings, ValidationWarning{
					Field:   field.Key,
					Message: fmt.Sprintf("Default for '%s' is not one of its options", field.Key),
				})
			}
		}
	}

	if template.Limits.Min > 0 && template.Limits.Max > 0 &&
		template.Limits.Min > template.Limits.Max {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "limits",
			Code:    "INVALID_FORMAT",
			Message: fmt.Sprintf("Minimum length %d exceeds maximum %d", template.Limits.Min, template.Limits.Max),
		})
	}

	return result
}

// ToAppError converts validation result to AppError
func (result *ValidationResult) ToAppError() *errors.AppError {
	if result.Valid {
		return nil
	}

	if len(result.Errors) == 0 {
		return errors.ValidationError("Validation failed")
	}

	firstError := result.Errors[0]
	appErr := errors.ValidationError(firstError.Message)

	var details []string
	for _, validationErr := range result.Errors {
		details = append(details, fmt.Sprintf("%s: %s", validationErr.Field, validationErr.Message))
	}

	appErr.WithDetails(strings.Join(details, "; "))
	appErr.WithContext("validation_errors", result.Errors)
	if len(result.Warnings) > 0 {
		appErr.WithContext("validation_warnings", result.Warnings)
	}

	return appErr
}
