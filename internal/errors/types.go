package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeGeometry   ErrorType = "geometry"
	ErrorTypeInternal   ErrorType = "internal"
)

// HeadsetError is a structured error type with context.
type HeadsetError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Part        string
	FilePath    string
	Recoverable bool
}

// Error implements the error interface.
func (e *HeadsetError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Part != "" {
		parts = append(parts, "part:"+e.Part)
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *HeadsetError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *HeadsetError) Is(target error) bool {
	var t *HeadsetError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *HeadsetError) WithContext(key string, value interface{}) *HeadsetError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPart records which headset part was being built.
func (e *HeadsetError) WithPart(part string) *HeadsetError {
	e.Part = part

	return e
}

// WithFile records the file the error relates to.
func (e *HeadsetError) WithFile(path string) *HeadsetError {
	e.FilePath = path

	return e
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *HeadsetError {
	return &HeadsetError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewGeometryError creates an error raised while constructing a solid.
func NewGeometryError(code, message string, cause error) *HeadsetError {
	return &HeadsetError{
		Type:        ErrorTypeGeometry,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *HeadsetError {
	return &HeadsetError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *HeadsetError {
	return &HeadsetError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *HeadsetError {
	return &HeadsetError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var he *HeadsetError
	if errors.As(err, &he) {
		return he.Recoverable
	}

	return false
}

// IsValidationError checks if an error is a parameter or input validation failure.
func IsValidationError(err error) bool {
	var he *HeadsetError
	if errors.As(err, &he) {
		return he.Type == ErrorTypeValidation
	}

	return false
}

// IsGeometryError checks if an error came from the solid-modeling kernel.
func IsGeometryError(err error) bool {
	var he *HeadsetError
	if errors.As(err, &he) {
		return he.Type == ErrorTypeGeometry
	}

	return false
}

// Common error codes.
const (
	ErrCodeInvalidPath       = "ERR_INVALID_PATH"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodeFileNotFound      = "ERR_FILE_NOT_FOUND"
	ErrCodeWriteFailed       = "ERR_WRITE_FAILED"
	ErrCodeInternalError     = "ERR_INTERNAL"
	ErrCodeValidationFailed  = "ERR_VALIDATION_FAILED"
	ErrCodeNegativePadding   = "ERR_NEGATIVE_PADDING"
	ErrCodeKernel            = "ERR_KERNEL"
	ErrCodeEmptySolid        = "ERR_EMPTY_SOLID"
	ErrCodeUnknownPart       = "ERR_UNKNOWN_PART"
	ErrCodeRenderCancelled   = "ERR_RENDER_CANCELLED"
	ErrCodeUnsupportedFormat = "ERR_UNSUPPORTED_FORMAT"
)

// ValidationError interface for field-specific validation errors.
type ValidationError interface {
	error
	Field() string
	Value() interface{}
	Suggestions() []string
}

// FieldValidationError implements ValidationError for specific field errors.
type FieldValidationError struct {
	FieldName    string
	FieldValue   interface{}
	ErrorMessage string
	HelpText     []string
}

// Error implements the error interface.
func (fve *FieldValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", fve.FieldName, fve.ErrorMessage)
}

// Field returns the field name that failed validation.
func (fve *FieldValidationError) Field() string {
	return fve.FieldName
}

// Value returns the invalid value.
func (fve *FieldValidationError) Value() interface{} {
	return fve.FieldValue
}

// Suggestions returns helpful suggestions for fixing the error.
func (fve *FieldValidationError) Suggestions() []string {
	return fve.HelpText
}

// NewFieldValidationError creates a new field validation error.
func NewFieldValidationError(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) *FieldValidationError {
	return &FieldValidationError{
		FieldName:    field,
		FieldValue:   value,
		ErrorMessage: message,
		HelpText:     suggestions,
	}
}

// ValidationErrorCollection represents a collection of validation errors.
type ValidationErrorCollection struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (vec *ValidationErrorCollection) Error() string {
	if len(vec.Errors) == 0 {
		return "no validation errors"
	}
	if len(vec.Errors) == 1 {
		return vec.Errors[0].Error()
	}

	return fmt.Sprintf("validation failed with %d errors", len(vec.Errors))
}

// Add adds a validation error to the collection.
func (vec *ValidationErrorCollection) Add(err ValidationError) {
	vec.Errors = append(vec.Errors, err)
}

// AddField adds a field validation error to the collection.
func (vec *ValidationErrorCollection) AddField(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) {
	vec.Add(NewFieldValidationError(field, value, message, suggestions...))
}

// HasErrors returns true if there are any validation errors.
func (vec *ValidationErrorCollection) HasErrors() bool {
	return len(vec.Errors) > 0
}

// ToHeadsetError converts the validation collection to a HeadsetError.
// It returns nil when the collection is empty.
func (vec *ValidationErrorCollection) ToHeadsetError() *HeadsetError {
	if !vec.HasErrors() {
		return nil
	}

	var messages []string
	context := make(map[string]interface{})

	for _, err := range vec.Errors {
		messages = append(messages, err.Error())
		context[err.Field()] = map[string]interface{}{
			"value":       err.Value(),
			"suggestions": err.Suggestions(),
		}
	}

	return &HeadsetError{
		Type:        ErrorTypeValidation,
		Code:        ErrCodeValidationFailed,
		Message:     strings.Join(messages, "; "),
		Context:     context,
		Recoverable: true,
	}
}

// Helper functions for common errors

// ErrInvalidPath creates a path validation error.
func ErrInvalidPath(path string) *HeadsetError {
	return NewValidationError(ErrCodeInvalidPath, "invalid path: "+path)
}

// ErrUnknownPart creates an error for a part name the generator does not know.
func ErrUnknownPart(name string) *HeadsetError {
	return NewValidationError(ErrCodeUnknownPart, "unknown part: "+name)
}

// ErrEmptySolid reports a part whose solid encloses no volume.
func ErrEmptySolid(part string) *HeadsetError {
	return NewGeometryError(ErrCodeEmptySolid, "solid is empty", nil).WithPart(part)
}
