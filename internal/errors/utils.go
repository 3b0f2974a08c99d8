package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Wrap wraps an error with additional context, creating a HeadsetError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *HeadsetError {
	if err == nil {
		return nil
	}

	// Preserve the part and file of an existing HeadsetError
	var he *HeadsetError
	if errors.As(err, &he) {
		return &HeadsetError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       he,
			Context:     he.Context,
			Part:        he.Part,
			FilePath:    he.FilePath,
			Recoverable: he.Recoverable,
		}
	}

	return &HeadsetError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation || errType == ErrorTypeGeometry,
	}
}

// WrapGeometry wraps a kernel error as a geometry error for the named part
func WrapGeometry(err error, code, message, part string) *HeadsetError {
	he := Wrap(err, ErrorTypeGeometry, code, message)
	if he != nil {
		he.Part = part
	}
	return he
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *HeadsetError {
	he := Wrap(err, ErrorTypeIO, code, message)
	if he != nil {
		he.Recoverable = false
	}
	return he
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *HeadsetError {
	he := Wrap(err, ErrorTypeConfig, code, message)
	if he != nil {
		he.Recoverable = false
	}
	return he
}

// FormatErrorWithSuggestions formats an error with suggestions for ValidationError types
func FormatErrorWithSuggestions(err error) string {
	if err == nil {
		return ""
	}

	var ve ValidationError
	if errors.As(err, &ve) {
		result := ve.Error()
		suggestions := ve.Suggestions()
		if len(suggestions) > 0 {
			result += "\n\nSuggestions:"
			for _, suggestion := range suggestions {
				result += fmt.Sprintf("\n  • %s", suggestion)
			}
		}
		return result
	}

	var he *HeadsetError
	if errors.As(err, &he) && len(he.Context) > 0 {
		result := err.Error()
		fields := make([]string, 0, len(he.Context))
		for field := range he.Context {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			detail, ok := he.Context[field].(map[string]interface{})
			if !ok {
				continue
			}
			suggestions, _ := detail["suggestions"].([]string)
			for _, suggestion := range suggestions {
				result += fmt.Sprintf("\n  • %s: %s", field, suggestion)
			}
		}
		return result
	}

	return err.Error()
}

// GetErrorContext extracts context information from a HeadsetError
func GetErrorContext(err error) map[string]interface{} {
	var he *HeadsetError
	if errors.As(err, &he) {
		context := make(map[string]interface{})
		for k, v := range he.Context {
			context[k] = v
		}
		if he.Part != "" {
			context["part"] = he.Part
		}
		if he.FilePath != "" {
			context["file"] = he.FilePath
		}
		context["type"] = string(he.Type)
		context["code"] = he.Code
		context["recoverable"] = he.Recoverable
		return context
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}

// ExtractCause extracts the root cause from a wrapped error
func ExtractCause(err error) error {
	for err != nil {
		var he *HeadsetError
		if errors.As(err, &he) {
			if he.Cause == nil {
				return he
			}
			err = he.Cause
		} else {
			return err
		}
	}
	return nil
}
