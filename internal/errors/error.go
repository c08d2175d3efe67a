package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryUsage      Category = "usage"
	CategoryValidation Category = "validation"
	CategoryRender     Category = "render"
	CategoryCLI        Category = "cli"
)

// InjectError is a structured error with a code, suggestions, and documentation.
type InjectError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (config, usage, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *InjectError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *InjectError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same error code.
func (e *InjectError) Is(target error) bool {
	t, ok := target.(*InjectError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *InjectError) WithSuggestion(s string) *InjectError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *InjectError) WithDetail(d string) *InjectError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *InjectError) WithDetailf(format string, args ...any) *InjectError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *InjectError) Wrap(err error) *InjectError {
	e.Wrapped = err
	return e
}

// New creates an InjectError from a registered error code.
func New(code string) *InjectError {
	template, ok := registry[code]
	if !ok {
		return &InjectError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &InjectError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new InjectError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *InjectError {
	return &InjectError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an InjectError.
func FromError(err error, code string) *InjectError {
	if err == nil {
		return nil
	}
	if ie, ok := err.(*InjectError); ok {
		return ie
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first InjectError in err's chain, or "".
func Code(err error) string {
	for err != nil {
		if ie, ok := err.(*InjectError); ok && ie.Code != "" {
			return ie.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
