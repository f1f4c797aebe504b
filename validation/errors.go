package validation

import (
	"errors"
	"fmt"
)

// ErrorType identifies the kind of a validation failure.
type ErrorType string

const (
	// StrType: the input is not string-shaped under the active strictness.
	StrType ErrorType = "string_type"
	// EmailParsing: the input is a string but not an acceptable email address.
	EmailParsing ErrorType = "email_parsing"
)

// ErrValidationFailed is matched by every *Error through errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// Error is a single validation failure.
type Error struct {
	Type    ErrorType
	Message string
	// Detail is the grammar engine's message for EmailParsing errors.
	Detail string
	// Context carries structured details for message rendering. Nil when the
	// error has none.
	Context map[string]any
	Input   any
}

// NewError creates an error of type t with its default message.
func NewError(t ErrorType, input any) *Error {
	return &Error{
		Type:    t,
		Message: defaultMessage(t, ""),
		Input:   input,
	}
}

// NewEmailParsingError creates an EmailParsing error carrying the grammar
// engine's message verbatim.
func NewEmailParsingError(input any, reason string) *Error {
	return &Error{
		Type:    EmailParsing,
		Message: defaultMessage(EmailParsing, reason),
		Detail:  reason,
		Context: nil,
		Input:   input,
	}
}

func defaultMessage(t ErrorType, reason string) string {
	switch t {
	case StrType:
		return "Input should be a valid string"
	case EmailParsing:
		return "value is not a valid email address: " + reason
	default:
		return string(t)
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [type=%s]", e.Message, e.Type)
}

// Is makes every *Error match ErrValidationFailed.
func (e *Error) Is(target error) bool {
	return target == ErrValidationFailed
}

// TranslationKey returns the i18n key for the error type.
func (e *Error) TranslationKey() string {
	return "validation." + string(e.Type)
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsType reports whether err is a validation error of type t.
func IsType(err error, t ErrorType) bool {
	ve, ok := AsError(err)
	return ok && ve.Type == t
}
