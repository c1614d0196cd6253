package readability

import (
	"errors"
	"fmt"
)

// ErrorType names the stage of extraction an error came from.
type ErrorType string

const (
	ParseError      ErrorType = "parse"
	ExtractionError ErrorType = "extraction"
	ValidationError ErrorType = "validation"
	TimeoutError    ErrorType = "timeout"
	MetadataError   ErrorType = "metadata"
)

// Sentinels callers can match with errors.Is.
var (
	ErrNoDocument    = errors.New("no document to parse")
	ErrDocumentLarge = errors.New("document too large")
	ErrNoBody        = errors.New("document has no body")
	ErrNoContent     = errors.New("could not extract article content")
	ErrTimeout       = errors.New("operation timed out")
)

// Error tags an underlying error with its type and the function that saw it.
// It renders as "[type:func] message: cause".
type Error struct {
	Type    ErrorType
	Func    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("[%s:%s] %v", e.Type, e.Func, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Func, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps err with its type and origin. A nil err stays nil.
func WrapError(err error, errorType ErrorType, funcName, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Type: errorType, Func: funcName, Message: message, Err: err}
}

func WrapParseError(err error, funcName, message string) error {
	return WrapError(err, ParseError, funcName, message)
}

func WrapExtractionError(err error, funcName, message string) error {
	return WrapError(err, ExtractionError, funcName, message)
}

func WrapValidationError(err error, funcName, message string) error {
	return WrapError(err, ValidationError, funcName, message)
}

func WrapTimeoutError(err error, funcName, message string) error {
	return WrapError(err, TimeoutError, funcName, message)
}

// IsErrorType reports whether any *Error in err's chain has the given type,
// so a validation error stays one after an extraction wrapper is added.
func IsErrorType(err error, errorType ErrorType) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Type == errorType {
			return true
		}
		err = e.Err
	}
	return false
}

// IsParseError reports whether err came from parsing the input
func IsParseError(err error) bool {
	return IsErrorType(err, ParseError)
}

func IsExtractionError(err error) bool {
	return IsErrorType(err, ExtractionError)
}

// IsValidationError reports whether the document was rejected before extraction
func IsValidationError(err error) bool {
	return IsErrorType(err, ValidationError)
}

func IsTimeoutError(err error) bool {
	return IsErrorType(err, TimeoutError)
}
