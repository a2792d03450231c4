package apperrors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeUnsupportedFileType ErrorType = "UNSUPPORTED_FILE_TYPE"
	ErrTypeExtractionFailed    ErrorType = "EXTRACTION_FAILED"
	ErrTypeAnalysisFailed      ErrorType = "ANALYSIS_FAILED"
	ErrTypeStoreFailed         ErrorType = "STORE_FAILED"
	ErrTypeInvalidInput        ErrorType = "INVALID_INPUT"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func UnsupportedFileType(message string, err error) *DomainError {
	return New(ErrTypeUnsupportedFileType, message, err)
}

func ExtractionFailed(message string, err error) *DomainError {
	return New(ErrTypeExtractionFailed, message, err)
}

func AnalysisFailed(message string, err error) *DomainError {
	return New(ErrTypeAnalysisFailed, message, err)
}

func StoreFailed(message string, err error) *DomainError {
	return New(ErrTypeStoreFailed, message, err)
}

func InvalidInput(message string, err error) *DomainError {
	return New(ErrTypeInvalidInput, message, err)
}

// TypeOf returns the type of the first DomainError in err's chain, or "" when there is none.
func TypeOf(err error) ErrorType {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type
	}
	return ""
}

// Is reports whether err carries a DomainError of the given type.
func Is(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}
