// Package errors provides structured error types for gridaxis.
//
// Errors carry a machine-readable [Code] so that the CLI and the HTTP API can
// report the same failure consistently: the CLI prints [UserMessage], the
// server maps the code to a status with [HTTPStatus] and returns it in the
// response body.
//
// # Error Codes
//
//   - INVALID_*: the problem definition or a request is malformed
//   - MODELING_ERROR: the constraints contradict each other
//   - SOLVER_FAILED, NO_INTEGER_SOLUTION: the numeric solve did not finish
//   - TIMEOUT: the request deadline passed before all sizes were solved
//   - INTERNAL_ERROR: anything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidProblem, "element %d: min %d exceeds max %d", i, lo, hi)
//	if errors.Is(err, errors.ErrCodeInvalidProblem) {
//	    // report to the user
//	}
//
//	err := errors.Wrap(errors.ErrCodeSolverFailed, cause, "layout at size %d", size)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidProblem  Code = "INVALID_PROBLEM"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStrategy Code = "INVALID_STRATEGY"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Solve errors
	ErrCodeModeling          Code = "MODELING_ERROR"
	ErrCodeSolverFailed      Code = "SOLVER_FAILED"
	ErrCodeNoIntegerSolution Code = "NO_INTEGER_SOLUTION"
	ErrCodeTimeout           Code = "TIMEOUT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from err, or "" if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without the code prefix,
// or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the status the API responds with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidProblem, ErrCodeInvalidFormat, ErrCodeInvalidStrategy:
		return http.StatusBadRequest
	case ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeModeling, ErrCodeNoIntegerSolution:
		return http.StatusUnprocessableEntity
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
