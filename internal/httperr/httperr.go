package httperr

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation      = "validation_error"
	CodeMalformed       = "malformed_payload"
	CodeInvalidFile     = "invalid_file"
	CodeFileTooLarge    = "file_too_large"
	CodeUploadFailed    = "upload_failed"
	CodeUnauthorized    = "unauthorized"
	CodeUnauthenticated = "unauthenticated"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeTooManyAttempts = "too_many_attempts"
	CodeInternal        = "internal_error"
)

type HTTPError struct {
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// Error carries the HTTP status a failure maps to. Err keeps the underlying
// cause for logging and is never sent to the client.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func ErrValidation(message string, fields []string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: message, Fields: fields}
}

func ErrMalformed(message string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeMalformed, Message: message, Err: err}
}

func ErrInvalidFile(message string) *Error {
	return New(http.StatusBadRequest, CodeInvalidFile, message)
}

func ErrFileTooLarge(message string) *Error {
	return New(http.StatusBadRequest, CodeFileTooLarge, message)
}

func ErrUploadFailed(message string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeUploadFailed, Message: message, Err: err}
}

func ErrUnauthorized(message string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func ErrUnauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthenticated, message)
}

func ErrForbidden(message string) *Error {
	return New(http.StatusForbidden, CodeForbidden, message)
}

func ErrNotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func ErrConflict(message string, err error) *Error {
	return &Error{Status: http.StatusConflict, Code: CodeConflict, Message: message, Err: err}
}

func ErrTooManyAttempts(message string) *Error {
	return New(http.StatusTooManyRequests, CodeTooManyAttempts, message)
}

func ErrInternal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message, Err: err}
}

// StatusOf reports the HTTP status err maps to, or 500 for unknown errors.
func StatusOf(err error) int {
	var he *Error
	if errors.As(err, &he) {
		return he.Status
	}
	var be BusinessError
	if errors.As(err, &be) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Respond writes err as the JSON error body and aborts the chain.
func Respond(c *gin.Context, err error) {
	var he *Error
	if errors.As(err, &he) {
		if he.Status >= http.StatusInternalServerError {
			log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.AbortWithStatusJSON(he.Status, HTTPError{
			Code:    he.Code,
			Message: he.Message,
			Fields:  he.Fields,
		})
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		c.AbortWithStatusJSON(http.StatusConflict, HTTPError{
			Code:    be.Code,
			Message: be.Message(),
		})
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPError{
		Code:    CodeInternal,
		Message: "Internal server error",
	})
}
