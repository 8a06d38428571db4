// Package apperr converts failures raised while handling a request into the
// uniform error envelope.
package apperr

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/BuzzLyutic/task-crud-api/internal/repo"
	"github.com/BuzzLyutic/task-crud-api/internal/validation"
)

// Error is an application-raised failure with an explicit HTTP status.
type Error struct {
	Code    int
	Message string
	stack   error
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message, stack: errors.New(message)}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%+v", e.stack)
		return
	}
	fmt.Fprint(s, e.Message)
}

// Envelope is the body of every failed response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Stack   string   `json:"stack,omitempty"`
}

const internalMessage = "Internal Server Error"

// Normalize maps err to a status code and envelope. Unknown errors never leak
// their message; withStack adds a stack trace for development.
func Normalize(err error, withStack bool) (int, Envelope) {
	code, env := classify(err)
	if withStack {
		env.Stack = fmt.Sprintf("%+v", err)
	}
	return code, env
}

func classify(err error) (int, Envelope) {
	var (
		vErr    *validation.Error
		castErr *repo.CastError
		cErr    *repo.ConstraintError
		appErr  *Error
	)

	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, Envelope{Message: "Validation error", Errors: vErr.Messages}
	case errors.As(err, &castErr):
		return http.StatusNotFound, Envelope{Message: "Resource not found with id: " + castErr.Value}
	case errors.Is(err, repo.ErrorConflict):
		return http.StatusBadRequest, Envelope{Message: "Duplicate field value entered"}
	case errors.As(err, &cErr):
		return http.StatusBadRequest, Envelope{Message: "Invalid input data: " + strings.Join(cErr.Messages, ". ")}
	case errors.As(err, &appErr):
		return appErr.Code, Envelope{Message: appErr.Message}
	}
	return http.StatusInternalServerError, Envelope{Message: internalMessage}
}
