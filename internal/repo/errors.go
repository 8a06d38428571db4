package repo

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

// CastError means the id could not be interpreted as a task identifier.
type CastError struct {
	Value string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast to uuid failed for value %q", e.Value)
}

// ConstraintError is raised when the store itself rejects a record.
type ConstraintError struct {
	Messages []string
}

func (e *ConstraintError) Error() string {
	return "constraint violation: " + strings.Join(e.Messages, ". ")
}

// Сообщения для CHECK-ограничений из миграции
var constraintMessages = map[string]string{
	"tasks_title_length":          "Title must be between 3 and 100 characters",
	"tasks_description_length":    "Description must be between 10 and 500 characters",
	"tasks_status_enum":           "Status must be one of: pending, in-progress, completed, cancelled",
	"tasks_priority_enum":         "Priority must be one of: low, medium, high, urgent",
	"tasks_updated_after_created": "Updated date cannot precede created date",
}

func constraintMessage(name string) string {
	if msg, ok := constraintMessages[name]; ok {
		return msg
	}
	return fmt.Sprintf("Constraint %s violated", name)
}

func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, errors.WithStack(&CastError{Value: id})
	}
	return u, nil
}
