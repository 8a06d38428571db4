// Package validation checks raw task payloads before they reach the store.
// Every field is checked independently and all violations are reported together.
package validation

import (
	"time"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
)

const (
	statusMsg   = "Status must be one of: pending, in-progress, completed, cancelled"
	priorityMsg = "Priority must be one of: low, medium, high, urgent"
)

var (
	createTitle = textRule{
		min: 3, max: 100,
		requiredMsg: "Title is required",
		emptyMsg:    "Title is required",
		typeMsg:     "Title must be a string",
		minMsg:      "Title must be at least 3 characters long",
		maxMsg:      "Title cannot exceed 100 characters",
	}
	createDescription = textRule{
		min: 10, max: 500,
		requiredMsg: "Description is required",
		emptyMsg:    "Description is required",
		typeMsg:     "Description must be a string",
		minMsg:      "Description must be at least 10 characters long",
		maxMsg:      "Description cannot exceed 500 characters",
	}
	updateTitle       = withEmpty(createTitle, "Title cannot be empty")
	updateDescription = withEmpty(createDescription, "Description cannot be empty")
)

func withEmpty(r textRule, msg string) textRule {
	r.emptyMsg = msg
	return r
}

// Create validates a create payload and returns a task with defaults applied.
// Unknown fields are dropped.
func Create(raw map[string]interface{}, now time.Time) (model.Task, error) {
	var errs violations
	task := model.Task{
		Status:   model.DefaultStatus,
		Priority: model.DefaultPriority,
		Tags:     []string{},
	}

	if v, ok := raw["title"]; ok {
		s, msg := createTitle.check(v)
		task.Title = s
		errs.add(msg)
	} else {
		errs.add(createTitle.requiredMsg)
	}

	if v, ok := raw["description"]; ok {
		s, msg := createDescription.check(v)
		task.Description = s
		errs.add(msg)
	} else {
		errs.add(createDescription.requiredMsg)
	}

	if v, ok := raw["status"]; ok {
		s, msg := checkEnum(v, model.Status.Valid, statusMsg)
		if msg == "" {
			task.Status = s
		}
		errs.add(msg)
	}

	if v, ok := raw["priority"]; ok {
		p, msg := checkEnum(v, model.Priority.Valid, priorityMsg)
		if msg == "" {
			task.Priority = p
		}
		errs.add(msg)
	}

	// null на создании трактуем как "без срока": клиент отправляет его для пустого поля
	if v, ok := raw["dueDate"]; ok && v != nil {
		d, msg := checkDueDate(v, now)
		if msg == "" {
			task.DueDate = &d
		}
		errs.add(msg)
	}

	if v, ok := raw["tags"]; ok {
		tags, msg := checkTags(v)
		if msg == "" {
			task.Tags = tags
		}
		errs.add(msg)
	}

	if err := errs.err(); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Update validates a partial payload. A payload with no recognized fields is
// a valid no-op; a null dueDate clears the due date.
func Update(raw map[string]interface{}, now time.Time) (model.TaskPatch, error) {
	var errs violations
	var patch model.TaskPatch

	if v, ok := raw["title"]; ok {
		s, msg := updateTitle.check(v)
		if msg == "" {
			patch.Title = &s
		}
		errs.add(msg)
	}

	if v, ok := raw["description"]; ok {
		s, msg := updateDescription.check(v)
		if msg == "" {
			patch.Description = &s
		}
		errs.add(msg)
	}

	if v, ok := raw["status"]; ok {
		s, msg := checkEnum(v, model.Status.Valid, statusMsg)
		if msg == "" {
			patch.Status = &s
		}
		errs.add(msg)
	}

	if v, ok := raw["priority"]; ok {
		p, msg := checkEnum(v, model.Priority.Valid, priorityMsg)
		if msg == "" {
			patch.Priority = &p
		}
		errs.add(msg)
	}

	if v, ok := raw["dueDate"]; ok {
		if v == nil {
			patch.ClearDueDate = true
		} else {
			d, msg := checkDueDate(v, now)
			if msg == "" {
				patch.DueDate = &d
			}
			errs.add(msg)
		}
	}

	if v, ok := raw["tags"]; ok {
		tags, msg := checkTags(v)
		if msg == "" {
			patch.Tags = &tags
		}
		errs.add(msg)
	}

	if err := errs.err(); err != nil {
		return model.TaskPatch{}, err
	}
	return patch, nil
}

// NotAnObject is returned when the request body decodes to something other than a JSON object.
func NotAnObject() error {
	return &Error{Messages: []string{"Request body must be an object"}}
}
