package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/BuzzLyutic/task-crud-api/internal/apperr"
	"github.com/BuzzLyutic/task-crud-api/pkg/respond"
)

const Version = "1.0.0"

// SystemHandler serves the liveness probe, the API index and unmatched routes.
type SystemHandler struct {
	env   string
	debug bool
	now   func() time.Time
}

func NewSystemHandler(env string, debug bool) *SystemHandler {
	return &SystemHandler{env: env, debug: debug, now: time.Now}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Task Management API is running",
		"timestamp":   h.now().UTC().Format(time.RFC3339Nano),
		"environment": h.env,
	})
}

func (h *SystemHandler) Info(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Task Management API",
		"version": Version,
		"endpoints": map[string]interface{}{
			"tasks": map[string]string{
				"GET /api/tasks":        "Get all tasks with optional filtering and pagination",
				"GET /api/tasks/stats":  "Get task statistics",
				"GET /api/tasks/:id":    "Get a single task by ID",
				"POST /api/tasks":       "Create a new task",
				"PUT /api/tasks/:id":    "Update an existing task",
				"DELETE /api/tasks/:id": "Delete a task",
			},
		},
		"documentation": "See README.md for detailed API documentation",
	})
}

// NotFound answers any route the router does not know, whatever the method.
func (h *SystemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	err := apperr.NotFound(fmt.Sprintf("Route %s not found", r.URL.RequestURI()))
	code, env := apperr.Normalize(err, h.debug)
	respond.JSON(w, r, code, env)
}
