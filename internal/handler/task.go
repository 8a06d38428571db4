package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-crud-api/internal/apperr"
	"github.com/BuzzLyutic/task-crud-api/internal/model"
	"github.com/BuzzLyutic/task-crud-api/internal/query"
	"github.com/BuzzLyutic/task-crud-api/internal/service"
	"github.com/BuzzLyutic/task-crud-api/internal/validation"
	"github.com/BuzzLyutic/task-crud-api/pkg/respond"
)

type TaskHandler struct {
	service  *service.TaskService
	logger   *zap.Logger
	maxLimit int
	debug    bool
}

type Options struct {
	MaxLimit int  // верхняя граница для limit, 0 - без ограничения
	Debug    bool // stack trace в ответах об ошибках
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger, opts Options) *TaskHandler {
	return &TaskHandler{
		service:  srv,
		logger:   logger,
		maxLimit: opts.MaxLimit,
		debug:    opts.Debug,
	}
}

type listResponse struct {
	Success     bool         `json:"success"`
	Count       int          `json:"count"`
	Total       int          `json:"total"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
	Data        []model.Task `json:"data"`
}

type dataResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := query.Build(r.URL.Query(), h.maxLimit)

	page, err := h.service.List(r.Context(), q)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, listResponse{
		Success:     true,
		Count:       len(page.Tasks),
		Total:       page.Total,
		CurrentPage: page.Page,
		TotalPages:  page.TotalPages(),
		Data:        page.Tasks,
	})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, dataResponse{Success: true, Data: task})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := decodeObject(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%s", task.ID))
	respond.JSON(w, r, http.StatusCreated, dataResponse{
		Success: true,
		Message: "Task created successfully",
		Data:    task,
	})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	input, err := decodeObject(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, dataResponse{
		Success: true,
		Message: "Task updated successfully",
		Data:    task,
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, dataResponse{
		Success: true,
		Message: "Task deleted successfully",
		Data:    struct{}{},
	})
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, dataResponse{Success: true, Data: stats})
}

// decodeObject reads the body as a single JSON object. An empty body counts as {}.
func decodeObject(r *http.Request) (map[string]interface{}, error) {
	dec := json.NewDecoder(r.Body)

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]interface{}{}, nil
		}
		return nil, decodeError(err)
	}

	// после объекта допускаются только пробелы
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, decodeError(err)
	}

	input, ok := raw.(map[string]interface{})
	if !ok {
		return nil, validation.NotAnObject()
	}
	return input, nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.New(http.StatusRequestEntityTooLarge, "Request entity too large")
	}
	return apperr.BadRequest(fmt.Sprintf("Invalid JSON: %v", err))
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	code, env := apperr.Normalize(err, h.debug)
	if code >= http.StatusInternalServerError {
		h.logger.Error("internal error",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
		)
	}
	respond.JSON(w, r, code, env)
}
