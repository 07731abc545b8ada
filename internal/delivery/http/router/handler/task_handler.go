package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"tasknest/internal/delivery/http/middleware"
	"tasknest/internal/delivery/http/response"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TaskHandler holds dependencies for task handlers. All routes here sit
// behind the auth middleware and read the account ID from the context.
type TaskHandler struct {
	uc     usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler, injected by Fx.
func NewTaskHandler(uc usecase.TaskUsecase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the task creation request.
func (h *TaskHandler) Create(c echo.Context) error {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateTaskInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Create(c.Request().Context(), ownerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Task created successfully")
}

// List handles the paginated task listing request.
func (h *TaskHandler) List(c echo.Context) error {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	page := queryInt(c, "page")
	limit := queryInt(c, "limit")

	output, err := h.uc.List(c.Request().Context(), ownerID, page, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Tasks retrieved successfully")
}

// Update handles the partial task update request.
func (h *TaskHandler) Update(c echo.Context) error {
	if _, ok := ownerFromContext(c); !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.UpdateTaskInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task update input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Task updated successfully")
}

// Delete handles the task deletion request.
func (h *TaskHandler) Delete(c echo.Context) error {
	if _, ok := ownerFromContext(c); !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Task deleted"}, "Task deleted successfully")
}

func ownerFromContext(c echo.Context) (uuid.UUID, bool) {
	ownerID, ok := c.Get(middleware.ContextUserIDKey).(uuid.UUID)
	return ownerID, ok
}

// queryInt returns 0 for absent or malformed values; the usecase applies
// its own defaults.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}
