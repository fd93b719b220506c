package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jovinkassi/vaultask/internal/dto"
	apierrors "github.com/jovinkassi/vaultask/internal/errors"
	"github.com/jovinkassi/vaultask/internal/models"
	"github.com/jovinkassi/vaultask/internal/services"
)

// TaskHandler coordinates task-collection HTTP handlers. All four operations
// are scoped by the user id in the path.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// taskPayload is the client-supplied part of a task. The description may be
// empty but the field must be present; id and timestamps are server-assigned.
type taskPayload struct {
	Title       string            `json:"title" binding:"required"`
	Description *string           `json:"description" binding:"required"`
	Status      models.TaskStatus `json:"status" binding:"required"`
}

// ListTasks returns the owner's full task collection in insertion order.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks))
}

// AddTask appends a new task to the owner's collection and echoes the
// assigned id in the response.
func (h *TaskHandler) AddTask(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req taskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid task data")
		return
	}

	user, task, err := h.taskService.AddTask(services.AddTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: *req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TaskMutationResponse{
		Success: true,
		Task:    task,
		User:    dto.ToUserDTO(*user),
	})
}

// UpdateTask replaces title, description and status of the addressed task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	taskID := c.Param("task_id")
	if taskID == "" {
		apierrors.BadRequest(c, "Missing required fields")
		return
	}

	var req taskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required fields")
		return
	}

	user, err := h.taskService.UpdateTask(services.UpdateTaskInput{
		UserID:      userID,
		TaskID:      taskID,
		Title:       req.Title,
		Description: *req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskMutationResponse{
		Success: true,
		User:    dto.ToUserDTO(*user),
	})
}

// DeleteTask removes the addressed task. Deleting an id that is not in the
// collection is still a success.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	taskID := c.Param("task_id")
	if taskID == "" {
		apierrors.BadRequest(c, "Missing required fields")
		return
	}

	user, err := h.taskService.DeleteTask(userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskMutationResponse{
		Success: true,
		User:    dto.ToUserDTO(*user),
	})
}

func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return userID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
