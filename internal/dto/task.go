package dto

import (
	"github.com/jovinkassi/vaultask/internal/models"
)

// TaskListResponse wraps a user's full task collection.
type TaskListResponse struct {
	Success bool            `json:"success"`
	Tasks   models.TaskList `json:"tasks"`
}

// TaskMutationResponse is returned by add/update/delete. Task is set only on
// add, where it carries the server-assigned id.
type TaskMutationResponse struct {
	Success bool         `json:"success"`
	Task    *models.Task `json:"task,omitempty"`
	User    UserDTO      `json:"user"`
}

// ToTaskListResponse converts a task collection to its response envelope.
func ToTaskListResponse(tasks models.TaskList) TaskListResponse {
	if tasks == nil {
		tasks = models.TaskList{}
	}
	return TaskListResponse{
		Success: true,
		Tasks:   tasks,
	}
}
