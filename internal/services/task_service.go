package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jovinkassi/vaultask/internal/constants"
	"github.com/jovinkassi/vaultask/internal/models"
	"github.com/jovinkassi/vaultask/internal/repository"
	"github.com/jovinkassi/vaultask/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrTooManyConflicts = errors.New("task collection kept changing concurrently, giving up")
)

// TaskService operates on a single user's embedded task collection. Every
// mutation is a whole-collection read-modify-write, guarded by the user row's
// version stamp and retried on conflict.
type TaskService struct {
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		userRepo: userRepo,
	}
}

// AddTaskInput represents input for adding a task to a user's collection.
type AddTaskInput struct {
	UserID      uint64
	Title       string
	Description string
	Status      models.TaskStatus
}

// UpdateTaskInput represents the replacement payload for an existing task.
// ID and creation time are immutable and not part of the input.
type UpdateTaskInput struct {
	UserID      uint64
	TaskID      string
	Title       string
	Description string
	Status      models.TaskStatus
}

// ListTasks returns the user's full task collection in insertion order.
func (s *TaskService) ListTasks(userID uint64) (models.TaskList, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	if user.Tasks == nil {
		return models.TaskList{}, nil
	}
	return user.Tasks, nil
}

// AddTask validates the candidate task, assigns it an id and timestamps, and
// appends it to the end of the user's collection. The assigned task is
// returned alongside the updated user.
func (s *TaskService) AddTask(input AddTaskInput) (*models.User, *models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, nil, ErrTitleRequired
	}
	if !input.Status.Valid() {
		return nil, nil, ErrInvalidStatus
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          utils.NewTaskID(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	user, err := s.replaceTasks(input.UserID, func(tasks models.TaskList) (models.TaskList, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return user, &task, nil
}

// UpdateTask replaces title, description and status of the task with the
// given id, refreshing its update time. ID and creation time are preserved.
// An unknown task id is an error.
func (s *TaskService) UpdateTask(input UpdateTaskInput) (*models.User, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	return s.replaceTasks(input.UserID, func(tasks models.TaskList) (models.TaskList, error) {
		for i := range tasks {
			if tasks[i].ID == input.TaskID {
				tasks[i].Title = input.Title
				tasks[i].Description = input.Description
				tasks[i].Status = input.Status
				tasks[i].UpdatedAt = time.Now().UTC()
				return tasks, nil
			}
		}
		return nil, ErrTaskNotFound
	})
}

// DeleteTask removes the task with the given id from the user's collection.
// Deleting an id that is not present is a success and leaves the collection
// unchanged.
func (s *TaskService) DeleteTask(userID uint64, taskID string) (*models.User, error) {
	return s.replaceTasks(userID, func(tasks models.TaskList) (models.TaskList, error) {
		kept := make(models.TaskList, 0, len(tasks))
		for _, task := range tasks {
			if task.ID != taskID {
				kept = append(kept, task)
			}
		}
		return kept, nil
	})
}

// replaceTasks runs the read-modify-write cycle as a compare-and-swap loop:
// fetch the collection and version stamp, apply the mutation to a copy, and
// persist conditionally. A version conflict means another request won the
// race; refetch and retry up to the attempt bound.
func (s *TaskService) replaceTasks(userID uint64, mutate func(models.TaskList) (models.TaskList, error)) (*models.User, error) {
	for attempt := 0; attempt < constants.MaxReplaceAttempts; attempt++ {
		user, err := s.findUser(userID)
		if err != nil {
			return nil, err
		}

		next, err := mutate(append(models.TaskList{}, user.Tasks...))
		if err != nil {
			return nil, err
		}

		err = s.userRepo.ReplaceTasks(user.ID, user.Version, next)
		if err == nil {
			user.Tasks = next
			user.Version++
			return user, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("failed to persist task collection: %w", err)
		}
	}
	return nil, ErrTooManyConflicts
}

func (s *TaskService) findUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
