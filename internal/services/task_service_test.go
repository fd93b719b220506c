package services

import (
	"testing"

	"github.com/jovinkassi/vaultask/internal/models"
	"github.com/jovinkassi/vaultask/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTaskService(t *testing.T) (*TaskService, repository.UserRepository, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)

	email := "owner@example.com"
	user := &models.User{Email: &email}
	require.NoError(t, userRepo.Create(user))

	return NewTaskService(userRepo), userRepo, user
}

// conflictOnceRepo simulates a concurrent writer: the first ReplaceTasks call
// sneaks another task into the collection before delegating, so the caller's
// version stamp is stale exactly once.
type conflictOnceRepo struct {
	repository.UserRepository
	interleaved models.Task
	triggered   bool
}

func (r *conflictOnceRepo) ReplaceTasks(userID uint64, version uint64, tasks models.TaskList) error {
	if !r.triggered {
		r.triggered = true
		user, err := r.UserRepository.FindByID(userID)
		if err != nil {
			return err
		}
		if err := r.UserRepository.ReplaceTasks(userID, user.Version, append(user.Tasks, r.interleaved)); err != nil {
			return err
		}
	}
	return r.UserRepository.ReplaceTasks(userID, version, tasks)
}

// alwaysConflictRepo never lets a conditional write through.
type alwaysConflictRepo struct {
	repository.UserRepository
}

func (r *alwaysConflictRepo) ReplaceTasks(uint64, uint64, models.TaskList) error {
	return repository.ErrVersionConflict
}

func TestTaskService_AddRetriesOnVersionConflict(t *testing.T) {
	_, userRepo, user := setupTaskService(t)

	interleaved := models.Task{ID: "interleaved", Title: "raced in first", Status: models.TaskStatusPending}
	service := NewTaskService(&conflictOnceRepo{UserRepository: userRepo, interleaved: interleaved})

	updated, task, err := service.AddTask(AddTaskInput{
		UserID: user.ID,
		Title:  "added second",
		Status: models.TaskStatusPending,
	})
	require.NoError(t, err)

	// Both the interleaved write and the retried add survive.
	require.Len(t, updated.Tasks, 2)
	require.Equal(t, "interleaved", updated.Tasks[0].ID)
	require.Equal(t, task.ID, updated.Tasks[1].ID)

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Tasks, 2)
}

func TestTaskService_GivesUpAfterRepeatedConflicts(t *testing.T) {
	_, userRepo, user := setupTaskService(t)

	service := NewTaskService(&alwaysConflictRepo{UserRepository: userRepo})

	_, _, err := service.AddTask(AddTaskInput{
		UserID: user.ID,
		Title:  "doomed",
		Status: models.TaskStatusPending,
	})
	require.ErrorIs(t, err, ErrTooManyConflicts)
}

func TestTaskService_AddValidation(t *testing.T) {
	service, _, user := setupTaskService(t)

	_, _, err := service.AddTask(AddTaskInput{UserID: user.ID, Title: "   ", Status: models.TaskStatusPending})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, _, err = service.AddTask(AddTaskInput{UserID: user.ID, Title: "ok", Status: "archived"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	tasks, err := service.ListTasks(user.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestTaskService_UpdateUnknownTask(t *testing.T) {
	service, _, user := setupTaskService(t)

	_, err := service.UpdateTask(UpdateTaskInput{
		UserID: user.ID,
		TaskID: "missing",
		Title:  "whatever",
		Status: models.TaskStatusPending,
	})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_UnknownUser(t *testing.T) {
	service, _, _ := setupTaskService(t)

	_, err := service.ListTasks(9999)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = service.DeleteTask(9999, "id")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestTaskService_DeleteKeepsOtherTasks(t *testing.T) {
	service, _, user := setupTaskService(t)

	_, first, err := service.AddTask(AddTaskInput{UserID: user.ID, Title: "first", Status: models.TaskStatusPending})
	require.NoError(t, err)
	_, second, err := service.AddTask(AddTaskInput{UserID: user.ID, Title: "second", Status: models.TaskStatusCompleted})
	require.NoError(t, err)

	updated, err := service.DeleteTask(user.ID, first.ID)
	require.NoError(t, err)
	require.Len(t, updated.Tasks, 1)
	require.Equal(t, second.ID, updated.Tasks[0].ID)
}
