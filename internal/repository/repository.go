package repository

import (
	"github.com/jovinkassi/vaultask/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email address
	FindByEmail(email string) (*models.User, error)

	// FindByWalletAddress finds a user by wallet address
	FindByWalletAddress(address string) (*models.User, error)

	// ReplaceTasks overwrites a user's task collection, but only if the
	// user row still carries the given version stamp. On success the
	// stored version is incremented; if the stamp no longer matches,
	// ErrVersionConflict is returned and nothing is written.
	ReplaceTasks(userID uint64, version uint64, tasks models.TaskList) error
}
