package repository

import (
	"errors"

	"github.com/jovinkassi/vaultask/internal/models"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a conditional task-collection write
// loses the race against a concurrent write on the same user.
var ErrVersionConflict = errors.New("user repository: task collection was modified concurrently")

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email address
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByWalletAddress finds a user by wallet address
func (r *GormUserRepository) FindByWalletAddress(address string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("wallet_address = ?", address).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ReplaceTasks performs the version-guarded whole-collection write.
func (r *GormUserRepository) ReplaceTasks(userID uint64, version uint64, tasks models.TaskList) error {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND version = ?", userID, version).
		Select("tasks", "version").
		Updates(&models.User{Tasks: tasks, Version: version + 1})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}
