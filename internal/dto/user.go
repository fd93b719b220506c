package dto

import (
	"github.com/jovinkassi/vaultask/internal/models"
)

// UserDTO represents a user in API responses. The password hash never leaves
// the server; the task collection always serializes as an array.
type UserDTO struct {
	ID            uint64          `json:"id"`
	Email         string          `json:"email,omitempty"`
	WalletAddress string          `json:"wallet_address,omitempty"`
	Tasks         models.TaskList `json:"tasks"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:    user.ID,
		Tasks: user.Tasks,
	}
	if user.Email != nil {
		dto.Email = *user.Email
	}
	if user.WalletAddress != nil {
		dto.WalletAddress = *user.WalletAddress
	}
	if dto.Tasks == nil {
		dto.Tasks = models.TaskList{}
	}
	return dto
}
