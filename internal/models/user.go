package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the single persisted entity. A user is resolvable by email
// (password login) or by wallet address (signature login); either field may
// be absent, but each is unique when present. The task collection lives as a
// JSON column on this row, and Version is the optimistic-concurrency stamp
// guarding whole-collection writes.
type User struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Email         *string        `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	PasswordHash  string         `gorm:"type:varchar(255)" json:"-"`
	WalletAddress *string        `gorm:"type:varchar(64);uniqueIndex" json:"wallet_address,omitempty"`
	Version       uint64         `gorm:"not null;default:0" json:"-"`
	Tasks         TaskList       `gorm:"serializer:json" json:"tasks"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
