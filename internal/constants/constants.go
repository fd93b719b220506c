package constants

import "time"

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"

	// TokenValidity is the lifetime of issued identity tokens.
	TokenValidity = 7 * 24 * time.Hour

	// BcryptCost is the fixed cost factor for password hashing.
	BcryptCost = 10

	// MaxReplaceAttempts bounds the compare-and-swap retries when persisting
	// a user's task collection.
	MaxReplaceAttempts = 3
)
