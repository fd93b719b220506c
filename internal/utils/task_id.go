package utils

import "github.com/google/uuid"

// NewTaskID returns a collision-free id for a task within a user's
// collection. Ids are assigned server-side; client-supplied ids are ignored.
func NewTaskID() string {
	return uuid.NewString()
}
