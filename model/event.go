package model

import "time"

// UserEvent is published after a user write has been committed.
type UserEvent struct {
	Type       string    `json:"type" validate:"required,oneof=user.created user.updated user.deleted"`
	UserID     string    `json:"user_id" validate:"required"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
