package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	LeetCodeUsername string    `json:"leetcode_username,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
