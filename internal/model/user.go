package model

import (
	"time"

	"github.com/google/uuid"
)

// Role constants for User.Role
var (
	// RoleUser is the default role for registered job seekers
	RoleUser = "user"
	// RoleAdmin is reserved for operator accounts created by cmd tooling
	RoleAdmin = "admin"
)

// EditableUserInfo is the part of a user account that can be edited after registration
type EditableUserInfo struct {
	Email *string `json:"email"`
	Tel   *string `json:"tel"`
}

// User is gorm model for an authenticated account. Every tracked entity
// (jobs, profile, reports) is owned by exactly one user.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Username string    `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Password string    `gorm:"type:text" json:"-"`
	Role     string    `gorm:"type:text;default:'user'" json:"role"`
	EditableUserInfo
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// UserResponse is the login/register response carrying the access token
type UserResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
