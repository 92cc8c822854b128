package models

import (
	"time"

	"github.com/yigit/atcampus/internal/domain"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              string        `json:"id" db:"id" example:"3f1c2a9e-6a43-4a55-9a51-0f3b0b6b2d11"` // Unique identifier for the user
	Email           string        `json:"email" db:"email" example:"ada@campus.edu"`                 // User's email address
	Password        string        `json:"-" db:"password"`                                           // User's hashed password (excluded from JSON)
	Name            string        `json:"name" db:"name" example:"Ada Lovelace"`                     // Full name shown on profiles
	Username        string        `json:"username" db:"username" example:"ada"`                      // Unique handle used in profile URLs
	DisplayUsername string        `json:"displayUsername" db:"display_username" example:"Ada"`       // Handle as the user typed it
	Image           *string       `json:"image,omitempty" db:"image"`                                // Avatar URL (nullable)
	RoleType        RoleType      `json:"roleType" db:"role_type" example:"STUDENT"`                 // STUDENT, INSTRUCTOR or ADMIN
	AccountStatus   AccountStatus `json:"accountStatus" db:"account_status" example:"APPROVED"`      // Registration review state
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
	LastLoginAt     *time.Time    `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// ToDomain projects the user onto the identity used by the collaboration rules
func (u *User) ToDomain() domain.User {
	du := domain.User{
		ID:              u.ID,
		Name:            u.Name,
		Username:        u.Username,
		DisplayUsername: u.DisplayUsername,
	}
	if u.Image != nil {
		du.Image = *u.Image
	}
	return du
}
