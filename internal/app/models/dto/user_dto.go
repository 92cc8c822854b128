package dto

import (
	"time"

	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/domain"
)

// FallbackAvatarURL is served when a user has no profile image
const FallbackAvatarURL = "/_static/avatars/shadcn.jpeg"

// UserAvatar carries what a client needs to draw a user's avatar
type UserAvatar struct {
	URL        string `json:"url" example:"/_static/avatars/shadcn.jpeg"`
	IsFallback bool   `json:"isFallback" example:"true"`
	Alt        string `json:"alt" example:"Ada Lovelace"`
	ProfileURL string `json:"profileUrl" example:"/ada"`
}

// NewUserAvatar builds the avatar for u. Alt text falls back to the username.
func NewUserAvatar(u domain.User) UserAvatar {
	avatar := UserAvatar{
		URL:        u.Image,
		Alt:        u.Name,
		ProfileURL: "/" + u.Username,
	}
	if avatar.URL == "" {
		avatar.URL = FallbackAvatarURL
		avatar.IsFallback = true
	}
	if avatar.Alt == "" {
		avatar.Alt = u.Username
	}
	return avatar
}

// UserSummary is the public card of a user
type UserSummary struct {
	ID              string     `json:"id" example:"3f1c2a9e-6a43-4a55-9a51-0f3b0b6b2d11"`
	Name            string     `json:"name" example:"Ada Lovelace"`
	Username        string     `json:"username" example:"ada"`
	DisplayUsername string     `json:"displayUsername" example:"Ada"`
	Avatar          UserAvatar `json:"avatar"`
}

// NewUserSummary maps a domain user to its public card
func NewUserSummary(u domain.User) UserSummary {
	return UserSummary{
		ID:              u.ID,
		Name:            u.Name,
		Username:        u.Username,
		DisplayUsername: u.DisplayUsername,
		Avatar:          NewUserAvatar(u),
	}
}

// NewUserSummaries maps a list of users, never returning nil
func NewUserSummaries(users []domain.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserSummary(u))
	}
	return out
}

// UserResponse is the private profile returned to the account owner and admins
type UserResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email" example:"ada@campus.edu"`
	Name            string     `json:"name"`
	Username        string     `json:"username"`
	DisplayUsername string     `json:"displayUsername"`
	RoleType        string     `json:"roleType" example:"STUDENT" enums:"STUDENT,INSTRUCTOR,ADMIN"`
	AccountStatus   string     `json:"accountStatus" example:"APPROVED" enums:"PENDING,APPROVED,REJECTED"`
	Avatar          UserAvatar `json:"avatar"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
}

// NewUserResponse maps a user model to its private profile
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Username:        u.Username,
		DisplayUsername: u.DisplayUsername,
		RoleType:        string(u.RoleType),
		AccountStatus:   string(u.AccountStatus),
		Avatar:          NewUserAvatar(u.ToDomain()),
		CreatedAt:       u.CreatedAt,
		LastLoginAt:     u.LastLoginAt,
	}
}

// AccountListResponse lists accounts for admin review
type AccountListResponse struct {
	Accounts []UserResponse `json:"accounts"`
	PaginationInfo
}

// ReviewAccountRequest approves or rejects a registration
type ReviewAccountRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED" example:"APPROVED"`
}
