package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@campus.edu"`
	Password string `json:"password" binding:"required" example:"password1"`
}

// RegisterRequest represents a new account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@campus.edu"`
	Password string `json:"password" binding:"required,min=8" example:"password1"`
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Ada Lovelace"`
	Username string `json:"username" binding:"required" example:"ada"`
	RoleType string `json:"roleType" binding:"required,oneof=STUDENT INSTRUCTOR" example:"STUDENT"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn" example:"3600"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty" example:"2592000"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserResponse `json:"user"`
}

// RegisterResponse is returned after sign-up; the account still needs review
type RegisterResponse struct {
	User    *UserResponse `json:"user"`
	Message string        `json:"message" example:"Registration received. Your account is waiting for approval."`
}
