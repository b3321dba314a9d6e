package dto

import (
	"time"

	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/domain"
)

// RegisterRequest is the public registration payload. The captcha token is
// accepted for forward compatibility; it is only verified in production.
type RegisterRequest struct {
	FirstName    string `json:"firstName" validate:"required,min=1,max=100"`
	LastName     string `json:"lastName" validate:"required,min=1,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=128"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	Message      string `json:"message" validate:"omitempty,max=2000"`
	CaptchaToken string `json:"captchaToken" validate:"omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries an opaque refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateProfileRequest is a partial profile edit.
type UpdateProfileRequest struct {
	FirstName  *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	Department *string `json:"department" validate:"omitempty,max=100"`
}

// ChangePasswordRequest verifies the old password before setting a new one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

// UserResponse is the public representation of an account. The password hash
// never leaves the service.
type UserResponse struct {
	ID          string      `json:"id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	FullName    string      `json:"fullName"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	Department  string      `json:"department"`
	Phone       string      `json:"phone,omitempty"`
	IsActive    bool        `json:"isActive"`
	Permissions []string    `json:"permissions"`
	LastLogin   *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TokenResponse bundles the issued tokens.
type TokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

// NewUserResponse maps a user with role-derived permissions.
func NewUserResponse(user *domain.User) UserResponse {
	perms := auth.PermissionsForRole(user.Role)
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = string(p)
	}
	return UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Email:       user.Email,
		Role:        user.Role,
		Department:  user.Department,
		Phone:       user.Phone,
		IsActive:    user.IsActive,
		Permissions: names,
		LastLogin:   user.LastLogin,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
