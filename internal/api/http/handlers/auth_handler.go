package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maplorix/jobboard-service/internal/api/dto"
	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/service"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

// AuthHandler manages registration, login and profile endpoints.
type AuthHandler struct {
	service *service.AuthService
	env     string
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, env string) *AuthHandler {
	return &AuthHandler{service: authService, env: env}
}

// Register POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	// Captcha tokens are only checked in production deployments.
	if h.env == "production" && req.CaptchaToken == "" {
		return apperrors.NewValidationError("captcha verification required", nil)
	}

	user, tokens, err := h.service.Register(c.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Message:   req.Message,
	})
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusCreated, "registration successful", dto.AuthResponse{
		User:   dto.NewUserResponse(user),
		Tokens: tokenResponse(tokens),
	})
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, tokens, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, dto.AuthResponse{
		User:   dto.NewUserResponse(user),
		Tokens: tokenResponse(tokens),
	})
}

// Refresh POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	tokens, err := h.service.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, tokenResponse(tokens))
}

// Me GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	return respondData(c, fiber.StatusOK, dto.NewUserResponse(user))
}

// UpdateProfile PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	updated, err := h.service.UpdateProfile(c.Context(), user, service.ProfileUpdateInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Department: req.Department,
	})
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "profile updated", dto.NewUserResponse(updated))
}

// ChangePassword POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "password changed", nil)
}

func tokenResponse(tokens *service.AuthTokens) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}
}
