package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/config"
	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/repository"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

// AuthService coordinates registration, login and token flows.
type AuthService struct {
	users      repository.UserRepository
	contacts   repository.ContactRepository
	refresh    repository.RefreshTokenStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
	refreshTTL time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	ContactRepo  repository.ContactRepository
	RefreshStore repository.RefreshTokenStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		contacts:   deps.ContactRepo,
		refresh:    deps.RefreshStore,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		refreshTTL: time.Duration(cfg.Auth.RefreshTokenTTLMinutes) * time.Minute,
	}
}

// RegisterInput describes registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	Message   string
}

// AuthTokens bundles an access JWT with its opaque refresh token.
type AuthTokens struct {
	AccessToken  string
	ExpiresAt    time.Time
	RefreshToken string
}

// Register creates a new account plus an inbox contact entry, and logs the
// user straight in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *AuthTokens, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewDuplicate("user with this email already exists")
	} else if err != pgx.ErrNoRows {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleRecruiter,
		Department:   "HR",
		Phone:        strings.TrimSpace(input.Phone),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	// Registrations also land in the contacts inbox so the team sees them.
	message := strings.TrimSpace(input.Message)
	if message == "" {
		message = "New user registration"
	}
	contact := &domain.Contact{
		Name:     user.FullName(),
		Email:    user.Email,
		Phone:    user.Phone,
		Subject:  "User Registration",
		Message:  message,
		Status:   domain.ContactPending,
		Priority: domain.ContactPriorityMedium,
		Category: domain.ContactGeneral,
	}
	_ = s.contacts.Create(ctx, contact)

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Login authenticates an account and stamps lastLogin.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *AuthTokens, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewAuthError("invalid email or password")
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.NewAuthError("your account has been deactivated")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewAuthError("invalid email or password")
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, nil, err
	}
	user.LastLogin = &now

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh rotates a refresh token and issues a fresh access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	userID, err := s.refresh.Resolve(ctx, refreshToken)
	if err != nil {
		if err == repository.ErrRefreshTokenNotFound {
			return nil, apperrors.NewAuthError("invalid or expired token")
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewAuthError("invalid token or user not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewAuthError("your account has been deactivated")
	}

	if err := s.refresh.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// ProfileUpdateInput describes editable profile fields.
type ProfileUpdateInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Department *string
}

// UpdateProfile applies a partial update to the acting user.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, input ProfileUpdateInput) (*domain.User, error) {
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, currentPassword, newPassword string) error {
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewValidationError("current password is incorrect", nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*AuthTokens, error) {
	access, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh := uuid.NewString()
	if err := s.refresh.Save(ctx, refresh, user.ID, s.refreshTTL); err != nil {
		return nil, err
	}
	return &AuthTokens{AccessToken: access, ExpiresAt: exp, RefreshToken: refresh}, nil
}
