package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplorix/jobboard-service/internal/config"
	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/repository"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.LastLogin = &at
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

type fakeContactRepo struct {
	repository.ContactRepository
	created []*domain.Contact
}

func (r *fakeContactRepo) Create(_ context.Context, contact *domain.Contact) error {
	contact.ID = uuid.NewString()
	r.created = append(r.created, contact)
	return nil
}

type fakeRefreshStore struct {
	tokens map[string]string
}

func newFakeRefreshStore() *fakeRefreshStore {
	return &fakeRefreshStore{tokens: map[string]string{}}
}

func (s *fakeRefreshStore) Save(_ context.Context, token, userID string, _ time.Duration) error {
	s.tokens[token] = userID
	return nil
}

func (s *fakeRefreshStore) Resolve(_ context.Context, token string) (string, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return "", repository.ErrRefreshTokenNotFound
	}
	return userID, nil
}

func (s *fakeRefreshStore) Revoke(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeContactRepo, *fakeRefreshStore) {
	users := newFakeUserRepo()
	contacts := &fakeContactRepo{}
	refresh := newFakeRefreshStore()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret",
			AccessTokenTTLMinutes:  60,
			RefreshTokenTTLMinutes: 60,
			BcryptCost:             4,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:     users,
		ContactRepo:  contacts,
		RefreshStore: refresh,
	})
	return svc, users, contacts, refresh
}

func registerInput() RegisterInput {
	return RegisterInput{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "Asha@Example.com",
		Password:  "longenough1",
		Phone:     "+91-9000000000",
	}
}

func TestRegister_CreatesUserAndContact(t *testing.T) {
	svc, _, contacts, _ := newAuthFixture()

	user, tokens, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", user.Email, "email normalized to lowercase")
	assert.Equal(t, domain.RoleRecruiter, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "longenough1", user.PasswordHash)

	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	require.Len(t, contacts.created, 1)
	assert.Equal(t, "User Registration", contacts.created[0].Subject)
	assert.Equal(t, user.Email, contacts.created[0].Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerInput())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDuplicate, apperrors.ToDomainError(err).Kind)
}

func TestLogin(t *testing.T) {
	svc, users, _, _ := newAuthFixture()

	registered, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	t.Run("success stamps last login", func(t *testing.T) {
		user, tokens, err := svc.Login(context.Background(), "asha@example.com", "longenough1")
		require.NoError(t, err)
		assert.NotNil(t, user.LastLogin)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "asha@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuth, apperrors.ToDomainError(err).Kind)
	})

	t.Run("unknown email gets same error kind", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuth, apperrors.ToDomainError(err).Kind)
	})

	t.Run("deactivated account rejected", func(t *testing.T) {
		stored := users.byID[registered.ID]
		stored.IsActive = false
		defer func() { stored.IsActive = true }()

		_, _, err := svc.Login(context.Background(), "asha@example.com", "longenough1")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuth, apperrors.ToDomainError(err).Kind)
	})
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _, _, store := newAuthFixture()

	_, tokens, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, fresh.RefreshToken)

	// the old token is revoked after rotation
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.ToDomainError(err).Kind)

	// the new one still resolves
	_, ok := store.tokens[fresh.RefreshToken]
	assert.True(t, ok)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Refresh(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.ToDomainError(err).Kind)
}

func TestChangePassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), user, "wrong", "newpassword1")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.ToDomainError(err).Kind)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(context.Background(), user, "longenough1", "newpassword1"))

		_, _, err := svc.Login(context.Background(), user.Email, "newpassword1")
		assert.NoError(t, err)
		_, _, err = svc.Login(context.Background(), user.Email, "longenough1")
		assert.Error(t, err)
	})
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	newPhone := "  +91-8111111111 "
	updated, err := svc.UpdateProfile(context.Background(), user, ProfileUpdateInput{Phone: &newPhone})
	require.NoError(t, err)

	assert.Equal(t, "+91-8111111111", updated.Phone)
	assert.Equal(t, "Asha", updated.FirstName)
}
