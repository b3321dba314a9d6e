package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplorix/jobboard-service/internal/domain"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		name    string
		role    domain.Role
		perm    Permission
		granted bool
	}{
		{"admin can delete users", domain.RoleAdmin, PermUserDelete, true},
		{"admin can delete jobs", domain.RoleAdmin, PermJobDelete, true},
		{"hr can create jobs", domain.RoleHR, PermJobCreate, true},
		{"hr can view analytics", domain.RoleHR, PermAnalyticsView, true},
		{"hr cannot delete jobs", domain.RoleHR, PermJobDelete, false},
		{"hr cannot delete users", domain.RoleHR, PermUserDelete, false},
		{"recruiter can create jobs", domain.RoleRecruiter, PermJobCreate, true},
		{"recruiter can read applications", domain.RoleRecruiter, PermApplicationRead, true},
		{"recruiter cannot view analytics", domain.RoleRecruiter, PermAnalyticsView, false},
		{"recruiter cannot update contacts", domain.RoleRecruiter, PermContactUpdate, false},
		{"manager cannot create jobs", domain.RoleManager, PermJobCreate, false},
		{"manager can update jobs", domain.RoleManager, PermJobUpdate, true},
		{"manager can view analytics", domain.RoleManager, PermAnalyticsView, true},
		{"unknown role has nothing", domain.Role("guest"), PermJobRead, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.granted, HasPermission(tc.role, tc.perm))
		})
	}
}

func TestPermissionsForRole_AdminHasFullSet(t *testing.T) {
	perms := PermissionsForRole(domain.RoleAdmin)
	assert.Len(t, perms, 15)
}

func TestPermissionsForRole_ReturnsCopy(t *testing.T) {
	perms := PermissionsForRole(domain.RoleManager)
	require.NotEmpty(t, perms)
	perms[0] = Permission("tampered")
	assert.NotContains(t, PermissionsForRole(domain.RoleManager), Permission("tampered"))
}

func TestAuthorize(t *testing.T) {
	t.Run("nil user is unauthenticated", func(t *testing.T) {
		err := Authorize(nil, PermJobRead)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuth, apperrors.ToDomainError(err).Kind)
	})

	t.Run("missing permission is forbidden", func(t *testing.T) {
		user := &domain.User{ID: "u1", Role: domain.RoleRecruiter}
		err := Authorize(user, PermUserDelete)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.ToDomainError(err).Kind)
	})

	t.Run("granted permission passes", func(t *testing.T) {
		user := &domain.User{ID: "u1", Role: domain.RoleRecruiter}
		assert.NoError(t, Authorize(user, PermJobCreate))
	})
}

func TestCanModifyJob(t *testing.T) {
	owner := &domain.User{ID: "owner", Role: domain.RoleRecruiter}
	other := &domain.User{ID: "other", Role: domain.RoleRecruiter}
	admin := &domain.User{ID: "admin", Role: domain.RoleAdmin}
	job := &domain.Job{ID: "j1", PostedBy: "owner"}

	assert.True(t, CanModifyJob(owner, job))
	assert.False(t, CanModifyJob(other, job))
	assert.True(t, CanModifyJob(admin, job))
	assert.False(t, CanModifyJob(nil, job))
	assert.False(t, CanModifyJob(owner, nil))
}
