package auth

import (
	"github.com/maplorix/jobboard-service/internal/domain"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

// Permission names a fine-grained action a role may perform.
type Permission string

const (
	PermJobCreate         Permission = "job.create"
	PermJobRead           Permission = "job.read"
	PermJobUpdate         Permission = "job.update"
	PermJobDelete         Permission = "job.delete"
	PermApplicationRead   Permission = "application.read"
	PermApplicationUpdate Permission = "application.update"
	PermApplicationDelete Permission = "application.delete"
	PermContactRead       Permission = "contact.read"
	PermContactUpdate     Permission = "contact.update"
	PermContactDelete     Permission = "contact.delete"
	PermUserCreate        Permission = "user.create"
	PermUserRead          Permission = "user.read"
	PermUserUpdate        Permission = "user.update"
	PermUserDelete        Permission = "user.delete"
	PermAnalyticsView     Permission = "analytics.view"
)

// rolePermissions is the single authority for permission resolution. Nothing
// is stored per user; the table is keyed purely by role.
var rolePermissions = map[domain.Role][]Permission{
	domain.RoleAdmin: {
		PermJobCreate, PermJobRead, PermJobUpdate, PermJobDelete,
		PermApplicationRead, PermApplicationUpdate, PermApplicationDelete,
		PermContactRead, PermContactUpdate, PermContactDelete,
		PermUserCreate, PermUserRead, PermUserUpdate, PermUserDelete,
		PermAnalyticsView,
	},
	domain.RoleHR: {
		PermJobCreate, PermJobRead, PermJobUpdate,
		PermApplicationRead, PermApplicationUpdate,
		PermContactRead, PermContactUpdate,
		PermAnalyticsView,
	},
	domain.RoleRecruiter: {
		PermJobCreate, PermJobRead, PermJobUpdate,
		PermApplicationRead, PermApplicationUpdate,
		PermContactRead,
	},
	domain.RoleManager: {
		PermJobRead, PermJobUpdate,
		PermApplicationRead, PermApplicationUpdate,
		PermContactRead,
		PermAnalyticsView,
	},
}

// PermissionsForRole returns the permission list derived from a role.
func PermissionsForRole(role domain.Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether the role grants the permission.
func HasPermission(role domain.Role, perm Permission) bool {
	for _, candidate := range rolePermissions[role] {
		if candidate == perm {
			return true
		}
	}
	return false
}

// Authorize rejects with a Forbidden error when the user's role does not
// grant the permission. Services call this instead of re-implementing role
// checks per handler.
func Authorize(user *domain.User, perm Permission) error {
	if user == nil {
		return apperrors.NewAuthError("authentication required")
	}
	if !HasPermission(user.Role, perm) {
		return apperrors.NewForbidden("insufficient permissions for " + string(perm))
	}
	return nil
}

// CanModifyJob allows the posting owner, or anyone holding both job.update
// and job.delete (effectively admin), to mutate a job.
func CanModifyJob(user *domain.User, job *domain.Job) bool {
	if user == nil || job == nil {
		return false
	}
	if job.PostedBy == user.ID {
		return true
	}
	return HasPermission(user.Role, PermJobUpdate) && HasPermission(user.Role, PermJobDelete)
}
