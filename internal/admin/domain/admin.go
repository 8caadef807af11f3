package domain

import "time"

// Role is the canonical administrator role stored on an admin record.
type Role string

const (
	RolePending    Role = "pending"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// ParseRole maps a raw stored value to a Role. Unknown or legacy values fall
// back to Pending, preserving the permissive behavior of the stored data.
func ParseRole(raw string) Role {
	switch raw {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleSuperAdmin):
		return RoleSuperAdmin
	default:
		return RolePending
	}
}

// Elevated reports whether the role grants access to the admin console.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Claims projects the role into the authorization claims attached to the
// user's session credential. The mapping is total: anything below Admin
// yields empty claims, revoking elevated access.
func (r Role) Claims() map[string]interface{} {
	if !r.Elevated() {
		return map[string]interface{}{}
	}
	return map[string]interface{}{"role": string(r)}
}

// AdminRecord is the admins/{uid} document. Records are never hard-deleted;
// rejection moves the role back to Pending.
type AdminRecord struct {
	UID         string    `firestore:"uid"`
	Email       string    `firestore:"email"`
	DisplayName string    `firestore:"name"`
	Role        Role      `firestore:"role"`
	ApprovedBy  string    `firestore:"approvedBy,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}
