package usecase

import (
	"context"

	"minwon-backend/internal/admin/domain"
	authdomain "minwon-backend/internal/auth/domain"
)

// ClaimsService attaches authorization claims to a user's session
// credential, fully replacing the prior claims. Satisfied by *auth.Client.
type ClaimsService interface {
	SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error
}

// AdminUsecase exposes the privileged role transitions and the admin
// application flow.
type AdminUsecase interface {
	// BootstrapSuperAdmin promotes the caller to the one superAdmin. Fails
	// with a precondition error when a superAdmin already exists.
	BootstrapSuperAdmin(ctx context.Context, caller authdomain.Identity) error
	// ApproveAdmin sets the target's role to admin. SuperAdmin only.
	ApproveAdmin(ctx context.Context, caller authdomain.Identity, targetUID string) error
	// RejectAdmin moves the target's role back to pending and clears
	// approvedBy. SuperAdmin only.
	RejectAdmin(ctx context.Context, caller authdomain.Identity, targetUID string) error
	// Apply creates the caller's pending admin record on first sign-in.
	// Calling again while a record exists is a no-op.
	Apply(ctx context.Context, caller authdomain.Identity) error
	// ListAdmins returns all admin records. SuperAdmin only.
	ListAdmins(ctx context.Context, caller authdomain.Identity) ([]domain.AdminRecord, error)
}
