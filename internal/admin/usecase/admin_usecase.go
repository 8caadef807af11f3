package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"minwon-backend/internal/admin/domain"
	"minwon-backend/internal/admin/repository"
	authdomain "minwon-backend/internal/auth/domain"
	"minwon-backend/pkg/apperr"
	"minwon-backend/pkg/logger"
)

// adminUsecase implements AdminUsecase.
type adminUsecase struct {
	adminRepo repository.AdminRepository
	claims    ClaimsService
	log       logger.Logger
}

// NewAdminUsecase creates a new instance of adminUsecase.
func NewAdminUsecase(adminRepo repository.AdminRepository, claims ClaimsService, log logger.Logger) AdminUsecase {
	return &adminUsecase{
		adminRepo: adminRepo,
		claims:    claims,
		log:       log,
	}
}

func (u *adminUsecase) BootstrapSuperAdmin(ctx context.Context, caller authdomain.Identity) error {
	if !caller.Authenticated() {
		return apperr.Unauthenticated("로그인이 필요합니다.")
	}

	displayName := "superadmin"
	if caller.Email != "" {
		displayName = strings.SplitN(caller.Email, "@", 2)[0]
	}

	err := u.adminRepo.CreateSuperAdmin(ctx, caller.UID, caller.Email, displayName)
	if errors.Is(err, repository.ErrSuperAdminExists) {
		return apperr.FailedPrecondition("이미 슈퍼관리자가 존재합니다.")
	}
	if err != nil {
		return fmt.Errorf("bootstrap superadmin: %w", err)
	}

	if err := u.claims.SetCustomUserClaims(ctx, caller.UID, domain.RoleSuperAdmin.Claims()); err != nil {
		// The record is written; the admin trigger re-derives claims, so a
		// failure here is recoverable. Still surfaced to the caller.
		return apperr.Unavailable("권한 동기화에 실패했습니다.", err)
	}

	u.log.Info("superadmin bootstrapped", map[string]interface{}{"uid": caller.UID})
	return nil
}

func (u *adminUsecase) ApproveAdmin(ctx context.Context, caller authdomain.Identity, targetUID string) error {
	if err := u.requireSuperAdmin(caller); err != nil {
		return err
	}
	if targetUID == "" {
		return apperr.InvalidArgument("targetUid가 필요합니다.")
	}

	if err := u.adminRepo.SetRole(ctx, targetUID, domain.RoleAdmin, caller.UID); err != nil {
		return fmt.Errorf("approve admin: %w", err)
	}
	if err := u.claims.SetCustomUserClaims(ctx, targetUID, domain.RoleAdmin.Claims()); err != nil {
		return apperr.Unavailable("권한 동기화에 실패했습니다.", err)
	}

	u.log.Info("admin approved", map[string]interface{}{
		"target":     targetUID,
		"approvedBy": caller.UID,
	})
	return nil
}

func (u *adminUsecase) RejectAdmin(ctx context.Context, caller authdomain.Identity, targetUID string) error {
	if err := u.requireSuperAdmin(caller); err != nil {
		return err
	}
	if targetUID == "" {
		return apperr.InvalidArgument("targetUid가 필요합니다.")
	}

	if err := u.adminRepo.SetRole(ctx, targetUID, domain.RolePending, ""); err != nil {
		return fmt.Errorf("reject admin: %w", err)
	}
	if err := u.claims.SetCustomUserClaims(ctx, targetUID, domain.RolePending.Claims()); err != nil {
		return apperr.Unavailable("권한 동기화에 실패했습니다.", err)
	}

	u.log.Info("admin rejected", map[string]interface{}{
		"target":     targetUID,
		"rejectedBy": caller.UID,
	})
	return nil
}

func (u *adminUsecase) Apply(ctx context.Context, caller authdomain.Identity) error {
	if !caller.Authenticated() {
		return apperr.Unauthenticated("로그인이 필요합니다.")
	}

	existing, err := u.adminRepo.Find(ctx, caller.UID)
	if err != nil {
		return fmt.Errorf("apply for admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	displayName := caller.Email
	if at := strings.Index(displayName, "@"); at > 0 {
		displayName = displayName[:at]
	}

	record := domain.AdminRecord{
		UID:         caller.UID,
		Email:       caller.Email,
		DisplayName: displayName,
		Role:        domain.RolePending,
	}
	if err := u.adminRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("apply for admin: %w", err)
	}

	u.log.Info("admin application recorded", map[string]interface{}{"uid": caller.UID})
	return nil
}

func (u *adminUsecase) ListAdmins(ctx context.Context, caller authdomain.Identity) ([]domain.AdminRecord, error) {
	if err := u.requireSuperAdmin(caller); err != nil {
		return nil, err
	}

	records, err := u.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return records, nil
}

func (u *adminUsecase) requireSuperAdmin(caller authdomain.Identity) error {
	if !caller.Authenticated() {
		return apperr.Unauthenticated("로그인이 필요합니다.")
	}
	if domain.ParseRole(caller.Role) != domain.RoleSuperAdmin {
		return apperr.PermissionDenied("슈퍼관리자만 가능합니다.")
	}
	return nil
}
