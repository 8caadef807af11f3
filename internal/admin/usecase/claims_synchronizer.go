package usecase

import (
	"context"
	"fmt"

	"minwon-backend/internal/admin/domain"
	"minwon-backend/pkg/logger"
)

// ClaimsSynchronizer projects the current admin record role into the user's
// authorization claims. The projection is pure and re-derivable: it never
// reads or merges with prior claims state.
type ClaimsSynchronizer struct {
	claims ClaimsService
	log    logger.Logger
}

func NewClaimsSynchronizer(claims ClaimsService, log logger.Logger) *ClaimsSynchronizer {
	return &ClaimsSynchronizer{
		claims: claims,
		log:    log,
	}
}

// Sync replaces the user's claims with the projection of role.
func (s *ClaimsSynchronizer) Sync(ctx context.Context, uid string, role domain.Role) error {
	if err := s.claims.SetCustomUserClaims(ctx, uid, role.Claims()); err != nil {
		return fmt.Errorf("set claims for %s: %w", uid, err)
	}

	s.log.Info("claims synchronized", map[string]interface{}{
		"uid":  uid,
		"role": role,
	})
	return nil
}
