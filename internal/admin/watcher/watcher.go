package watcher

import (
	"context"

	"minwon-backend/internal/admin/domain"
	"minwon-backend/internal/admin/usecase"
	"minwon-backend/internal/watcher"
)

// Watcher reacts to admin record mutations by re-deriving the record
// owner's authorization claims.
type Watcher struct {
	synchronizer *usecase.ClaimsSynchronizer
}

func NewWatcher(synchronizer *usecase.ClaimsSynchronizer) *Watcher {
	return &Watcher{synchronizer: synchronizer}
}

// OnAdminCreated handles creations of admins/{uid}. Claims are derived
// unconditionally from the new record's role.
func (w *Watcher) OnAdminCreated(ctx context.Context, event watcher.ChangeEvent) error {
	uid := event.Params["uid"]
	if uid == "" {
		return nil
	}

	role := domain.ParseRole(watcher.StringField(event.After, "role"))
	return w.synchronizer.Sync(ctx, uid, role)
}

// OnAdminUpdated handles updates of admins/{uid}. Nothing happens unless the
// role field changed value.
func (w *Watcher) OnAdminUpdated(ctx context.Context, event watcher.ChangeEvent) error {
	uid := event.Params["uid"]
	if uid == "" {
		return nil
	}

	beforeRole := domain.ParseRole(watcher.StringField(event.Before, "role"))
	afterRole := domain.ParseRole(watcher.StringField(event.After, "role"))
	if beforeRole == afterRole {
		return nil
	}

	return w.synchronizer.Sync(ctx, uid, afterRole)
}
