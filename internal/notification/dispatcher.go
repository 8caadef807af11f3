package notification

import (
	"context"
	"fmt"

	userrepo "minwon-backend/internal/user/repository"
	"minwon-backend/pkg/fcm"
	"minwon-backend/pkg/logger"
)

// Summary reports the raw per-token delivery counts of one dispatch.
type Summary struct {
	SuccessCount int
	FailureCount int
}

// Messenger is the push delivery backend. Satisfied by *fcm.Client.
type Messenger interface {
	SendMulticast(ctx context.Context, tokens []string, notification fcm.Notification, data map[string]string) (*fcm.MulticastResult, error)
}

// Dispatcher fans a notification event out to all of the recipient's
// registered device tokens and prunes tokens whose endpoints are gone.
type Dispatcher struct {
	tokens    userrepo.TokenStore
	messenger Messenger
	log       logger.Logger
}

func NewDispatcher(tokens userrepo.TokenStore, messenger Messenger, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		tokens:    tokens,
		messenger: messenger,
		log:       log,
	}
}

// Dispatch sends event to every device of event.RecipientUID. Partial
// failures never surface to the caller; only a total backend outage returns
// an error. Tokens reported permanently dead are removed in one batched
// prune, best-effort.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) (Summary, error) {
	tokens, err := d.tokens.List(ctx, event.RecipientUID)
	if err != nil {
		// Token lookup failure means "no tokens", not a failed dispatch.
		d.log.Warn("token lookup failed, skipping dispatch", map[string]interface{}{
			"uid":   event.RecipientUID,
			"kind":  event.Kind,
			"error": err.Error(),
		})
		return Summary{}, nil
	}
	if len(tokens) == 0 {
		return Summary{}, nil
	}

	result, err := d.messenger.SendMulticast(ctx, tokens, fcm.Notification{
		Title: event.Title,
		Body:  event.Body,
	}, event.Data)
	if err != nil {
		return Summary{}, fmt.Errorf("multicast send failed: %w", err)
	}

	var invalid []string
	for _, outcome := range result.Outcomes {
		if !outcome.Success && outcome.ErrorKind.Permanent() {
			invalid = append(invalid, outcome.Token)
		}
	}
	if len(invalid) > 0 {
		if err := d.tokens.Prune(ctx, event.RecipientUID, invalid); err != nil {
			d.log.Warn("token prune failed", map[string]interface{}{
				"uid":   event.RecipientUID,
				"count": len(invalid),
				"error": err.Error(),
			})
		} else {
			d.log.Info("pruned invalid tokens", map[string]interface{}{
				"uid":   event.RecipientUID,
				"count": len(invalid),
			})
		}
	}

	d.log.Info("notification dispatched", map[string]interface{}{
		"uid":     event.RecipientUID,
		"kind":    event.Kind,
		"success": result.SuccessCount,
		"failure": result.FailureCount,
	})

	return Summary{
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
	}, nil
}
