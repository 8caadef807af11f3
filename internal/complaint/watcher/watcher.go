package watcher

import (
	"context"
	"fmt"

	"minwon-backend/internal/complaint/domain"
	"minwon-backend/internal/complaint/repository"
	"minwon-backend/internal/notification"
	"minwon-backend/internal/watcher"
	"minwon-backend/pkg/logger"
)

const (
	statusChangeTitle  = "민원 상태 변경"
	replyAddedTitle    = "민원 답변 등록"
	defaultTitle       = "민원"
	defaultReplyBody   = "관리자가 답변을 추가했습니다."
	maxReplyBodyLength = 120
)

// EventDispatcher delivers a notification event. Satisfied by
// *notification.Dispatcher.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event notification.Event) (notification.Summary, error)
}

// Watcher reacts to complaint document mutations by pushing notifications to
// the complaint owner. Handler failures are logged, never returned: a failed
// notification must not fail the triggering mutation.
type Watcher struct {
	complaints repository.ComplaintRepository
	dispatcher EventDispatcher
	log        logger.Logger
}

func NewWatcher(complaints repository.ComplaintRepository, dispatcher EventDispatcher, log logger.Logger) *Watcher {
	return &Watcher{
		complaints: complaints,
		dispatcher: dispatcher,
		log:        log,
	}
}

// OnStatusChanged handles updates to complaints/{id}. Nothing happens unless
// the status field actually changed and the complaint has an owner.
func (w *Watcher) OnStatusChanged(ctx context.Context, event watcher.ChangeEvent) error {
	beforeStatus := watcher.StringField(event.Before, "status")
	afterStatus := watcher.StringField(event.After, "status")
	if beforeStatus == afterStatus {
		return nil
	}

	ownerUID := watcher.StringField(event.After, "ownerUid")
	if ownerUID == "" {
		return nil
	}

	title := watcher.StringField(event.After, "title")
	if title == "" {
		title = defaultTitle
	}
	body := fmt.Sprintf("‘%s’ 상태가 ‘%s’로 변경되었습니다.", title, domain.StatusLabel(afterStatus))

	_, err := w.dispatcher.Dispatch(ctx, notification.Event{
		Kind:         notification.KindStatusChanged,
		RecipientUID: ownerUID,
		Title:        statusChangeTitle,
		Body:         body,
		Data: map[string]string{
			"type":        "status",
			"complaintId": event.Params["id"],
			"ownerUid":    ownerUID,
			"status":      afterStatus,
		},
	})
	if err != nil {
		w.log.Error("status change notification failed", map[string]interface{}{
			"complaintId": event.Params["id"],
			"error":       err.Error(),
		})
	}
	return nil
}

// OnReplyAdded handles creations under complaints/{complaintId}/replies.
// Only admin replies notify the owner; the parent complaint supplies the
// recipient.
func (w *Watcher) OnReplyAdded(ctx context.Context, event watcher.ChangeEvent) error {
	if watcher.StringField(event.After, "senderRole") != domain.SenderRoleAdmin {
		return nil
	}

	complaintID := event.Params["complaintId"]
	complaint, err := w.complaints.FindByID(ctx, complaintID)
	if err != nil {
		w.log.Error("parent complaint lookup failed", map[string]interface{}{
			"complaintId": complaintID,
			"error":       err.Error(),
		})
		return nil
	}
	if complaint == nil || complaint.OwnerUID == "" {
		return nil
	}

	message := watcher.StringField(event.After, "message")
	if message == "" {
		message = defaultReplyBody
	}

	_, err = w.dispatcher.Dispatch(ctx, notification.Event{
		Kind:         notification.KindReplyAdded,
		RecipientUID: complaint.OwnerUID,
		Title:        replyAddedTitle,
		Body:         truncateMessage(message, maxReplyBodyLength),
		Data: map[string]string{
			"type":        "reply",
			"complaintId": complaintID,
			"ownerUid":    complaint.OwnerUID,
			"replyId":     event.Params["replyId"],
		},
	})
	if err != nil {
		w.log.Error("reply notification failed", map[string]interface{}{
			"complaintId": complaintID,
			"error":       err.Error(),
		})
	}
	return nil
}

// truncateMessage shortens a reply body to at most max display characters,
// keeping max-3 and appending an ellipsis when over the limit.
func truncateMessage(message string, max int) string {
	runes := []rune(message)
	if len(runes) <= max {
		return message
	}
	return string(runes[:max-3]) + "…"
}
