package domain

// Complaint is the complaints/{id} document as read by this service.
type Complaint struct {
	ID       string `firestore:"-"`
	OwnerUID string `firestore:"ownerUid,omitempty"`
	Title    string `firestore:"title,omitempty"`
	Status   string `firestore:"status,omitempty"`
}

// Reply is a complaints/{id}/replies/{replyId} document.
type Reply struct {
	SenderRole string `firestore:"senderRole,omitempty"`
	Message    string `firestore:"message,omitempty"`
}

// SenderRoleAdmin marks replies written from the admin console; only these
// produce a push notification.
const SenderRoleAdmin = "admin"

// Complaint status values written by the app.
const (
	StatusReceived   = "received"
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusInProgress = "inProgress"
	StatusDone       = "done"
)

// StatusLabel maps a raw status value to the label shown in notifications.
// Unknown values pass through unchanged.
func StatusLabel(status string) string {
	switch status {
	case StatusReceived, StatusPending:
		return "접수"
	case StatusProcessing, StatusInProgress:
		return "처리중"
	case StatusDone:
		return "완료"
	default:
		return status
	}
}
