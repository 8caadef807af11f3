package notification

// Kind distinguishes the domain events that produce a push notification.
type Kind string

const (
	KindStatusChanged Kind = "status"
	KindReplyAdded    Kind = "reply"
)

// Event is the transient payload built from a document change and consumed
// once by the dispatcher. It is never persisted.
type Event struct {
	Kind         Kind
	RecipientUID string
	Title        string
	Body         string
	Data         map[string]string
}
