package watcher

import "context"

// Kind is the type of document mutation that produced a change event.
type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
)

// ChangeEvent is a document mutation delivered by the event framework.
// Before is nil for creations. Params holds the values bound from the
// route's path template.
type ChangeEvent struct {
	Kind   Kind
	Path   string
	Params map[string]string
	Before map[string]interface{}
	After  map[string]interface{}
}

// HandlerFunc consumes one change event. Returned errors are logged by the
// runtime and never fail the originating mutation.
type HandlerFunc func(ctx context.Context, event ChangeEvent) error

// StringField reads a string field from a document snapshot, returning ""
// when the field is absent or not a string.
func StringField(doc map[string]interface{}, key string) string {
	if doc == nil {
		return ""
	}
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}
