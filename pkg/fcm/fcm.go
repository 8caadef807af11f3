package fcm

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// ErrorKind classifies a per-token delivery failure.
type ErrorKind string

const (
	ErrorKindNone          ErrorKind = ""
	ErrorKindUnregistered  ErrorKind = "unregistered"
	ErrorKindInvalidToken  ErrorKind = "invalid-token"
	ErrorKindUnavailable   ErrorKind = "unavailable"
	ErrorKindQuotaExceeded ErrorKind = "quota-exceeded"
	ErrorKindInternal      ErrorKind = "internal"
	ErrorKindUnknown       ErrorKind = "unknown"
)

// Permanent reports whether the endpoint behind the token is gone for good
// and the token should be removed from the user's set.
func (k ErrorKind) Permanent() bool {
	return k == ErrorKindUnregistered || k == ErrorKindInvalidToken
}

// DeliveryOutcome is the per-token result of a multicast send.
type DeliveryOutcome struct {
	Token     string
	Success   bool
	ErrorKind ErrorKind
}

// MulticastResult aggregates the outcomes of one multicast call.
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	Outcomes     []DeliveryOutcome
}

// Notification is the visible part of a push message.
type Notification struct {
	Title string
	Body  string
}

// Client wraps Firebase Cloud Messaging functionality.
type Client struct {
	messagingClient *messaging.Client
}

// New wraps an initialized messaging client.
func New(messagingClient *messaging.Client) *Client {
	return &Client{messagingClient: messagingClient}
}

// SendMulticast sends one push notification to all given device tokens and
// returns a per-token outcome with the failure classified.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, notification Notification, data map[string]string) (*MulticastResult, error) {
	if len(tokens) == 0 {
		return &MulticastResult{}, nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: data,
	}

	response, err := c.messagingClient.SendEachForMulticast(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("failed to send FCM multicast message: %w", err)
	}

	result := &MulticastResult{
		SuccessCount: response.SuccessCount,
		FailureCount: response.FailureCount,
		Outcomes:     make([]DeliveryOutcome, 0, len(response.Responses)),
	}
	for i, resp := range response.Responses {
		outcome := DeliveryOutcome{
			Token:   tokens[i],
			Success: resp.Success,
		}
		if !resp.Success {
			outcome.ErrorKind = classify(resp.Error)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

func classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case messaging.IsUnregistered(err):
		return ErrorKindUnregistered
	case messaging.IsInvalidArgument(err):
		return ErrorKindInvalidToken
	case messaging.IsUnavailable(err):
		return ErrorKindUnavailable
	case messaging.IsQuotaExceeded(err):
		return ErrorKindQuotaExceeded
	case messaging.IsInternal(err):
		return ErrorKindInternal
	default:
		return ErrorKindUnknown
	}
}
