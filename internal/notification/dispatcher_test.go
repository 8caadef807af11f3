package notification

import (
	"context"
	"errors"
	"testing"

	"minwon-backend/pkg/fcm"
	"minwon-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenStore implements userrepo.TokenStore in memory.
type fakeTokenStore struct {
	tokens   map[string][]string
	listErr  error
	pruneErr error
	pruned   map[string][]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		tokens: make(map[string][]string),
		pruned: make(map[string][]string),
	}
}

func (f *fakeTokenStore) List(ctx context.Context, uid string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tokens[uid], nil
}

func (f *fakeTokenStore) Prune(ctx context.Context, uid string, tokens []string) error {
	if f.pruneErr != nil {
		return f.pruneErr
	}
	f.pruned[uid] = append(f.pruned[uid], tokens...)
	remaining := f.tokens[uid][:0:0]
	for _, t := range f.tokens[uid] {
		keep := true
		for _, removed := range tokens {
			if t == removed {
				keep = false
				break
			}
		}
		if keep {
			remaining = append(remaining, t)
		}
	}
	f.tokens[uid] = remaining
	return nil
}

func (f *fakeTokenStore) Register(ctx context.Context, uid, token string) error {
	f.tokens[uid] = append(f.tokens[uid], token)
	return nil
}

func (f *fakeTokenStore) Unregister(ctx context.Context, uid, token string) error {
	return f.Prune(ctx, uid, []string{token})
}

// fakeMessenger records the multicast call and plays back scripted outcomes.
type fakeMessenger struct {
	calls      int
	sentTokens []string
	sentNote   fcm.Notification
	sentData   map[string]string
	result     *fcm.MulticastResult
	err        error
}

func (f *fakeMessenger) SendMulticast(ctx context.Context, tokens []string, notification fcm.Notification, data map[string]string) (*fcm.MulticastResult, error) {
	f.calls++
	f.sentTokens = tokens
	f.sentNote = notification
	f.sentData = data
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func multicastResult(outcomes ...fcm.DeliveryOutcome) *fcm.MulticastResult {
	res := &fcm.MulticastResult{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Success {
			res.SuccessCount++
		} else {
			res.FailureCount++
		}
	}
	return res
}

func TestDispatch_NoTokensSkipsBackend(t *testing.T) {
	store := newFakeTokenStore()
	messenger := &fakeMessenger{}
	d := NewDispatcher(store, messenger, logger.NewNoOpLogger())

	summary, err := d.Dispatch(context.Background(), Event{Kind: KindStatusChanged, RecipientUID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.Zero(t, messenger.calls)
}

func TestDispatch_TokenLookupFailureIsSwallowed(t *testing.T) {
	store := newFakeTokenStore()
	store.listErr = errors.New("firestore unavailable")
	messenger := &fakeMessenger{}
	d := NewDispatcher(store, messenger, logger.NewNoOpLogger())

	summary, err := d.Dispatch(context.Background(), Event{RecipientUID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.Zero(t, messenger.calls)
}

func TestDispatch_PrunesOnlyPermanentlyDeadTokens(t *testing.T) {
	tests := []struct {
		name          string
		outcomes      []fcm.DeliveryOutcome
		expectedPrune []string
	}{
		{
			name: "unregistered token pruned",
			outcomes: []fcm.DeliveryOutcome{
				{Token: "a", Success: false, ErrorKind: fcm.ErrorKindUnregistered},
				{Token: "b", Success: true},
			},
			expectedPrune: []string{"a"},
		},
		{
			name: "invalid token pruned",
			outcomes: []fcm.DeliveryOutcome{
				{Token: "a", Success: false, ErrorKind: fcm.ErrorKindInvalidToken},
				{Token: "b", Success: true},
			},
			expectedPrune: []string{"a"},
		},
		{
			name: "transient failures left untouched",
			outcomes: []fcm.DeliveryOutcome{
				{Token: "a", Success: false, ErrorKind: fcm.ErrorKindUnavailable},
				{Token: "b", Success: false, ErrorKind: fcm.ErrorKindQuotaExceeded},
				{Token: "c", Success: false, ErrorKind: fcm.ErrorKindUnknown},
			},
			expectedPrune: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeTokenStore()
			var tokens []string
			for _, o := range tt.outcomes {
				tokens = append(tokens, o.Token)
			}
			store.tokens["u1"] = tokens
			messenger := &fakeMessenger{result: multicastResult(tt.outcomes...)}
			d := NewDispatcher(store, messenger, logger.NewNoOpLogger())

			_, err := d.Dispatch(context.Background(), Event{RecipientUID: "u1"})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedPrune, store.pruned["u1"])
		})
	}
}

func TestDispatch_ReturnsRawCounts(t *testing.T) {
	store := newFakeTokenStore()
	store.tokens["u1"] = []string{"a", "b", "c"}
	messenger := &fakeMessenger{result: multicastResult(
		fcm.DeliveryOutcome{Token: "a", Success: true},
		fcm.DeliveryOutcome{Token: "b", Success: false, ErrorKind: fcm.ErrorKindUnavailable},
		fcm.DeliveryOutcome{Token: "c", Success: true},
	)}
	d := NewDispatcher(store, messenger, logger.NewNoOpLogger())

	summary, err := d.Dispatch(context.Background(), Event{RecipientUID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, Summary{SuccessCount: 2, FailureCount: 1}, summary)
	assert.Equal(t, []string{"a", "b", "c"}, messenger.sentTokens)
}

func TestDispatch_BackendOutageSurfaces(t *testing.T) {
	store := newFakeTokenStore()
	store.tokens["u1"] = []string{"a"}
	messenger := &fakeMessenger{err: errors.New("fcm down")}
	d := NewDispatcher(store, messenger, logger.NewNoOpLogger())

	_, err := d.Dispatch(context.Background(), Event{RecipientUID: "u1"})

	assert.Error(t, err)
}

func TestDispatch_PruneFailureDoesNotFailDispatch(t *testing.T) {
	store := newFakeTokenStore()
	store.tokens["u1"] = []string{"a"}
	store.pruneErr = errors.New("document vanished")
	messenger := &fakeMessenger{result: multicastResult(
		fcm.DeliveryOutcome{Token: "a", Success: false, ErrorKind: fcm.ErrorKindUnregistered},
	)}
	d := NewDispatcher(store, messenger, logger.NewNoOpLogger())

	summary, err := d.Dispatch(context.Background(), Event{RecipientUID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, Summary{SuccessCount: 0, FailureCount: 1}, summary)
}
