package repository

import (
	"context"
	"fmt"

	"minwon-backend/pkg/logger"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection = "users"
	tokensField     = "fcmTokens"
)

// TokenStore reads and mutates a user's registered device tokens.
type TokenStore interface {
	// List returns the user's device tokens, deduplicated, with non-string
	// and empty entries dropped. A missing user or field yields an empty set.
	List(ctx context.Context, uid string) ([]string, error)
	// Prune removes exactly the given tokens from the user's set. A missing
	// user document is tolerated.
	Prune(ctx context.Context, uid string, tokens []string) error
	// Register adds a token to the user's set, creating the document if needed.
	Register(ctx context.Context, uid, token string) error
	// Unregister removes a single token from the user's set.
	Unregister(ctx context.Context, uid, token string) error
}

// tokenRepository implements TokenStore on Firestore user documents.
type tokenRepository struct {
	client *firestore.Client
	log    logger.Logger
}

// NewTokenRepository creates a Firestore-backed TokenStore.
func NewTokenRepository(client *firestore.Client, log logger.Logger) TokenStore {
	return &tokenRepository{
		client: client,
		log:    log,
	}
}

func (r *tokenRepository) List(ctx context.Context, uid string) ([]string, error) {
	if uid == "" {
		return nil, nil
	}

	snap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user document: %w", err)
	}

	raw, err := snap.DataAt(tokensField)
	if err != nil {
		// Field absent: user has never registered a device.
		return nil, nil
	}

	arr, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(arr))
	tokens := make([]string, 0, len(arr))
	for _, v := range arr {
		t, ok := v.(string)
		if !ok || t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func (r *tokenRepository) Prune(ctx context.Context, uid string, tokens []string) error {
	if uid == "" || len(tokens) == 0 {
		return nil
	}

	values := make([]interface{}, len(tokens))
	for i, t := range tokens {
		values[i] = t
	}

	_, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: tokensField, Value: firestore.ArrayRemove(values...)},
	})
	if status.Code(err) == codes.NotFound {
		r.log.Warn("token prune skipped, user document missing", map[string]interface{}{
			"uid": uid,
		})
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to prune tokens: %w", err)
	}
	return nil
}

func (r *tokenRepository) Register(ctx context.Context, uid, token string) error {
	if uid == "" || token == "" {
		return fmt.Errorf("uid and token are required")
	}

	// Set with merge so first-time registration creates the document.
	_, err := r.client.Collection(usersCollection).Doc(uid).Set(ctx, map[string]interface{}{
		tokensField: firestore.ArrayUnion(token),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to register token: %w", err)
	}
	return nil
}

func (r *tokenRepository) Unregister(ctx context.Context, uid, token string) error {
	if uid == "" || token == "" {
		return fmt.Errorf("uid and token are required")
	}
	return r.Prune(ctx, uid, []string{token})
}
