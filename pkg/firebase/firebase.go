package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Clients bundles the Firebase Admin SDK clients the service depends on.
type Clients struct {
	App       *firebase.App
	Firestore *firestore.Client
	Auth      *auth.Client
	Messaging *messaging.Client
}

// NewClients initializes the Firebase app and the Firestore, Auth and
// Messaging clients using the provided credentials file.
func NewClients(ctx context.Context, projectID, credentialsFile string) (*Clients, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	store, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Messaging client: %w", err)
	}

	return &Clients{
		App:       app,
		Firestore: store,
		Auth:      authClient,
		Messaging: messagingClient,
	}, nil
}

// Close releases client resources. Only Firestore holds a connection.
func (c *Clients) Close() error {
	return c.Firestore.Close()
}
