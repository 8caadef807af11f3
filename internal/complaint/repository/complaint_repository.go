package repository

import (
	"context"
	"fmt"

	"minwon-backend/internal/complaint/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const complaintsCollection = "complaints"

// ComplaintRepository reads complaint documents. Writes stay with the owning
// application; this service only reacts to them.
type ComplaintRepository interface {
	// FindByID returns the complaint, or nil when it does not exist.
	FindByID(ctx context.Context, id string) (*domain.Complaint, error)
}

type complaintRepository struct {
	client *firestore.Client
}

// NewComplaintRepository creates a Firestore-backed ComplaintRepository.
func NewComplaintRepository(client *firestore.Client) ComplaintRepository {
	return &complaintRepository{client: client}
}

func (r *complaintRepository) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	if id == "" {
		return nil, nil
	}

	snap, err := r.client.Collection(complaintsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch complaint %s: %w", id, err)
	}

	var complaint domain.Complaint
	if err := snap.DataTo(&complaint); err != nil {
		return nil, fmt.Errorf("failed to decode complaint %s: %w", id, err)
	}
	complaint.ID = snap.Ref.ID
	return &complaint, nil
}
