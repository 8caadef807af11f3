package repository

import (
	"context"
	"errors"
	"fmt"

	"minwon-backend/internal/admin/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const adminsCollection = "admins"

// ErrSuperAdminExists is returned by CreateSuperAdmin when another record
// already holds the superAdmin role.
var ErrSuperAdminExists = errors.New("a superadmin record already exists")

// AdminRepository persists administrator records.
type AdminRepository interface {
	// Find returns the record, or nil when it does not exist.
	Find(ctx context.Context, uid string) (*domain.AdminRecord, error)
	// List returns all administrator records.
	List(ctx context.Context) ([]domain.AdminRecord, error)
	// Create inserts a new record; timestamps are set server-side.
	Create(ctx context.Context, record domain.AdminRecord) error
	// CreateSuperAdmin upserts the caller's record with the superAdmin role.
	// The uniqueness check and the write run in one transaction; returns
	// ErrSuperAdminExists when a superAdmin is already present.
	CreateSuperAdmin(ctx context.Context, uid, email, displayName string) error
	// SetRole merge-upserts the target's role. An empty approvedBy clears
	// the approvedBy field.
	SetRole(ctx context.Context, uid string, role domain.Role, approvedBy string) error
}

type adminRepository struct {
	client *firestore.Client
}

// NewAdminRepository creates a Firestore-backed AdminRepository.
func NewAdminRepository(client *firestore.Client) AdminRepository {
	return &adminRepository{client: client}
}

func (r *adminRepository) Find(ctx context.Context, uid string) (*domain.AdminRecord, error) {
	snap, err := r.client.Collection(adminsCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin record %s: %w", uid, err)
	}

	record, err := recordFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *adminRepository) List(ctx context.Context) ([]domain.AdminRecord, error) {
	iter := r.client.Collection(adminsCollection).Documents(ctx)
	defer iter.Stop()

	var records []domain.AdminRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list admin records: %w", err)
		}
		record, err := recordFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (r *adminRepository) Create(ctx context.Context, record domain.AdminRecord) error {
	_, err := r.client.Collection(adminsCollection).Doc(record.UID).Set(ctx, map[string]interface{}{
		"uid":       record.UID,
		"email":     record.Email,
		"name":      record.DisplayName,
		"role":      string(record.Role),
		"createdAt": firestore.ServerTimestamp,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to create admin record %s: %w", record.UID, err)
	}
	return nil
}

func (r *adminRepository) CreateSuperAdmin(ctx context.Context, uid, email, displayName string) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := r.client.Collection(adminsCollection).
			Where("role", "==", string(domain.RoleSuperAdmin)).
			Limit(1)
		iter := tx.Documents(query)
		defer iter.Stop()

		_, err := iter.Next()
		if err == nil {
			return ErrSuperAdminExists
		}
		if err != iterator.Done {
			return fmt.Errorf("failed to query existing superadmin: %w", err)
		}

		return tx.Set(r.client.Collection(adminsCollection).Doc(uid), map[string]interface{}{
			"uid":        uid,
			"email":      email,
			"name":       displayName,
			"role":       string(domain.RoleSuperAdmin),
			"approvedBy": uid,
			"createdAt":  firestore.ServerTimestamp,
			"updatedAt":  firestore.ServerTimestamp,
		}, firestore.MergeAll)
	})
	if err != nil {
		if errors.Is(err, ErrSuperAdminExists) {
			return ErrSuperAdminExists
		}
		return fmt.Errorf("failed to bootstrap superadmin: %w", err)
	}
	return nil
}

func (r *adminRepository) SetRole(ctx context.Context, uid string, role domain.Role, approvedBy string) error {
	data := map[string]interface{}{
		"role":      string(role),
		"updatedAt": firestore.ServerTimestamp,
	}
	if approvedBy != "" {
		data["approvedBy"] = approvedBy
	} else {
		data["approvedBy"] = firestore.Delete
	}

	_, err := r.client.Collection(adminsCollection).Doc(uid).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to set role on admin record %s: %w", uid, err)
	}
	return nil
}

func recordFromSnapshot(snap *firestore.DocumentSnapshot) (*domain.AdminRecord, error) {
	var record domain.AdminRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, fmt.Errorf("failed to decode admin record %s: %w", snap.Ref.ID, err)
	}
	if record.UID == "" {
		record.UID = snap.Ref.ID
	}
	record.Role = domain.ParseRole(string(record.Role))
	return &record, nil
}
