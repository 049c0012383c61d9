package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"subtrackr-backend-go/internal/models"
)

const subscriptionsCollection = "subscriptions"

// firestoreSubscriptionRepository implements the SubscriptionRepository
// interface using Firestore.
type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

// NewFirestoreSubscriptionRepository creates a new instance of firestoreSubscriptionRepository.
func NewFirestoreSubscriptionRepository(client *firestore.Client) SubscriptionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SubscriptionRepository.")
	}
	return &firestoreSubscriptionRepository{client: client}
}

// Create adds a new subscription document with an auto-generated ID.
// It sets sub.ID with the new document ID before creation. CreatedAt and
// UpdatedAt are handled by the serverTimestamp tags.
func (r *firestoreSubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) (string, error) {
	docRef := r.client.Collection(subscriptionsCollection).NewDoc()
	sub.ID = docRef.ID

	_, err := docRef.Create(ctx, sub)
	if err != nil {
		return "", fmt.Errorf("failed to create subscription: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a subscription document by its ID.
func (r *firestoreSubscriptionRepository) GetByID(ctx context.Context, id string) (*models.Subscription, error) {
	if id == "" {
		return nil, errors.New("subscription ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(subscriptionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("subscription with ID '%s' not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription with ID '%s': %w", id, err)
	}

	var sub models.Subscription
	if err := docSnap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription data for ID '%s': %w", id, err)
	}
	sub.ID = docSnap.Ref.ID

	return &sub, nil
}

// ListByUserID retrieves all subscriptions owned by a user, newest first.
// Filters are applied as equality clauses on top of the userId scope.
func (r *firestoreSubscriptionRepository) ListByUserID(ctx context.Context, userID string, filters SubscriptionFilters) ([]*models.Subscription, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for ListByUserID operation")
	}

	query := r.client.Collection(subscriptionsCollection).Where("userId", "==", userID)
	if filters.Category != "" {
		query = query.Where("category", "==", string(filters.Category))
	}
	if filters.Status != "" {
		query = query.Where("status", "==", string(filters.Status))
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	subs := make([]*models.Subscription, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate subscriptions for user '%s': %w", userID, err)
		}

		var sub models.Subscription
		if err := doc.DataTo(&sub); err != nil {
			// Log and skip problematic documents rather than failing the whole list.
			log.Printf("Error decoding subscription data (ID: %s) for user '%s': %v. Skipping.", doc.Ref.ID, userID, err)
			continue
		}
		sub.ID = doc.Ref.ID
		subs = append(subs, &sub)
	}

	return subs, nil
}

// Update replaces an existing subscription document with the given model.
// Callers always read the current document and apply their changes before
// calling Update, so the model is complete and a full-document Set is the
// right write. Merge options are not usable here: the client only accepts
// them with map data, not structs.
func (r *firestoreSubscriptionRepository) Update(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		return errors.New("subscription ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(subscriptionsCollection).Doc(sub.ID).Set(ctx, sub)
	if err != nil {
		return fmt.Errorf("failed to update subscription with ID '%s': %w", sub.ID, err)
	}
	return nil
}

// Delete removes a subscription document. Reminders that reference the
// subscription are left untouched; there is no cascading delete.
func (r *firestoreSubscriptionRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("subscription ID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(subscriptionsCollection).Doc(id).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("subscription with ID '%s' not found for deletion: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete subscription with ID '%s': %w", id, err)
	}
	return nil
}
