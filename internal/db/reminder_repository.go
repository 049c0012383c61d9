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

const remindersCollection = "reminders"

// firestoreReminderRepository implements the ReminderRepository interface
// using Firestore.
type firestoreReminderRepository struct {
	client *firestore.Client
}

// NewFirestoreReminderRepository creates a new instance of firestoreReminderRepository.
func NewFirestoreReminderRepository(client *firestore.Client) ReminderRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ReminderRepository.")
	}
	return &firestoreReminderRepository{client: client}
}

// Create adds a new reminder document with an auto-generated ID.
func (r *firestoreReminderRepository) Create(ctx context.Context, reminder *models.Reminder) (string, error) {
	docRef := r.client.Collection(remindersCollection).NewDoc()
	reminder.ID = docRef.ID

	_, err := docRef.Create(ctx, reminder)
	if err != nil {
		return "", fmt.Errorf("failed to create reminder: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a reminder document by its ID.
func (r *firestoreReminderRepository) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	if id == "" {
		return nil, errors.New("reminder ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(remindersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("reminder with ID '%s' not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reminder with ID '%s': %w", id, err)
	}

	var reminder models.Reminder
	if err := docSnap.DataTo(&reminder); err != nil {
		return nil, fmt.Errorf("failed to decode reminder data for ID '%s': %w", id, err)
	}
	reminder.ID = docSnap.Ref.ID

	return &reminder, nil
}

// ListByUserID retrieves a user's reminders ordered by due date ascending.
// A non-empty status narrows the query with an equality clause.
func (r *firestoreReminderRepository) ListByUserID(ctx context.Context, userID string, filterStatus models.ReminderStatus) ([]*models.Reminder, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for ListByUserID operation")
	}

	query := r.client.Collection(remindersCollection).Where("userId", "==", userID)
	if filterStatus != "" {
		query = query.Where("status", "==", string(filterStatus))
	}
	query = query.OrderBy("dueDate", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	reminders := make([]*models.Reminder, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate reminders for user '%s': %w", userID, err)
		}

		var reminder models.Reminder
		if err := doc.DataTo(&reminder); err != nil {
			log.Printf("Error decoding reminder data (ID: %s) for user '%s': %v. Skipping.", doc.Ref.ID, userID, err)
			continue
		}
		reminder.ID = doc.Ref.ID
		reminders = append(reminders, &reminder)
	}

	return reminders, nil
}

// Update replaces an existing reminder document with the given model.
// Callers pass complete models, so a full-document Set is correct; merge
// options would be rejected by the client for struct data.
func (r *firestoreReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	if reminder.ID == "" {
		return errors.New("reminder ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(remindersCollection).Doc(reminder.ID).Set(ctx, reminder)
	if err != nil {
		return fmt.Errorf("failed to update reminder with ID '%s': %w", reminder.ID, err)
	}
	return nil
}

// Delete removes a reminder document.
func (r *firestoreReminderRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("reminder ID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(remindersCollection).Doc(id).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("reminder with ID '%s' not found for deletion: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete reminder with ID '%s': %w", id, err)
	}
	return nil
}
