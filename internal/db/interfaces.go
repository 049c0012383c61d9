package db

import (
	"context"

	"subtrackr-backend-go/internal/models"
)

// SubscriptionFilters narrows a subscription list query. Empty fields are
// ignored; set fields are applied as equality filters.
type SubscriptionFilters struct {
	Category models.Category
	Status   models.SubscriptionStatus
}

// SubscriptionRepository defines the interface for subscription storage operations.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) (string, error) // Returns new document ID
	GetByID(ctx context.Context, id string) (*models.Subscription, error)
	ListByUserID(ctx context.Context, userID string, filters SubscriptionFilters) ([]*models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, id string) error
}

// ReminderRepository defines the interface for reminder storage operations.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) (string, error) // Returns new document ID
	GetByID(ctx context.Context, id string) (*models.Reminder, error)
	// ListByUserID returns the user's reminders ordered by due date
	// ascending. A non-empty status narrows the result.
	ListByUserID(ctx context.Context, userID string, status models.ReminderStatus) ([]*models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for user profile storage operations.
// The Firebase Auth UID is the document ID.
type UserRepository interface {
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}
