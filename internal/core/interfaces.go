package core

import (
	"context"

	"subtrackr-backend-go/internal/analytics"
	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/models"
)

// UserService defines the interface for user profile operations.
type UserService interface {
	// GetOrCreate retrieves a profile by Firebase UID, creating it with the
	// identity-token claims on first sight. The bool reports whether a
	// profile was created.
	GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.User, bool, error)
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid string, req models.UpdateUserProfileRequest) (*models.User, error)
}

// SubscriptionService defines the interface for subscription operations.
// Every operation is scoped to the authenticated user's UID.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, userID string, req models.CreateSubscriptionRequest) (*models.Subscription, error)
	GetSubscriptionByID(ctx context.Context, userID, id string) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, userID string, filters db.SubscriptionFilters) ([]*models.Subscription, error)
	UpdateSubscription(ctx context.Context, userID, id string, req models.UpdateSubscriptionRequest) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, userID, id string) error
}

// ReminderService defines the interface for payment reminder operations.
type ReminderService interface {
	CreateReminder(ctx context.Context, userID string, req models.CreateReminderRequest) (*models.Reminder, error)
	GetReminderByID(ctx context.Context, userID, id string) (*models.Reminder, error)
	ListReminders(ctx context.Context, userID string, status models.ReminderStatus) ([]*models.Reminder, error)
	UpdateReminder(ctx context.Context, userID, id string, req models.UpdateReminderRequest) (*models.Reminder, error)
	DismissReminder(ctx context.Context, userID, id string) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, userID, id string) error
	// DispatchDue emails every Pending reminder due on or before today,
	// publishes a reminder.sent event for each, marks them Sent, and
	// returns how many were dispatched. It runs on request, not on a
	// schedule.
	DispatchDue(ctx context.Context, userID string) (int, error)
}

// DashboardData is the aggregate payload served to the dashboard view.
type DashboardData struct {
	Summary          *analytics.Summary     `json:"summary"`
	UpcomingRenewals []*models.Subscription `json:"upcomingRenewals"`
	Currency         string                 `json:"currency,omitempty"`
}

// DashboardService defines the interface for dashboard aggregate retrieval.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*DashboardData, error)
}
