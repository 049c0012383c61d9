package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"subtrackr-backend-go/internal/models"
)

// newOfflineFirestoreClient returns a client aimed at an unreachable
// emulator address. The gRPC connection is dialed lazily, so no network is
// touched; calls fail at the RPC layer, which is enough to verify that our
// writes are well-formed for the SDK.
func newOfflineFirestoreClient(t *testing.T) *firestore.Client {
	t.Helper()
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:1")
	client, err := firestore.NewClient(context.Background(), "offline-project")
	if err != nil {
		t.Fatalf("failed to create firestore client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// The SDK rejects malformed writes before any network I/O — notably, merge
// options combined with struct data fail with "MergeAll can only be
// specified with map data". Update takes struct models, so it must stay on a
// write shape the SDK accepts: with a canceled context the only permissible
// failure is the RPC-level one.
func assertNoClientSideRejection(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error from the canceled context")
	}
	if strings.Contains(err.Error(), "MergeAll") || strings.Contains(err.Error(), "map data") {
		t.Fatalf("update was rejected client-side before reaching the backend: %v", err)
	}
}

func TestRepositoryUpdateWritesFullDocument(t *testing.T) {
	client := newOfflineFirestoreClient(t)
	ctx := canceledContext()

	t.Run("subscription", func(t *testing.T) {
		repo := NewFirestoreSubscriptionRepository(client)
		err := repo.Update(ctx, &models.Subscription{
			ID:        "sub-1",
			UserID:    "user-1",
			Name:      "Netflix",
			Category:  models.CategoryEntertainment,
			Price:     15.99,
			Billing:   "Monthly",
			NextDue:   "2025-07-15",
			Status:    models.StatusActive,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		})
		assertNoClientSideRejection(t, err)
	})

	t.Run("reminder", func(t *testing.T) {
		repo := NewFirestoreReminderRepository(client)
		err := repo.Update(ctx, &models.Reminder{
			ID:               "rem-1",
			UserID:           "user-1",
			SubscriptionID:   "sub-1",
			SubscriptionName: "Netflix",
			DueDate:          "2025-07-15",
			Amount:           15.99,
			Status:           models.ReminderSent,
			CreatedAt:        time.Now().UTC(),
		})
		assertNoClientSideRejection(t, err)
	})

	t.Run("user", func(t *testing.T) {
		repo := NewFirestoreUserRepository(client)
		budget := 100.0
		err := repo.Update(ctx, &models.User{
			UID:           "user-1",
			Email:         "a@example.com",
			DisplayName:   "Alice",
			MonthlyBudget: &budget,
			Currency:      "EUR",
			CreatedAt:     time.Now().UTC(),
			UpdatedAt:     time.Now().UTC(),
		})
		assertNoClientSideRejection(t, err)
	})
}
