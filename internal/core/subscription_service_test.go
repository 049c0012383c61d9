package core

import (
	"context"
	"errors"
	"testing"

	"subtrackr-backend-go/internal/billing"
	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/models"
)

func validCreateSubscriptionRequest() models.CreateSubscriptionRequest {
	return models.CreateSubscriptionRequest{
		Name:     "Netflix",
		Category: "Entertainment",
		Price:    15.99,
		Billing:  "Monthly",
		NextDue:  "2025-07-15",
		Status:   "Active",
	}
}

func TestSubscriptionServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_and_returns_id", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		svc := NewSubscriptionService(repo, newFakeCache())

		sub, err := svc.CreateSubscription(ctx, "user-1", validCreateSubscriptionRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub.ID == "" {
			t.Error("expected generated ID")
		}
		if sub.UserID != "user-1" {
			t.Errorf("expected owner user-1, got %q", sub.UserID)
		}
		if sub.Billing != billing.CycleMonthly {
			t.Errorf("expected Monthly cycle, got %q", sub.Billing)
		}
	})

	t.Run("fills_known_logo_when_absent", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		svc := NewSubscriptionService(repo, newFakeCache())

		sub, err := svc.CreateSubscription(ctx, "user-1", validCreateSubscriptionRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub.Logo == "" {
			t.Error("expected a logo resolved from the bundled table for Netflix")
		}
	})

	t.Run("keeps_explicit_logo", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		svc := NewSubscriptionService(repo, newFakeCache())

		req := validCreateSubscriptionRequest()
		req.Logo = "https://example.com/custom.png"
		sub, err := svc.CreateSubscription(ctx, "user-1", req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub.Logo != "https://example.com/custom.png" {
			t.Errorf("explicit logo overridden: %q", sub.Logo)
		}
	})

	t.Run("rejects_invalid_fields", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		svc := NewSubscriptionService(repo, newFakeCache())

		cases := []struct {
			name    string
			mutate  func(*models.CreateSubscriptionRequest)
			wantErr error
		}{
			{"negative_price", func(r *models.CreateSubscriptionRequest) { r.Price = -1 }, ErrInvalidPrice},
			{"bad_category", func(r *models.CreateSubscriptionRequest) { r.Category = "Gaming" }, ErrInvalidCategory},
			{"bad_cycle", func(r *models.CreateSubscriptionRequest) { r.Billing = "Fortnightly" }, billing.ErrInvalidCycle},
			{"bad_status", func(r *models.CreateSubscriptionRequest) { r.Status = "Archived" }, ErrInvalidStatus},
			{"bad_date", func(r *models.CreateSubscriptionRequest) { r.NextDue = "15/07/2025" }, ErrInvalidDueDate},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validCreateSubscriptionRequest()
				tc.mutate(&req)
				if _, err := svc.CreateSubscription(ctx, "user-1", req); !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
			})
		}
	})

	t.Run("past_due_date_allowed", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		svc := NewSubscriptionService(repo, newFakeCache())

		req := validCreateSubscriptionRequest()
		req.NextDue = "2020-01-01"
		if _, err := svc.CreateSubscription(ctx, "user-1", req); err != nil {
			t.Errorf("overdue bills are valid, got %v", err)
		}
	})

	t.Run("invalidates_dashboard_cache", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		c := newFakeCache()
		c.entries[dashboardCacheKey("user-1")] = "{}"
		svc := NewSubscriptionService(repo, c)

		if _, err := svc.CreateSubscription(ctx, "user-1", validCreateSubscriptionRequest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := c.entries[dashboardCacheKey("user-1")]; ok {
			t.Error("expected dashboard cache entry to be dropped")
		}
	})
}

func TestSubscriptionServiceOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(repo, newFakeCache())

	owned, err := svc.CreateSubscription(ctx, "user-1", validCreateSubscriptionRequest())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	t.Run("get_by_other_user_forbidden", func(t *testing.T) {
		if _, err := svc.GetSubscriptionByID(ctx, "user-2", owned.ID); !errors.Is(err, ErrForbiddenAccess) {
			t.Errorf("expected ErrForbiddenAccess, got %v", err)
		}
	})

	t.Run("update_by_other_user_forbidden", func(t *testing.T) {
		name := "Hijacked"
		_, err := svc.UpdateSubscription(ctx, "user-2", owned.ID, models.UpdateSubscriptionRequest{Name: &name})
		if !errors.Is(err, ErrForbiddenAccess) {
			t.Errorf("expected ErrForbiddenAccess, got %v", err)
		}
	})

	t.Run("delete_by_other_user_forbidden", func(t *testing.T) {
		if err := svc.DeleteSubscription(ctx, "user-2", owned.ID); !errors.Is(err, ErrForbiddenAccess) {
			t.Errorf("expected ErrForbiddenAccess, got %v", err)
		}
		if _, err := svc.GetSubscriptionByID(ctx, "user-1", owned.ID); err != nil {
			t.Errorf("subscription should survive a forbidden delete: %v", err)
		}
	})

	t.Run("unknown_id_not_found", func(t *testing.T) {
		if _, err := svc.GetSubscriptionByID(ctx, "user-1", "missing"); !errors.Is(err, ErrSubscriptionNotFound) {
			t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
		}
	})

	t.Run("list_scoped_to_user", func(t *testing.T) {
		if _, err := svc.CreateSubscription(ctx, "user-2", validCreateSubscriptionRequest()); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		subs, err := svc.ListSubscriptions(ctx, "user-1", db.SubscriptionFilters{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, s := range subs {
			if s.UserID != "user-1" {
				t.Errorf("leaked subscription owned by %q", s.UserID)
			}
		}
	})
}

func TestSubscriptionServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(repo, newFakeCache())

	sub, err := svc.CreateSubscription(ctx, "user-1", validCreateSubscriptionRequest())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	t.Run("partial_update_leaves_other_fields", func(t *testing.T) {
		price := 19.99
		updated, err := svc.UpdateSubscription(ctx, "user-1", sub.ID, models.UpdateSubscriptionRequest{Price: &price})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Price != 19.99 {
			t.Errorf("expected price 19.99, got %v", updated.Price)
		}
		if updated.Name != "Netflix" {
			t.Errorf("name should be untouched, got %q", updated.Name)
		}
	})

	t.Run("rejects_invalid_cycle", func(t *testing.T) {
		bad := "Daily"
		_, err := svc.UpdateSubscription(ctx, "user-1", sub.ID, models.UpdateSubscriptionRequest{Billing: &bad})
		if !errors.Is(err, billing.ErrInvalidCycle) {
			t.Errorf("expected ErrInvalidCycle, got %v", err)
		}
	})

	t.Run("status_transition_persists", func(t *testing.T) {
		paused := "Paused"
		updated, err := svc.UpdateSubscription(ctx, "user-1", sub.ID, models.UpdateSubscriptionRequest{Status: &paused})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != models.StatusPaused {
			t.Errorf("expected Paused, got %q", updated.Status)
		}
		reloaded, err := svc.GetSubscriptionByID(ctx, "user-1", sub.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reloaded.Status != models.StatusPaused {
			t.Errorf("status not persisted, got %q", reloaded.Status)
		}
	})
}

func TestSubscriptionServiceListFilters(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(repo, newFakeCache())

	seed := []struct {
		name     string
		category string
		status   string
	}{
		{"Netflix", "Entertainment", "Active"},
		{"Dropbox", "Storage", "Active"},
		{"Spotify", "Entertainment", "Paused"},
	}
	for _, s := range seed {
		req := validCreateSubscriptionRequest()
		req.Name = s.name
		req.Category = s.category
		req.Status = s.status
		if _, err := svc.CreateSubscription(ctx, "user-1", req); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	t.Run("filter_by_category", func(t *testing.T) {
		subs, err := svc.ListSubscriptions(ctx, "user-1", db.SubscriptionFilters{Category: models.CategoryEntertainment})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(subs) != 2 {
			t.Errorf("expected 2 entertainment subscriptions, got %d", len(subs))
		}
	})

	t.Run("filter_by_category_and_status", func(t *testing.T) {
		subs, err := svc.ListSubscriptions(ctx, "user-1", db.SubscriptionFilters{
			Category: models.CategoryEntertainment,
			Status:   models.StatusActive,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(subs) != 1 || subs[0].Name != "Netflix" {
			t.Errorf("expected only Netflix, got %v", subs)
		}
	})

	t.Run("rejects_invalid_filter_values", func(t *testing.T) {
		if _, err := svc.ListSubscriptions(ctx, "user-1", db.SubscriptionFilters{Category: "Gaming"}); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("expected ErrInvalidCategory, got %v", err)
		}
		if _, err := svc.ListSubscriptions(ctx, "user-1", db.SubscriptionFilters{Status: "Archived"}); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})
}
