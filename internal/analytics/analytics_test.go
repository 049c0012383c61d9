package analytics

import (
	"errors"
	"testing"

	"subtrackr-backend-go/internal/billing"
	"subtrackr-backend-go/internal/models"
)

func sub(name string, category models.Category, price float64, cycle billing.Cycle, status models.SubscriptionStatus) *models.Subscription {
	return &models.Subscription{
		Name:     name,
		Category: category,
		Price:    price,
		Billing:  cycle,
		Status:   status,
	}
}

func budget(v float64) *float64 { return &v }

func TestCompute(t *testing.T) {
	t.Run("empty_set_is_zero", func(t *testing.T) {
		summary, err := Compute(nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TotalMonthlySpend != 0 {
			t.Errorf("expected 0 spend, got %v", summary.TotalMonthlySpend)
		}
		if summary.ActiveCount != 0 {
			t.Errorf("expected 0 active, got %d", summary.ActiveCount)
		}
		if len(summary.CategoryBreakdown) != 0 {
			t.Errorf("expected empty breakdown, got %v", summary.CategoryBreakdown)
		}
	})

	t.Run("inactive_records_excluded", func(t *testing.T) {
		subs := []*models.Subscription{
			sub("Netflix", models.CategoryEntertainment, 12, billing.CycleMonthly, models.StatusActive),
			sub("Gym", models.CategoryOther, 52, billing.CycleWeekly, models.StatusPaused),
			sub("Old VPN", models.CategoryOther, 5, billing.CycleMonthly, models.StatusCancelled),
		}
		summary, err := Compute(subs, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TotalMonthlySpend != 12 {
			t.Errorf("expected 12, got %v", summary.TotalMonthlySpend)
		}
		if summary.ActiveCount != 1 {
			t.Errorf("expected 1 active, got %d", summary.ActiveCount)
		}
		if _, ok := summary.CategoryBreakdown[models.CategoryOther]; ok {
			t.Error("inactive categories must be omitted, not zeroed")
		}
	})

	t.Run("yearly_normalized_into_breakdown", func(t *testing.T) {
		subs := []*models.Subscription{
			sub("iCloud Annual", models.CategoryEntertainment, 9.99, billing.CycleYearly, models.StatusActive),
		}
		summary, err := Compute(subs, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TotalMonthlySpend != 0.8325 {
			t.Errorf("expected 0.8325, got %v", summary.TotalMonthlySpend)
		}
		if got := summary.CategoryBreakdown[models.CategoryEntertainment]; got != 0.8325 {
			t.Errorf("expected breakdown 0.8325, got %v", got)
		}
		if len(summary.CategoryBreakdown) != 1 {
			t.Errorf("expected single category, got %v", summary.CategoryBreakdown)
		}
	})

	t.Run("no_budget_means_nil_not_zero", func(t *testing.T) {
		summary, err := Compute([]*models.Subscription{
			sub("Netflix", models.CategoryEntertainment, 12, billing.CycleMonthly, models.StatusActive),
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.BudgetRemaining != nil {
			t.Errorf("expected nil remaining, got %v", *summary.BudgetRemaining)
		}
		if summary.BudgetUsedPercent != nil {
			t.Errorf("expected nil percent, got %v", *summary.BudgetUsedPercent)
		}
	})

	t.Run("budget_remaining_clamped_at_zero", func(t *testing.T) {
		summary, err := Compute([]*models.Subscription{
			sub("Netflix", models.CategoryEntertainment, 150, billing.CycleMonthly, models.StatusActive),
		}, budget(100))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.BudgetRemaining == nil || *summary.BudgetRemaining != 0 {
			t.Errorf("expected remaining 0, got %v", summary.BudgetRemaining)
		}
		if summary.BudgetUsedPercent == nil || *summary.BudgetUsedPercent != 100 {
			t.Errorf("expected percent capped at 100, got %v", summary.BudgetUsedPercent)
		}
	})

	t.Run("budget_within_limits", func(t *testing.T) {
		summary, err := Compute([]*models.Subscription{
			sub("Netflix", models.CategoryEntertainment, 50, billing.CycleMonthly, models.StatusActive),
		}, budget(200))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.BudgetRemaining == nil || *summary.BudgetRemaining != 150 {
			t.Errorf("expected remaining 150, got %v", summary.BudgetRemaining)
		}
		if summary.BudgetUsedPercent == nil || *summary.BudgetUsedPercent != 25 {
			t.Errorf("expected 25%%, got %v", summary.BudgetUsedPercent)
		}
	})

	t.Run("zero_budget_with_spend_is_fully_used", func(t *testing.T) {
		summary, err := Compute([]*models.Subscription{
			sub("Netflix", models.CategoryEntertainment, 12, billing.CycleMonthly, models.StatusActive),
		}, budget(0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.BudgetUsedPercent == nil || *summary.BudgetUsedPercent != 100 {
			t.Errorf("expected 100%%, got %v", summary.BudgetUsedPercent)
		}
	})

	t.Run("zero_budget_without_spend_is_zero_used", func(t *testing.T) {
		summary, err := Compute(nil, budget(0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.BudgetUsedPercent == nil || *summary.BudgetUsedPercent != 0 {
			t.Errorf("expected 0%%, got %v", summary.BudgetUsedPercent)
		}
	})

	t.Run("invalid_cycle_propagates", func(t *testing.T) {
		subs := []*models.Subscription{
			sub("Broken", models.CategoryOther, 10, billing.Cycle("Fortnightly"), models.StatusActive),
		}
		_, err := Compute(subs, nil)
		if !errors.Is(err, billing.ErrInvalidCycle) {
			t.Errorf("expected ErrInvalidCycle, got %v", err)
		}
	})
}
