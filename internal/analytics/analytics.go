// Package analytics computes the spend aggregates shown on the dashboard
// from a user's subscription records. All figures are monthly equivalents
// produced by the billing normalizer; only Active subscriptions contribute.
package analytics

import (
	"fmt"

	"subtrackr-backend-go/internal/billing"
	"subtrackr-backend-go/internal/models"
)

// Summary holds the derived spending aggregates for one user.
//
// BudgetRemaining and BudgetUsedPercent are nil when the user has no monthly
// budget set. nil and zero are different signals: zero means "no budget
// left", nil means "no budget configured".
type Summary struct {
	TotalMonthlySpend float64                     `json:"totalMonthlySpend"`
	ActiveCount       int                         `json:"activeCount"`
	CategoryBreakdown map[models.Category]float64 `json:"categoryBreakdown"`
	BudgetRemaining   *float64                    `json:"budgetRemaining,omitempty"`
	BudgetUsedPercent *float64                    `json:"budgetUsedPercent,omitempty"`
}

// Compute folds the given subscriptions into a Summary. Paused and Cancelled
// records are excluded entirely, not zeroed. Categories without any active
// subscription are omitted from the breakdown.
//
// An unrecognized billing cycle on any record is an error; records with
// invalid cycles are never silently skipped or passed through at face value.
func Compute(subs []*models.Subscription, monthlyBudget *float64) (*Summary, error) {
	summary := &Summary{
		CategoryBreakdown: make(map[models.Category]float64),
	}

	for _, sub := range subs {
		if sub.Status != models.StatusActive {
			continue
		}
		monthly, err := billing.MonthlyAmount(sub.Price, sub.Billing)
		if err != nil {
			return nil, fmt.Errorf("subscription %q: %w", sub.Name, err)
		}
		summary.TotalMonthlySpend += monthly
		summary.CategoryBreakdown[sub.Category] += monthly
		summary.ActiveCount++
	}

	if monthlyBudget != nil {
		remaining := *monthlyBudget - summary.TotalMonthlySpend
		if remaining < 0 {
			remaining = 0
		}
		summary.BudgetRemaining = &remaining

		var used float64
		switch {
		case *monthlyBudget > 0:
			used = summary.TotalMonthlySpend / *monthlyBudget * 100
			if used > 100 {
				used = 100
			}
		case summary.TotalMonthlySpend > 0:
			// Zero budget with any spend counts as fully used.
			used = 100
		}
		summary.BudgetUsedPercent = &used
	}

	return summary, nil
}
