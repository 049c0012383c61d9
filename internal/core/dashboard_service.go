package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"subtrackr-backend-go/internal/analytics"
	"subtrackr-backend-go/internal/billing"
	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/models"
	"subtrackr-backend-go/pkg/cache"
)

const (
	// dashboardCacheTTL bounds staleness of the cached summary; writes also
	// invalidate it eagerly.
	dashboardCacheTTL = 5 * time.Minute

	// upcomingRenewalWindowDays is how far ahead the dashboard looks for
	// renewals.
	upcomingRenewalWindowDays = 7
)

func dashboardCacheKey(userID string) string {
	return "dashboard:" + userID
}

// dashboardService implements the DashboardService interface.
type dashboardService struct {
	subRepo  db.SubscriptionRepository
	userRepo db.UserRepository
	cache    cache.Cache
	now      func() time.Time
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(sr db.SubscriptionRepository, ur db.UserRepository, c cache.Cache) DashboardService {
	return &dashboardService{
		subRepo:  sr,
		userRepo: ur,
		cache:    c,
		now:      time.Now,
	}
}

// GetDashboard returns the user's spend summary and upcoming renewals,
// serving a cached copy when one is fresh.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*DashboardData, error) {
	if s.subRepo == nil || s.userRepo == nil {
		return nil, errors.New("dashboardService: component not initialized")
	}

	cacheKey := dashboardCacheKey(userID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var data DashboardData
			if err := json.Unmarshal([]byte(cached), &data); err == nil {
				return &data, nil
			}
			// Unreadable cache entries are dropped and recomputed.
			if delErr := s.cache.Delete(ctx, cacheKey); delErr != nil {
				log.Printf("Warning: failed to drop corrupt dashboard cache for user '%s': %v", userID, delErr)
			}
		}
	}

	user, err := s.userRepo.GetByUID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: uid '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user '%s' for dashboard: %w", userID, err)
	}

	subs, err := s.subRepo.ListByUserID(ctx, userID, db.SubscriptionFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for dashboard (user '%s'): %w", userID, err)
	}

	summary, err := analytics.Compute(subs, user.MonthlyBudget)
	if err != nil {
		return nil, fmt.Errorf("failed to compute spend summary for user '%s': %w", userID, err)
	}

	data := &DashboardData{
		Summary:          summary,
		UpcomingRenewals: s.upcomingRenewals(subs),
		Currency:         user.Currency,
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(data); marshalErr == nil {
			if cacheErr := s.cache.Set(ctx, cacheKey, string(payload), dashboardCacheTTL); cacheErr != nil {
				log.Printf("Warning: failed to cache dashboard for user '%s': %v", userID, cacheErr)
			}
		}
	}

	return data, nil
}

// upcomingRenewals selects Active subscriptions due within the renewal
// window, soonest first. Overdue subscriptions (due before today) are
// included; an overdue bill is still an upcoming charge to the user.
func (s *dashboardService) upcomingRenewals(subs []*models.Subscription) []*models.Subscription {
	horizon := s.now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, upcomingRenewalWindowDays)

	upcoming := make([]*models.Subscription, 0)
	for _, sub := range subs {
		if sub.Status != models.StatusActive {
			continue
		}
		due, err := billing.ParseDate(sub.NextDue)
		if err != nil {
			continue
		}
		if !due.After(horizon) {
			upcoming = append(upcoming, sub)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].NextDue < upcoming[j].NextDue
	})
	return upcoming
}
