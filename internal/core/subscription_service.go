package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"subtrackr-backend-go/internal/billing"
	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/logos"
	"subtrackr-backend-go/internal/models"
	"subtrackr-backend-go/pkg/cache"
)

// Custom errors for the SubscriptionService.
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrForbiddenAccess      = errors.New("user does not have permission for this action")
	ErrInvalidPrice         = errors.New("price must be non-negative")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidDueDate       = errors.New("invalid due date")
)

// subscriptionService implements the SubscriptionService interface.
type subscriptionService struct {
	subRepo db.SubscriptionRepository
	cache   cache.Cache
}

// NewSubscriptionService creates a new SubscriptionService instance.
func NewSubscriptionService(subRepo db.SubscriptionRepository, c cache.Cache) SubscriptionService {
	return &subscriptionService{
		subRepo: subRepo,
		cache:   c,
	}
}

// CreateSubscription validates and stores a new subscription for the user.
// When no logo is supplied, one is resolved from the bundled logo table by
// display name.
func (s *subscriptionService) CreateSubscription(ctx context.Context, userID string, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	if s.subRepo == nil {
		return nil, errors.New("subscriptionService: subRepo not initialized")
	}

	if req.Price < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidPrice, req.Price)
	}
	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}
	cycle := billing.Cycle(req.Billing)
	if !cycle.Valid() {
		return nil, fmt.Errorf("%w: %q", billing.ErrInvalidCycle, req.Billing)
	}
	subStatus := models.SubscriptionStatus(req.Status)
	if !subStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	// Past-due dates are allowed; only the format is checked.
	if _, err := billing.ParseDate(req.NextDue); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDueDate, err)
	}

	logo := req.Logo
	if logo == "" {
		logo = logos.Lookup(req.Name)
	}

	newSub := &models.Subscription{
		UserID:      userID,
		Name:        req.Name,
		Category:    category,
		Price:       req.Price,
		Billing:     cycle,
		NextDue:     req.NextDue,
		Status:      subStatus,
		Logo:        logo,
		Description: req.Description,
		Website:     req.Website,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	subID, err := s.subRepo.Create(ctx, newSub)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription in repository: %w", err)
	}
	newSub.ID = subID

	s.invalidateDashboard(ctx, userID)
	return newSub, nil
}

// GetSubscriptionByID retrieves a subscription owned by the user.
func (s *subscriptionService) GetSubscriptionByID(ctx context.Context, userID, id string) (*models.Subscription, error) {
	if s.subRepo == nil {
		return nil, errors.New("subscriptionService: subRepo not initialized")
	}

	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrSubscriptionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get subscription '%s' from repository: %w", id, err)
	}

	if sub.UserID != userID {
		return nil, fmt.Errorf("%w: subscription '%s' belongs to another user", ErrForbiddenAccess, id)
	}

	return sub, nil
}

// ListSubscriptions retrieves the user's subscriptions with optional
// category/status equality filters.
func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID string, filters db.SubscriptionFilters) ([]*models.Subscription, error) {
	if s.subRepo == nil {
		return nil, errors.New("subscriptionService: subRepo not initialized")
	}
	if filters.Category != "" && !filters.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, filters.Category)
	}
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, filters.Status)
	}

	subs, err := s.subRepo.ListByUserID(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for user '%s': %w", userID, err)
	}
	return subs, nil
}

// UpdateSubscription applies the provided fields to a subscription owned by
// the user. Absent pointer fields are untouched.
func (s *subscriptionService) UpdateSubscription(ctx context.Context, userID, id string, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	sub, err := s.GetSubscriptionByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Category != nil {
		category := models.Category(*req.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, *req.Category)
		}
		sub.Category = category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidPrice, *req.Price)
		}
		sub.Price = *req.Price
	}
	if req.Billing != nil {
		cycle := billing.Cycle(*req.Billing)
		if !cycle.Valid() {
			return nil, fmt.Errorf("%w: %q", billing.ErrInvalidCycle, *req.Billing)
		}
		sub.Billing = cycle
	}
	if req.NextDue != nil {
		if _, err := billing.ParseDate(*req.NextDue); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDueDate, err)
		}
		sub.NextDue = *req.NextDue
	}
	if req.Status != nil {
		subStatus := models.SubscriptionStatus(*req.Status)
		if !subStatus.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		sub.Status = subStatus
	}
	if req.Logo != nil {
		sub.Logo = *req.Logo
	}
	if req.Description != nil {
		sub.Description = *req.Description
	}
	if req.Website != nil {
		sub.Website = *req.Website
	}
	sub.UpdatedAt = time.Now().UTC()

	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to update subscription '%s': %w", id, err)
	}

	s.invalidateDashboard(ctx, userID)
	return sub, nil
}

// DeleteSubscription removes a subscription owned by the user. Reminders
// referencing the subscription are intentionally left in place; their
// snapshot fields keep rendering after the subscription is gone.
func (s *subscriptionService) DeleteSubscription(ctx context.Context, userID, id string) error {
	if _, err := s.GetSubscriptionByID(ctx, userID, id); err != nil {
		return err
	}

	if err := s.subRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subscription '%s': %w", id, err)
	}

	s.invalidateDashboard(ctx, userID)
	return nil
}

func (s *subscriptionService) invalidateDashboard(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardCacheKey(userID)); err != nil {
		log.Printf("Warning: failed to invalidate dashboard cache for user '%s': %v", userID, err)
	}
}
