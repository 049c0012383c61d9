package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/models"
	"subtrackr-backend-go/pkg/cache"
)

// ErrUserNotFound is returned when a user profile does not exist.
var ErrUserNotFound = errors.New("user not found")

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	cache    cache.Cache
}

// NewUserService creates a new UserService instance. The cache is used to
// invalidate the dashboard summary when the user's budget changes.
func NewUserService(userRepo db.UserRepository, c cache.Cache) UserService {
	return &userService{
		userRepo: userRepo,
		cache:    c,
	}
}

// GetOrCreate retrieves a profile by UID, creating it from the identity
// token's claims when absent. Returns the profile, whether it was created,
// and an error if any.
func (s *userService) GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.User, bool, error) {
	if s.userRepo == nil {
		return nil, false, errors.New("UserRepository not initialized in UserService")
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			newUser := &models.User{
				UID:         uid,
				Email:       email,
				DisplayName: displayName,
				PhotoURL:    photoURL,
				CreatedAt:   time.Now().UTC(),
				UpdatedAt:   time.Now().UTC(),
			}
			if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
				return nil, false, fmt.Errorf("failed to create user (uid: %s) after not found: %w", uid, createErr)
			}
			return newUser, true, nil
		}
		return nil, false, fmt.Errorf("failed to get user by UID '%s' from repository: %w", uid, err)
	}

	return user, false, nil
}

// GetByUID retrieves a profile by Firebase UID.
func (s *userService) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	if s.userRepo == nil {
		return nil, errors.New("UserRepository not initialized in UserService")
	}
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: uid '%s'", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get user by UID '%s' from repository: %w", uid, err)
	}
	return user, nil
}

// UpdateProfile applies the provided fields to the profile. Pointer fields
// left nil are untouched; a present MonthlyBudget of zero is stored as zero,
// which is distinct from no budget.
func (s *userService) UpdateProfile(ctx context.Context, uid string, req models.UpdateUserProfileRequest) (*models.User, error) {
	user, err := s.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	budgetChanged := false
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}
	if req.MonthlyBudget != nil {
		if *req.MonthlyBudget < 0 {
			return nil, fmt.Errorf("%w: monthly budget must be non-negative", ErrInvalidPrice)
		}
		budget := *req.MonthlyBudget
		user.MonthlyBudget = &budget
		budgetChanged = true
	}
	if req.Currency != nil {
		user.Currency = *req.Currency
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user profile '%s': %w", uid, err)
	}

	// The dashboard summary embeds budget figures; drop the cached copy when
	// the budget moves.
	if budgetChanged && s.cache != nil {
		if cacheErr := s.cache.Delete(ctx, dashboardCacheKey(uid)); cacheErr != nil {
			log.Printf("Warning: failed to invalidate dashboard cache for user '%s': %v", uid, cacheErr)
		}
	}

	return user, nil
}
