package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"subtrackr-backend-go/internal/billing"
	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/models"
	"subtrackr-backend-go/pkg/mailer"
	"subtrackr-backend-go/pkg/messagequeue"
)

// Custom errors for the ReminderService.
var (
	ErrReminderNotFound      = errors.New("reminder not found")
	ErrInvalidReminderStatus = errors.New("invalid reminder status")
)

// reminderSentQueue is the broker queue reminder.sent events are published to.
const reminderSentQueue = "reminder.sent"

// reminderSentEvent is the payload published for each dispatched reminder.
type reminderSentEvent struct {
	EventID          string  `json:"eventId"`
	ReminderID       string  `json:"reminderId"`
	UserID           string  `json:"userId"`
	SubscriptionID   string  `json:"subscriptionId"`
	SubscriptionName string  `json:"subscriptionName"`
	DueDate          string  `json:"dueDate"`
	Amount           float64 `json:"amount"`
	SentAt           string  `json:"sentAt"`
}

// reminderService implements the ReminderService interface.
type reminderService struct {
	reminderRepo db.ReminderRepository
	subRepo      db.SubscriptionRepository
	userRepo     db.UserRepository
	mail         mailer.Mailer
	queue        messagequeue.MessageQueue
	// now is swappable for tests; DispatchDue compares due dates against it.
	now func() time.Time
}

// NewReminderService creates a new ReminderService instance.
func NewReminderService(
	rr db.ReminderRepository,
	sr db.SubscriptionRepository,
	ur db.UserRepository,
	m mailer.Mailer,
	mq messagequeue.MessageQueue,
) ReminderService {
	return &reminderService{
		reminderRepo: rr,
		subRepo:      sr,
		userRepo:     ur,
		mail:         m,
		queue:        mq,
		now:          time.Now,
	}
}

// CreateReminder stores a new reminder for the user. SubscriptionName and
// Amount are snapshotted from the referenced subscription at this moment and
// are never re-synced afterwards — renaming or deleting the subscription
// leaves existing reminders as they were.
func (s *reminderService) CreateReminder(ctx context.Context, userID string, req models.CreateReminderRequest) (*models.Reminder, error) {
	if s.reminderRepo == nil || s.subRepo == nil {
		return nil, errors.New("reminderService: component not initialized")
	}

	if _, err := billing.ParseDate(req.DueDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDueDate, err)
	}

	sub, err := s.subRepo.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrSubscriptionNotFound, req.SubscriptionID)
		}
		return nil, fmt.Errorf("failed to get subscription '%s' for reminder: %w", req.SubscriptionID, err)
	}
	if sub.UserID != userID {
		return nil, fmt.Errorf("%w: subscription '%s' belongs to another user", ErrForbiddenAccess, req.SubscriptionID)
	}

	amount := sub.Price
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidPrice, *req.Amount)
		}
		amount = *req.Amount
	}

	newReminder := &models.Reminder{
		UserID:           userID,
		SubscriptionID:   sub.ID,
		SubscriptionName: sub.Name, // snapshot, not kept in sync
		DueDate:          req.DueDate,
		Amount:           amount,
		Status:           models.ReminderPending,
		CreatedAt:        time.Now().UTC(),
	}

	reminderID, err := s.reminderRepo.Create(ctx, newReminder)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder in repository: %w", err)
	}
	newReminder.ID = reminderID

	return newReminder, nil
}

// GetReminderByID retrieves a reminder owned by the user.
func (s *reminderService) GetReminderByID(ctx context.Context, userID, id string) (*models.Reminder, error) {
	if s.reminderRepo == nil {
		return nil, errors.New("reminderService: reminderRepo not initialized")
	}

	reminder, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrReminderNotFound, id)
		}
		return nil, fmt.Errorf("failed to get reminder '%s' from repository: %w", id, err)
	}

	if reminder.UserID != userID {
		return nil, fmt.Errorf("%w: reminder '%s' belongs to another user", ErrForbiddenAccess, id)
	}

	return reminder, nil
}

// ListReminders retrieves the user's reminders ordered by due date. A
// non-empty status narrows the result.
func (s *reminderService) ListReminders(ctx context.Context, userID string, status models.ReminderStatus) ([]*models.Reminder, error) {
	if s.reminderRepo == nil {
		return nil, errors.New("reminderService: reminderRepo not initialized")
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReminderStatus, status)
	}

	reminders, err := s.reminderRepo.ListByUserID(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for user '%s': %w", userID, err)
	}
	return reminders, nil
}

// UpdateReminder applies the provided fields to a reminder owned by the user.
func (s *reminderService) UpdateReminder(ctx context.Context, userID, id string, req models.UpdateReminderRequest) (*models.Reminder, error) {
	reminder, err := s.GetReminderByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.DueDate != nil {
		if _, err := billing.ParseDate(*req.DueDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDueDate, err)
		}
		reminder.DueDate = *req.DueDate
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidPrice, *req.Amount)
		}
		reminder.Amount = *req.Amount
	}
	if req.Status != nil {
		reminderStatus := models.ReminderStatus(*req.Status)
		if !reminderStatus.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidReminderStatus, *req.Status)
		}
		reminder.Status = reminderStatus
	}

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder '%s': %w", id, err)
	}
	return reminder, nil
}

// DismissReminder marks a reminder Dismissed.
func (s *reminderService) DismissReminder(ctx context.Context, userID, id string) (*models.Reminder, error) {
	reminder, err := s.GetReminderByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	reminder.Status = models.ReminderDismissed
	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to dismiss reminder '%s': %w", id, err)
	}
	return reminder, nil
}

// DeleteReminder removes a reminder owned by the user.
func (s *reminderService) DeleteReminder(ctx context.Context, userID, id string) error {
	if _, err := s.GetReminderByID(ctx, userID, id); err != nil {
		return err
	}

	if err := s.reminderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reminder '%s': %w", id, err)
	}
	return nil
}

// DispatchDue finds the user's Pending reminders due on or before today,
// emails each one, publishes a reminder.sent event, and marks it Sent.
// A failed email leaves that reminder Pending for the next dispatch; a
// failed event publish is logged but does not undo the send. After a send,
// the linked subscription's NextDue is rolled forward one billing cycle so
// the schedule keeps moving without a manual edit.
func (s *reminderService) DispatchDue(ctx context.Context, userID string) (int, error) {
	if s.reminderRepo == nil || s.userRepo == nil {
		return 0, errors.New("reminderService: component not initialized")
	}

	user, err := s.userRepo.GetByUID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return 0, fmt.Errorf("%w: uid '%s'", ErrUserNotFound, userID)
		}
		return 0, fmt.Errorf("failed to get user '%s' for dispatch: %w", userID, err)
	}

	pending, err := s.reminderRepo.ListByUserID(ctx, userID, models.ReminderPending)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending reminders for user '%s': %w", userID, err)
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	sent := 0
	for _, reminder := range pending {
		due, err := billing.ParseDate(reminder.DueDate)
		if err != nil {
			// A malformed stored date should not block the rest of the batch.
			log.Printf("Warning: reminder '%s' has unparsable due date %q, skipping", reminder.ID, reminder.DueDate)
			continue
		}
		if due.After(today) {
			continue
		}

		subject := fmt.Sprintf("Payment due: %s", reminder.SubscriptionName)
		body := fmt.Sprintf(
			"<html><p>Your %s payment of %.2f is due on %s.</p></html>",
			reminder.SubscriptionName, reminder.Amount, reminder.DueDate,
		)
		if err := s.mail.Send(user.Email, subject, body); err != nil {
			log.Printf("Warning: failed to email reminder '%s' to '%s': %v", reminder.ID, user.Email, err)
			continue // stays Pending, retried on the next dispatch
		}

		event := reminderSentEvent{
			EventID:          uuid.New().String(),
			ReminderID:       reminder.ID,
			UserID:           reminder.UserID,
			SubscriptionID:   reminder.SubscriptionID,
			SubscriptionName: reminder.SubscriptionName,
			DueDate:          reminder.DueDate,
			Amount:           reminder.Amount,
			SentAt:           s.now().UTC().Format(time.RFC3339),
		}
		if payload, marshalErr := json.Marshal(event); marshalErr == nil {
			if pubErr := s.queue.Publish(reminderSentQueue, payload); pubErr != nil {
				log.Printf("Warning: failed to publish reminder.sent event for '%s': %v", reminder.ID, pubErr)
			}
		}

		reminder.Status = models.ReminderSent
		if err := s.reminderRepo.Update(ctx, reminder); err != nil {
			return sent, fmt.Errorf("failed to mark reminder '%s' as sent: %w", reminder.ID, err)
		}
		sent++

		s.advanceSubscriptionDueDate(ctx, userID, reminder.SubscriptionID, today)
	}

	return sent, nil
}

// advanceSubscriptionDueDate rolls the linked subscription's NextDue forward
// by one billing cycle after its reminder has gone out. A deleted or foreign
// subscription, a non-Active one, or a due date already in the future all
// leave the record untouched, and no failure here disturbs the dispatch run.
func (s *reminderService) advanceSubscriptionDueDate(ctx context.Context, userID, subscriptionID string, today time.Time) {
	sub, err := s.subRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("Warning: failed to load subscription '%s' after dispatch: %v", subscriptionID, err)
		}
		return
	}
	if sub.UserID != userID || sub.Status != models.StatusActive {
		return
	}

	due, err := billing.ParseDate(sub.NextDue)
	if err != nil || due.After(today) {
		return
	}

	next, err := billing.NextDueDate(due, sub.Billing)
	if err != nil {
		log.Printf("Warning: cannot advance due date for subscription '%s': %v", subscriptionID, err)
		return
	}

	sub.NextDue = billing.FormatDate(next)
	sub.UpdatedAt = time.Now().UTC()
	if err := s.subRepo.Update(ctx, sub); err != nil {
		log.Printf("Warning: failed to advance due date for subscription '%s': %v", subscriptionID, err)
	}
}
