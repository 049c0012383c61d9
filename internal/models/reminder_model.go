package models

import "time"

// ReminderStatus is the delivery state of a payment reminder.
type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "Pending"
	ReminderSent      ReminderStatus = "Sent"
	ReminderDismissed ReminderStatus = "Dismissed"
)

// Valid reports whether s is one of the recognized reminder statuses.
func (s ReminderStatus) Valid() bool {
	switch s {
	case ReminderPending, ReminderSent, ReminderDismissed:
		return true
	}
	return false
}

// Reminder is a payment reminder for a subscription.
//
// SubscriptionID is a weak reference: the subscription may be renamed or
// deleted independently and the reminder is not updated. SubscriptionName and
// Amount are snapshots taken at creation time and go stale by design.
type Reminder struct {
	ID               string         `json:"id" firestore:"-"` // Document ID, auto-generated
	UserID           string         `json:"userId" firestore:"userId"`
	SubscriptionID   string         `json:"subscriptionId" firestore:"subscriptionId"`
	SubscriptionName string         `json:"subscriptionName" firestore:"subscriptionName"`
	DueDate          string         `json:"dueDate" firestore:"dueDate"`
	Amount           float64        `json:"amount" firestore:"amount"`
	Status           ReminderStatus `json:"status" firestore:"status"`
	CreatedAt        time.Time      `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
