package models

import (
	"time"

	"subtrackr-backend-go/internal/billing"
)

// Category is the fixed classification of a subscription.
type Category string

const (
	CategoryEntertainment Category = "Entertainment"
	CategoryProductivity  Category = "Productivity"
	CategoryStorage       Category = "Storage"
	CategoryOther         Category = "Other"
)

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryEntertainment, CategoryProductivity, CategoryStorage, CategoryOther:
		return true
	}
	return false
}

// SubscriptionStatus is the lifecycle state of a subscription. Only Active
// subscriptions contribute to spend aggregates.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "Active"
	StatusPaused    SubscriptionStatus = "Paused"
	StatusCancelled SubscriptionStatus = "Cancelled"
)

// Valid reports whether s is one of the recognized statuses.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCancelled:
		return true
	}
	return false
}

// Subscription is a recurring charge tracked by a user.
//
// NextDue is a calendar date (billing.DateLayout) with no time component.
// Past-due dates are valid and represent overdue bills.
type Subscription struct {
	ID          string             `json:"id" firestore:"-"` // Document ID, auto-generated
	UserID      string             `json:"userId" firestore:"userId"`
	Name        string             `json:"name" firestore:"name"`
	Category    Category           `json:"category" firestore:"category"`
	Price       float64            `json:"price" firestore:"price"`
	Billing     billing.Cycle      `json:"billing" firestore:"billing"`
	NextDue     string             `json:"nextDue" firestore:"nextDue"`
	Status      SubscriptionStatus `json:"status" firestore:"status"`
	Logo        string             `json:"logo,omitempty" firestore:"logo,omitempty"`
	Description string             `json:"description,omitempty" firestore:"description,omitempty"`
	Website     string             `json:"website,omitempty" firestore:"website,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time          `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
