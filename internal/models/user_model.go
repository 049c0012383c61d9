package models

import "time"

// User is a user profile stored alongside the Firebase Auth account.
//
// UID doubles as the Firestore document ID. MonthlyBudget is a pointer so
// "no budget set" stays distinguishable from a budget of zero.
type User struct {
	UID           string    `json:"uid" firestore:"uid"` // Firebase Auth UID, also the document ID
	Email         string    `json:"email" firestore:"email"`
	DisplayName   string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhotoURL      string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	MonthlyBudget *float64  `json:"monthlyBudget,omitempty" firestore:"monthlyBudget,omitempty"`
	Currency      string    `json:"currency,omitempty" firestore:"currency,omitempty"` // Preferred display currency; not applied to conversion
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
