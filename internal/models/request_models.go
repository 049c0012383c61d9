package models

// CreateSubscriptionRequest is the request body for creating a subscription.
type CreateSubscriptionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=Entertainment Productivity Storage Other"`
	Price       float64 `json:"price" binding:"min=0"`
	Billing     string  `json:"billing" binding:"required,oneof=Weekly Monthly Yearly"`
	NextDue     string  `json:"nextDue" binding:"required"`
	Status      string  `json:"status" binding:"required,oneof=Active Paused Cancelled"`
	Logo        string  `json:"logo,omitempty"`
	Description string  `json:"description,omitempty"`
	Website     string  `json:"website,omitempty"`
}

// UpdateSubscriptionRequest is the request body for updating a subscription.
// Pointers distinguish "not provided" from an explicit zero value.
type UpdateSubscriptionRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Billing     *string  `json:"billing,omitempty"`
	NextDue     *string  `json:"nextDue,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Logo        *string  `json:"logo,omitempty"`
	Description *string  `json:"description,omitempty"`
	Website     *string  `json:"website,omitempty"`
}

// CreateReminderRequest is the request body for creating a reminder.
// Amount is optional; when omitted it is snapshotted from the referenced
// subscription's current price.
type CreateReminderRequest struct {
	SubscriptionID string   `json:"subscriptionId" binding:"required"`
	DueDate        string   `json:"dueDate" binding:"required"`
	Amount         *float64 `json:"amount,omitempty"`
}

// UpdateReminderRequest is the request body for updating a reminder.
type UpdateReminderRequest struct {
	DueDate *string  `json:"dueDate,omitempty"`
	Amount  *float64 `json:"amount,omitempty"`
	Status  *string  `json:"status,omitempty"`
}

// UpdateUserProfileRequest is the request body for updating the current
// user's profile. A present-but-zero MonthlyBudget sets the budget to zero;
// an absent field leaves it untouched.
type UpdateUserProfileRequest struct {
	DisplayName   *string  `json:"displayName,omitempty"`
	PhotoURL      *string  `json:"photoURL,omitempty"`
	MonthlyBudget *float64 `json:"monthlyBudget,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
}

// PasswordResetRequest is the request body for requesting a password reset
// email.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}
