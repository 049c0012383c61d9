package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"subtrackr-backend-go/internal/billing"
	"subtrackr-backend-go/internal/core"
	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/models"
)

// SubscriptionHandler handles subscription API endpoints.
type SubscriptionHandler struct {
	subscriptionService core.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(ss core.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: ss}
}

// mapSubscriptionErrorToStatus maps errors from core.SubscriptionService to
// HTTP status codes and ErrorResponse.
func mapSubscriptionErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrSubscriptionNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrSubscriptionNotFound.Error()}
	case errors.Is(err, core.ErrForbiddenAccess):
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: core.ErrForbiddenAccess.Error()}
	case errors.Is(err, core.ErrInvalidPrice),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidDueDate),
		errors.Is(err, billing.ErrInvalidCycle):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: "Invalid subscription data", Details: err.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// CreateSubscription handles POST /subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	createdSub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), userID, req)
	if err != nil {
		mapSubscriptionErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdSub)
}

// GetSubscription handles GET /subscriptions/:subscriptionId
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subscriptionID := c.Param("subscriptionId")
	if subscriptionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Subscription ID is required"})
		return
	}

	sub, err := h.subscriptionService.GetSubscriptionByID(c.Request.Context(), userID, subscriptionID)
	if err != nil {
		mapSubscriptionErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ListSubscriptions handles GET /subscriptions?category=&status=
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := db.SubscriptionFilters{
		Category: models.Category(c.Query("category")),
		Status:   models.SubscriptionStatus(c.Query("status")),
	}

	subs, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), userID, filters)
	if err != nil {
		mapSubscriptionErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// UpdateSubscription handles PUT /subscriptions/:subscriptionId. Absent
// pointer fields are left untouched.
func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subscriptionID := c.Param("subscriptionId")
	if subscriptionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Subscription ID is required"})
		return
	}

	var req models.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	updatedSub, err := h.subscriptionService.UpdateSubscription(c.Request.Context(), userID, subscriptionID, req)
	if err != nil {
		mapSubscriptionErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedSub)
}

// DeleteSubscription handles DELETE /subscriptions/:subscriptionId.
// Reminders that reference the subscription survive the delete.
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subscriptionID := c.Param("subscriptionId")
	if subscriptionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Subscription ID is required"})
		return
	}

	if err := h.subscriptionService.DeleteSubscription(c.Request.Context(), userID, subscriptionID); err != nil {
		mapSubscriptionErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
