package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"subtrackr-backend-go/internal/core"
	"subtrackr-backend-go/internal/models"
)

// ReminderHandler handles payment reminder API endpoints.
type ReminderHandler struct {
	reminderService core.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(rs core.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: rs}
}

// mapReminderErrorToStatus maps errors from core.ReminderService to HTTP
// status codes and ErrorResponse.
func mapReminderErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrReminderNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrReminderNotFound.Error()}
	case errors.Is(err, core.ErrSubscriptionNotFound):
		// A reminder can only be created against an existing subscription.
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrSubscriptionNotFound.Error()}
	case errors.Is(err, core.ErrForbiddenAccess):
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: core.ErrForbiddenAccess.Error()}
	case errors.Is(err, core.ErrUserNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: "User profile not found"}
	case errors.Is(err, core.ErrInvalidPrice),
		errors.Is(err, core.ErrInvalidDueDate),
		errors.Is(err, core.ErrInvalidReminderStatus):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: "Invalid reminder data", Details: err.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// CreateReminder handles POST /reminders
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	createdReminder, err := h.reminderService.CreateReminder(c.Request.Context(), userID, req)
	if err != nil {
		mapReminderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdReminder)
}

// GetReminder handles GET /reminders/:reminderId
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reminderID := c.Param("reminderId")
	if reminderID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Reminder ID is required"})
		return
	}

	reminder, err := h.reminderService.GetReminderByID(c.Request.Context(), userID, reminderID)
	if err != nil {
		mapReminderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// ListReminders handles GET /reminders?status=
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status := models.ReminderStatus(c.Query("status"))
	reminders, err := h.reminderService.ListReminders(c.Request.Context(), userID, status)
	if err != nil {
		mapReminderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// UpdateReminder handles PUT /reminders/:reminderId
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reminderID := c.Param("reminderId")
	if reminderID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Reminder ID is required"})
		return
	}

	var req models.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	updatedReminder, err := h.reminderService.UpdateReminder(c.Request.Context(), userID, reminderID, req)
	if err != nil {
		mapReminderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedReminder)
}

// DismissReminder handles POST /reminders/:reminderId/dismiss
func (h *ReminderHandler) DismissReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reminderID := c.Param("reminderId")
	if reminderID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Reminder ID is required"})
		return
	}

	reminder, err := h.reminderService.DismissReminder(c.Request.Context(), userID, reminderID)
	if err != nil {
		mapReminderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// DeleteReminder handles DELETE /reminders/:reminderId
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reminderID := c.Param("reminderId")
	if reminderID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Reminder ID is required"})
		return
	}

	if err := h.reminderService.DeleteReminder(c.Request.Context(), userID, reminderID); err != nil {
		mapReminderErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DispatchDueReminders handles POST /reminders/dispatch.
// It sends every Pending reminder due on or before today for the current
// user and reports how many went out.
func (h *ReminderHandler) DispatchDueReminders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dispatched, err := h.reminderService.DispatchDue(c.Request.Context(), userID)
	if err != nil {
		mapReminderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, DispatchResponse{Dispatched: dispatched})
}
