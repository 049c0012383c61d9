package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"subtrackr-backend-go/internal/billing"
	"subtrackr-backend-go/internal/core"
)

// DashboardHandler handles the dashboard aggregate endpoint.
type DashboardHandler struct {
	dashboardService core.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds core.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetDashboard handles GET /dashboard. It returns the user's spend summary
// (monthly total, active count, category breakdown, budget figures) together
// with subscriptions renewing within the next week.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
		case errors.Is(err, billing.ErrInvalidCycle):
			// A stored subscription with an unknown cycle poisons the whole
			// summary rather than being silently skipped.
			log.Printf("GetDashboard: aggregate failed for userID %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute dashboard summary"})
		default:
			log.Printf("Internal Server Error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		}
		return
	}
	c.JSON(http.StatusOK, data)
}
