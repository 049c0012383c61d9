package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"subtrackr-backend-go/internal/core"
	"subtrackr-backend-go/internal/models"
	"subtrackr-backend-go/pkg/mailer"
)

// passwordResetLinker generates password reset links for an email address.
// *auth.Client from the Firebase Admin SDK satisfies this.
type passwordResetLinker interface {
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// AuthHandler handles authentication related API endpoints.
type AuthHandler struct {
	userService core.UserService
	resetLinker passwordResetLinker
	mail        mailer.Mailer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us core.UserService, linker passwordResetLinker, m mailer.Mailer) *AuthHandler {
	return &AuthHandler{userService: us, resetLinker: linker, mail: m}
}

// InitializeUserProfile handles POST /api/v1/users/initialize.
// Clients call this after a Firebase sign-in so the backend profile exists
// before any subscription data is written. The auth middleware has already
// verified the token and placed the identity claims in the context.
func (h *AuthHandler) InitializeUserProfile(c *gin.Context) {
	rawUserID, exists := c.Get("userID")
	if !exists {
		log.Println("InitializeUserProfile Error: userID not found in context. Auth middleware might not have run or failed.")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}
	firebaseUserID, ok := rawUserID.(string)
	if !ok || firebaseUserID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID format in context"})
		return
	}

	rawUserEmail, _ := c.Get("userEmail")
	email, _ := rawUserEmail.(string)

	rawDisplayName, _ := c.Get("userDisplayName")
	displayName, _ := rawDisplayName.(string)

	rawPhotoURL, _ := c.Get("userPhotoURL")
	photoURL, _ := rawPhotoURL.(string)

	user, created, err := h.userService.GetOrCreate(c.Request.Context(), firebaseUserID, email, displayName, photoURL)
	if err != nil {
		log.Printf("InitializeUserProfile Error: userService.GetOrCreate failed for userID %s: %v", firebaseUserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to initialize user profile"})
		return
	}

	if created {
		c.JSON(http.StatusCreated, user)
	} else {
		c.JSON(http.StatusOK, user)
	}
}

// RequestPasswordReset handles POST /api/v1/auth/password-reset.
// This endpoint is unauthenticated. The response is the same whether or not
// the address belongs to an account, so it cannot be used to probe which
// emails are registered.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	acceptedMsg := "If an account exists for that email, a password reset link has been sent."

	link, err := h.resetLinker.PasswordResetLink(c.Request.Context(), req.Email)
	if err != nil {
		// Unknown address or a transient Firebase failure; either way the
		// caller learns nothing.
		log.Printf("RequestPasswordReset: could not generate reset link for '%s': %v", req.Email, err)
		c.JSON(http.StatusAccepted, SuccessResponse{Message: acceptedMsg})
		return
	}

	body := "<html><p>We received a request to reset your password. " +
		"Use the link below to choose a new one:</p>" +
		"<p><a href=\"" + link + "\">Reset your password</a></p>" +
		"<p>If you did not request this, you can safely ignore this email.</p></html>"
	if err := h.mail.Send(req.Email, "Reset your password", body); err != nil {
		log.Printf("RequestPasswordReset: failed to email reset link to '%s': %v", req.Email, err)
	}

	c.JSON(http.StatusAccepted, SuccessResponse{Message: acceptedMsg})
}
