package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"subtrackr-backend-go/internal/config"
	"subtrackr-backend-go/internal/core"
	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/middleware"
	"subtrackr-backend-go/pkg/mailer"
)

// SetupRoutes configures all application routes with their handlers and
// middleware. Global middleware (logging, recovery, CORS) is expected to be
// applied to the router before this is called, typically in main.go.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	userService core.UserService,
	subscriptionService core.SubscriptionService,
	reminderService core.ReminderService,
	dashboardService core.DashboardService,
	mail mailer.Mailer,
) {
	// The Firebase Auth client must be available after db.InitFirestore().
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("CRITICAL_SETUP_ERROR: Firebase Auth client is not initialized. AuthMiddleware cannot be created, and routes will not be set up.")
		panic("Firebase Auth client is nil during route setup. Ensure db.InitFirestore() was called and succeeded.")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient)

	authHandler := NewAuthHandler(userService, firebaseAuthClient, mail)
	userHandler := NewUserHandler(userService)
	subscriptionHandler := NewSubscriptionHandler(subscriptionService)
	reminderHandler := NewReminderHandler(reminderService)
	dashboardHandler := NewDashboardHandler(dashboardService)

	apiV1 := router.Group("/api/v1")
	{
		// --- Authentication Endpoints ---
		authGroup := apiV1.Group("/auth")
		{
			// Public: the reset flow starts before the user can sign in.
			authGroup.POST("/password-reset", authHandler.RequestPasswordReset)
		}

		// --- User Profile Endpoints ---
		usersGroup := apiV1.Group("/users")
		{
			// Called after client-side Firebase sign-in so the backend
			// profile exists before any data is written.
			usersGroup.POST("/initialize", authMW.VerifyToken(), authHandler.InitializeUserProfile)

			usersGroup.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
			usersGroup.PATCH("/me", authMW.VerifyToken(), userHandler.UpdateCurrentUserProfile)
		}

		// --- Subscription Endpoints ---
		subscriptionsGroup := apiV1.Group("/subscriptions", authMW.VerifyToken())
		{
			subscriptionsGroup.POST("", subscriptionHandler.CreateSubscription)
			subscriptionsGroup.GET("", subscriptionHandler.ListSubscriptions)
			subscriptionsGroup.GET("/:subscriptionId", subscriptionHandler.GetSubscription)
			subscriptionsGroup.PUT("/:subscriptionId", subscriptionHandler.UpdateSubscription)
			subscriptionsGroup.DELETE("/:subscriptionId", subscriptionHandler.DeleteSubscription)
		}

		// --- Reminder Endpoints ---
		remindersGroup := apiV1.Group("/reminders", authMW.VerifyToken())
		{
			remindersGroup.POST("", reminderHandler.CreateReminder)
			remindersGroup.GET("", reminderHandler.ListReminders)

			// The static route must be registered alongside the :reminderId
			// routes; Gin resolves /dispatch before the parameterized match.
			remindersGroup.POST("/dispatch", reminderHandler.DispatchDueReminders)

			remindersGroup.GET("/:reminderId", reminderHandler.GetReminder)
			remindersGroup.PUT("/:reminderId", reminderHandler.UpdateReminder)
			remindersGroup.POST("/:reminderId/dismiss", reminderHandler.DismissReminder)
			remindersGroup.DELETE("/:reminderId", reminderHandler.DeleteReminder)
		}

		// --- Dashboard Endpoint ---
		apiV1.GET("/dashboard", authMW.VerifyToken(), dashboardHandler.GetDashboard)
	}

	// --- General Health Check Endpoint ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Subtrackr backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
