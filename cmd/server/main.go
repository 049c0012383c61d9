package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"subtrackr-backend-go/internal/api"
	"subtrackr-backend-go/internal/config"
	"subtrackr-backend-go/internal/core"
	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/middleware"
	"subtrackr-backend-go/pkg/cache"
	"subtrackr-backend-go/pkg/mailer"
	"subtrackr-backend-go/pkg/messagequeue"
)

func main() {
	// --- 1. Load .env (optional, local development convenience) ---
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	// --- 2. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 3. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 4. Initialize Firebase Admin SDK (Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore client is nil after initialization. Application cannot start.")
	}
	if firebaseAuthClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase Auth client is nil after initialization. Application cannot start.")
	}

	// --- 5. Initialize Optional Infrastructure (cache, broker, mail) ---
	// Each of these degrades to a no-op when unconfigured so the API still
	// serves; only the dashboard cache, reminder events, and outbound mail
	// are lost.
	summaryCache := cache.NewNoop()
	if appConfig.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(initCtx, cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Warn("Redis cache unavailable, dashboard caching disabled", zap.Error(err))
		} else {
			summaryCache = redisCache
			zapLogger.Info("Redis cache connected", zap.String("address", appConfig.RedisAddr))
		}
	} else {
		zapLogger.Info("REDIS_ADDR not set, dashboard caching disabled.")
	}

	eventQueue := messagequeue.NewNoop()
	if appConfig.RabbitMQURL != "" {
		rabbitQueue, err := messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.RabbitMQURL})
		if err != nil {
			zapLogger.Warn("RabbitMQ unavailable, reminder events disabled", zap.Error(err))
		} else {
			eventQueue = rabbitQueue
			defer func() {
				if err := eventQueue.Close(); err != nil {
					zapLogger.Warn("Failed to close message queue connection", zap.Error(err))
				}
			}()
			zapLogger.Info("RabbitMQ connected.")
		}
	} else {
		zapLogger.Info("RABBITMQ_URL not set, reminder events disabled.")
	}

	mail := mailer.NewNoop()
	if appConfig.SMTPHost != "" {
		smtpMailer, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     appConfig.SMTPHost,
			Port:     appConfig.SMTPPort,
			Username: appConfig.SMTPUser,
			Password: appConfig.SMTPPass,
			Sender:   appConfig.SMTPSender,
		})
		if err != nil {
			zapLogger.Warn("SMTP mailer misconfigured, outbound mail disabled", zap.Error(err))
		} else {
			mail = smtpMailer
			zapLogger.Info("SMTP mailer configured", zap.String("host", appConfig.SMTPHost))
		}
	} else {
		zapLogger.Info("SMTP_HOST not set, outbound mail disabled.")
	}

	// --- 6. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	subscriptionRepo := db.NewFirestoreSubscriptionRepository(firestoreClient)
	reminderRepo := db.NewFirestoreReminderRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 7. Initialize Services ---
	userService := core.NewUserService(userRepo, summaryCache)
	subscriptionService := core.NewSubscriptionService(subscriptionRepo, summaryCache)
	reminderService := core.NewReminderService(reminderRepo, subscriptionRepo, userRepo, mail, eventQueue)
	dashboardService := core.NewDashboardService(subscriptionRepo, userRepo, summaryCache)
	zapLogger.Info("Core services initialized successfully.")

	// --- 8. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 9. Apply Global Middleware (order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))

	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 10. Setup API Routes ---
	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		userService,
		subscriptionService,
		reminderService,
		dashboardService,
		mail,
	)

	// --- 11. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 12. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zapLogger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
