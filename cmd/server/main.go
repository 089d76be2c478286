package main

import (
	"alcyxob/coach-app/internal/api"
	"alcyxob/coach-app/internal/config"
	"alcyxob/coach-app/internal/repository/mongo"
	"alcyxob/coach-app/internal/service"
	"alcyxob/coach-app/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	logger.Info("Starting Coach App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatalw("Could not load config", "error", err)
	}
	logger.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatalw("Could not connect to MongoDB", "error", err)
	}
	defer func() {
		logger.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Errorw("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureCoachIndexes(ctx, appDB.Collection("coaches"))
		mongo.EnsureAthleteIndexes(ctx, appDB.Collection("athletes"))
		mongo.EnsurePlanTemplateIndexes(ctx, appDB.Collection("plan_templates"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureWeekIndexes(ctx, appDB.Collection("weeks"))
		mongo.EnsureDayIndexes(ctx, appDB.Collection("days"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureWorkoutStepIndexes(ctx, appDB.Collection("workout_steps"))
		mongo.EnsureAthletePlanIndexes(ctx, appDB.Collection("athlete_plans"))
		mongo.EnsureConversationIndexes(ctx, appDB.Collection("conversations"))
		mongo.EnsureMessageIndexes(ctx, appDB.Collection("messages"))
		logger.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatalw("Failed to initialize S3 storage", "error", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	coachRepo := mongo.NewMongoCoachRepository(appDB)
	athleteRepo := mongo.NewMongoAthleteRepository(appDB)
	templateRepo := mongo.NewMongoPlanTemplateRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	weekRepo := mongo.NewMongoWeekRepository(appDB)
	dayRepo := mongo.NewMongoDayRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	stepRepo := mongo.NewMongoWorkoutStepRepository(appDB)
	athletePlanRepo := mongo.NewMongoAthletePlanRepository(appDB)
	conversationRepo := mongo.NewMongoConversationRepository(appDB)
	messageRepo := mongo.NewMongoMessageRepository(appDB)
	txManager := mongo.NewMongoTransactionManager(dbClient)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, coachRepo, athleteRepo, txManager, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, fileStorage)
	coachService := service.NewCoachService(coachRepo, userRepo)
	templateService := service.NewTemplateService(templateRepo, coachRepo, weekRepo, dayRepo, workoutRepo, stepRepo, txManager)
	notificationService := service.NewNotificationService(planRepo, coachRepo, athleteRepo, userRepo, conversationRepo, messageRepo, logger)
	planService := service.NewPlanService(templateRepo, planRepo, athleteRepo, athletePlanRepo, weekRepo, dayRepo, workoutRepo, stepRepo, txManager, notificationService)
	chatService := service.NewChatService(conversationRepo, messageRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	api.SetupRoutes(router, cfg.JWT.Secret, authService, userService, coachService, templateService, planService, chatService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Infow("Server starting", "address", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("ListenAndServe error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatalw("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting.")
}
