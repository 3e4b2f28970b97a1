package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitsage/coach-app/internal/api"
	"fitsage/coach-app/internal/config"
	"fitsage/coach-app/internal/repository/mongo"
	"fitsage/coach-app/internal/service"
	"fitsage/coach-app/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	logger.Info("starting coach app server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}
	logger.Info("configuration loaded")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		logger.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureDailyCheckinIndexes(ctx, appDB.Collection("daily_checkins"))
		mongo.EnsureSessionLogIndexes(ctx, appDB.Collection("session_logs"))
		logger.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	checkinRepo := mongo.NewMongoDailyCheckinRepository(appDB)
	foodRepo := mongo.NewMongoFoodDiaryRepository(appDB)
	waterRepo := mongo.NewMongoWaterLogRepository(appDB)
	sessionRepo := mongo.NewMongoSessionLogRepository(appDB)
	weeklyRepo := mongo.NewMongoWeeklyCheckinRepository(appDB)
	messageRepo := mongo.NewMongoCoachingMessageRepository(appDB)

	// --- Initialize Text Generation ---
	generator, err := service.NewGeminiGenerator(context.Background(), cfg.Gemini)
	if err != nil {
		logger.Fatal("failed to initialize text generator", zap.Error(err))
	}
	keyConfigured := cfg.Gemini.APIKey != ""

	weeklyPolicy := service.RetryPolicy{
		MaxAttempts: cfg.Gemini.MaxAttempts,
		BaseDelay:   cfg.Gemini.BaseDelay,
	}
	// Daily nudges are cheap to regenerate, so their backoff starts shorter.
	dailyPolicy := service.RetryPolicy{
		MaxAttempts: cfg.Gemini.MaxAttempts,
		BaseDelay:   500 * time.Millisecond,
	}
	weeklyClient := service.NewGenerationClient(generator, weeklyPolicy, keyConfigured, logger)
	dailyClient := service.NewGenerationClient(generator, dailyPolicy, keyConfigured, logger)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	trackerService := service.NewTrackerService(checkinRepo, foodRepo, waterRepo, sessionRepo, weeklyRepo, fileStorage)
	profileService := service.NewProfileService(userRepo)
	weeklyAggregator := service.NewWeeklyAggregator(userRepo, checkinRepo, foodRepo, waterRepo, sessionRepo, weeklyRepo, messageRepo, logger)
	dailyAggregator := service.NewDailyAggregator(userRepo, checkinRepo, foodRepo, waterRepo, sessionRepo, weeklyRepo, logger)
	coachService := service.NewCoachService(weeklyAggregator, dailyAggregator, weeklyClient, dailyClient, messageRepo, logger)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, authService, trackerService, profileService, coachService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("server starting", zap.String("address", cfg.Server.Address))

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

func newLogger() *zap.Logger {
	zapConfig := zap.NewProductionConfig()
	logger, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
