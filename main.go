// File: urbanserve/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"urbanserve/config"
	"urbanserve/database"
	"urbanserve/database/repository"
	"urbanserve/handlers"
	"urbanserve/middleware"
	"urbanserve/routes"
	"urbanserve/services/booking"
	ai "urbanserve/services/intelligence"
	"urbanserve/services/matching"
	"urbanserve/services/provider"
	"urbanserve/services/rating"
	"urbanserve/services/storage"
	"urbanserve/services/user"
	"urbanserve/services/verification"
	"urbanserve/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Storage backend: Cloudinary when credentials are present, local disk
	// otherwise.
	var storageService storage.StorageService
	cloudStorage, err := storage.NewCloudinaryStorage(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err == nil {
		storageService = cloudStorage
	} else {
		uploadDir := config.AppConfig.UploadDir
		if uploadDir == "" {
			uploadDir = "uploads"
		}
		localStorage, err := storage.NewLocalStorage(uploadDir)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize local storage: %v", err)
		}
		storageService = localStorage
		logger.Sugar().Infof("main: using local document storage at %s", uploadDir)
	}

	aiTimeout := time.Duration(config.AppConfig.AITimeoutSeconds) * time.Second

	// The server starts without an API key; verification then rejects and
	// chat answers 503 until one is configured.
	var oracle verification.ScoringOracle
	oracle, err = verification.NewGeminiOracle(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		if !errors.Is(err, verification.ErrAPIKeyMissing) {
			logger.Sugar().Fatalf("main: failed to initialize verification oracle: %v", err)
		}
		logger.Sugar().Warn("main: GEMINI_API_KEY not set, AI verification disabled")
		oracle = verification.DisabledOracle{}
	}

	var classifier ai.Classifier
	classifier, err = ai.NewGeminiClassifier(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		if !errors.Is(err, ai.ErrAPIKeyMissing) {
			logger.Sugar().Fatalf("main: failed to initialize chat classifier: %v", err)
		}
		classifier = ai.DisabledClassifier{}
	}

	// Repositories.
	userRepo := repository.NewGormUserRepo(database.DB)
	workerRepo := repository.NewGormWorkerProfileRepo(database.DB)
	tutorRepo := repository.NewGormTutorProfileRepo(database.DB)
	bookingRepo := repository.NewGormBookingRepo(database.DB)
	ratingRepo := repository.NewGormRatingRepo(database.DB)
	auditRepo := repository.NewGormAuditLogRepo(database.DB)

	// Services.
	userService := &user.DefaultUserService{UserRepo: userRepo}
	verificationService := verification.NewService(oracle, aiTimeout)
	providerService := &provider.DefaultProviderService{
		WorkerRepo: workerRepo,
		TutorRepo:  tutorRepo,
		AuditRepo:  auditRepo,
		Verifier:   verificationService,
		Storage:    storageService,
	}
	matchingService := &matching.DefaultMatchingService{
		WorkerRepo: workerRepo,
		TutorRepo:  tutorRepo,
		Cache:      utils.GetCacheClient(),
	}
	chatService := ai.NewDefaultChatService(classifier, matchingService, aiTimeout)
	bookingService := &booking.DefaultBookingService{
		UserRepo:       userRepo,
		WorkerRepo:     workerRepo,
		TutorRepo:      tutorRepo,
		BookingRepo:    bookingRepo,
		RatingRepo:     ratingRepo,
		CommissionRate: config.AppConfig.CommissionRate,
	}
	ratingService := &rating.DefaultRatingService{
		RatingRepo: ratingRepo,
		WorkerRepo: workerRepo,
	}

	if !config.IsProduction() {
		if _, err := database.SeedProviders(database.DB); err != nil {
			logger.Sugar().Warnf("main: dev seed failed: %v", err)
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		RegisterHandler: handlers.RegisterHandler(userService),
		LoginHandler:    handlers.LoginHandler(userService),
		MeHandler:       handlers.MeHandler(),

		ServiceTypesHandler: handlers.ServiceTypesHandler(),

		CreateWorkerProfileHandler: handlers.CreateWorkerProfileHandler(providerService),
		CreateTutorProfileHandler:  handlers.CreateTutorProfileHandler(providerService),
		GetWorkerProfileHandler:    handlers.GetWorkerProfileHandler(providerService),
		GetTutorProfileHandler:     handlers.GetTutorProfileHandler(providerService),
		SearchProvidersHandler:     handlers.SearchProvidersHandler(providerService),

		CreateBookingHandler:       handlers.CreateBookingHandler(bookingService),
		ListBookingsHandler:        handlers.ListBookingsHandler(bookingService),
		UpdateBookingStatusHandler: handlers.UpdateBookingStatusHandler(bookingService),

		CreateRatingHandler: handlers.CreateRatingHandler(ratingService),

		ChatHandler: handlers.ChatHandler(chatService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
