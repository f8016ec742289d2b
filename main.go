package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyago/config"
	"voyago/cron"
	"voyago/database"
	profileRepo "voyago/database/repository/profile"
	tripRepo "voyago/database/repository/trip"
	"voyago/handlers"
	"voyago/middleware"
	"voyago/routes"
	"voyago/services/alerts"
	"voyago/services/planner"
	"voyago/services/search"
	"voyago/services/session"
	"voyago/services/storage"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	attachmentStore, err := storage.NewCloudinaryStore(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize attachment storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	profiles := profileRepo.NewMongoProfileRepo()
	trips := tripRepo.NewMongoTripRepo()

	// Upstream clients.
	genaiClient, err := planner.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}

	plannerSvc := &planner.DefaultPlannerService{
		GenAI:         genaiClient,
		Flights:       search.NewHTTPFlightProvider(config.AppConfig.FlightAPIURL, config.AppConfig.FlightAPIKey),
		Stays:         search.NewHTTPStayProvider(config.AppConfig.HotelAPIURL, config.AppConfig.HotelAPIKey),
		Cars:          search.NewHTTPCarProvider(config.AppConfig.CarAPIURL, config.AppConfig.CarAPIKey),
		Profiles:      profiles,
		Trips:         trips,
		Retry:         planner.DefaultRetryPolicy,
		SearchTimeout: time.Duration(config.AppConfig.SearchTimeoutSecs) * time.Second,
	}

	sessionStore := session.NewRedisStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMins)*time.Minute,
	)
	alertStore := alerts.NewRedisStore(utils.GetCacheClient(), 72*time.Hour)
	weatherClient := alerts.NewOpenMeteoClient(config.AppConfig.WeatherAPIURL)

	queue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queue.Close()

	// Background disruption monitor.
	cron.InitDisruptionWorker(trips, weatherClient, alertStore)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Chat:        handlers.NewChatHandler(plannerSvc, sessionStore, storage.NewHTTPAttachmentFetcher()),
		Profile:     handlers.NewProfileHandler(profiles),
		Trips:       handlers.NewTripHandler(trips, queue),
		Alerts:      handlers.NewAlertHandler(alertStore),
		Attachments: handlers.NewAttachmentHandler(attachmentStore),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
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

	// Wait for an OS signal to gracefully shutdown.
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
