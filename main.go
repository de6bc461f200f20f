package main

import (
	"context"
	"log"
	"net/http"

	"jobboard/config"
	"jobboard/controllers"
	"jobboard/jobs"
	"jobboard/repository"
	"jobboard/routes"
	"jobboard/services"
	"jobboard/services/logger"
	"jobboard/services/notification"
	"jobboard/validator"

	"github.com/gin-gonic/gin"
)

// @title                      Jobboard API
// @version                    1.0
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appLogger := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))

	if err := validator.RegisterBindingTags(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	ctx := context.Background()
	router, m, c, err := config.InitApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	userRepo := repository.NewUserRepository(config.DB)
	jobRepo := repository.NewJobRepository(config.DB)
	appRepo := repository.NewApplicationRepository(config.DB)
	engagementRepo := repository.NewEngagementRepository(config.DB)
	notificationRepo := repository.NewNotificationRepository(config.DB)
	announcementRepo := repository.NewAnnouncementRepository(config.DB)

	melodyService := notification.NewMelodyService(m)
	sinks := []notification.Sink{melodyService}
	if cfg.RabbitMQURL != "" {
		amqpSink, err := notification.DialAMQP(cfg.RabbitMQURL, cfg.NotificationQueue)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpSink.Close()
		sinks = append(sinks, amqpSink)
	}
	notifier := notification.NewService(notification.ServiceOptions{
		Repo:   notificationRepo,
		Sinks:  sinks,
		Logger: appLogger.With("component", "notification"),
	})

	var store services.BlobStore = services.NewDiskStore(cfg.UploadDir)
	if config.Cloudinary != nil {
		store = services.NewCloudinaryStore(config.Cloudinary)
	}
	uploadService := services.NewUploadService(store, cfg.UploadMaxBytes)

	tokenService := services.NewTokenService(cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	authService := services.NewAuthService(services.AuthServiceOptions{
		Users:          userRepo,
		Tokens:         tokenService,
		GoogleClientID: cfg.GoogleClientID,
		Logger:         appLogger,
	})
	userService := services.NewUserService(services.UserServiceOptions{
		Users:    userRepo,
		Notifier: notifier,
		Logger:   appLogger,
	})
	jobService := services.NewJobService(services.JobServiceOptions{
		Jobs:         jobRepo,
		Applications: appRepo,
		Engagement:   engagementRepo,
		Notifier:     notifier,
		Logger:       appLogger,
	})
	applicationService := services.NewApplicationService(services.ApplicationServiceOptions{
		Applications:      appRepo,
		Jobs:              jobRepo,
		Users:             userRepo,
		Notifier:          notifier,
		Logger:            appLogger,
		StrictTransitions: cfg.StrictTransitions,
	})
	engagementService := services.NewEngagementService(services.EngagementServiceOptions{
		Engagement: engagementRepo,
		Jobs:       jobRepo,
		Users:      userRepo,
		Tracker:    services.NewViewTracker(config.RedisClient),
		Logger:     appLogger,
		Location:   cfg.Location,
	})
	feedService := services.NewFeedService(services.FeedServiceOptions{
		Notifications: notificationRepo,
		Announcements: announcementRepo,
		Redis:         config.RedisClient,
		Broadcaster:   melodyService,
		Logger:        appLogger,
	})
	insightService := services.NewInsightService(services.InsightServiceOptions{
		Users:        userRepo,
		Jobs:         jobRepo,
		Applications: appRepo,
		Engagement:   engagementRepo,
		Location:     cfg.Location,
	})

	if err := jobs.InitCronJobs(c, jobService, engagementService, cfg.ViewRetentionDays, appLogger.With("component", "cron")); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer c.Stop()

	routes.SetupRoutes(router, routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		User:         controllers.NewUserController(userService, uploadService),
		Job:          controllers.NewJobController(jobService, engagementService, appLogger),
		Application:  controllers.NewApplicationController(applicationService, uploadService),
		Engagement:   controllers.NewEngagementController(engagementService),
		Notification: controllers.NewNotificationController(feedService),
		Insight:      controllers.NewInsightController(insightService),
	}, tokenService, appLogger)

	config.InitWebSocket(router, m, tokenService)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	appLogger.Info("Server starting on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
