package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subtrackhq/subtrack/config"
	repository "github.com/subtrackhq/subtrack/internal/database/postgres"
	cache "github.com/subtrackhq/subtrack/internal/database/redis"
	"github.com/subtrackhq/subtrack/internal/service"
	"github.com/subtrackhq/subtrack/internal/transport"
	"github.com/subtrackhq/subtrack/internal/worker"

	"github.com/subtrackhq/subtrack/pkg/email"
	"github.com/subtrackhq/subtrack/pkg/paddle"
	"github.com/subtrackhq/subtrack/pkg/postgres"
	"github.com/subtrackhq/subtrack/pkg/queue"
	"github.com/subtrackhq/subtrack/pkg/redis"
	"github.com/subtrackhq/subtrack/pkg/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	preferencesRepo := repository.NewPreferencesRepository(db)

	// Initialize Redis cache and queue
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()

	notificationCache := cache.NewNotificationCache(redisClient, cfg.Redis.UnreadCountTTL)

	var taskPublisher service.TaskPublisher
	var redisQueue queue.Queue

	redisQueue, err = queue.NewRedisQueue(redisClient, queue.DefaultRedisQueueConfig(), nil, nil)
	if err != nil {
		logrus.Errorf("Failed to initialize Redis queue: %v. Continuing without email dispatch...", err)
		redisQueue = nil
	} else {
		logrus.Info("Redis queue initialized")
		taskPublisher = service.NewQueueAdapter(redisQueue)
	}

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, preferencesRepo, userRepo, notificationCache, taskPublisher)
	authService := service.NewAuthService(userRepo, taskPublisher, &cfg.Auth)
	preferencesService := service.NewPreferencesService(preferencesRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, planRepo, notificationService)
	billingService := service.NewBillingService(planRepo, notificationService)
	reminderService := service.NewReminderService(subscriptionRepo, preferencesRepo, notificationService, notificationCache)

	// Start queue consumer if the queue came up
	if redisQueue != nil {
		var sender email.Sender = email.NopSender{}
		if cfg.Email.Enabled {
			sender = email.NewSendGridSender(&cfg.Email)
		}
		emailHandler := queue.NewEmailTaskHandler(sender)

		go func() {
			if err := redisQueue.Subscribe(context.Background(), emailHandler.HandleTask); err != nil {
				logrus.Errorf("Queue subscriber error: %v", err)
			}
		}()
		logrus.Info("Queue subscriber started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Renewal reminders sweep on the worker interval
	reminderWorker := worker.NewRenewalReminderWorker(reminderService, cfg.Worker.ReminderInterval)
	go reminderWorker.Start(ctx)
	logrus.Info("Renewal reminder worker started")

	// Overdue payments are checked more often than renewals
	overdueScheduler := scheduler.NewScheduler("overdue-alerts", reminderService.GenerateOverdueAlerts, time.Hour)
	go overdueScheduler.Start(ctx)
	logrus.Info("Overdue alert scheduler started")

	// Initialize handlers
	paddleClient := paddle.NewClient(cfg.Paddle.APIToken, cfg.Paddle.BaseURL)

	authHandler := transport.NewAuthHandler(authService)
	notificationHandler := transport.NewNotificationHandler(notificationService)
	preferencesHandler := transport.NewPreferencesHandler(preferencesService)
	subscriptionHandler := transport.NewSubscriptionHandler(subscriptionService)
	webhookHandler := transport.NewWebhookHandler(billingService, paddleClient, cfg.Paddle.WebhookSecret)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := transport.InitRoutes(
		authHandler,
		notificationHandler,
		preferencesHandler,
		subscriptionHandler,
		webhookHandler,
		authService,
		cfg.Server.Timeout,
	)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if redisQueue != nil {
		if err := redisQueue.Close(); err != nil {
			logrus.Errorf("error occured on queue shutdown: %s", err.Error())
		}
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
