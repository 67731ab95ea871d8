package transport

import (
	"net/http"
	"time"

	"github.com/subtrackhq/subtrack/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(
	authHandler *AuthHandler,
	notificationHandler *NotificationHandler,
	preferencesHandler *PreferencesHandler,
	subscriptionHandler *SubscriptionHandler,
	webhookHandler *WebhookHandler,
	tokenParser middleware.TokenParser,
	requestTimeout time.Duration,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(requestTimeout))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/email-exists", authHandler.EmailExists)
			auth.POST("/password-reset", authHandler.RequestPasswordReset)
			auth.GET("/google", authHandler.GoogleRedirect)
		}

		// Paddle webhook routes (authenticated by signature, not JWT)
		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/paddle", webhookHandler.HandlePaddleWebhook)
			webhooks.GET("/paddle", webhookHandler.ProxyPaddleLookup)
		}

		protected := api.Group("")
		protected.Use(middleware.Auth(tokenParser))
		{
			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationHandler.List)
				notifications.POST("/check", notificationHandler.CheckForNew)
				notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
				notifications.PUT("/read-all", notificationHandler.MarkAllAsRead)
				notifications.DELETE("/:id", notificationHandler.Delete)
				notifications.GET("/unread-count", notificationHandler.UnreadCount)
				notifications.GET("/urgent", notificationHandler.Urgent)
			}

			// Preference routes
			preferences := protected.Group("/preferences")
			{
				preferences.GET("", preferencesHandler.Load)
				preferences.PUT("", preferencesHandler.Save)
			}

			// Subscription routes
			subscriptions := protected.Group("/subscriptions")
			{
				subscriptions.POST("", subscriptionHandler.Create)
				subscriptions.GET("", subscriptionHandler.List)
				subscriptions.PUT("/:id", subscriptionHandler.Update)
				subscriptions.DELETE("/:id", subscriptionHandler.Delete)
			}

			protected.GET("/plan", subscriptionHandler.GetPlan)
		}
	}

	return router
}
