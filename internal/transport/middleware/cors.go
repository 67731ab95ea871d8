package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows all origins; the webhook endpoint and the SPA both rely on it.
// OPTIONS pre-flights are answered with an empty 200 body.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, paddle-signature")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
