package api

import (
	"net/http"
	"time"

	"github.com/article-comments-api/internal/auth"
	"github.com/article-comments-api/internal/config"
	"github.com/article-comments-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(auth.Middleware(&cfg.Auth, log))

	// Handlers
	commentHandler := NewCommentHandler(services, log)
	moderationHandler := NewModerationHandler(services, log)
	userHandler := NewUserHandler(cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	api := router.Group("/api")
	{
		api.GET("/comments/:articleTitle", commentHandler.GetComments)
		api.GET("/comment-count/:articleTitle", commentHandler.GetCommentCount)
		api.POST("/comments", commentHandler.CreateComment)

		comments := api.Group("/comments/:commentId")
		{
			comments.POST("/replies", commentHandler.CreateReply)
			// Nested replies are flattened onto the top-level comment
			comments.POST("/replies/:replyId/replies", commentHandler.CreateNestedReply)
			comments.PUT("", commentHandler.UpdateComment)
			comments.DELETE("", moderationHandler.DeleteComment)
			comments.PUT("/redact", moderationHandler.RedactComment)
			comments.PUT("/partial-redact", moderationHandler.PartialRedactComment)
			comments.DELETE("/replies/:replyId", moderationHandler.DeleteReply)
			comments.PUT("/replies/:replyId/redact", moderationHandler.RedactReply)
			comments.PUT("/replies/:replyId/partial-redact", moderationHandler.PartialRedactReply)
		}

		api.GET("/user", userHandler.GetUser)
		api.GET("/user-details", userHandler.GetUserDetails)
		api.GET("/key", userHandler.GetAPIKey)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "article-comments-api",
	})
}

// metricsHandler returns corpus totals for operators
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		comments, replies, _ := services.Comment.GetTotals(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"comments": comments,
				"replies":  replies,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
