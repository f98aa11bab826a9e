package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/booking-service/internal/helpers"
	"github.com/joshua-takyi/booking-service/internal/models"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler logs errors attached by handlers. Handlers have already
// written their response; a generic 500 is only sent if nothing was.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		requestID, _ := c.Get("request_id")
		for _, err := range c.Errors {
			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// TokenIdentity resolves the caller identity from the session cookie and
// stores it under helpers.IdentityKey. Requests without a usable identity
// never reach the next handler.
func TokenIdentity(verifier *helpers.TokenVerifier, cookieName string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("No token provided"))
			return
		}

		res := verifier.Decode(token)
		requestID, _ := c.Get("request_id")

		switch res.Status {
		case helpers.IdentityFound:
			logger.Debug("Token decoded",
				"request_id", requestID,
				"identity_field", res.Field,
			)
			c.Set(helpers.IdentityKey, res.Identity)
			c.Next()
		case helpers.IdentityAbsent:
			logger.Warn("No valid email found in token payload", "request_id", requestID)
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse("Invalid or missing email in token"))
		default:
			logger.Warn("Token verification failed", "request_id", requestID, "error", res.Err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("Invalid or expired token"))
		}
	}
}
