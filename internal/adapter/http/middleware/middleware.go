package middleware

import (
	"net/http"
	"time"

	"taller_web/internal/domain/entities"
	"taller_web/internal/usecase"
	"taller_web/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKey = "session"

// Logger logs one line per request.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", latency),
			zap.String("request_id", c.GetString("request_id")),
		}

		if status >= 500 {
			logger.Error("Server error", fields...)
		} else if status >= 400 {
			logger.Warn("Client error", fields...)
		} else {
			logger.Info("Request", fields...)
		}
	}
}

// RequestID tags every request, reusing the caller's id when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// CORS allows the dev setup where the page assets are served elsewhere.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SessionFromCookie resolves the session cookie on every request, stashing
// the session in the context when it is live. It never blocks a request by
// itself; the guards below decide what an absent session means.
func SessionFromCookie(sessions usecase.ISessionUseCase, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cookieName)
		if err == nil && cookie != "" {
			if sess, ok := sessions.Resolve(c.Request.Context(), cookie); ok {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

// CurrentSession returns the resolved session, if any.
func CurrentSession(c *gin.Context) (entities.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return entities.Session{}, false
	}
	sess, ok := v.(entities.Session)
	return sess, ok
}

// RequireSessionPage guards the protected page tree: without a live session
// the browser is redirected to /login. Purely local, no backend round trip;
// a stale token is only discovered when a later API call 401s.
func RequireSessionPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSessionAPI guards the JSON surface: without a live session the call
// fails with 401 and the client is told where to go.
func RequireSessionAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); !ok {
			appErr := pkg.NewDomainErrorSimple("NOT_AUTHENTICATED", "Session required", http.StatusUnauthorized)
			c.Header("X-Redirect", "/login")
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated keeps the login page away from live sessions.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
