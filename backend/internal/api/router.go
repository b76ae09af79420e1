// Package api wires the gin router to the orchestration services and
// translates service outcomes into HTTP responses.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartcity-explorer/backend/internal/schema"
	"smartcity-explorer/backend/pkg/apperrors"
)

// Handler holds the services the routes delegate to
type Handler struct {
	cities          *CityRoutes
	reviews         *ReviewRoutes
	recommendations *RecommendationRoutes
	version         string
	logger          *zap.Logger
}

// Config collects the handler dependencies
type Config struct {
	Cities          CityService
	Reviews         ReviewService
	Recommendations RecommendationService
	Version         string
	Logger          *zap.Logger
}

// NewHandler builds the per-resource route handlers
func NewHandler(cfg Config) *Handler {
	return &Handler{
		cities:          &CityRoutes{service: cfg.Cities, logger: cfg.Logger},
		reviews:         &ReviewRoutes{service: cfg.Reviews, logger: cfg.Logger},
		recommendations: &RecommendationRoutes{service: cfg.Recommendations, logger: cfg.Logger},
		version:         cfg.Version,
		logger:          cfg.Logger,
	}
}

// Router assembles the gin engine with middleware and all routes
func (h *Handler) Router(production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestID())
	router.Use(requestLogger(h.logger))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, schema.HealthResponse{Status: "ok", Version: h.version})
	})

	router.GET("/cities", h.cities.List)
	router.GET("/cities/:id", h.cities.Detail)
	router.GET("/cities/:id/scores", h.cities.Scores)
	router.GET("/cities/:id/reviews", h.reviews.List)
	router.POST("/cities/:id/reviews", h.reviews.Create)
	router.GET("/recommendations", h.recommendations.Get)

	return router
}

// requestID tags each request with an id for log correlation
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// requestLogger logs each request with zap
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}

// corsMiddleware allows the dashboard front end to call the API from any
// origin
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// fail maps a service error onto the response taxonomy: 501 for exercise
// methods that are not done yet, 500 for everything else.
func fail(c *gin.Context, log *zap.Logger, message string, err error) {
	if apperrors.IsErrorType(err, apperrors.ErrorTypeNotImplemented) {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
		return
	}
	log.Error(message, zap.Error(err), zap.String("request_id", c.GetString("request_id")))
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
