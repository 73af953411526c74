// Package api exposes validation and run history over REST, so
// provisioning pipelines can call the validator without shelling out.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/confsmith/confsmith/internal/audit"
)

// Server is the REST API server.
type Server struct {
	router  *gin.Engine
	store   *audit.Store
	limiter *rate.Limiter
}

// NewServer creates the API server. store may be nil, in which case the
// runs endpoint reports the audit log as unavailable.
func NewServer(store *audit.Store, corsOrigin string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router: gin.New(),
		store:  store,
		// Validation is CPU-cheap but parses untrusted input; cap it.
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware(corsOrigin))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/health", s.health)
		v1.GET("/schemas", s.listSchemas)
		v1.GET("/schemas/:engine", s.getSchema)
		v1.GET("/runs", s.listRuns)

		limited := v1.Group("", s.rateLimit())
		{
			limited.POST("/validate", s.validateDocument)
			limited.POST("/render", s.renderDocument)
		}
	}

	return s
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(address string) error {
	return s.router.Run(address)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// health handles GET /api/v1/health
func (s *Server) health(c *gin.Context) {
	s.successResponse(c, gin.H{"status": "ok"})
}

// rateLimit rejects requests once the token bucket is drained.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			s.errorResponseStatus(c, http.StatusTooManyRequests, "Rate limit exceeded, retry later")
			c.Abort()
			return
		}
		c.Next()
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// successResponse sends a uniform success envelope.
func (s *Server) successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// errorResponse sends a uniform error envelope with 400.
func (s *Server) errorResponse(c *gin.Context, message string) {
	s.errorResponseStatus(c, http.StatusBadRequest, message)
}

func (s *Server) errorResponseStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
