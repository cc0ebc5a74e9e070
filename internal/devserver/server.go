package devserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds a Server listening on addr.
func New(addr string, backend *Backend, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           Router(backend, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router wires the stand-in's routes. Exposed so tests can mount it on an
// httptest server.
func Router(backend *Backend, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), cors.Default())

	h := &handlers{backend: backend, logger: logger}

	router.GET("/healthz", healthHandler)
	router.POST("/oauth/:projectKey/customers/token", h.requireProject, h.token)

	project := router.Group("/:projectKey", h.requireProject)
	{
		project.POST("/carts", h.createCart)
		project.GET("/carts/:id", h.getCart)
		project.POST("/carts/:id", h.updateCart)
		project.POST("/me/signup", h.signup)
		project.GET("/me", h.me)
		project.GET("/collections", h.collections)
		project.GET("/products", h.products)
		project.GET("/products/:key", h.productByKey)
		project.POST("/payments", h.authorizePayment)
	}

	return router
}

type handlers struct {
	backend *Backend
	logger  *zap.Logger
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) requireProject(c *gin.Context) {
	if c.Param("projectKey") != h.backend.projectKey {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "project not found"})
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	}
}
