package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server is the HTTP API server fronting the query and ingestion pipelines.
type Server struct {
	config   Config
	querier  Querier
	ingestor Ingestor
	logger   *zap.Logger
	app      *fiber.App
}

// NewServer creates a new API server. The querier and ingestor are injected
// so the same pipeline instances can be shared with the event consumer.
func NewServer(config Config, querier Querier, ingestor Ingestor, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		querier:  querier,
		ingestor: ingestor,
		logger:   logger,
		app:      app,
	}

	app.Get("/ping", s.handlePing)

	if config.AuthToken != "" {
		app.Use(s.requireBearerToken)
	}

	app.Post("/query", s.handleQuery)
	app.Post("/ingest", s.handleIngest)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// requireBearerToken rejects requests that do not carry the configured
// bearer token in the Authorization header.
func (s *Server) requireBearerToken(c *fiber.Ctx) error {
	auth := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token != s.config.AuthToken {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Code:    CodeUnauthenticated,
			Message: "missing or invalid bearer token",
		})
	}
	return c.Next()
}
