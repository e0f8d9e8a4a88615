package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recruitkit/cvrag/pkg/eventstream"
	"github.com/recruitkit/cvrag/pkg/rag"
)

// Querier answers questions over the indexed corpus.
type Querier interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Ingestor runs the ingestion pipeline for a single object.
type Ingestor interface {
	Ingest(ctx context.Context, event *eventstream.ObjectFinalizedEvent) (rag.IngestResult, error)
}

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidArgument = "invalid-argument"
	CodeUnauthenticated = "unauthenticated"
	CodeInternal        = "internal"
)

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the success body of POST /query.
type QueryResponse struct {
	Answer string `json:"answer"`
}

// IngestRequest is the body of POST /ingest. It names an object in blob
// storage, mirroring the storage notification payload.
type IngestRequest struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// ErrorResponse is the error body for all routes.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleQuery runs the query pipeline and returns the generated answer.
func (s *Server) handleQuery(c *fiber.Ctx) error {
	var req QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidArgument,
			Message: "malformed request body",
		})
	}

	answer, err := s.querier.Answer(c.Context(), req.Query)
	if err != nil {
		if errors.Is(err, rag.ErrInvalidArgument) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Code:    CodeInvalidArgument,
				Message: "query must be a non-empty string",
			})
		}

		s.logger.Error("query pipeline failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeInternal,
			Message: "failed to answer query",
		})
	}

	return c.JSON(QueryResponse{Answer: answer})
}

// handleIngest runs the ingestion pipeline for the named object and
// returns the terminal result.
func (s *Server) handleIngest(c *fiber.Ctx) error {
	var req IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidArgument,
			Message: "malformed request body",
		})
	}

	if req.Bucket == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidArgument,
			Message: "bucket and name are required",
		})
	}

	event := &eventstream.ObjectFinalizedEvent{
		SchemaVersion: eventstream.SchemaVersionV1,
		EventType:     eventstream.EventTypeObjectFinalized,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Bucket:        req.Bucket,
		Name:          req.Name,
	}

	result, err := s.ingestor.Ingest(c.Context(), event)
	if err != nil {
		s.logger.Error("ingestion pipeline failed",
			zap.String("bucket", req.Bucket),
			zap.String("name", req.Name),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeInternal,
			Message: "failed to ingest object",
		})
	}

	return c.JSON(result)
}
