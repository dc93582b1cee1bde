package student

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	repo "github.com/salesline/salesline/internal/repository/student"
	"github.com/salesline/salesline/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/salesline/salesline/service/student")

// Service exposes read access to students; their lifecycle is owned by the
// external store.
type Service struct {
	repo   *repo.Repository
	logger *zap.Logger
}

// NewService wires a new Service instance.
func NewService(r *repo.Repository, logger *zap.Logger) *Service {
	return &Service{repo: r, logger: logger}
}

// List returns the first page of student rows verbatim.
func (s *Service) List(ctx context.Context) ([]map[string]any, error) {
	ctx, span := serviceTracer.Start(ctx, "StudentService.List")
	defer span.End()

	rows, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal(err.Error(), errorbank.WithCause(err))
	}
	return rows, nil
}
