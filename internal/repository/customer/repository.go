package customer

import (
	"context"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/salesline/salesline/internal/database"
)

var repoTracer = otel.Tracer("github.com/salesline/salesline/repository/customer")

const listLimit = 10

// Repository provides read-only access to the customer table. Rows are
// returned verbatim as maps; no column is interpreted by this layer.
type Repository struct {
	reader *bun.DB
}

// NewRepository wires a repository backed by the read connection.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{reader: conns.Reader}
}

// List returns up to listLimit customer rows.
func (r *Repository) List(ctx context.Context) ([]map[string]any, error) {
	ctx, span := repoTracer.Start(ctx, "CustomerRepository.List")
	defer span.End()

	rows := make([]map[string]any, 0, listLimit)
	err := r.reader.NewSelect().Table("customer").Limit(listLimit).Scan(ctx, &rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return rows, nil
}
