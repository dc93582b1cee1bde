package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/salesline/salesline/internal/database"
	"github.com/salesline/salesline/internal/dto"
	"github.com/salesline/salesline/internal/entity"
)

var repoTracer = otel.Tracer("github.com/salesline/salesline/repository/order")

// listLimit caps the listing routes at a fixed row count.
const listLimit = 10

// ErrNotFound is returned when a mutation matched zero rows.
var ErrNotFound = errors.New("order not found")

// ErrEmptyPatch is returned when a partial update carries no recognized
// column; executing it would produce an UPDATE with an empty SET clause.
var ErrEmptyPatch = errors.New("patch contains no columns")

// Repository encapsulates read/write access for orders.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// NextOrdNum allocates the next order number as MAX(ord_num)+1, treating an
// empty table as 0. The read goes to the writer so a freshly inserted row is
// always visible. Nothing serializes concurrent allocations; two racing
// creations can compute the same number and the second insert then fails on
// the primary key.
func (r *Repository) NextOrdNum(ctx context.Context) (int64, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.NextOrdNum")
	defer span.End()

	var max int64
	err := r.writer.NewSelect().
		Model((*entity.Order)(nil)).
		ColumnExpr("COALESCE(MAX(ord_num), 0)").
		Scan(ctx, &max)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "allocation read failed")
		return 0, err
	}
	return max + 1, nil
}

// Create persists a new order using the write connection.
func (r *Repository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(attribute.Int64("order.ord_num", order.OrdNum)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(order).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// GetByOrdNum fetches an order by primary key using the read replica when
// available.
func (r *Repository) GetByOrdNum(ctx context.Context, ordNum int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByOrdNum", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	order := new(entity.Order)
	err := r.reader.NewSelect().Model(order).Where("ord_num = ?", ordNum).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// List returns up to listLimit orders in ord_num order.
func (r *Repository) List(ctx context.Context) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.List")
	defer span.End()

	orders := make([]entity.Order, 0, listLimit)
	err := r.reader.NewSelect().Model(&orders).Order("ord_num ASC").Limit(listLimit).Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

// Replace overwrites the six writable columns of an order keyed by ord_num.
func (r *Repository) Replace(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Replace", trace.WithAttributes(attribute.Int64("order.ord_num", order.OrdNum)))
	defer span.End()

	res, err := r.writer.NewUpdate().Model(order).
		Column("ord_amount", "advance_amount", "ord_date", "cust_code", "agent_code", "ord_description").
		WherePK().
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	return requireAffected(span, res)
}

// Patch applies only the columns present in the payload, keyed by ord_num.
// Column names come exclusively from the fixed assignment list; client keys
// never reach SQL text.
func (r *Repository) Patch(ctx context.Context, ordNum int64, payload *dto.OrderPayload) error {
	assigns := assignments(payload)
	if len(assigns) == 0 {
		return ErrEmptyPatch
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Patch", trace.WithAttributes(
		attribute.Int64("order.ord_num", ordNum),
		attribute.Int("order.patch_columns", len(assigns)),
	))
	defer span.End()

	q := r.writer.NewUpdate().Model((*entity.Order)(nil)).Where("ord_num = ?", ordNum)
	for _, a := range assigns {
		q = q.Set("? = ?", bun.Ident(a.column), a.value)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	return requireAffected(span, res)
}

// Delete removes an order by ord_num.
func (r *Repository) Delete(ctx context.Context, ordNum int64) error {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Delete", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	res, err := r.writer.NewDelete().Model((*entity.Order)(nil)).Where("ord_num = ?", ordNum).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return err
	}
	return requireAffected(span, res)
}

// assignment pairs a column name with its bound value.
type assignment struct {
	column string
	value  any
}

// assignments expands present payload fields into SET fragments in a fixed
// column order. Only columns named here can appear in a patch statement.
func assignments(p *dto.OrderPayload) []assignment {
	if p == nil {
		return nil
	}
	var out []assignment
	if p.OrdAmount != nil {
		out = append(out, assignment{"ord_amount", *p.OrdAmount})
	}
	if p.AdvanceAmount != nil {
		out = append(out, assignment{"advance_amount", *p.AdvanceAmount})
	}
	if p.OrdDate != nil {
		out = append(out, assignment{"ord_date", *p.OrdDate})
	}
	if p.CustCode != nil {
		out = append(out, assignment{"cust_code", *p.CustCode})
	}
	if p.AgentCode != nil {
		out = append(out, assignment{"agent_code", *p.AgentCode})
	}
	if p.OrdDescription != nil {
		out = append(out, assignment{"ord_description", *p.OrdDescription})
	}
	return out
}

// requireAffected maps a zero affected-row count onto ErrNotFound; the count
// is the sole signal distinguishing a missing row from success.
func requireAffected(span trace.Span, res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rows affected unavailable")
		return err
	}
	if affected == 0 {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}
	return nil
}
