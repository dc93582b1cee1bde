package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/salesline/salesline/internal/cache"
	"github.com/salesline/salesline/internal/config"
	"github.com/salesline/salesline/internal/dto"
	"github.com/salesline/salesline/internal/entity"
	"github.com/salesline/salesline/internal/messaging"
	repo "github.com/salesline/salesline/internal/repository/order"
	"github.com/salesline/salesline/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/salesline/salesline/service/order")

const notFoundMessage = "Order not found"

// Event actions published to the message bus on order mutations.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// OrderEvent is emitted after every successful order mutation.
type OrderEvent struct {
	Action string    `json:"action"`
	OrdNum int64     `json:"ORD_NUM"`
	At     time.Time `json:"at"`
}

// Service encapsulates the order lifecycle: number allocation, persistence,
// cache maintenance, and event publishing.
type Service struct {
	repo      *repo.Repository
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// List returns the first page of orders.
func (s *Service) List(ctx context.Context) ([]entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List")
	defer span.End()

	orders, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal(err.Error(), errorbank.WithCause(err))
	}
	return orders, nil
}

// Get retrieves an order by number, consulting cache when available.
func (s *Service) Get(ctx context.Context, ordNum int64) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	if order, err := s.getFromCache(ctx, ordNum); err == nil {
		return order, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("orders cache read failed", zap.Int64("ord_num", ordNum), zap.Error(err))
	}

	order, err := s.repo.GetByOrdNum(ctx, ordNum)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound(notFoundMessage)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal(err.Error(), errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		s.logger.Warn("orders cache write failed", zap.Int64("ord_num", ordNum), zap.Error(err))
	}

	return order, nil
}

// Create allocates the next order number and persists a new order built from
// the validated payload. Allocation is a plain read-then-write: concurrent
// creations can collide and the later insert surfaces the store's uniqueness
// violation as a database error.
func (s *Service) Create(ctx context.Context, payload *dto.OrderPayload) (*entity.Order, error) {
	if payload == nil {
		return nil, errorbank.BadRequest("order payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create")
	defer span.End()

	ordNum, err := s.repo.NextOrdNum(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "allocation error")
		return nil, errorbank.Internal(err.Error(), errorbank.WithCause(err))
	}
	span.SetAttributes(attribute.Int64("order.ord_num", ordNum))

	order := orderFromPayload(ordNum, payload)
	if err := s.repo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal(err.Error(), errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		s.logger.Warn("orders cache write failed", zap.Int64("ord_num", ordNum), zap.Error(err))
	}

	s.publishEvent(ctx, ActionCreated, ordNum)
	return order, nil
}

// Replace overwrites every writable column of an existing order.
func (s *Service) Replace(ctx context.Context, ordNum int64, payload *dto.OrderPayload) (*entity.Order, error) {
	if payload == nil {
		return nil, errorbank.BadRequest("order payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "OrderService.Replace", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	order := orderFromPayload(ordNum, payload)
	if err := s.repo.Replace(ctx, order); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound(notFoundMessage)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal(err.Error(), errorbank.WithCause(err))
	}

	s.invalidateCache(ctx, ordNum)
	s.publishEvent(ctx, ActionUpdated, ordNum)
	return order, nil
}

// Patch updates only the columns present in the payload.
func (s *Service) Patch(ctx context.Context, ordNum int64, payload *dto.OrderPayload) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Patch", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	if err := s.repo.Patch(ctx, ordNum, payload); err != nil {
		switch {
		case errors.Is(err, repo.ErrEmptyPatch):
			return errorbank.BadRequest("no updatable fields in payload")
		case errors.Is(err, repo.ErrNotFound):
			return errorbank.NotFound(notFoundMessage)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal(err.Error(), errorbank.WithCause(err))
	}

	s.invalidateCache(ctx, ordNum)
	s.publishEvent(ctx, ActionUpdated, ordNum)
	return nil
}

// Delete removes an order by number.
func (s *Service) Delete(ctx context.Context, ordNum int64) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	if err := s.repo.Delete(ctx, ordNum); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound(notFoundMessage)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal(err.Error(), errorbank.WithCause(err))
	}

	s.invalidateCache(ctx, ordNum)
	s.publishEvent(ctx, ActionDeleted, ordNum)
	return nil
}

func orderFromPayload(ordNum int64, p *dto.OrderPayload) *entity.Order {
	order := &entity.Order{OrdNum: ordNum}
	if p.OrdAmount != nil {
		order.OrdAmount = *p.OrdAmount
	}
	if p.AdvanceAmount != nil {
		order.AdvanceAmount = *p.AdvanceAmount
	}
	if p.OrdDate != nil {
		order.OrdDate = *p.OrdDate
	}
	if p.CustCode != nil {
		order.CustCode = *p.CustCode
	}
	if p.AgentCode != nil {
		order.AgentCode = *p.AgentCode
	}
	if p.OrdDescription != nil {
		order.OrdDescription = *p.OrdDescription
	}
	return order
}

func (s *Service) publishEvent(ctx context.Context, action string, ordNum int64) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderEvent{
		Action: action,
		OrdNum: ordNum,
		At:     time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal order event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", ordNum)), payload); err != nil {
		s.logger.Error("publish order event", zap.String("action", action), zap.Error(err))
	}
}

func (s *Service) cacheKey(ordNum int64) string {
	return fmt.Sprintf("orders:%d", ordNum)
}

func (s *Service) getFromCache(ctx context.Context, ordNum int64) (*entity.Order, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(ordNum))
	if err != nil {
		return nil, err
	}
	var order entity.Order
	if err := json.Unmarshal(bytes, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) storeInCache(ctx context.Context, order *entity.Order) error {
	if s.cache == nil || order == nil {
		return nil
	}
	bytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(order.OrdNum), bytes, s.cacheTTL)
}

func (s *Service) invalidateCache(ctx context.Context, ordNum int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey(ordNum)); err != nil {
		s.logger.Warn("orders cache delete failed", zap.Int64("ord_num", ordNum), zap.Error(err))
	}
}
