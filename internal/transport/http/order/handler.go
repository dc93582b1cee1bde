package order

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/salesline/salesline/internal/dto"
	"github.com/salesline/salesline/internal/presentation/http/response"
	service "github.com/salesline/salesline/internal/service/order"
	"github.com/salesline/salesline/internal/validation"
	"github.com/salesline/salesline/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/salesline/salesline/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:ordNum", h.getByOrdNum)
	g.PUT("/:ordNum", h.replace)
	g.PATCH("/:ordNum", h.patch)
	g.DELETE("/:ordNum", h.remove)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list")
	defer span.End()

	orders, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(map[string]any{
		"total":  len(orders),
		"orders": orders,
	}).Build()
}

func (h *Handler) getByOrdNum(c echo.Context) error {
	b := response.New(c)

	ordNum, violations := validation.OrdNum(c.Param("ordNum"))
	if violations != nil {
		return b.WithError(errorbank.Validation(violations)).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.get", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	order, err := h.svc.Get(ctx, ordNum)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(order).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	payload, err := bindPayload(c)
	if err != nil {
		return b.WithError(err).Build()
	}
	if violations := validation.Order(validation.Create, payload); len(violations) > 0 {
		return b.WithError(errorbank.Validation(violations)).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create")
	defer span.End()

	order, err := h.svc.Create(ctx, payload)
	if err != nil {
		return b.WithError(err).Build()
	}
	span.SetAttributes(attribute.Int64("order.ord_num", order.OrdNum))

	return b.WithStatus(http.StatusCreated).WithData(dto.MutationResponse{
		Message: "Order created successfully",
		OrdNum:  &order.OrdNum,
	}).Build()
}

func (h *Handler) replace(c echo.Context) error {
	b := response.New(c)

	ordNum, violations := validation.OrdNum(c.Param("ordNum"))
	if violations != nil {
		return b.WithError(errorbank.Validation(violations)).Build()
	}
	payload, err := bindPayload(c)
	if err != nil {
		return b.WithError(err).Build()
	}
	if violations := validation.Order(validation.Replace, payload); len(violations) > 0 {
		return b.WithError(errorbank.Validation(violations)).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.replace", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	order, err := h.svc.Replace(ctx, ordNum, payload)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.MutationResponse{
		Message: "Order updated successfully",
		OrdNum:  &order.OrdNum,
	}).Build()
}

func (h *Handler) patch(c echo.Context) error {
	b := response.New(c)

	ordNum, violations := validation.OrdNum(c.Param("ordNum"))
	if violations != nil {
		return b.WithError(errorbank.Validation(violations)).Build()
	}
	payload, err := bindPayload(c)
	if err != nil {
		return b.WithError(err).Build()
	}
	if violations := validation.Order(validation.Patch, payload); len(violations) > 0 {
		return b.WithError(errorbank.Validation(violations)).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.patch", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	if err := h.svc.Patch(ctx, ordNum, payload); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.MutationResponse{Message: "Order partially updated"}).Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c)

	ordNum, violations := validation.OrdNum(c.Param("ordNum"))
	if violations != nil {
		return b.WithError(errorbank.Validation(violations)).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.delete", trace.WithAttributes(attribute.Int64("order.ord_num", ordNum)))
	defer span.End()

	if err := h.svc.Delete(ctx, ordNum); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.MutationResponse{
		Message: "Order deleted successfully",
		OrdNum:  &ordNum,
	}).Build()
}

func bindPayload(c echo.Context) (*dto.OrderPayload, error) {
	var payload dto.OrderPayload
	if err := c.Bind(&payload); err != nil {
		return nil, errorbank.Validation(
			[]errorbank.FieldError{{Field: "body", Message: "must be a valid JSON object"}},
			errorbank.WithCause(err),
		)
	}
	return &payload, nil
}
