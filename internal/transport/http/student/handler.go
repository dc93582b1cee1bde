package student

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/salesline/salesline/internal/presentation/http/response"
	service "github.com/salesline/salesline/internal/service/student"
)

var httpTracer = otel.Tracer("github.com/salesline/salesline/transport/http/student")

// Handler exposes the read-only student endpoint over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a student Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/students", h.list)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "students.list")
	defer span.End()

	rows, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(map[string]any{
		"total":    len(rows),
		"students": rows,
	}).Build()
}
