package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesline/salesline/pkg/errorbank"
)

// Builder constructs HTTP responses following the API's wire contract:
// success payloads are emitted verbatim, validation failures render as
// {errors:[{field,message},...]}, not-found as {message}, and runtime
// failures as {error}.
type Builder struct {
	ctx    echo.Context
	status int
	data   any
	err    error
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithData attaches a success payload.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.ctx.JSON(b.status, b.data)
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := b.status
	if status < 400 {
		status = appErr.StatusCode()
	}

	switch appErr.Kind() {
	case errorbank.KindValidation:
		payload := struct {
			Errors []errorbank.FieldError `json:"errors"`
		}{Errors: appErr.Fields()}
		if payload.Errors == nil {
			payload.Errors = []errorbank.FieldError{}
		}
		return b.ctx.JSON(status, payload)
	case errorbank.KindNotFound, errorbank.KindBadRequest:
		return b.ctx.JSON(status, struct {
			Message string `json:"message"`
		}{Message: appErr.Message()})
	default:
		return b.ctx.JSON(status, struct {
			Error string `json:"error"`
		}{Error: appErr.Message()})
	}
}
