package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/salesline/salesline/pkg/errorbank"
)

func record(t *testing.T, build func(b *Builder) error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := build(New(e.NewContext(req, rec))); err != nil {
		t.Fatalf("build response: %v", err)
	}
	return rec
}

func TestBuilderSuccessEmitsDataVerbatim(t *testing.T) {
	rec := record(t, func(b *Builder) error {
		return b.WithStatus(http.StatusCreated).
			WithData(map[string]any{"message": "Order created successfully", "ORD_NUM": 1}).
			Build()
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	body := rec.Body.String()
	for _, want := range []string{`"message":"Order created successfully"`, `"ORD_NUM":1`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}
}

func TestBuilderValidationErrorsListShape(t *testing.T) {
	rec := record(t, func(b *Builder) error {
		return b.WithError(errorbank.Validation([]errorbank.FieldError{
			{Field: "ORD_AMOUNT", Message: "ORD_AMOUNT must be a positive number"},
			{Field: "CUST_CODE", Message: "CUST_CODE is required"},
		})).Build()
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"errors":[{"field":"ORD_AMOUNT"`) {
		t.Errorf("violations not rendered in declaration order: %s", body)
	}
}

func TestBuilderValidationEmptyFieldsRendersEmptyList(t *testing.T) {
	rec := record(t, func(b *Builder) error {
		return b.WithError(errorbank.Validation(nil)).Build()
	})

	if !strings.Contains(rec.Body.String(), `"errors":[]`) {
		t.Errorf("want empty errors list, got %s", rec.Body.String())
	}
}

func TestBuilderNotFoundUsesMessageKey(t *testing.T) {
	rec := record(t, func(b *Builder) error {
		return b.WithError(errorbank.NotFound("Order not found")).Build()
	})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), `{"message":"Order not found"}`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestBuilderUnknownErrorUsesErrorKey(t *testing.T) {
	rec := record(t, func(b *Builder) error {
		return b.WithError(errors.New("driver: bad connection")).Build()
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(rec.Body.String(), `{"error":"driver: bad connection"}`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
