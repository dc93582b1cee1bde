package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/salesline/salesline/internal/dto"
	"github.com/salesline/salesline/pkg/errorbank"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string {
	return &s
}

func validCreate() *dto.OrderPayload {
	return &dto.OrderPayload{
		OrdAmount:      dec("5000"),
		AdvanceAmount:  dec("1000"),
		OrdDate:        str("2025-09-28"),
		CustCode:       str("C00001"),
		AgentCode:      str("A003"),
		OrdDescription: str("New order"),
	}
}

func TestOrderCreate(t *testing.T) {
	tests := []struct {
		name    string
		payload func() *dto.OrderPayload
		want    []errorbank.FieldError
	}{
		{
			name:    "valid payload",
			payload: validCreate,
			want:    nil,
		},
		{
			name:    "everything missing",
			payload: func() *dto.OrderPayload { return &dto.OrderPayload{} },
			want: []errorbank.FieldError{
				{Field: "ORD_AMOUNT", Message: "is required"},
				{Field: "ADVANCE_AMOUNT", Message: "is required"},
				{Field: "ORD_DATE", Message: "is required"},
				{Field: "CUST_CODE", Message: "is required"},
				{Field: "AGENT_CODE", Message: "is required"},
				{Field: "ORD_DESCRIPTION", Message: "is required"},
			},
		},
		{
			name: "negative amount",
			payload: func() *dto.OrderPayload {
				p := validCreate()
				p.OrdAmount = dec("-5")
				return p
			},
			want: []errorbank.FieldError{
				{Field: "ORD_AMOUNT", Message: "must be a number greater than or equal to 0"},
			},
		},
		{
			name: "malformed date",
			payload: func() *dto.OrderPayload {
				p := validCreate()
				p.OrdDate = str("28-09-2025")
				return p
			},
			want: []errorbank.FieldError{
				{Field: "ORD_DATE", Message: "must be a valid date in YYYY-MM-DD format"},
			},
		},
		{
			name: "impossible calendar date",
			payload: func() *dto.OrderPayload {
				p := validCreate()
				p.OrdDate = str("2025-02-30")
				return p
			},
			want: []errorbank.FieldError{
				{Field: "ORD_DATE", Message: "must be a valid date in YYYY-MM-DD format"},
			},
		},
		{
			name: "whitespace-only code",
			payload: func() *dto.OrderPayload {
				p := validCreate()
				p.CustCode = str("   ")
				return p
			},
			want: []errorbank.FieldError{
				{Field: "CUST_CODE", Message: "must not be empty"},
			},
		},
		{
			name: "collects all violations",
			payload: func() *dto.OrderPayload {
				p := validCreate()
				p.OrdAmount = dec("-1")
				p.AdvanceAmount = nil
				p.AgentCode = str("")
				return p
			},
			want: []errorbank.FieldError{
				{Field: "ORD_AMOUNT", Message: "must be a number greater than or equal to 0"},
				{Field: "ADVANCE_AMOUNT", Message: "is required"},
				{Field: "AGENT_CODE", Message: "must not be empty"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Order(Create, tt.payload())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Order(Create) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrderCreateTrimsStrings(t *testing.T) {
	p := validCreate()
	p.CustCode = str("  C00001  ")
	p.OrdDescription = str("  padded  ")

	if got := Order(Create, p); got != nil {
		t.Fatalf("Order(Create) = %v, want no violations", got)
	}
	if *p.CustCode != "C00001" {
		t.Errorf("CustCode = %q, want trimmed %q", *p.CustCode, "C00001")
	}
	if *p.OrdDescription != "padded" {
		t.Errorf("OrdDescription = %q, want trimmed %q", *p.OrdDescription, "padded")
	}
}

func TestOrderReplace(t *testing.T) {
	t.Run("description optional", func(t *testing.T) {
		p := validCreate()
		p.OrdDescription = nil
		if got := Order(Replace, p); got != nil {
			t.Errorf("Order(Replace) = %v, want no violations", got)
		}
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		p := validCreate()
		p.OrdAmount = dec("-5")
		want := []errorbank.FieldError{
			{Field: "ORD_AMOUNT", Message: "must be a number greater than or equal to 0"},
		}
		if diff := cmp.Diff(want, Order(Replace, p)); diff != "" {
			t.Errorf("Order(Replace) mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("html escaped", func(t *testing.T) {
		p := validCreate()
		p.OrdDescription = str(`<b>rush</b>`)
		if got := Order(Replace, p); got != nil {
			t.Fatalf("Order(Replace) = %v, want no violations", got)
		}
		if *p.OrdDescription != "&lt;b&gt;rush&lt;/b&gt;" {
			t.Errorf("OrdDescription = %q, want escaped", *p.OrdDescription)
		}
	})
}

func TestOrderPatch(t *testing.T) {
	t.Run("empty payload rejected", func(t *testing.T) {
		want := []errorbank.FieldError{
			{Field: "body", Message: "at least one updatable field is required"},
		}
		if diff := cmp.Diff(want, Order(Patch, &dto.OrderPayload{})); diff != "" {
			t.Errorf("Order(Patch) mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single field accepted", func(t *testing.T) {
		p := &dto.OrderPayload{OrdAmount: dec("6000")}
		if got := Order(Patch, p); got != nil {
			t.Errorf("Order(Patch) = %v, want no violations", got)
		}
	})

	t.Run("present fields still checked", func(t *testing.T) {
		p := &dto.OrderPayload{AdvanceAmount: dec("-1"), CustCode: str("  ")}
		want := []errorbank.FieldError{
			{Field: "ADVANCE_AMOUNT", Message: "must be a number greater than or equal to 0"},
			{Field: "CUST_CODE", Message: "must not be empty"},
		}
		if diff := cmp.Diff(want, Order(Patch, p)); diff != "" {
			t.Errorf("Order(Patch) mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("description trimmed but not escaped", func(t *testing.T) {
		p := &dto.OrderPayload{OrdDescription: str("  <note>  ")}
		if got := Order(Patch, p); got != nil {
			t.Fatalf("Order(Patch) = %v, want no violations", got)
		}
		if *p.OrdDescription != "<note>" {
			t.Errorf("OrdDescription = %q, want %q", *p.OrdDescription, "<note>")
		}
	})
}

func TestOrdNum(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		invalid bool
	}{
		{raw: "1", want: 1},
		{raw: " 42 ", want: 42},
		{raw: "abc", invalid: true},
		{raw: "1.5", invalid: true},
		{raw: "", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, violations := OrdNum(tt.raw)
			if tt.invalid {
				if len(violations) != 1 || violations[0].Field != "ORD_NUM" {
					t.Fatalf("OrdNum(%q) violations = %v, want one ORD_NUM entry", tt.raw, violations)
				}
				return
			}
			if violations != nil {
				t.Fatalf("OrdNum(%q) violations = %v, want none", tt.raw, violations)
			}
			if got != tt.want {
				t.Errorf("OrdNum(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
