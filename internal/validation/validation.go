// Package validation holds the per-verb rule sets applied to order requests
// before any database access. Rules run to completion so a response carries
// every violation, not just the first one.
package validation

import (
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesline/salesline/internal/dto"
	"github.com/salesline/salesline/pkg/errorbank"
)

const dateLayout = "2006-01-02"

// Verb selects which rule set applies to an order payload.
type Verb int

const (
	// Create requires every order field.
	Create Verb = iota
	// Replace requires every field except ORD_DESCRIPTION and HTML-escapes
	// string values.
	Replace
	// Patch accepts any subset of fields but rejects an empty one.
	Patch
)

// OrdNum validates the ORD_NUM path parameter.
func OrdNum(raw string) (int64, []errorbank.FieldError) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, []errorbank.FieldError{{Field: "ORD_NUM", Message: "must be an integer"}}
	}
	return n, nil
}

// Order checks p against the rule set for verb and returns the collected
// violations in rule-declaration order. String fields are trimmed in place so
// the values that reach the query layer are the sanitized ones.
func Order(verb Verb, p *dto.OrderPayload) []errorbank.FieldError {
	var violations []errorbank.FieldError
	add := func(field, message string) {
		violations = append(violations, errorbank.FieldError{Field: field, Message: message})
	}

	required := verb == Create || verb == Replace

	if verb == Patch && p.Empty() {
		add("body", "at least one updatable field is required")
		return violations
	}

	amounts := []struct {
		field string
		value *decimal.Decimal
	}{
		{"ORD_AMOUNT", p.OrdAmount},
		{"ADVANCE_AMOUNT", p.AdvanceAmount},
	}
	for _, a := range amounts {
		switch {
		case a.value == nil:
			if required {
				add(a.field, "is required")
			}
		case a.value.IsNegative():
			add(a.field, "must be a number greater than or equal to 0")
		}
	}

	if p.OrdDate == nil {
		if required {
			add("ORD_DATE", "is required")
		}
	} else {
		*p.OrdDate = strings.TrimSpace(*p.OrdDate)
		if _, err := time.Parse(dateLayout, *p.OrdDate); err != nil {
			add("ORD_DATE", "must be a valid date in YYYY-MM-DD format")
		}
	}

	codes := []struct {
		field string
		value *string
	}{
		{"CUST_CODE", p.CustCode},
		{"AGENT_CODE", p.AgentCode},
	}
	for _, c := range codes {
		if c.value == nil {
			if required {
				add(c.field, "is required")
			}
			continue
		}
		*c.value = sanitize(verb, *c.value)
		if *c.value == "" {
			add(c.field, "must not be empty")
		}
	}

	if p.OrdDescription == nil {
		if verb == Create {
			add("ORD_DESCRIPTION", "is required")
		}
	} else {
		*p.OrdDescription = sanitize(verb, *p.OrdDescription)
		if verb == Create && *p.OrdDescription == "" {
			add("ORD_DESCRIPTION", "must not be empty")
		}
	}

	return violations
}

func sanitize(verb Verb, s string) string {
	s = strings.TrimSpace(s)
	if verb == Replace {
		s = html.EscapeString(s)
	}
	return s
}
