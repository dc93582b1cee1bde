package dto

import "github.com/shopspring/decimal"

// OrderPayload is the decoded body of an order mutation. Every field is a
// pointer so a PATCH can tell an absent key from a zero value; unknown keys
// are dropped during decoding and never reach the query layer.
//
// Amounts use decimal.Decimal, which accepts both JSON numbers and decimal
// strings.
type OrderPayload struct {
	OrdAmount      *decimal.Decimal `json:"ORD_AMOUNT"`
	AdvanceAmount  *decimal.Decimal `json:"ADVANCE_AMOUNT"`
	OrdDate        *string          `json:"ORD_DATE"`
	CustCode       *string          `json:"CUST_CODE"`
	AgentCode      *string          `json:"AGENT_CODE"`
	OrdDescription *string          `json:"ORD_DESCRIPTION"`
}

// Empty reports whether no recognized order field is present.
func (p OrderPayload) Empty() bool {
	return p.OrdAmount == nil &&
		p.AdvanceAmount == nil &&
		p.OrdDate == nil &&
		p.CustCode == nil &&
		p.AgentCode == nil &&
		p.OrdDescription == nil
}

// MutationResponse is the body of a successful order mutation.
type MutationResponse struct {
	Message string `json:"message"`
	OrdNum  *int64 `json:"ORD_NUM,omitempty"`
}
