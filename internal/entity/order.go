package entity

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Order represents a row of the orders table. JSON keys follow the wire
// contract of the API (uppercase, underscore-separated); ORD_NUM is allocated
// server-side, never client-supplied.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	OrdNum         int64           `bun:"ord_num,pk" json:"ORD_NUM"`
	OrdAmount      decimal.Decimal `bun:"ord_amount" json:"ORD_AMOUNT"`
	AdvanceAmount  decimal.Decimal `bun:"advance_amount" json:"ADVANCE_AMOUNT"`
	OrdDate        string          `bun:"ord_date" json:"ORD_DATE"`
	CustCode       string          `bun:"cust_code" json:"CUST_CODE"`
	AgentCode      string          `bun:"agent_code" json:"AGENT_CODE"`
	OrdDescription string          `bun:"ord_description" json:"ORD_DESCRIPTION"`
}
