package seeder

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/salesline/salesline/internal/database"
	"github.com/salesline/salesline/internal/entity"
)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// All seeds every table.
func (s *Seeder) All(ctx context.Context) error {
	if err := s.Customers(ctx); err != nil {
		return err
	}
	if err := s.Students(ctx); err != nil {
		return err
	}
	return s.Orders(ctx)
}

// Orders seeds example orders if they are missing.
func (s *Seeder) Orders(ctx context.Context) error {
	samples := []entity.Order{
		{
			OrdNum:         1,
			OrdAmount:      decimal.RequireFromString("5000"),
			AdvanceAmount:  decimal.RequireFromString("1000"),
			OrdDate:        "2025-09-28",
			CustCode:       "C00001",
			AgentCode:      "A003",
			OrdDescription: "New order",
		},
		{
			OrdNum:         2,
			OrdAmount:      decimal.RequireFromString("2750.50"),
			AdvanceAmount:  decimal.RequireFromString("500"),
			OrdDate:        "2025-10-02",
			CustCode:       "C00002",
			AgentCode:      "A007",
			OrdDescription: "Repeat order",
		},
	}

	for _, sample := range samples {
		order := sample
		if _, err := s.db.NewInsert().Model(&order).Ignore().Exec(ctx); err != nil {
			return err
		}
	}

	s.logger.Info("seeded orders", zap.Int("count", len(samples)))
	return nil
}

// Customers seeds example customer rows if they are missing.
func (s *Seeder) Customers(ctx context.Context) error {
	samples := []map[string]any{
		{"cust_code": "C00001", "cust_name": "Micheal", "cust_city": "New York", "grade": 2},
		{"cust_code": "C00002", "cust_name": "Bolt", "cust_city": "New York", "grade": 3},
	}

	for _, sample := range samples {
		row := sample
		if _, err := s.db.NewInsert().Model(&row).TableExpr("customer").Ignore().Exec(ctx); err != nil {
			return err
		}
	}

	s.logger.Info("seeded customers", zap.Int("count", len(samples)))
	return nil
}

// Students seeds example student rows if they are missing.
func (s *Seeder) Students(ctx context.Context) error {
	samples := []map[string]any{
		{"name": "Ada", "title": "Engineering", "class": "A", "section": 1, "rollid": 1001},
		{"name": "Linus", "title": "Systems", "class": "B", "section": 2, "rollid": 1002},
	}

	for _, sample := range samples {
		row := sample
		if _, err := s.db.NewInsert().Model(&row).TableExpr("student").Ignore().Exec(ctx); err != nil {
			return err
		}
	}

	s.logger.Info("seeded students", zap.Int("count", len(samples)))
	return nil
}
