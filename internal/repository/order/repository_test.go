package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/salesline/salesline/internal/database"
	"github.com/salesline/salesline/internal/dto"
	"github.com/salesline/salesline/internal/entity"
)

var dbSeq atomic.Int64

const ordersSchema = `CREATE TABLE orders (
	ord_num INTEGER PRIMARY KEY,
	ord_amount TEXT NOT NULL,
	advance_amount TEXT NOT NULL,
	ord_date TEXT NOT NULL,
	cust_code TEXT NOT NULL,
	agent_code TEXT NOT NULL,
	ord_description TEXT NOT NULL DEFAULT ''
)`

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:repo%d?mode=memory&cache=shared", dbSeq.Add(1))
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.Exec(ordersSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewRepository(&database.Connections{Writer: db, Reader: db})
}

func sampleOrder(ordNum int64) *entity.Order {
	return &entity.Order{
		OrdNum:         ordNum,
		OrdAmount:      decimal.RequireFromString("5000"),
		AdvanceAmount:  decimal.RequireFromString("1000"),
		OrdDate:        "2025-09-28",
		CustCode:       "C00001",
		AgentCode:      "A003",
		OrdDescription: "New order",
	}
}

func mustCreate(t *testing.T, repo *Repository, order *entity.Order) {
	t.Helper()
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestNextOrdNum(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	next, err := repo.NextOrdNum(ctx)
	if err != nil {
		t.Fatalf("NextOrdNum: %v", err)
	}
	if next != 1 {
		t.Errorf("NextOrdNum on empty table = %d, want 1", next)
	}

	mustCreate(t, repo, sampleOrder(1))
	mustCreate(t, repo, sampleOrder(7))

	next, err = repo.NextOrdNum(ctx)
	if err != nil {
		t.Fatalf("NextOrdNum: %v", err)
	}
	if next != 8 {
		t.Errorf("NextOrdNum = %d, want max+1 = 8", next)
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := sampleOrder(1)
	mustCreate(t, repo, want)

	got, err := repo.GetByOrdNum(ctx, 1)
	if err != nil {
		t.Fatalf("GetByOrdNum: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := repo.GetByOrdNum(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByOrdNum(999) error = %v, want ErrNotFound", err)
	}
}

func TestCreateDuplicateKeyFails(t *testing.T) {
	repo := newTestRepo(t)

	mustCreate(t, repo, sampleOrder(1))
	if err := repo.Create(context.Background(), sampleOrder(1)); err == nil {
		t.Fatal("Create with duplicate ord_num should surface the constraint violation")
	}
}

func TestList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := int64(1); i <= 12; i++ {
		mustCreate(t, repo, sampleOrder(i))
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(orders) != 10 {
		t.Fatalf("List returned %d rows, want the fixed limit of 10", len(orders))
	}
	if orders[0].OrdNum != 1 || orders[9].OrdNum != 10 {
		t.Errorf("List order = [%d..%d], want [1..10]", orders[0].OrdNum, orders[9].OrdNum)
	}
}

func TestReplace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, sampleOrder(1))

	updated := sampleOrder(1)
	updated.OrdAmount = decimal.RequireFromString("7500")
	updated.OrdDescription = "Revised order"

	if err := repo.Replace(ctx, updated); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := repo.GetByOrdNum(ctx, 1)
	if err != nil {
		t.Fatalf("GetByOrdNum: %v", err)
	}
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("Replace round trip mismatch (-want +got):\n%s", diff)
	}

	missing := sampleOrder(999)
	if err := repo.Replace(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replace(999) error = %v, want ErrNotFound", err)
	}
}

func TestPatchChangesOnlyPresentColumns(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, sampleOrder(1))

	amount := decimal.RequireFromString("6000")
	if err := repo.Patch(ctx, 1, &dto.OrderPayload{OrdAmount: &amount}); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	got, err := repo.GetByOrdNum(ctx, 1)
	if err != nil {
		t.Fatalf("GetByOrdNum: %v", err)
	}

	want := sampleOrder(1)
	want.OrdAmount = amount
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("only ORD_AMOUNT should change (-want +got):\n%s", diff)
	}
}

func TestPatchMissingRow(t *testing.T) {
	repo := newTestRepo(t)

	amount := decimal.RequireFromString("6000")
	err := repo.Patch(context.Background(), 999, &dto.OrderPayload{OrdAmount: &amount})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Patch(999) error = %v, want ErrNotFound", err)
	}
}

func TestPatchEmptyPayloadGuard(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Patch(context.Background(), 1, &dto.OrderPayload{}); !errors.Is(err, ErrEmptyPatch) {
		t.Errorf("Patch with empty payload error = %v, want ErrEmptyPatch", err)
	}
	if err := repo.Patch(context.Background(), 1, nil); !errors.Is(err, ErrEmptyPatch) {
		t.Errorf("Patch with nil payload error = %v, want ErrEmptyPatch", err)
	}
}

func TestDeleteIdempotence(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, sampleOrder(1))

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := repo.Delete(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestAssignmentsOrderAndFiltering(t *testing.T) {
	amount := decimal.RequireFromString("1")
	advance := decimal.RequireFromString("2")
	date := "2025-01-01"
	code := "C1"

	got := assignments(&dto.OrderPayload{
		CustCode:      &code,
		OrdAmount:     &amount,
		AdvanceAmount: &advance,
		OrdDate:       &date,
	})

	wantColumns := []string{"ord_amount", "advance_amount", "ord_date", "cust_code"}
	if len(got) != len(wantColumns) {
		t.Fatalf("assignments returned %d entries, want %d", len(got), len(wantColumns))
	}
	for i, a := range got {
		if a.column != wantColumns[i] {
			t.Errorf("assignments[%d].column = %q, want %q", i, a.column, wantColumns[i])
		}
	}
}
