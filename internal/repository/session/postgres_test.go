package session

import (
	"context"
	"os"
	"testing"

	"chatshop/internal/domain"
	"chatshop/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_ShopperAndConversation(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if _, err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	s, err := repo.GetShopper(ctx, 11)
	if err != nil {
		t.Fatalf("GetShopper: %v", err)
	}
	if !s.Cart.Empty() {
		t.Fatalf("expected empty cart, got %+v", s.Cart)
	}
	s.Cart.Add("p1", 2)
	s.Cursor = 2
	if err := repo.SaveShopper(ctx, s); err != nil {
		t.Fatalf("SaveShopper: %v", err)
	}
	s.Cart.Add("p3", 1)
	if err := repo.SaveShopper(ctx, s); err != nil {
		t.Fatalf("SaveShopper update: %v", err)
	}

	got, err := repo.GetShopper(ctx, 11)
	if err != nil {
		t.Fatalf("GetShopper: %v", err)
	}
	if got.Cursor != 2 || len(got.Cart.Lines) != 2 || got.Cart.Lines[1].ProductID != "p3" {
		t.Fatalf("unexpected shopper %+v", got)
	}

	conv := &domain.Conversation{ChatID: 11, Dialog: domain.Dialog{
		State: domain.StateAwaitingConfirmation,
		Draft: domain.DraftOrder{Phone: "+12345678901", Address: "123 Main St"},
	}}
	if err := repo.SaveConversation(ctx, conv); err != nil {
		t.Fatalf("SaveConversation: %v", err)
	}
	gotConv, err := repo.GetConversation(ctx, 11)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if gotConv.Dialog.State != domain.StateAwaitingConfirmation || gotConv.Dialog.Draft.Address != "123 Main St" {
		t.Fatalf("unexpected conversation %+v", gotConv)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE shoppers, conversations`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
