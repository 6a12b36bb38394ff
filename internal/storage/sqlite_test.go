package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsaniceto14/investctl/internal/model"
)

// Helper function to create a migrated test store.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store
}

// Helper function to create test investments.
func createTestInvestments(count int) []model.Investment {
	types := []string{"Ações", "Renda Fixa", "Imóveis", "Criptomoedas"}
	investments := make([]model.Investment, count)
	baseDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		investments[i] = model.Investment{
			Name:   "Aplicação " + string(rune('A'+i)),
			Type:   types[i%len(types)],
			Amount: decimal.NewFromInt(int64(i+1) * 1000),
			Date:   baseDate.AddDate(0, 0, i),
		}
	}
	return investments
}

func TestNewStoreRequiresPath(t *testing.T) {
	if _, err := NewStore(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := NewStore("   "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store in nested directory: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	inv := createTestInvestments(1)[0]
	if err := store.CreateInvestment(ctx, &inv); err != nil {
		t.Fatalf("Failed to create investment: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	reopened, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	if err := reopened.Migrate(ctx); err != nil {
		t.Fatalf("Failed to re-run migrations: %v", err)
	}

	got, err := reopened.ListInvestments(ctx)
	if err != nil {
		t.Fatalf("Failed to list investments: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 investment after reopen, got %d", len(got))
	}
	if got[0].Name != inv.Name {
		t.Errorf("Expected name %q, got %q", inv.Name, got[0].Name)
	}
}
