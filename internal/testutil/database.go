// Package testutil provides shared test helpers for packages that need a
// real, migrated store without repeating the setup boilerplate.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsaniceto14/investctl/internal/model"
	"github.com/rsaniceto14/investctl/internal/storage"
)

// SetupTestStore creates an in-memory SQLite store with migrations applied.
// Cleanup is registered automatically.
func SetupTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.NewStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test store: %v", err)
		}
	})

	return store
}

// SeedInvestments inserts count generated investments and returns them with
// their assigned ids. Names, types and amounts vary so filter and pagination
// tests have something to distinguish rows by.
func SeedInvestments(t *testing.T, store *storage.Store, count int) []model.Investment {
	t.Helper()

	types := model.KnownTypes()
	baseDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	investments := make([]model.Investment, count)
	ctx := context.Background()
	for i := 0; i < count; i++ {
		investments[i] = model.Investment{
			Name:   fmt.Sprintf("Aplicação %02d", i+1),
			Type:   types[i%len(types)],
			Amount: decimal.NewFromInt(int64(i+1) * 1000),
			Date:   baseDate.AddDate(0, 0, i),
		}
		if err := store.CreateInvestment(ctx, &investments[i]); err != nil {
			t.Fatalf("failed to seed investment %d: %v", i, err)
		}
	}

	return investments
}
