package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsaniceto14/investctl/internal/model"
)

func TestCreateInvestmentAssignsID(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	investments := createTestInvestments(3)
	seen := make(map[int64]bool)
	for i := range investments {
		if err := store.CreateInvestment(ctx, &investments[i]); err != nil {
			t.Fatalf("Failed to create investment %d: %v", i, err)
		}
		if investments[i].ID == 0 {
			t.Errorf("Investment %d has no assigned id", i)
		}
		if seen[investments[i].ID] {
			t.Errorf("Duplicate id %d", investments[i].ID)
		}
		seen[investments[i].ID] = true
	}
}

func TestCreateInvestmentValidates(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		inv  model.Investment
	}{
		{name: "empty name", inv: model.Investment{Type: "Ações", Amount: decimal.NewFromInt(1), Date: date}},
		{name: "empty type", inv: model.Investment{Name: "CDB", Amount: decimal.NewFromInt(1), Date: date}},
		{name: "negative amount", inv: model.Investment{Name: "CDB", Type: "Renda Fixa", Amount: decimal.NewFromInt(-1), Date: date}},
		{name: "zero date", inv: model.Investment{Name: "CDB", Type: "Renda Fixa", Amount: decimal.NewFromInt(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.inv
			err := store.CreateInvestment(ctx, &inv)
			if !errors.Is(err, ErrInvalidInvestment) {
				t.Errorf("Expected ErrInvalidInvestment, got %v", err)
			}
		})
	}
}

func TestListInvestmentsPreservesInsertionOrder(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	investments := createTestInvestments(5)
	for i := range investments {
		if err := store.CreateInvestment(ctx, &investments[i]); err != nil {
			t.Fatalf("Failed to create investment: %v", err)
		}
	}

	got, err := store.ListInvestments(ctx)
	if err != nil {
		t.Fatalf("Failed to list investments: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Expected 5 investments, got %d", len(got))
	}
	for i := range got {
		if got[i].Name != investments[i].Name {
			t.Errorf("Position %d: expected %q, got %q", i, investments[i].Name, got[i].Name)
		}
	}
}

func TestInvestmentRoundTripPreservesAmountAndDate(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	inv := model.Investment{
		Name:   "Tesouro IPCA+ 2035",
		Type:   "Renda Fixa",
		Amount: decimal.RequireFromString("1234.56"),
		Date:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	}
	if err := store.CreateInvestment(ctx, &inv); err != nil {
		t.Fatalf("Failed to create investment: %v", err)
	}

	got, err := store.GetInvestment(ctx, inv.ID)
	if err != nil {
		t.Fatalf("Failed to load investment: %v", err)
	}
	if !got.Amount.Equal(inv.Amount) {
		t.Errorf("Amount drifted: stored %s, loaded %s", inv.Amount, got.Amount)
	}
	if !got.Date.Equal(inv.Date) {
		t.Errorf("Date drifted: stored %s, loaded %s", inv.Date, got.Date)
	}
	if got.Type != inv.Type {
		t.Errorf("Expected type %q, got %q", inv.Type, got.Type)
	}
}

func TestGetInvestmentNotFound(t *testing.T) {
	store := createTestStore(t)

	_, err := store.GetInvestment(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateInvestment(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestments(1)[0]
	if err := store.CreateInvestment(ctx, &inv); err != nil {
		t.Fatalf("Failed to create investment: %v", err)
	}

	inv.Name = "Renomeado"
	inv.Amount = decimal.RequireFromString("999.99")
	if err := store.UpdateInvestment(ctx, &inv); err != nil {
		t.Fatalf("Failed to update investment: %v", err)
	}

	got, err := store.GetInvestment(ctx, inv.ID)
	if err != nil {
		t.Fatalf("Failed to load investment: %v", err)
	}
	if got.Name != "Renomeado" {
		t.Errorf("Expected updated name, got %q", got.Name)
	}
	if !got.Amount.Equal(decimal.RequireFromString("999.99")) {
		t.Errorf("Expected updated amount, got %s", got.Amount)
	}
}

func TestUpdateInvestmentNotFound(t *testing.T) {
	store := createTestStore(t)

	inv := createTestInvestments(1)[0]
	inv.ID = 4242
	err := store.UpdateInvestment(context.Background(), &inv)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteInvestment(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	inv := createTestInvestments(1)[0]
	if err := store.CreateInvestment(ctx, &inv); err != nil {
		t.Fatalf("Failed to create investment: %v", err)
	}

	if err := store.DeleteInvestment(ctx, inv.ID); err != nil {
		t.Fatalf("Failed to delete investment: %v", err)
	}

	// A second delete of the same id must fail loudly, not succeed silently.
	err := store.DeleteInvestment(ctx, inv.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}

	count, err := store.CountInvestments(ctx)
	if err != nil {
		t.Fatalf("Failed to count investments: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty store, got %d records", count)
	}
}

func TestCountInvestments(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	count, err := store.CountInvestments(ctx)
	if err != nil {
		t.Fatalf("Failed to count investments: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected 0 on fresh store, got %d", count)
	}

	investments := createTestInvestments(4)
	for i := range investments {
		if err := store.CreateInvestment(ctx, &investments[i]); err != nil {
			t.Fatalf("Failed to create investment: %v", err)
		}
	}

	count, err = store.CountInvestments(ctx)
	if err != nil {
		t.Fatalf("Failed to count investments: %v", err)
	}
	if count != 4 {
		t.Errorf("Expected 4, got %d", count)
	}
}
