package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment represents a single investment record in the remote collection.
// The remote store owns the canonical copy; instances held by the client are
// transient snapshots from the most recent page fetch.
type Investment struct {
	Date   time.Time
	Name   string // Display name, e.g. "Tesouro Selic 2029"
	Type   string // Category, usually one of KnownTypes
	Amount decimal.Decimal
	ID     int64
}

// KnownTypes lists the investment categories the pickers offer. Membership is
// not enforced client-side; the remote store accepts arbitrary category
// strings.
func KnownTypes() []string {
	return []string{"Ações", "Renda Fixa", "Imóveis", "Criptomoedas"}
}
