// Package storage provides the data persistence layer for investd.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rsaniceto14/investctl/internal/model"
)

// Validation and lookup errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrInvalidInvestment = errors.New("invalid investment")
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateInvestment validates a single investment.
func validateInvestment(inv *model.Investment) error {
	if inv == nil {
		return fmt.Errorf("%w: investment is nil", ErrInvalidInvestment)
	}
	if strings.TrimSpace(inv.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidInvestment)
	}
	if strings.TrimSpace(inv.Type) == "" {
		return fmt.Errorf("%w: missing type", ErrInvalidInvestment)
	}
	if inv.Amount.IsNegative() {
		return fmt.Errorf("%w: negative amount", ErrInvalidInvestment)
	}
	if inv.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidInvestment)
	}
	return nil
}
