package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsaniceto14/investctl/internal/model"
)

const investmentDateLayout = "2006-01-02"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvestment(row rowScanner) (model.Investment, error) {
	var (
		inv       model.Investment
		amountStr string
		dateStr   string
	)
	if err := row.Scan(&inv.ID, &inv.Name, &inv.Type, &amountStr, &dateStr); err != nil {
		return model.Investment{}, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to parse stored amount %q: %w", amountStr, err)
	}
	inv.Amount = amount

	date, err := time.Parse(investmentDateLayout, dateStr)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to parse stored date %q: %w", dateStr, err)
	}
	inv.Date = date

	return inv, nil
}

// ListInvestments returns every investment in insertion order.
func (s *Store) ListInvestments(ctx context.Context) ([]model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, amount, date FROM investments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var investments []model.Investment
	for rows.Next() {
		inv, scanErr := scanInvestment(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", scanErr)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investments: %w", err)
	}

	return investments, nil
}

// CountInvestments returns the number of stored investments.
func (s *Store) CountInvestments(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM investments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count investments: %w", err)
	}
	return count, nil
}

// GetInvestment loads one investment by id.
func (s *Store) GetInvestment(ctx context.Context, id int64) (*model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, type, amount, date FROM investments WHERE id = ?`, id)
	inv, err := scanInvestment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: investment %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load investment %d: %w", id, err)
	}

	return &inv, nil
}

// CreateInvestment inserts a new investment and fills in its assigned id.
func (s *Store) CreateInvestment(ctx context.Context, inv *model.Investment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateInvestment(inv); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO investments (name, type, amount, date) VALUES (?, ?, ?, ?)`,
		inv.Name, inv.Type, inv.Amount.String(), inv.Date.Format(investmentDateLayout))
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new investment id: %w", err)
	}
	inv.ID = id

	return nil
}

// UpdateInvestment replaces the stored fields of an existing investment.
func (s *Store) UpdateInvestment(ctx context.Context, inv *model.Investment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateInvestment(inv); err != nil {
		return err
	}
	if inv.ID == 0 {
		return fmt.Errorf("%w: missing id", ErrInvalidInvestment)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE investments SET name = ?, type = ?, amount = ?, date = ? WHERE id = ?`,
		inv.Name, inv.Type, inv.Amount.String(), inv.Date.Format(investmentDateLayout), inv.ID)
	if err != nil {
		return fmt.Errorf("failed to update investment %d: %w", inv.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: investment %d", ErrNotFound, inv.ID)
	}

	return nil
}

// DeleteInvestment removes one investment. Deleting an id that does not
// exist reports ErrNotFound rather than succeeding silently.
func (s *Store) DeleteInvestment(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investment %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: investment %d", ErrNotFound, id)
	}

	return nil
}
