package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultCredits is the free AI-analysis allowance for new users.
const DefaultCredits = 10

// CreditBalance is a user's AI credit snapshot.
type CreditBalance struct {
	Credits   int
	TotalUsed int
}

// Credits returns a user's balance, creating the row with DefaultCredits on
// first sight. Callers never provision credit rows themselves.
func (s *Store) Credits(ctx context.Context, userID string) (CreditBalance, error) {
	var bal CreditBalance
	row := s.db.QueryRowContext(ctx,
		`SELECT credits, total_used FROM ai_credits WHERE telegram_user_id = ?`, userID)
	err := row.Scan(&bal.Credits, &bal.TotalUsed)
	if err == nil {
		return bal, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return CreditBalance{}, fmt.Errorf("get credits: %w", err)
	}

	now := time.Now().UnixMilli()
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO ai_credits (telegram_user_id, credits, total_used, created_at, updated_at)
VALUES (?, ?, 0, ?, ?)
ON CONFLICT(telegram_user_id) DO NOTHING
`, userID, DefaultCredits, now, now); err != nil {
		return CreditBalance{}, fmt.Errorf("init credits: %w", err)
	}
	return CreditBalance{Credits: DefaultCredits, TotalUsed: 0}, nil
}

// ConsumeCredit spends one credit. The decrement is conditional at the SQL
// level, so the balance can never go negative even under concurrent calls.
// Returns false when no credits remain.
func (s *Store) ConsumeCredit(ctx context.Context, userID string) (bool, error) {
	// Make sure the row exists so first-time users spend from the default
	// allowance.
	if _, err := s.Credits(ctx, userID); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, `
UPDATE ai_credits
SET credits = credits - 1, total_used = total_used + 1, updated_at = ?
WHERE telegram_user_id = ? AND credits > 0
`, time.Now().UnixMilli(), userID)
	if err != nil {
		return false, fmt.Errorf("consume credit: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume credit: %w", err)
	}
	return rows > 0, nil
}

// AddCredits tops up a user's balance and returns the updated snapshot.
func (s *Store) AddCredits(ctx context.Context, userID string, amount int) (CreditBalance, error) {
	if amount <= 0 {
		return CreditBalance{}, fmt.Errorf("amount must be positive")
	}
	if _, err := s.Credits(ctx, userID); err != nil {
		return CreditBalance{}, err
	}

	if _, err := s.db.ExecContext(ctx, `
UPDATE ai_credits
SET credits = credits + ?, updated_at = ?
WHERE telegram_user_id = ?
`, amount, time.Now().UnixMilli(), userID); err != nil {
		return CreditBalance{}, fmt.Errorf("add credits: %w", err)
	}
	return s.Credits(ctx, userID)
}
