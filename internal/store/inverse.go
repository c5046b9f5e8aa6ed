package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Simplici0/printquote/internal/pricing"
)

// InverseQuote is a stored inverse quote request with its suggestion.
type InverseQuote struct {
	ID        int64
	Input     pricing.InverseInput
	Result    pricing.InverseResult
	CreatedAt time.Time
}

// SaveInverseQuote records an inverse quote.
func (s *Store) SaveInverseQuote(ctx context.Context, in pricing.InverseInput, result pricing.InverseResult) (InverseQuote, error) {
	createdAt, raw := s.timestamp()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO inverse_quotes (budget, total_weight, filament_grams, print_time, infill, layer_height, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Budget, in.TotalWeight, in.FilamentGrams, result.PrintTime, result.Infill, result.LayerHeight, raw)
	if err != nil {
		return InverseQuote{}, fmt.Errorf("insert inverse quote: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return InverseQuote{}, fmt.Errorf("read inverse quote id: %w", err)
	}

	return InverseQuote{ID: id, Input: in, Result: result, CreatedAt: createdAt}, nil
}

// CountInverseQuotes returns how many inverse quotes were recorded.
func (s *Store) CountInverseQuotes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inverse_quotes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inverse quotes: %w", err)
	}
	return n, nil
}
