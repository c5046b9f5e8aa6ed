package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/printquote/internal/quote"
)

const quoteColumns = `
	id, user_id, quote_name,
	printer_json, filament_json, energy_json, model_json, commercial_json, summary_json,
	created_at, updated_at`

// CreateQuote inserts q and fills its ID and timestamps.
func (s *Store) CreateQuote(ctx context.Context, q *quote.Quote) error {
	cols, err := encodeQuote(q)
	if err != nil {
		return err
	}
	now, raw := s.timestamp()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (
			user_id, quote_name,
			printer_json, filament_json, energy_json, model_json, commercial_json, summary_json,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.UserID, q.QuoteName,
		cols.printer, cols.filament, cols.energy, cols.model, cols.commercial, cols.summary,
		raw, raw)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read quote id: %w", err)
	}
	q.ID = id
	q.CreatedAt = now
	q.UpdatedAt = now
	return nil
}

// GetQuote returns the quote with the given id.
func (s *Store) GetQuote(ctx context.Context, id int64) (quote.Quote, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id)
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return quote.Quote{}, ErrNotFound
	}
	if err != nil {
		return quote.Quote{}, err
	}
	return q, nil
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListQuotes returns the quotes of userID, newest first. A non-empty query
// keeps only quotes whose name contains it.
func (s *Store) ListQuotes(ctx context.Context, userID int64, query string) ([]quote.Quote, error) {
	search := "%" + likeEscaper.Replace(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quoteColumns+`
		FROM quotes
		WHERE user_id = ? AND (? = '' OR quote_name LIKE ? ESCAPE '\')
		ORDER BY created_at DESC, id DESC
	`, userID, query, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]quote.Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

// UpdateQuote replaces the document and summary of q and refreshes UpdatedAt.
func (s *Store) UpdateQuote(ctx context.Context, q *quote.Quote) error {
	cols, err := encodeQuote(q)
	if err != nil {
		return err
	}
	now, raw := s.timestamp()

	result, err := s.db.ExecContext(ctx, `
		UPDATE quotes
		SET
			quote_name = ?,
			printer_json = ?,
			filament_json = ?,
			energy_json = ?,
			model_json = ?,
			commercial_json = ?,
			summary_json = ?,
			updated_at = ?
		WHERE id = ?
	`, q.QuoteName,
		cols.printer, cols.filament, cols.energy, cols.model, cols.commercial, cols.summary,
		raw, q.ID)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	q.UpdatedAt = now
	return nil
}

// DeleteQuote removes the quote with the given id.
func (s *Store) DeleteQuote(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type quoteJSON struct {
	printer, filament, energy, model, commercial, summary string
}

func encodeQuote(q *quote.Quote) (quoteJSON, error) {
	var out quoteJSON
	parts := []struct {
		name string
		v    any
		dst  *string
	}{
		{"printer", q.Printer, &out.printer},
		{"filament", q.Filament, &out.filament},
		{"energy", q.Energy, &out.energy},
		{"model", q.Model, &out.model},
		{"commercial", q.Commercial, &out.commercial},
		{"summary", q.Summary, &out.summary},
	}
	for _, p := range parts {
		b, err := json.Marshal(p.v)
		if err != nil {
			return quoteJSON{}, fmt.Errorf("encode quote %s: %w", p.name, err)
		}
		*p.dst = string(b)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (quote.Quote, error) {
	var q quote.Quote
	var cols quoteJSON
	var createdAt, updatedAt string
	if err := row.Scan(
		&q.ID, &q.UserID, &q.QuoteName,
		&cols.printer, &cols.filament, &cols.energy, &cols.model, &cols.commercial, &cols.summary,
		&createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quote.Quote{}, err
		}
		return quote.Quote{}, fmt.Errorf("scan quote: %w", err)
	}

	parts := []struct {
		name string
		raw  string
		dst  any
	}{
		{"printer", cols.printer, &q.Printer},
		{"filament", cols.filament, &q.Filament},
		{"energy", cols.energy, &q.Energy},
		{"model", cols.model, &q.Model},
		{"commercial", cols.commercial, &q.Commercial},
		{"summary", cols.summary, &q.Summary},
	}
	for _, p := range parts {
		if err := json.Unmarshal([]byte(p.raw), p.dst); err != nil {
			return quote.Quote{}, fmt.Errorf("decode quote %d %s: %w", q.ID, p.name, err)
		}
	}

	var err error
	if q.CreatedAt, err = parseTime(createdAt); err != nil {
		return quote.Quote{}, fmt.Errorf("parse quote created_at: %w", err)
	}
	if q.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return quote.Quote{}, fmt.Errorf("parse quote updated_at: %w", err)
	}
	return q, nil
}
