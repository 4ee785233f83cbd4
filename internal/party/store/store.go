package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/frotaops/fleetledger/internal/party"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectPartyColumns = `id, name, kind, document, phone, city, created_at, updated_at`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanParty(s scanner) (*party.Party, error) {
	var p party.Party

	var kind string

	var document, phone, city sql.NullString

	if err := s.Scan(&p.ID, &p.Name, &kind, &document, &phone, &city, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	p.Kind = party.Kind(kind)
	p.Document = document.String
	p.Phone = phone.String
	p.City = city.String

	return &p, nil
}

func (s *Store) CreateParty(ctx context.Context, p *party.Party) error {
	query := `
		INSERT INTO parties (name, kind, document, phone, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, p.Name, p.Kind, p.Document, p.Phone, p.City).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating party: %w", err)
	}

	return nil
}

func (s *Store) GetParty(ctx context.Context, id uuid.UUID) (*party.Party, error) {
	query := `SELECT ` + selectPartyColumns + ` FROM parties WHERE id = $1 AND deleted_at IS NULL`

	p, err := scanParty(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, party.ErrNotFound
		}

		return nil, fmt.Errorf("getting party: %w", err)
	}

	return p, nil
}

func (s *Store) ListParties(ctx context.Context, kinds []party.Kind) ([]*party.Party, error) {
	query := `SELECT ` + selectPartyColumns + ` FROM parties WHERE deleted_at IS NULL`

	var args []any

	if len(kinds) > 0 {
		query += " AND kind = ANY($1)"

		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = string(k)
		}

		args = append(args, names)
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing parties: %w", err)
	}
	defer rows.Close()

	var parties []*party.Party

	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning party: %w", err)
		}

		parties = append(parties, p)
	}

	return parties, rows.Err()
}

func (s *Store) UpdateParty(ctx context.Context, p *party.Party) error {
	query := `
		UPDATE parties
		SET name = $1, kind = $2, document = $3, phone = $4, city = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, p.Name, p.Kind, p.Document, p.Phone, p.City, p.ID)
	if err != nil {
		return fmt.Errorf("updating party: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return party.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteParty(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE parties
		SET deleted_at = NOW()
		WHERE id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting party: %w", err)
	}

	return nil
}
