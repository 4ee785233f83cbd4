package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/frotaops/fleetledger/internal/paymentmethod"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateMethod(ctx context.Context, m *paymentmethod.Method) error {
	query := `
		INSERT INTO payment_methods (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, m.Name).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("creating payment method: %w", err)
	}

	return nil
}

func (s *Store) GetMethod(ctx context.Context, id uuid.UUID) (*paymentmethod.Method, error) {
	query := `SELECT id, name, created_at FROM payment_methods WHERE id = $1`

	var m paymentmethod.Method

	err := s.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, paymentmethod.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment method: %w", err)
	}

	return &m, nil
}

func (s *Store) ListMethods(ctx context.Context) ([]*paymentmethod.Method, error) {
	query := `SELECT id, name, created_at FROM payment_methods ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer rows.Close()

	var methods []*paymentmethod.Method

	for rows.Next() {
		var m paymentmethod.Method
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment method: %w", err)
		}

		methods = append(methods, &m)
	}

	return methods, rows.Err()
}
