package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frotaops/fleetledger/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	e.id, e.direction, e.category_id, e.party_id, e.total_amount,
	e.installment_number, e.total_installments, e.accrual_date, e.due_date,
	e.settlement_date, e.settled_amount, e.payment_method_id,
	e.document_number, e.origin, e.origin_id, e.note,
	e.created_at, e.updated_at, e.deleted_at
`

// scanEntry reads one ledger entry row in selectEntryColumns order.
func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var (
		direction, origin string
		settledAmount     decimal.NullDecimal
		docNumber         sql.NullString
		note              sql.NullString
	)

	if err := s.Scan(
		&e.ID, &direction, &e.CategoryID, &e.PartyID, &e.TotalAmount,
		&e.InstallmentNumber, &e.TotalInstallments, &e.AccrualDate, &e.DueDate,
		&e.SettlementDate, &settledAmount, &e.PaymentMethodID,
		&docNumber, &origin, &e.OriginID, &note,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	e.Direction = ledger.Direction(direction)
	e.Origin = ledger.Origin(origin)
	e.DocumentNumber = docNumber.String
	e.Note = note.String

	if settledAmount.Valid {
		e.SettledAmount = &settledAmount.Decimal
	}

	return &e, nil
}

const insertEntryQuery = `
	INSERT INTO ledger_entries (
		direction, category_id, party_id, total_amount,
		installment_number, total_installments, accrual_date, due_date,
		document_number, origin, origin_id, note, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertEntry(ctx context.Context, q rowQuerier, e *ledger.Entry) error {
	return q.QueryRowContext(ctx, insertEntryQuery,
		e.Direction,
		e.CategoryID,
		e.PartyID,
		e.TotalAmount,
		e.InstallmentNumber,
		e.TotalInstallments,
		e.AccrualDate,
		e.DueDate,
		e.DocumentNumber,
		e.Origin,
		e.OriginID,
		e.Note,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// CreateEntries inserts all entries of an installment plan in one database
// transaction; either the whole plan persists or none of it does.
func (s *Store) CreateEntries(ctx context.Context, entries []*ledger.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning create tx: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		if err := insertEntry(ctx, tx, e); err != nil {
			return fmt.Errorf("creating entry %d/%d: %w", e.InstallmentNumber, e.TotalInstallments, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entries: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM ledger_entries e
		WHERE e.id = $1 AND e.deleted_at IS NULL`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM ledger_entries e
		WHERE e.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Direction != nil {
		query += fmt.Sprintf(" AND e.direction = $%d", argIdx)

		args = append(args, *filter.Direction)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND e.due_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND e.due_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND e.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.PartyID != nil {
		query += fmt.Sprintf(" AND e.party_id = $%d", argIdx)

		args = append(args, *filter.PartyID)
		argIdx++
	}

	query += " ORDER BY e.due_date ASC, e.installment_number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

func (s *Store) UpdateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		UPDATE ledger_entries
		SET category_id = $1, party_id = $2, total_amount = $3,
			accrual_date = $4, due_date = $5, document_number = $6,
			note = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL AND settlement_date IS NULL
	`

	res, err := s.db.ExecContext(ctx, query,
		e.CategoryID,
		e.PartyID,
		e.TotalAmount,
		e.AccrualDate,
		e.DueDate,
		e.DocumentNumber,
		e.Note,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE ledger_entries
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND settlement_date IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	// The service verifies the entry exists and is unsettled before calling;
	// zero rows here means a settlement won the race.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrAlreadySettled
	}

	return nil
}

type settleTx struct {
	tx *sql.Tx
}

// BeginSettle opens the transaction that carries a settlement: the update of
// the settled entry and, for partial settlements, the residual insert commit
// or roll back together.
func (s *Store) BeginSettle(ctx context.Context) (ledger.SettleTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning settle tx: %w", err)
	}

	return &settleTx{tx: tx}, nil
}

func (t *settleTx) Commit() error   { return t.tx.Commit() }
func (t *settleTx) Rollback() error { return t.tx.Rollback() }

func (t *settleTx) UpdateSettlement(ctx context.Context, e *ledger.Entry) error {
	query := `
		UPDATE ledger_entries
		SET settlement_date = $1, settled_amount = $2, payment_method_id = $3,
			note = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL AND settlement_date IS NULL
	`

	res, err := t.tx.ExecContext(ctx, query,
		e.SettlementDate,
		e.SettledAmount,
		e.PaymentMethodID,
		e.Note,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("recording settlement: %w", err)
	}

	// The guard in the WHERE clause protects against a concurrent settle
	// between the service's read and this write.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrAlreadySettled
	}

	return nil
}

func (t *settleTx) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	if err := insertEntry(ctx, t.tx, e); err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	return nil
}
