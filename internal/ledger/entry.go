package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction tells whether an entry is money owed (payable) or money
// expected (receivable).
type Direction string

const (
	DirectionPayable    Direction = "payable"
	DirectionReceivable Direction = "receivable"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionPayable || d == DirectionReceivable
}

// CategoryDirection is the single-letter category typing used by the
// category registry: D for expense/payable, R for income/receivable.
func (d Direction) CategoryDirection() string {
	if d == DirectionPayable {
		return "D"
	}

	return "R"
}

// Origin records how an entry came to exist.
type Origin string

const (
	OriginManual          Origin = "manual"
	OriginTrip            Origin = "trip"
	OriginFueling         Origin = "fueling"
	OriginResidualBalance Origin = "residual_balance"
)

// Status is the derived display state of an entry. It is computed at read
// time by Classify and never persisted.
type Status string

const (
	StatusOpen    Status = "open"
	StatusOverdue Status = "overdue"
	StatusSettled Status = "settled"
)

var (
	ErrNotFound                = errors.New("ledger entry not found")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInvalidInstallmentCount = errors.New("installment count must be at least 1")
	ErrInvalidPaymentAmount    = errors.New("payment amount must be positive and no greater than the entry amount")
	ErrMissingPaymentMethod    = errors.New("payment method is required")
	ErrAlreadySettled          = errors.New("entry is already settled")
	ErrCategoryMismatch        = errors.New("category direction does not match entry direction")
	ErrMissingOrigin           = errors.New("origin id is required for non-manual entries")
)

// Entry is one payable or receivable obligation, possibly a single
// installment of a larger plan. Presence of SettlementDate is the sole
// source of truth for "settled"; once set, the entry is immutable.
type Entry struct {
	ID                uuid.UUID
	Direction         Direction
	CategoryID        uuid.UUID
	PartyID           uuid.UUID
	TotalAmount       decimal.Decimal
	InstallmentNumber int
	TotalInstallments int
	AccrualDate       time.Time
	DueDate           time.Time
	SettlementDate    *time.Time
	SettledAmount     *decimal.Decimal
	PaymentMethodID   *uuid.UUID
	DocumentNumber    string
	Origin            Origin
	OriginID          *uuid.UUID
	Note              string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
}

// Settled reports whether the entry has been paid/received.
func (e *Entry) Settled() bool {
	return e.SettlementDate != nil
}
