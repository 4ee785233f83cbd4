package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Directions: D marks expense (payable) categories, R income (receivable).
const (
	DirectionExpense = "D"
	DirectionIncome  = "R"
)

var (
	ErrNotFound         = errors.New("category not found")
	ErrInvalidDirection = errors.New("category direction must be D or R")
)

// Category classifies ledger entries. Its direction constrains which entries
// may reference it and is fixed at creation.
type Category struct {
	ID        uuid.UUID
	Name      string
	Direction string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
