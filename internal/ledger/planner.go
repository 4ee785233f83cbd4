package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SharedFields are the values every installment of a plan has in common.
type SharedFields struct {
	Direction      Direction
	CategoryID     uuid.UUID
	PartyID        uuid.UUID
	AccrualDate    time.Time
	DueDate        time.Time
	DocumentNumber string
	Origin         Origin
	OriginID       *uuid.UUID
	Note           string
}

// PlanInstallments splits total into count entry drafts. The per-installment
// amount is total/count rounded to the cent; the last installment absorbs the
// rounding remainder so the drafts always sum to total exactly
// (100.00 / 3 -> 33.33, 33.33, 33.34).
//
// The drafts are not persisted here; Service.Create stores them as one batch.
func PlanInstallments(total decimal.Decimal, count int, shared SharedFields) ([]*Entry, error) {
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if count < 1 {
		return nil, ErrInvalidInstallmentCount
	}

	per := total.Div(decimal.NewFromInt(int64(count))).Round(2)
	if per.IsZero() {
		// Splitting would produce 0.00 installments, which can never be
		// stored (entry amounts must be positive).
		return nil, ErrInvalidAmount
	}

	last := total.Sub(per.Mul(decimal.NewFromInt(int64(count - 1))))
	if last.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	entries := make([]*Entry, count)
	for i := range entries {
		amount := per
		if i == count-1 {
			amount = last
		}

		entries[i] = &Entry{
			Direction:         shared.Direction,
			CategoryID:        shared.CategoryID,
			PartyID:           shared.PartyID,
			TotalAmount:       amount,
			InstallmentNumber: i + 1,
			TotalInstallments: count,
			AccrualDate:       shared.AccrualDate,
			DueDate:           shared.DueDate,
			DocumentNumber:    shared.DocumentNumber,
			Origin:            shared.Origin,
			OriginID:          shared.OriginID,
			Note:              shared.Note,
		}
	}

	return entries, nil
}
