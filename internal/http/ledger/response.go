package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frotaops/fleetledger/internal/ledger"
)

type entryResponse struct {
	ID                uuid.UUID        `json:"id"`
	Direction         ledger.Direction `json:"direction"`
	CategoryID        uuid.UUID        `json:"category_id"`
	PartyID           uuid.UUID        `json:"party_id"`
	Amount            decimal.Decimal  `json:"amount"`
	InstallmentNumber int              `json:"installment_number"`
	TotalInstallments int              `json:"total_installments"`
	AccrualDate       string           `json:"accrual_date"`
	DueDate           string           `json:"due_date"`
	SettlementDate    *string          `json:"settlement_date,omitempty"`
	SettledAmount     *decimal.Decimal `json:"settled_amount,omitempty"`
	PaymentMethodID   *uuid.UUID       `json:"payment_method_id,omitempty"`
	DocumentNumber    string           `json:"document_number,omitempty"`
	Origin            ledger.Origin    `json:"origin"`
	OriginID          *uuid.UUID       `json:"origin_id,omitempty"`
	Note              string           `json:"note,omitempty"`
	Status            ledger.Status    `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(e *ledger.Entry, asOf time.Time) entryResponse {
	resp := entryResponse{
		ID:                e.ID,
		Direction:         e.Direction,
		CategoryID:        e.CategoryID,
		PartyID:           e.PartyID,
		Amount:            e.TotalAmount,
		InstallmentNumber: e.InstallmentNumber,
		TotalInstallments: e.TotalInstallments,
		AccrualDate:       e.AccrualDate.Format(time.DateOnly),
		DueDate:           e.DueDate.Format(time.DateOnly),
		SettledAmount:     e.SettledAmount,
		PaymentMethodID:   e.PaymentMethodID,
		DocumentNumber:    e.DocumentNumber,
		Origin:            e.Origin,
		OriginID:          e.OriginID,
		Note:              e.Note,
		Status:            ledger.Classify(e, asOf),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}

	if e.SettlementDate != nil {
		s := e.SettlementDate.Format(time.DateOnly)
		resp.SettlementDate = &s
	}

	return resp
}

func toResponseList(entries []*ledger.Entry, asOf time.Time) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e, asOf)
	}

	return resp
}

type settleResponse struct {
	Entry    entryResponse  `json:"entry"`
	Residual *entryResponse `json:"residual,omitempty"`
}

func toSettleResponse(result *ledger.SettleResult) settleResponse {
	now := time.Now()

	resp := settleResponse{Entry: toResponse(result.Entry, now)}
	if result.Residual != nil {
		residual := toResponse(result.Residual, now)
		resp.Residual = &residual
	}

	return resp
}

type summaryResponse struct {
	Open    decimal.Decimal `json:"open"`
	Overdue decimal.Decimal `json:"overdue"`
	Settled decimal.Decimal `json:"settled"`
	Count   int             `json:"count"`
}

func toSummaryResponse(sum *ledger.Summary) summaryResponse {
	return summaryResponse{
		Open:    sum.Open,
		Overdue: sum.Overdue,
		Settled: sum.Settled,
		Count:   sum.Count,
	}
}
