// Package export renders ledger entries to CSV for download from the
// back-office screens.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frotaops/fleetledger/internal/ledger"
)

// NameResolver turns category and party ids into display names. Both the
// category and party services satisfy their half of it.
type NameResolver interface {
	CategoryName(ctx context.Context, id uuid.UUID) (string, error)
	PartyName(ctx context.Context, id uuid.UUID) (string, error)
}

type Service struct {
	entries  *ledger.Service
	resolver NameResolver
}

func NewService(entries *ledger.Service, resolver NameResolver) *Service {
	return &Service{entries: entries, resolver: resolver}
}

// Row is one exported ledger entry. Dates are rendered YYYY-MM-DD; amounts
// keep their plain decimal form so spreadsheets can sum them.
type Row struct {
	ID             string          `csv:"id"`
	Direction      string          `csv:"direction"`
	Category       string          `csv:"category"`
	Party          string          `csv:"party"`
	Amount         decimal.Decimal `csv:"amount"`
	Installment    string          `csv:"installment"`
	AccrualDate    string          `csv:"accrual_date"`
	DueDate        string          `csv:"due_date"`
	SettlementDate string          `csv:"settlement_date"`
	SettledAmount  string          `csv:"settled_amount"`
	Status         string          `csv:"status"`
	DocumentNumber string          `csv:"document_number"`
	Origin         string          `csv:"origin"`
	Note           string          `csv:"note"`
}

// Export writes the entries matching the filter as CSV. Status is classified
// as of filter.AsOf (or now), same as the listing screens.
func (s *Service) Export(ctx context.Context, filter ledger.ListFilter, w io.Writer) error {
	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	rows := make([]*Row, 0, len(entries))

	for _, e := range entries {
		row, err := s.toRow(ctx, e, asOf)
		if err != nil {
			return err
		}

		rows = append(rows, row)
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	return nil
}

func (s *Service) toRow(ctx context.Context, e *ledger.Entry, asOf time.Time) (*Row, error) {
	categoryName, err := s.resolver.CategoryName(ctx, e.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("resolving category %s: %w", e.CategoryID, err)
	}

	partyName, err := s.resolver.PartyName(ctx, e.PartyID)
	if err != nil {
		return nil, fmt.Errorf("resolving party %s: %w", e.PartyID, err)
	}

	row := &Row{
		ID:             e.ID.String(),
		Direction:      string(e.Direction),
		Category:       categoryName,
		Party:          partyName,
		Amount:         e.TotalAmount,
		Installment:    fmt.Sprintf("%d/%d", e.InstallmentNumber, e.TotalInstallments),
		AccrualDate:    e.AccrualDate.Format(time.DateOnly),
		DueDate:        e.DueDate.Format(time.DateOnly),
		Status:         string(ledger.Classify(e, asOf)),
		DocumentNumber: e.DocumentNumber,
		Origin:         string(e.Origin),
		Note:           e.Note,
	}

	if e.SettlementDate != nil {
		row.SettlementDate = e.SettlementDate.Format(time.DateOnly)
	}

	if e.SettledAmount != nil {
		row.SettledAmount = e.SettledAmount.StringFixed(2)
	}

	return row, nil
}
