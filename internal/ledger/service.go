package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/frotaops/fleetledger/internal/money"
)

// settleTolerance is the currency-precision slack when comparing a payment
// against the entry amount (half a cent).
var settleTolerance = decimal.New(5, -3)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateEntries(ctx context.Context, entries []*Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	UpdateEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)

	BeginSettle(ctx context.Context) (SettleTx, error)
}

// SettleTx scopes the two writes of a settlement (update the settled entry,
// optionally insert the residual) to a single database transaction.
type SettleTx interface {
	UpdateSettlement(ctx context.Context, e *Entry) error
	CreateEntry(ctx context.Context, e *Entry) error
	Commit() error
	Rollback() error
}

// CategoryDirectory resolves the D/R typing of a category so entries can be
// checked against it without importing the category package.
type CategoryDirectory interface {
	Direction(ctx context.Context, id uuid.UUID) (string, error)
}

type Service struct {
	repo       Repository
	categories CategoryDirectory
	locale     language.Tag
}

// NewService builds the entry service. locale drives the currency rendering
// in machine-appended notes.
func NewService(repo Repository, categories CategoryDirectory, locale language.Tag) *Service {
	return &Service{repo: repo, categories: categories, locale: locale}
}

type CreateParams struct {
	Direction         Direction
	CategoryID        uuid.UUID
	PartyID           uuid.UUID
	TotalAmount       decimal.Decimal
	TotalInstallments int
	AccrualDate       time.Time
	DueDate           time.Time
	DocumentNumber    string
	Origin            Origin
	OriginID          *uuid.UUID
	Note              string
}

type ListFilter struct {
	Direction  *Direction
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	PartyID    *uuid.UUID
	Status     *Status
	// AsOf anchors status classification for the Status filter and for
	// Summarize; zero means time.Now().
	AsOf time.Time
}

// Create validates params, plans the installments and persists them as one
// batch. A plain single entry is a plan of one.
func (s *Service) Create(ctx context.Context, params CreateParams) ([]*Entry, error) {
	if !params.Direction.Valid() {
		return nil, fmt.Errorf("unknown direction %q", params.Direction)
	}

	if params.Origin == "" {
		params.Origin = OriginManual
	}

	if params.Origin == OriginManual {
		params.OriginID = nil
	} else if params.OriginID == nil {
		return nil, ErrMissingOrigin
	}

	if err := s.checkCategory(ctx, params.Direction, params.CategoryID); err != nil {
		return nil, err
	}

	count := params.TotalInstallments
	if count == 0 {
		count = 1
	}

	entries, err := PlanInstallments(params.TotalAmount, count, SharedFields{
		Direction:      params.Direction,
		CategoryID:     params.CategoryID,
		PartyID:        params.PartyID,
		AccrualDate:    params.AccrualDate,
		DueDate:        params.DueDate,
		DocumentNumber: params.DocumentNumber,
		Origin:         params.Origin,
		OriginID:       params.OriginID,
		Note:           params.Note,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("creating entries: %w", err)
	}

	return entries, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

// Update replaces the mutable fields of an unsettled entry. Settled entries
// are immutable.
func (s *Service) Update(ctx context.Context, e *Entry) error {
	current, err := s.repo.GetEntry(ctx, e.ID)
	if err != nil {
		return err
	}

	if current.Settled() {
		return ErrAlreadySettled
	}

	if e.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if err := s.checkCategory(ctx, e.Direction, e.CategoryID); err != nil {
		return err
	}

	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	return nil
}

// Delete removes an unsettled entry. Deleting a settled entry fails with
// ErrAlreadySettled.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	if current.Settled() {
		return ErrAlreadySettled
	}

	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	return nil
}

// List returns entries matching the filter. The Status filter is applied
// here rather than in SQL because status is derived, never stored.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	entries, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	if filter.Status == nil {
		return entries, nil
	}

	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	matched := entries[:0]

	for _, e := range entries {
		if Classify(e, asOf) == *filter.Status {
			matched = append(matched, e)
		}
	}

	return matched, nil
}

type SettleParams struct {
	Amount          decimal.Decimal
	Date            time.Time
	PaymentMethodID uuid.UUID
	// CreateResidual spawns a new open entry for the unpaid remainder of a
	// partial settlement. It replaces the confirm dialog of the front end:
	// the caller decides, the engine never prompts.
	CreateResidual bool
}

type SettleResult struct {
	Entry    *Entry
	Residual *Entry
}

// Settle records a payment against an entry. An exact payment (within half a
// cent) settles it outright; a smaller one settles it for the paid amount,
// annotates the original total and, when requested, creates a residual entry
// for the remainder inside the same database transaction. Overpayment is
// rejected and nothing is touched.
func (s *Service) Settle(ctx context.Context, id uuid.UUID, params SettleParams) (*SettleResult, error) {
	if params.PaymentMethodID == uuid.Nil {
		return nil, ErrMissingPaymentMethod
	}

	if params.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPaymentAmount
	}

	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Settled() {
		return nil, ErrAlreadySettled
	}

	diff := entry.TotalAmount.Sub(params.Amount)
	if diff.Neg().GreaterThanOrEqual(settleTolerance) {
		return nil, ErrInvalidPaymentAmount
	}

	exact := diff.Abs().LessThan(settleTolerance)

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	paid := params.Amount
	if exact {
		// A payment within the tolerance settles for the face amount, so
		// settled_amount never exceeds total_amount.
		paid = entry.TotalAmount
	}

	methodID := params.PaymentMethodID
	entry.SettlementDate = &date
	entry.SettledAmount = &paid
	entry.PaymentMethodID = &methodID

	var residual *Entry

	if !exact {
		entry.Note = appendNote(entry.Note, fmt.Sprintf(
			"[partial settlement - original amount: %s]",
			money.Format(entry.TotalAmount, s.locale),
		))

		if params.CreateResidual {
			remainder := entry.TotalAmount.Sub(paid)
			originID := entry.ID
			residual = &Entry{
				Direction:         entry.Direction,
				CategoryID:        entry.CategoryID,
				PartyID:           entry.PartyID,
				TotalAmount:       remainder,
				InstallmentNumber: 1,
				TotalInstallments: 1,
				AccrualDate:       date,
				DueDate:           entry.DueDate,
				DocumentNumber:    entry.DocumentNumber,
				Origin:            OriginResidualBalance,
				OriginID:          &originID,
				Note:              fmt.Sprintf("residual balance from entry %s", entry.ID),
			}
		}
	}

	tx, err := s.repo.BeginSettle(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning settlement: %w", err)
	}
	defer tx.Rollback()

	if err := tx.UpdateSettlement(ctx, entry); err != nil {
		return nil, fmt.Errorf("recording settlement: %w", err)
	}

	if residual != nil {
		if err := tx.CreateEntry(ctx, residual); err != nil {
			return nil, fmt.Errorf("creating residual entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing settlement: %w", err)
	}

	return &SettleResult{Entry: entry, Residual: residual}, nil
}

// Summary aggregates entry amounts by derived status.
type Summary struct {
	Open    decimal.Decimal
	Overdue decimal.Decimal
	Settled decimal.Decimal
	Count   int
}

// Summarize totals the entries matching the filter, bucketed by their status
// as of filter.AsOf. Settled entries contribute their settled amount, open
// and overdue ones their face amount.
func (s *Service) Summarize(ctx context.Context, filter ListFilter) (*Summary, error) {
	filter.Status = nil

	entries, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	sum := &Summary{Count: len(entries)}

	for _, e := range entries {
		switch Classify(e, asOf) {
		case StatusSettled:
			// The schema ties settled_amount to settlement_date; rows that
			// predate the constraint fall back to the face amount.
			settled := e.TotalAmount
			if e.SettledAmount != nil {
				settled = *e.SettledAmount
			}

			sum.Settled = sum.Settled.Add(settled)
		case StatusOverdue:
			sum.Overdue = sum.Overdue.Add(e.TotalAmount)
		default:
			sum.Open = sum.Open.Add(e.TotalAmount)
		}
	}

	return sum, nil
}

func (s *Service) checkCategory(ctx context.Context, dir Direction, categoryID uuid.UUID) error {
	categoryDir, err := s.categories.Direction(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("resolving category: %w", err)
	}

	if categoryDir != dir.CategoryDirection() {
		return ErrCategoryMismatch
	}

	return nil
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}

	return existing + " " + note
}
