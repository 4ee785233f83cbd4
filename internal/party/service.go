package party

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/frotaops/fleetledger/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=party
type Repository interface {
	CreateParty(ctx context.Context, p *Party) error
	GetParty(ctx context.Context, id uuid.UUID) (*Party, error)
	ListParties(ctx context.Context, kinds []Kind) ([]*Party, error)
	UpdateParty(ctx context.Context, p *Party) error
	DeleteParty(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Kind     Kind
	Document string
	Phone    string
	City     string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Party, error) {
	if !params.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	p := &Party{
		Name:     params.Name,
		Kind:     params.Kind,
		Document: params.Document,
		Phone:    params.Phone,
		City:     params.City,
	}

	if err := s.repo.CreateParty(ctx, p); err != nil {
		return nil, fmt.Errorf("creating party: %w", err)
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Party, error) {
	return s.repo.GetParty(ctx, id)
}

// List returns parties of the given kind, or all parties when kind is empty.
func (s *Service) List(ctx context.Context, kind Kind) ([]*Party, error) {
	if kind == "" {
		return s.repo.ListParties(ctx, nil)
	}

	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	return s.repo.ListParties(ctx, []Kind{kind})
}

// ListForDirection returns the parties that can appear on entries of the
// given direction: suppliers and gas stations for payables, clients for
// receivables.
func (s *Service) ListForDirection(ctx context.Context, d ledger.Direction) ([]*Party, error) {
	return s.repo.ListParties(ctx, KindsFor(d))
}

func (s *Service) Update(ctx context.Context, p *Party) error {
	if !p.Kind.Valid() {
		return ErrInvalidKind
	}

	return s.repo.UpdateParty(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteParty(ctx, id)
}
