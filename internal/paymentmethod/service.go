package paymentmethod

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=paymentmethod
type Repository interface {
	CreateMethod(ctx context.Context, m *Method) error
	GetMethod(ctx context.Context, id uuid.UUID) (*Method, error)
	ListMethods(ctx context.Context) ([]*Method, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Method, error) {
	m := &Method{Name: name}
	if err := s.repo.CreateMethod(ctx, m); err != nil {
		return nil, fmt.Errorf("creating payment method: %w", err)
	}

	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Method, error) {
	return s.repo.GetMethod(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Method, error) {
	return s.repo.ListMethods(ctx)
}
