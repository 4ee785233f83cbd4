package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, direction string) ([]*Category, error)
	RenameCategory(ctx context.Context, id uuid.UUID, name string) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name, direction string) (*Category, error) {
	if direction != DirectionExpense && direction != DirectionIncome {
		return nil, ErrInvalidDirection
	}

	c := &Category{Name: name, Direction: direction}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// List returns all categories, or only those of one direction when direction
// is non-empty.
func (s *Service) List(ctx context.Context, direction string) ([]*Category, error) {
	if direction != "" && direction != DirectionExpense && direction != DirectionIncome {
		return nil, ErrInvalidDirection
	}

	return s.repo.ListCategories(ctx, direction)
}

// Rename changes the category name. Direction is immutable.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) error {
	return s.repo.RenameCategory(ctx, id, name)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, id)
}

// Direction resolves the D/R typing of a category. It backs the ledger
// service's category check.
func (s *Service) Direction(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return "", err
	}

	return c.Direction, nil
}
