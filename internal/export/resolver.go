package export

import (
	"context"

	"github.com/google/uuid"

	"github.com/frotaops/fleetledger/internal/category"
	"github.com/frotaops/fleetledger/internal/party"
)

// Resolver adapts the category and party services to the NameResolver
// interface.
type Resolver struct {
	Categories *category.Service
	Parties    *party.Service
}

func (r Resolver) CategoryName(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := r.Categories.Get(ctx, id)
	if err != nil {
		return "", err
	}

	return c.Name, nil
}

func (r Resolver) PartyName(ctx context.Context, id uuid.UUID) (string, error) {
	p, err := r.Parties.Get(ctx, id)
	if err != nil {
		return "", err
	}

	return p.Name, nil
}
