package party

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/frotaops/fleetledger/internal/ledger"
)

// Kind tells what role a counterparty plays in the fleet operation.
type Kind string

const (
	KindSupplier   Kind = "supplier"
	KindGasStation Kind = "gas_station"
	KindClient     Kind = "client"
)

func (k Kind) Valid() bool {
	switch k {
	case KindSupplier, KindGasStation, KindClient:
		return true
	}

	return false
}

var (
	ErrNotFound    = errors.New("party not found")
	ErrInvalidKind = errors.New("unknown party kind")
)

// Party is a counterparty on a ledger entry: suppliers and gas stations get
// paid, clients pay.
type Party struct {
	ID        uuid.UUID
	Name      string
	Kind      Kind
	Document  string
	Phone     string
	City      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// KindsFor lists the party kinds that can appear on entries of a direction.
func KindsFor(d ledger.Direction) []Kind {
	if d == ledger.DirectionPayable {
		return []Kind{KindSupplier, KindGasStation}
	}

	return []Kind{KindClient}
}
