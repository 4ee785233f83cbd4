// Package paymentmethod holds the small registry of ways a settlement can be
// paid or received (cash, transfer, card, ...). Settlements must reference
// one of these.
package paymentmethod

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("payment method not found")

type Method struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
