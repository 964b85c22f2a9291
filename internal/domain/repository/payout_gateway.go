package repository

import (
	"context"

	"surety-service/pkg/money"
)

// PayoutGateway transfers withdrawn funds to a passenger's external
// account. The engine decrements the escrow balance before calling
// Transfer; a transfer failure aborts the withdrawal and the balance is
// restored.
type PayoutGateway interface {
	Transfer(ctx context.Context, passenger string, amount money.Amount) error
}
