package repository

import (
	"context"

	"surety-service/internal/domain/entity"
)

// JournalRepository persists the ordered log of applied transactions. The
// journal is the durable total order of the state machine: replaying it in
// sequence against a genesis ledger reproduces the current state.
type JournalRepository interface {
	Append(ctx context.Context, tx *entity.Transaction) error
	LastSeq(ctx context.Context) (uint64, error)
}
