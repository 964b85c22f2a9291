package repository

import (
	"context"

	"surety-service/internal/ledger"
)

// SnapshotRepository persists point-in-time copies of the ledger so a
// restarted node can rehydrate without replaying the whole journal.
type SnapshotRepository interface {
	Save(ctx context.Context, st *ledger.Ledger) error
	// Load returns the latest snapshot, or (nil, nil) when none exists.
	Load(ctx context.Context) (*ledger.Ledger, error)
}
