package usecase

import (
	"time"

	"surety-service/internal/domain/entity"
	"surety-service/internal/ledger"
	"surety-service/pkg/logger"
)

// OperationalGuard is the process-wide kill switch. Every mutating
// operation asks the guard for permission before touching the ledger.
type OperationalGuard struct {
	st     *ledger.Ledger
	logger logger.Logger
}

// NewOperationalGuard creates a new operational guard
func NewOperationalGuard(st *ledger.Ledger, logger logger.Logger) *OperationalGuard {
	return &OperationalGuard{
		st:     st,
		logger: logger,
	}
}

// IsOperational reports the current guard state.
func (g *OperationalGuard) IsOperational() bool {
	return g.st.Operational
}

// RequireOperational fails with ErrNotOperational while the guard is
// closed.
func (g *OperationalGuard) RequireOperational() error {
	if !g.st.Operational {
		return ledger.ErrNotOperational
	}
	return nil
}

// SetOperationalStatus flips the guard. Only the owner may call it; setting
// the current value is a no-op but still authorization-checked. An event is
// returned only on an actual change.
func (g *OperationalGuard) SetOperationalStatus(operational bool, caller string, now time.Time) ([]entity.Event, error) {
	if caller != g.st.Owner {
		return nil, ledger.ErrUnauthorized
	}
	if g.st.Operational == operational {
		return nil, nil
	}
	g.st.Operational = operational
	g.logger.Warn("Operational status changed", "operational", operational)
	return []entity.Event{entity.OperationalStatusChanged{
		Operational: operational,
		ChangedAt:   now,
	}}, nil
}
