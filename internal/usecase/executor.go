package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"surety-service/internal/domain/entity"
	"surety-service/internal/domain/repository"
	"surety-service/internal/ledger"
	"surety-service/pkg/logger"
	"surety-service/pkg/metrics"
	"surety-service/pkg/money"
)

// Executor serializes all transactions into one global total order and
// applies them atomically against the ledger. Components are written as if
// single-threaded; the executor's lock is the only synchronization in the
// engine. After a successful apply the transaction is journaled, the ledger
// snapshot is saved and committed-state events are published.
type Executor struct {
	mu sync.RWMutex
	st *ledger.Ledger

	guard        *OperationalGuard
	governance   *AirlineGovernance
	registry     *FlightRegistry
	underwriting *Underwriting
	oracles      *OracleConsensus

	journal   repository.JournalRepository
	snapshots repository.SnapshotRepository
	publisher repository.EventPublisher
	metrics   *metrics.Metrics
	logger    logger.Logger

	// clock stamps each transaction exactly once; every timestamp written
	// into the ledger derives from it, so replay driven by journaled
	// timestamps rebuilds identical state.
	clock func() time.Time
}

// NewExecutor wires the engine components over a shared ledger.
func NewExecutor(
	st *ledger.Ledger,
	journal repository.JournalRepository,
	snapshots repository.SnapshotRepository,
	publisher repository.EventPublisher,
	payout repository.PayoutGateway,
	m *metrics.Metrics,
	log logger.Logger,
) *Executor {
	underwriting := NewUnderwriting(st, payout, log)
	return &Executor{
		st:           st,
		guard:        NewOperationalGuard(st, log),
		governance:   NewAirlineGovernance(st, log),
		registry:     NewFlightRegistry(st, log),
		underwriting: underwriting,
		oracles:      NewOracleConsensus(st, underwriting, log),
		journal:      journal,
		snapshots:    snapshots,
		publisher:    publisher,
		metrics:      m,
		logger:       log,
		clock:        time.Now,
	}
}

// WithClock replaces the transaction clock. Replay uses it to feed the
// journaled AppliedAt back through each transaction.
func (e *Executor) WithClock(clock func() time.Time) *Executor {
	e.clock = clock
	return e
}

// apply runs one operation under the global order. The operation callback
// performs all checks before any mutation, so a returned error means the
// ledger was not touched. Journal and snapshot failures are logged, not
// rolled back: the in-memory state remains the source of truth and the next
// commit retries persistence.
func (e *Executor) apply(ctx context.Context, op, caller string, payload interface{}, fn func(now time.Time) ([]entity.Event, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	now := e.clock().UTC()
	events, err := fn(now)
	if err != nil {
		if e.metrics != nil {
			e.metrics.TransactionsFailed.WithLabelValues(op).Inc()
		}
		return err
	}

	e.st.Seq++
	tx := &entity.Transaction{
		ID:        uuid.NewString(),
		Seq:       e.st.Seq,
		Operation: op,
		Caller:    caller,
		Payload:   payload,
		AppliedAt: now,
	}
	if e.journal != nil {
		if jerr := e.journal.Append(ctx, tx); jerr != nil {
			e.logger.Error("Failed to journal transaction", "op", op, "seq", tx.Seq, "error", jerr)
		}
	}
	if e.snapshots != nil {
		if serr := e.snapshots.Save(ctx, e.st); serr != nil {
			e.logger.Error("Failed to save ledger snapshot", "seq", tx.Seq, "error", serr)
		}
	}
	for _, event := range events {
		e.publishEvent(ctx, event)
	}
	if e.metrics != nil {
		e.metrics.TransactionsApplied.WithLabelValues(op).Inc()
		e.metrics.ApplyTime.Observe(time.Since(start).Seconds())
	}
	return nil
}

func (e *Executor) publishEvent(ctx context.Context, event entity.Event) {
	if e.metrics != nil {
		switch ev := event.(type) {
		case entity.FlightStatusResolved:
			e.metrics.FlightsResolved.Inc()
		case entity.EscrowCredited:
			e.metrics.PoliciesSettled.Inc()
			e.metrics.EscrowCredited.Add(float64(ev.Amount.Micros()))
		case entity.WithdrawalPaid:
			e.metrics.WithdrawalsPaid.Add(float64(ev.Amount.Micros()))
		}
	}
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.logger.Error("Failed to publish event", "type", event.EventType(), "error", err)
	}
}

// SetOperationalStatus flips the guard. It is the one mutating operation
// not gated by the guard itself, otherwise a closed guard could never be
// reopened.
func (e *Executor) SetOperationalStatus(ctx context.Context, operational bool, caller string) error {
	payload := map[string]interface{}{"operational": operational}
	return e.apply(ctx, entity.OpSetOperationalStatus, caller, payload, func(now time.Time) ([]entity.Event, error) {
		return e.guard.SetOperationalStatus(operational, caller, now)
	})
}

// Fund deposits an airline's participation fee.
func (e *Executor) Fund(ctx context.Context, airline string, amount money.Amount) error {
	payload := map[string]interface{}{"amount": amount.Micros()}
	return e.apply(ctx, entity.OpFund, airline, payload, func(now time.Time) ([]entity.Event, error) {
		if err := e.guard.RequireOperational(); err != nil {
			return nil, err
		}
		return e.governance.Fund(airline, amount)
	})
}

// RegisterAirline admits or votes for a candidate airline. The returned
// bool is true only on the call that completes registration.
func (e *Executor) RegisterAirline(ctx context.Context, candidate, caller string) (bool, error) {
	var registered bool
	payload := map[string]interface{}{"candidate": candidate}
	err := e.apply(ctx, entity.OpRegisterAirline, caller, payload, func(now time.Time) ([]entity.Event, error) {
		if err := e.guard.RequireOperational(); err != nil {
			return nil, err
		}
		ok, events, err := e.governance.RegisterAirline(candidate, caller, now)
		registered = ok
		return events, err
	})
	return registered, err
}

// RegisterFlight creates an insurable flight for the calling airline.
func (e *Executor) RegisterFlight(ctx context.Context, code string, timestamp int64, caller string) error {
	payload := map[string]interface{}{"code": code, "timestamp": timestamp}
	return e.apply(ctx, entity.OpRegisterFlight, caller, payload, func(now time.Time) ([]entity.Event, error) {
		if err := e.guard.RequireOperational(); err != nil {
			return nil, err
		}
		return e.registry.RegisterFlight(code, timestamp, caller)
	})
}

// FetchFlightStatus opens an oracle request for a flight.
func (e *Executor) FetchFlightStatus(ctx context.Context, key entity.FlightKey, caller string) error {
	payload := map[string]interface{}{"flight": key.String()}
	return e.apply(ctx, entity.OpFetchFlightStatus, caller, payload, func(now time.Time) ([]entity.Event, error) {
		if err := e.guard.RequireOperational(); err != nil {
			return nil, err
		}
		return e.registry.FetchFlightStatus(key, now)
	})
}

// RegisterOracle enrolls an oracle identity.
func (e *Executor) RegisterOracle(ctx context.Context, oracle string) error {
	return e.apply(ctx, entity.OpRegisterOracle, oracle, nil, func(now time.Time) ([]entity.Event, error) {
		if err := e.guard.RequireOperational(); err != nil {
			return nil, err
		}
		return e.oracles.RegisterOracle(oracle, now)
	})
}

// SubmitOracleResponse records one oracle's status report.
func (e *Executor) SubmitOracleResponse(ctx context.Context, oracle string, key entity.FlightKey, status entity.FlightStatus) error {
	payload := map[string]interface{}{"flight": key.String(), "status": int(status)}
	return e.apply(ctx, entity.OpSubmitOracleResponse, oracle, payload, func(now time.Time) ([]entity.Event, error) {
		if err := e.guard.RequireOperational(); err != nil {
			return nil, err
		}
		return e.oracles.SubmitResponse(oracle, key, status)
	})
}

// Buy purchases insurance on a flight for a passenger.
func (e *Executor) Buy(ctx context.Context, key entity.FlightKey, passenger string, premium money.Amount) error {
	payload := map[string]interface{}{"flight": key.String(), "premium": premium.Micros()}
	return e.apply(ctx, entity.OpBuy, passenger, payload, func(now time.Time) ([]entity.Event, error) {
		if err := e.guard.RequireOperational(); err != nil {
			return nil, err
		}
		return e.underwriting.Buy(key, passenger, premium)
	})
}

// Withdraw pays out claimable escrow credit to the passenger.
func (e *Executor) Withdraw(ctx context.Context, passenger string, amount money.Amount) error {
	payload := map[string]interface{}{"amount": amount.Micros()}
	return e.apply(ctx, entity.OpWithdraw, passenger, payload, func(now time.Time) ([]entity.Event, error) {
		if err := e.guard.RequireOperational(); err != nil {
			return nil, err
		}
		return e.underwriting.Withdraw(ctx, passenger, amount)
	})
}

// IsOperational reports the guard state.
func (e *Executor) IsOperational() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.guard.IsOperational()
}

// AirlineInfo returns a copy of an airline record.
func (e *Executor) AirlineInfo(account string) (entity.Airline, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a := e.st.Airline(account)
	if a == nil {
		return entity.Airline{}, false
	}
	return *a, true
}

// FlightInfo returns a copy of a flight record.
func (e *Executor) FlightInfo(key entity.FlightKey) (entity.Flight, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f := e.st.Flight(key)
	if f == nil {
		return entity.Flight{}, false
	}
	return *f, true
}

// Flights returns copies of all registered flights.
func (e *Executor) Flights() []entity.Flight {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]entity.Flight, 0, len(e.st.Flights))
	for _, f := range e.st.Flights {
		out = append(out, *f)
	}
	return out
}

// PolicyInfo returns a copy of a passenger's policy on a flight.
func (e *Executor) PolicyInfo(key entity.FlightKey, passenger string) (entity.Policy, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p := e.st.Policy(key, passenger)
	if p == nil {
		return entity.Policy{}, false
	}
	return *p, true
}

// Balance returns a passenger's withdrawable escrow credit.
func (e *Executor) Balance(passenger string) money.Amount {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.st.Balance(passenger)
}
