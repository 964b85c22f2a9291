package usecase

import (
	"context"
	"errors"
	"testing"

	"surety-service/internal/domain/entity"
	"surety-service/internal/ledger"
	"surety-service/pkg/logger"
	"surety-service/pkg/money"

	"github.com/stretchr/testify/require"
)

const (
	testOwner    = "owner"
	firstAirline = "airline-1"
)

type transfer struct {
	passenger string
	amount    money.Amount
}

type fakePayout struct {
	transfers []transfer
	failNext  bool
}

func (f *fakePayout) Transfer(ctx context.Context, passenger string, amount money.Amount) error {
	if f.failNext {
		f.failNext = false
		return errors.New("treasury unavailable")
	}
	f.transfers = append(f.transfers, transfer{passenger: passenger, amount: amount})
	return nil
}

type fakeJournal struct {
	entries []*entity.Transaction
}

func (f *fakeJournal) Append(ctx context.Context, tx *entity.Transaction) error {
	f.entries = append(f.entries, tx)
	return nil
}

func (f *fakeJournal) LastSeq(ctx context.Context) (uint64, error) {
	if len(f.entries) == 0 {
		return 0, nil
	}
	return f.entries[len(f.entries)-1].Seq, nil
}

type fakePublisher struct {
	events []entity.Event
}

func (f *fakePublisher) Publish(ctx context.Context, event entity.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) byType(eventType string) []entity.Event {
	var out []entity.Event
	for _, e := range f.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

type testEngine struct {
	executor  *Executor
	st        *ledger.Ledger
	payout    *fakePayout
	journal   *fakeJournal
	publisher *fakePublisher
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	st := ledger.New(testOwner, firstAirline)
	payout := &fakePayout{}
	journal := &fakeJournal{}
	publisher := &fakePublisher{}
	executor := NewExecutor(st, journal, nil, publisher, payout, nil, logger.NewNopLogger())
	return &testEngine{
		executor:  executor,
		st:        st,
		payout:    payout,
		journal:   journal,
		publisher: publisher,
	}
}

// fundFirstAirline pays the participation fee for the genesis airline.
func (e *testEngine) fundFirstAirline(t *testing.T) {
	t.Helper()
	require.NoError(t, e.executor.Fund(context.Background(), firstAirline, ledger.MinFunding))
}

// registerFunded registers an airline through the first airline and funds it.
func (e *testEngine) registerFunded(t *testing.T, account string) {
	t.Helper()
	ok, err := e.executor.RegisterAirline(context.Background(), account, firstAirline)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, e.executor.Fund(context.Background(), account, ledger.MinFunding))
}

// registeredFlight registers a funded first airline and one flight on it.
func (e *testEngine) registeredFlight(t *testing.T) entity.FlightKey {
	t.Helper()
	e.fundFirstAirline(t)
	require.NoError(t, e.executor.RegisterFlight(context.Background(), "MU567", 1200, firstAirline))
	return entity.FlightKey{Airline: firstAirline, Code: "MU567", Timestamp: 1200}
}

// quorumOracles enrolls n oracles named oracle-1..oracle-n.
func (e *testEngine) quorumOracles(t *testing.T, n int) []string {
	t.Helper()
	oracles := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		account := "oracle-" + string(rune('0'+i))
		require.NoError(t, e.executor.RegisterOracle(context.Background(), account))
		oracles = append(oracles, account)
	}
	return oracles
}
