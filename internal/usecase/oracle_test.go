package usecase

import (
	"context"
	"testing"

	"surety-service/internal/domain/entity"
	"surety-service/internal/ledger"
	"surety-service/pkg/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterOracle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.executor.RegisterOracle(ctx, "oracle-1"))

	err := e.executor.RegisterOracle(ctx, "oracle-1")
	assert.ErrorIs(t, err, ledger.ErrAlreadyRegistered)
}

func TestSubmitOracleResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unenrolled oracle", func(t *testing.T) {
		e := newTestEngine(t)
		key := e.registeredFlight(t)
		require.NoError(t, e.executor.FetchFlightStatus(ctx, key, "requester"))

		err := e.executor.SubmitOracleResponse(ctx, "impostor", key, entity.StatusOnTime)
		assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	})

	t.Run("rejects submission without an open request", func(t *testing.T) {
		e := newTestEngine(t)
		key := e.registeredFlight(t)
		oracles := e.quorumOracles(t, 1)

		err := e.executor.SubmitOracleResponse(ctx, oracles[0], key, entity.StatusOnTime)
		assert.ErrorIs(t, err, ledger.ErrUnknownRequest)
	})

	t.Run("rejects invalid status codes", func(t *testing.T) {
		e := newTestEngine(t)
		key := e.registeredFlight(t)
		require.NoError(t, e.executor.FetchFlightStatus(ctx, key, "requester"))
		oracles := e.quorumOracles(t, 1)

		err := e.executor.SubmitOracleResponse(ctx, oracles[0], key, entity.FlightStatus(7))
		assert.ErrorIs(t, err, ledger.ErrInvalidStatus)

		err = e.executor.SubmitOracleResponse(ctx, oracles[0], key, entity.StatusUnknown)
		assert.ErrorIs(t, err, ledger.ErrInvalidStatus)
	})

	t.Run("rejects a duplicate submission from the same oracle", func(t *testing.T) {
		e := newTestEngine(t)
		key := e.registeredFlight(t)
		require.NoError(t, e.executor.FetchFlightStatus(ctx, key, "requester"))
		oracles := e.quorumOracles(t, 1)

		require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[0], key, entity.StatusOnTime))
		err := e.executor.SubmitOracleResponse(ctx, oracles[0], key, entity.StatusLateAirline)
		assert.ErrorIs(t, err, ledger.ErrDuplicateSubmission)
	})
}

func TestOracleQuorumResolves(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	key := e.registeredFlight(t)
	require.NoError(t, e.executor.Buy(ctx, key, "passenger-1", money.Units(1)))
	require.NoError(t, e.executor.FetchFlightStatus(ctx, key, "requester"))
	oracles := e.quorumOracles(t, 3)

	require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[0], key, entity.StatusLateAirline))
	require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[1], key, entity.StatusLateAirline))

	flight, _ := e.executor.FlightInfo(key)
	assert.Equal(t, entity.StatusUnknown, flight.Status, "two matching responses are below quorum")

	require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[2], key, entity.StatusLateAirline))

	flight, _ = e.executor.FlightInfo(key)
	assert.Equal(t, entity.StatusLateAirline, flight.Status)
	assert.True(t, e.st.Request(key).Resolved)
	assert.Equal(t, money.Micros(1_500_000), e.executor.Balance("passenger-1"))
}

func TestOracleDisagreementStaysOpen(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	key := e.registeredFlight(t)
	require.NoError(t, e.executor.FetchFlightStatus(ctx, key, "requester"))
	oracles := e.quorumOracles(t, 4)

	require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[0], key, entity.StatusOnTime))
	require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[1], key, entity.StatusLateAirline))
	require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[2], key, entity.StatusLateWeather))
	require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[3], key, entity.StatusOnTime))

	// No status has three matching submissions; the request stays open.
	assert.False(t, e.st.Request(key).Resolved)
	flight, _ := e.executor.FlightInfo(key)
	assert.Equal(t, entity.StatusUnknown, flight.Status)
}

func TestOracleResolutionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	key := e.registeredFlight(t)
	require.NoError(t, e.executor.Buy(ctx, key, "passenger-1", money.Units(1)))
	require.NoError(t, e.executor.FetchFlightStatus(ctx, key, "requester"))
	oracles := e.quorumOracles(t, 5)

	for _, oracle := range oracles[:3] {
		require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracle, key, entity.StatusLateOther))
	}
	require.Equal(t, money.Micros(1_500_000), e.executor.Balance("passenger-1"))

	// Late submissions are accepted but change nothing: the recorded status
	// is final and no credit is issued twice.
	require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[3], key, entity.StatusLateOther))
	require.NoError(t, e.executor.SubmitOracleResponse(ctx, oracles[4], key, entity.StatusOnTime))

	flight, _ := e.executor.FlightInfo(key)
	assert.Equal(t, entity.StatusLateOther, flight.Status)
	assert.Equal(t, money.Micros(1_500_000), e.executor.Balance("passenger-1"))
	assert.Len(t, e.publisher.byType("flight_status_resolved"), 1)
	assert.Len(t, e.publisher.byType("escrow_credited"), 1)
}

func TestJournalRecordsAppliedTransactions(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.fundFirstAirline(t)
	require.NoError(t, e.executor.RegisterFlight(ctx, "MU567", 1200, firstAirline))

	// A rejected transaction is not journaled; the two applied ones are, in
	// sequence order.
	err := e.executor.RegisterFlight(ctx, "MU567", 1200, firstAirline)
	require.ErrorIs(t, err, ledger.ErrAlreadyRegistered)

	require.Len(t, e.journal.entries, 2)
	assert.Equal(t, uint64(1), e.journal.entries[0].Seq)
	assert.Equal(t, entity.OpFund, e.journal.entries[0].Operation)
	assert.Equal(t, uint64(2), e.journal.entries[1].Seq)
	assert.Equal(t, entity.OpRegisterFlight, e.journal.entries[1].Operation)
	assert.Equal(t, uint64(2), e.st.Seq)
}
