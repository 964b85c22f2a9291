package usecase

import (
	"time"

	"surety-service/internal/domain/entity"
	"surety-service/internal/ledger"
	"surety-service/pkg/logger"
)

// FlightRegistry handles creation and lookup of insurable flights.
type FlightRegistry struct {
	st     *ledger.Ledger
	logger logger.Logger
}

// NewFlightRegistry creates a new flight registry
func NewFlightRegistry(st *ledger.Ledger, logger logger.Logger) *FlightRegistry {
	return &FlightRegistry{
		st:     st,
		logger: logger,
	}
}

// RegisterFlight creates a flight keyed by (caller, code, timestamp) with
// status Unknown. Only registered+funded airlines may register flights.
// Re-registering an existing key is rejected rather than reset; a resolved
// flight can never be reopened through re-registration.
func (r *FlightRegistry) RegisterFlight(code string, timestamp int64, caller string) ([]entity.Event, error) {
	airline := r.st.Airline(caller)
	if !airline.CanGovern() {
		return nil, ledger.ErrUnauthorized
	}

	key := entity.FlightKey{Airline: caller, Code: code, Timestamp: timestamp}
	if r.st.Flight(key) != nil {
		return nil, ledger.ErrAlreadyRegistered
	}

	r.st.PutFlight(&entity.Flight{
		Key:          key,
		IsRegistered: true,
		Status:       entity.StatusUnknown,
	})

	r.logger.Info("Flight registered", "flight", key.String())
	return []entity.Event{entity.FlightRegistered{Key: key}}, nil
}

// FetchFlightStatus opens (or reuses) an oracle request for a flight key
// and returns immediately; resolution happens asynchronously as oracle
// submissions arrive. Any caller may request a status fetch.
func (r *FlightRegistry) FetchFlightStatus(key entity.FlightKey, now time.Time) ([]entity.Event, error) {
	if r.st.Flight(key) == nil {
		return nil, ledger.ErrUnknownFlight
	}
	if r.st.Request(key) != nil {
		// Already open (or resolved); nothing to do.
		return nil, nil
	}

	r.st.PutRequest(&entity.OracleRequest{
		Key:         key,
		Submissions: make(map[string]entity.FlightStatus),
		OpenedAt:    now,
	})

	r.logger.Info("Oracle request opened", "flight", key.String())
	return []entity.Event{entity.OracleRequestOpened{Key: key}}, nil
}
