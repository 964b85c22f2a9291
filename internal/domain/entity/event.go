package entity

import (
	"time"

	"surety-service/pkg/money"
)

// Event is a committed-state notification published for external observers.
// Events are emitted only after the transaction that produced them has been
// applied and journaled.
type Event interface {
	EventType() string
}

type OperationalStatusChanged struct {
	Operational bool      `json:"operational"`
	ChangedAt   time.Time `json:"changedAt"`
}

func (OperationalStatusChanged) EventType() string { return "operational_status_changed" }

type AirlineFunded struct {
	Account string       `json:"account"`
	Amount  money.Amount `json:"amount"`
}

func (AirlineFunded) EventType() string { return "airline_funded" }

type AirlineRegistered struct {
	Account string `json:"account"`
	// Votes is zero when registration was unilateral.
	Votes int `json:"votes"`
}

func (AirlineRegistered) EventType() string { return "airline_registered" }

type FlightRegistered struct {
	Key FlightKey `json:"key"`
}

func (FlightRegistered) EventType() string { return "flight_registered" }

type OracleRequestOpened struct {
	Key FlightKey `json:"key"`
}

func (OracleRequestOpened) EventType() string { return "oracle_request_opened" }

type FlightStatusResolved struct {
	Key    FlightKey    `json:"key"`
	Status FlightStatus `json:"status"`
}

func (FlightStatusResolved) EventType() string { return "flight_status_resolved" }

type EscrowCredited struct {
	Passenger string       `json:"passenger"`
	Key       FlightKey    `json:"key"`
	Amount    money.Amount `json:"amount"`
}

func (EscrowCredited) EventType() string { return "escrow_credited" }

type WithdrawalPaid struct {
	Passenger string       `json:"passenger"`
	Amount    money.Amount `json:"amount"`
}

func (WithdrawalPaid) EventType() string { return "withdrawal_paid" }
