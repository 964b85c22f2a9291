package entity

import "time"

// Operation names accepted on the transaction surface.
const (
	OpSetOperationalStatus = "set_operational_status"
	OpFund                 = "fund"
	OpRegisterAirline      = "register_airline"
	OpRegisterFlight       = "register_flight"
	OpFetchFlightStatus    = "fetch_flight_status"
	OpRegisterOracle       = "register_oracle"
	OpSubmitOracleResponse = "submit_oracle_response"
	OpBuy                  = "buy"
	OpWithdraw             = "withdraw"
)

// Transaction is one applied state transition, recorded in the journal.
// Seq is the position in the global total order; replaying the journal in
// Seq order reproduces the ledger exactly.
type Transaction struct {
	ID        string      `json:"id"`
	Seq       uint64      `json:"seq"`
	Operation string      `json:"operation"`
	Caller    string      `json:"caller"`
	Payload   interface{} `json:"payload,omitempty"`
	AppliedAt time.Time   `json:"appliedAt"`
}
