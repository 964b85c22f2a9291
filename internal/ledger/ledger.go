// Package ledger holds the replicated state of the settlement engine. The
// Ledger is a plain state store: it exposes lookups and raw mutations but no
// business rules. All mutation flows through the usecase executor, which
// serializes transactions into one total order, so the store itself carries
// no locking.
package ledger

import (
	"time"

	"surety-service/internal/domain/entity"
	"surety-service/pkg/money"
)

// Ledger is the sole durable state of the engine. It is an explicit value
// owned by the executor (never a package-level singleton) so tests and
// replay can inject any starting state.
type Ledger struct {
	// Owner is the identity allowed to flip the operational guard.
	Owner       string `bson:"owner"`
	Operational bool   `bson:"operational"`

	Airlines map[string]*entity.Airline `bson:"airlines"`
	// Votes maps candidate account to the set of airline accounts that
	// approved it. Entries exist only while the candidate is unregistered.
	Votes   map[string]map[string]bool `bson:"votes"`
	Flights map[string]*entity.Flight  `bson:"flights"`
	// Policies maps flight key to passenger account to policy.
	Policies map[string]map[string]*entity.Policy `bson:"policies"`
	// Escrow maps passenger account to withdrawable credit.
	Escrow   map[string]money.Amount          `bson:"escrow"`
	Oracles  map[string]*entity.Oracle        `bson:"oracles"`
	Requests map[string]*entity.OracleRequest `bson:"requests"`

	// Pool is the shared fund: airline deposits plus premiums, less
	// withdrawals. Tracked, not separately escrowed.
	Pool money.Amount `bson:"pool"`

	// Seq is the sequence number of the last applied transaction.
	Seq uint64 `bson:"seq"`
}

// New creates a genesis ledger. The guard starts open and the first airline
// is pre-registered but unfunded, matching deployment behavior. The genesis
// airline carries no registration transaction, so its RegisteredAt stays
// zero and every replica builds an identical genesis state.
func New(owner, firstAirline string) *Ledger {
	st := &Ledger{
		Owner:       owner,
		Operational: true,
		Airlines:    make(map[string]*entity.Airline),
		Votes:       make(map[string]map[string]bool),
		Flights:     make(map[string]*entity.Flight),
		Policies:    make(map[string]map[string]*entity.Policy),
		Escrow:      make(map[string]money.Amount),
		Oracles:     make(map[string]*entity.Oracle),
		Requests:    make(map[string]*entity.OracleRequest),
	}
	st.Airlines[firstAirline] = &entity.Airline{
		Account:      firstAirline,
		IsRegistered: true,
	}
	return st
}

// Normalize rebuilds nil maps after deserialization of an older snapshot.
func (st *Ledger) Normalize() {
	if st.Airlines == nil {
		st.Airlines = make(map[string]*entity.Airline)
	}
	if st.Votes == nil {
		st.Votes = make(map[string]map[string]bool)
	}
	if st.Flights == nil {
		st.Flights = make(map[string]*entity.Flight)
	}
	if st.Policies == nil {
		st.Policies = make(map[string]map[string]*entity.Policy)
	}
	if st.Escrow == nil {
		st.Escrow = make(map[string]money.Amount)
	}
	if st.Oracles == nil {
		st.Oracles = make(map[string]*entity.Oracle)
	}
	if st.Requests == nil {
		st.Requests = make(map[string]*entity.OracleRequest)
	}
}

// Airline returns the airline record for an account, or nil.
func (st *Ledger) Airline(account string) *entity.Airline {
	return st.Airlines[account]
}

// RegisteredAirlineCount returns how many airlines are registered.
func (st *Ledger) RegisteredAirlineCount() int {
	n := 0
	for _, a := range st.Airlines {
		if a.IsRegistered {
			n++
		}
	}
	return n
}

// RegisterAirline creates (or promotes) a registered airline record and
// drops any pending vote record for it. The timestamp comes from the
// registering transaction so replay rebuilds the same record.
func (st *Ledger) RegisterAirline(account string, now time.Time) *entity.Airline {
	a := st.Airlines[account]
	if a == nil {
		a = &entity.Airline{Account: account}
		st.Airlines[account] = a
	}
	a.IsRegistered = true
	a.RegisteredAt = now
	delete(st.Votes, account)
	return a
}

// RecordVote marks caller's approval of candidate and returns the vote
// count. Duplicate votes do not double-count.
func (st *Ledger) RecordVote(candidate, caller string) int {
	voters := st.Votes[candidate]
	if voters == nil {
		voters = make(map[string]bool)
		st.Votes[candidate] = voters
	}
	voters[caller] = true
	return len(voters)
}

// Flight returns the flight for a key, or nil.
func (st *Ledger) Flight(key entity.FlightKey) *entity.Flight {
	return st.Flights[key.String()]
}

// PutFlight stores a flight record.
func (st *Ledger) PutFlight(f *entity.Flight) {
	st.Flights[f.Key.String()] = f
}

// Policy returns the policy for (passenger, flight key), or nil.
func (st *Ledger) Policy(key entity.FlightKey, passenger string) *entity.Policy {
	return st.Policies[key.String()][passenger]
}

// PutPolicy stores a policy record.
func (st *Ledger) PutPolicy(p *entity.Policy) {
	k := p.FlightKey.String()
	if st.Policies[k] == nil {
		st.Policies[k] = make(map[string]*entity.Policy)
	}
	st.Policies[k][p.Passenger] = p
}

// FlightPolicies returns all policies held on a flight.
func (st *Ledger) FlightPolicies(key entity.FlightKey) map[string]*entity.Policy {
	return st.Policies[key.String()]
}

// Balance returns a passenger's withdrawable escrow credit.
func (st *Ledger) Balance(passenger string) money.Amount {
	return st.Escrow[passenger]
}

// Credit adds to a passenger's escrow balance.
func (st *Ledger) Credit(passenger string, amount money.Amount) {
	st.Escrow[passenger] += amount
}

// Debit subtracts from a passenger's escrow balance. The caller must have
// checked the balance; the store never goes negative.
func (st *Ledger) Debit(passenger string, amount money.Amount) {
	st.Escrow[passenger] -= amount
}

// Oracle returns the oracle record for an account, or nil.
func (st *Ledger) Oracle(account string) *entity.Oracle {
	return st.Oracles[account]
}

// Request returns the oracle request for a flight key, or nil.
func (st *Ledger) Request(key entity.FlightKey) *entity.OracleRequest {
	return st.Requests[key.String()]
}

// PutRequest stores an oracle request.
func (st *Ledger) PutRequest(r *entity.OracleRequest) {
	st.Requests[r.Key.String()] = r
}
