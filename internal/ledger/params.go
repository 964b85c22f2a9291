package ledger

import "surety-service/pkg/money"

// Engine constants, fixed at deployment. These are deliberately not part of
// the runtime configuration: every replica must apply transactions under
// identical rules or the replicas diverge.
var (
	// MinFunding is the one-time fee an airline must deposit before it may
	// vote, register peers or register flights.
	MinFunding = money.Units(10)

	// MaxPremium caps the cumulative premium a passenger may pay on one
	// flight.
	MaxPremium = money.Units(1)
)

const (
	// GovernanceThresholdAirlines is the registered-airline count at which
	// admission switches from unilateral to multi-party voting.
	GovernanceThresholdAirlines = 4

	// MinOracleResponses is the quorum of matching oracle submissions that
	// finalizes a flight status.
	MinOracleResponses = 3
)
