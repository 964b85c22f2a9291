package usecase

import (
	"time"

	"surety-service/internal/domain/entity"
	"surety-service/internal/ledger"
	"surety-service/pkg/logger"
	"surety-service/pkg/money"
)

// AirlineGovernance handles funding and multi-party admission of airlines.
type AirlineGovernance struct {
	st     *ledger.Ledger
	logger logger.Logger
}

// NewAirlineGovernance creates a new airline governance component
func NewAirlineGovernance(st *ledger.Ledger, logger logger.Logger) *AirlineGovernance {
	return &AirlineGovernance{
		st:     st,
		logger: logger,
	}
}

// Fund deposits an airline's participation fee into the shared pool and
// marks the airline funded. The deposit must meet the fee in one payment.
func (g *AirlineGovernance) Fund(account string, amount money.Amount) ([]entity.Event, error) {
	airline := g.st.Airline(account)
	if airline == nil || !airline.IsRegistered {
		return nil, ledger.ErrUnauthorized
	}
	if amount < ledger.MinFunding {
		return nil, ledger.ErrInsufficientFunds
	}

	airline.IsFunded = true
	airline.FundedAmount += amount
	g.st.Pool += amount

	g.logger.Info("Airline funded", "account", account, "amount", amount.String())
	return []entity.Event{entity.AirlineFunded{Account: account, Amount: amount}}, nil
}

// RegisterAirline admits a candidate airline. Below the governance
// threshold any registered+funded airline admits unilaterally; at or above
// it, the call records the caller's vote and the candidate is admitted once
// at least half of the registered airlines have approved. Returns true on
// the call that completes registration.
func (g *AirlineGovernance) RegisterAirline(candidate, caller string, now time.Time) (bool, []entity.Event, error) {
	sponsor := g.st.Airline(caller)
	if !sponsor.CanGovern() {
		return false, nil, ledger.ErrUnauthorized
	}
	if existing := g.st.Airline(candidate); existing != nil && existing.IsRegistered {
		return false, nil, ledger.ErrAlreadyRegistered
	}

	registered := g.st.RegisteredAirlineCount()
	if registered < ledger.GovernanceThresholdAirlines {
		g.st.RegisterAirline(candidate, now)
		g.logger.Info("Airline registered", "account", candidate, "sponsor", caller)
		return true, []entity.Event{entity.AirlineRegistered{Account: candidate}}, nil
	}

	votes := g.st.RecordVote(candidate, caller)
	if votes*2 < registered {
		g.logger.Info("Airline vote recorded",
			"candidate", candidate, "voter", caller, "votes", votes, "registered", registered)
		return false, nil, nil
	}

	g.st.RegisterAirline(candidate, now)
	g.logger.Info("Airline registered by consensus",
		"account", candidate, "votes", votes, "registered", registered)
	return true, []entity.Event{entity.AirlineRegistered{Account: candidate, Votes: votes}}, nil
}
