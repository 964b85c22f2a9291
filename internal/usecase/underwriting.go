package usecase

import (
	"context"
	"fmt"

	"surety-service/internal/domain/entity"
	"surety-service/internal/domain/repository"
	"surety-service/internal/ledger"
	"surety-service/pkg/logger"
	"surety-service/pkg/money"
)

// Underwriting handles policy purchase, settlement credit and pull-based
// withdrawal against the escrow ledger.
type Underwriting struct {
	st     *ledger.Ledger
	payout repository.PayoutGateway
	logger logger.Logger
}

// NewUnderwriting creates a new underwriting component
func NewUnderwriting(st *ledger.Ledger, payout repository.PayoutGateway, logger logger.Logger) *Underwriting {
	return &Underwriting{
		st:     st,
		payout: payout,
		logger: logger,
	}
}

// Buy purchases (or tops up) insurance on a flight. The cumulative premium
// per policy is capped at MaxPremium, and purchase is rejected once the
// flight has a terminal status.
func (u *Underwriting) Buy(key entity.FlightKey, passenger string, premium money.Amount) ([]entity.Event, error) {
	if !premium.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}

	flight := u.st.Flight(key)
	if flight == nil || !flight.IsRegistered {
		return nil, ledger.ErrUnknownFlight
	}
	if flight.Status.IsTerminal() {
		return nil, ledger.ErrFlightResolved
	}

	policy := u.st.Policy(key, passenger)
	paid := premium
	if policy != nil {
		paid += policy.Premium
	}
	if paid > ledger.MaxPremium {
		return nil, ledger.ErrPriceCapExceeded
	}

	if policy == nil {
		policy = &entity.Policy{Passenger: passenger, FlightKey: key}
		u.st.PutPolicy(policy)
	}
	policy.Premium = paid
	flight.PremiumPool += premium
	u.st.Pool += premium

	u.logger.Info("Insurance purchased",
		"flight", key.String(), "passenger", passenger, "premium", premium.String())
	return nil, nil
}

// Settle records a terminal status on a flight and, for delay categories,
// credits every policy 1.5x its premium into the passenger's escrow
// balance. Nothing is transferred out; credit is claimable only through
// Withdraw. Settlement of an already-terminal flight is a no-op.
func (u *Underwriting) Settle(key entity.FlightKey, status entity.FlightStatus) ([]entity.Event, error) {
	flight := u.st.Flight(key)
	if flight == nil {
		return nil, ledger.ErrUnknownFlight
	}
	if flight.Status.IsTerminal() {
		return nil, nil
	}

	flight.Status = status
	events := []entity.Event{entity.FlightStatusResolved{Key: key, Status: status}}
	if !status.IsLate() {
		u.logger.Info("Flight settled without payout", "flight", key.String(), "status", status.String())
		return events, nil
	}

	for _, policy := range u.st.FlightPolicies(key) {
		if policy.PaidOut {
			continue
		}
		credit := money.Payout(policy.Premium)
		policy.Credited = credit
		policy.PaidOut = true
		u.st.Credit(policy.Passenger, credit)
		events = append(events, entity.EscrowCredited{
			Passenger: policy.Passenger,
			Key:       key,
			Amount:    credit,
		})
	}

	u.logger.Info("Flight settled with payout",
		"flight", key.String(), "status", status.String(), "policies", len(events)-1)
	return events, nil
}

// Withdraw moves claimable credit out to the passenger's external account.
// The balance is decremented before the transfer so a re-entrant call can
// never draw the same credit twice; a failed transfer restores the balance
// and the whole transaction fails.
func (u *Underwriting) Withdraw(ctx context.Context, passenger string, amount money.Amount) ([]entity.Event, error) {
	if !amount.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}
	if amount > u.st.Balance(passenger) {
		return nil, ledger.ErrInsufficientBalance
	}

	u.st.Debit(passenger, amount)
	u.st.Pool -= amount

	if err := u.payout.Transfer(ctx, passenger, amount); err != nil {
		u.st.Credit(passenger, amount)
		u.st.Pool += amount
		return nil, fmt.Errorf("payout transfer: %w", err)
	}

	u.logger.Info("Withdrawal paid", "passenger", passenger, "amount", amount.String())
	return []entity.Event{entity.WithdrawalPaid{Passenger: passenger, Amount: amount}}, nil
}
