package usecase

import (
	"time"

	"surety-service/internal/domain/entity"
	"surety-service/internal/ledger"
	"surety-service/pkg/logger"
)

// OracleConsensus collects independent status submissions and finalizes a
// flight's status once a quorum agrees, triggering underwriting settlement.
type OracleConsensus struct {
	st           *ledger.Ledger
	underwriting *Underwriting
	logger       logger.Logger
}

// NewOracleConsensus creates a new oracle consensus component
func NewOracleConsensus(st *ledger.Ledger, underwriting *Underwriting, logger logger.Logger) *OracleConsensus {
	return &OracleConsensus{
		st:           st,
		underwriting: underwriting,
		logger:       logger,
	}
}

// RegisterOracle enrolls an oracle identity. Only enrolled oracles may
// submit status responses.
func (o *OracleConsensus) RegisterOracle(account string, now time.Time) ([]entity.Event, error) {
	if existing := o.st.Oracle(account); existing != nil && existing.IsRegistered {
		return nil, ledger.ErrAlreadyRegistered
	}
	o.st.Oracles[account] = &entity.Oracle{
		Account:      account,
		IsRegistered: true,
		EnrolledAt:   now,
	}
	o.logger.Info("Oracle enrolled", "account", account)
	return nil, nil
}

// SubmitResponse records one oracle's status report for an open request.
// Each oracle submits at most once per request. When the count of matching
// submissions reaches the quorum the request resolves, the status is
// recorded on the flight and affected policies settle. Submissions after
// resolution are accepted with no further effect.
func (o *OracleConsensus) SubmitResponse(oracle string, key entity.FlightKey, status entity.FlightStatus) ([]entity.Event, error) {
	record := o.st.Oracle(oracle)
	if record == nil || !record.IsRegistered {
		return nil, ledger.ErrUnauthorized
	}
	if !status.Valid() || status == entity.StatusUnknown {
		return nil, ledger.ErrInvalidStatus
	}

	request := o.st.Request(key)
	if request == nil {
		return nil, ledger.ErrUnknownRequest
	}
	if request.Resolved {
		return nil, nil
	}
	if _, dup := request.Submissions[oracle]; dup {
		return nil, ledger.ErrDuplicateSubmission
	}

	request.Submissions[oracle] = status
	agreeing := request.CountFor(status)
	o.logger.Info("Oracle response recorded",
		"flight", key.String(), "oracle", oracle, "status", status.String(), "agreeing", agreeing)

	if agreeing < ledger.MinOracleResponses {
		return nil, nil
	}

	request.Resolved = true
	events, err := o.underwriting.Settle(key, status)
	if err != nil {
		return nil, err
	}
	o.logger.Info("Oracle request resolved", "flight", key.String(), "status", status.String())
	return events, nil
}
