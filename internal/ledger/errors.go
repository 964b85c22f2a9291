package ledger

import "errors"

// Every rejection maps to one of these sentinels so callers can branch with
// errors.Is. A failed transaction leaves no partial state behind.
var (
	// ErrNotOperational is returned while the operational guard is closed.
	ErrNotOperational = errors.New("contract is not operational")

	// ErrUnauthorized is returned when the caller lacks the role or funding
	// an operation requires.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrAlreadyRegistered is returned when registering an airline, flight
	// or oracle that is already registered.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrInsufficientFunds is returned when a funding deposit is below the
	// participation fee.
	ErrInsufficientFunds = errors.New("funding below participation fee")

	// ErrPriceCapExceeded is returned when a premium would push a policy
	// over the premium cap.
	ErrPriceCapExceeded = errors.New("premium exceeds price cap")

	// ErrUnknownFlight is returned for operations on a flight that was
	// never registered.
	ErrUnknownFlight = errors.New("unknown flight")

	// ErrFlightResolved is returned when buying insurance on a flight whose
	// status is already terminal.
	ErrFlightResolved = errors.New("flight already resolved")

	// ErrUnknownRequest is returned for oracle submissions against a flight
	// with no open status request.
	ErrUnknownRequest = errors.New("no status request for flight")

	// ErrInsufficientBalance is returned when a withdrawal exceeds the
	// passenger's escrow balance.
	ErrInsufficientBalance = errors.New("withdrawal exceeds escrow balance")

	// ErrDuplicateSubmission is returned when an oracle submits twice for
	// the same request.
	ErrDuplicateSubmission = errors.New("oracle already submitted for request")

	// ErrInvalidAmount is returned for zero or negative monetary inputs.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidStatus is returned for status codes outside the known set.
	ErrInvalidStatus = errors.New("invalid flight status code")
)
