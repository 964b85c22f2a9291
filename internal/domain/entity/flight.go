package entity

import (
	"fmt"

	"surety-service/pkg/money"
)

// FlightStatus is the resolved outcome of a flight, using the status code
// enumeration carried on the oracle wire format.
type FlightStatus int

const (
	StatusUnknown       FlightStatus = 0
	StatusOnTime        FlightStatus = 10
	StatusLateAirline   FlightStatus = 20
	StatusLateWeather   FlightStatus = 30
	StatusLateTechnical FlightStatus = 40
	StatusLateOther     FlightStatus = 50
)

// IsTerminal reports whether the status is a final outcome. Unknown is the
// only non-terminal status; a terminal status never changes.
func (s FlightStatus) IsTerminal() bool {
	return s != StatusUnknown
}

// IsLate reports whether the status is a delay category eligible for payout.
func (s FlightStatus) IsLate() bool {
	switch s {
	case StatusLateAirline, StatusLateWeather, StatusLateTechnical, StatusLateOther:
		return true
	}
	return false
}

// Valid reports whether s is one of the known status codes.
func (s FlightStatus) Valid() bool {
	switch s {
	case StatusUnknown, StatusOnTime, StatusLateAirline, StatusLateWeather, StatusLateTechnical, StatusLateOther:
		return true
	}
	return false
}

func (s FlightStatus) String() string {
	switch s {
	case StatusUnknown:
		return "UNKNOWN"
	case StatusOnTime:
		return "ON_TIME"
	case StatusLateAirline:
		return "LATE_AIRLINE"
	case StatusLateWeather:
		return "LATE_WEATHER"
	case StatusLateTechnical:
		return "LATE_TECHNICAL"
	case StatusLateOther:
		return "LATE_OTHER"
	}
	return fmt.Sprintf("STATUS_%d", int(s))
}

// FlightKey identifies a flight by the airline that registered it, the
// flight code and the scheduled departure timestamp (unix seconds).
type FlightKey struct {
	Airline   string `json:"airline" bson:"airline"`
	Code      string `json:"code" bson:"code"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

// String renders the key in its canonical form, used as a map/index key.
func (k FlightKey) String() string {
	return fmt.Sprintf("%s:%s:%d", k.Airline, k.Code, k.Timestamp)
}

// Flight represents an insurable flight
type Flight struct {
	Key          FlightKey    `json:"key" bson:"key"`
	IsRegistered bool         `json:"isRegistered" bson:"isRegistered"`
	Status       FlightStatus `json:"status" bson:"status"`
	// PremiumPool is the sum of all premiums paid on this flight.
	PremiumPool money.Amount `json:"premiumPool" bson:"premiumPool"`
}
