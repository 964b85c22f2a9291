package entity

import (
	"surety-service/pkg/money"
)

// Policy represents one passenger's insurance on one flight. A passenger
// holds at most one policy per flight; repeat purchases top up the premium.
type Policy struct {
	Passenger string       `json:"passenger" bson:"passenger"`
	FlightKey FlightKey    `json:"flightKey" bson:"flightKey"`
	Premium   money.Amount `json:"premium" bson:"premium"`
	Credited  money.Amount `json:"credited" bson:"credited"`
	PaidOut   bool         `json:"paidOut" bson:"paidOut"`
}
