package entity

import (
	"time"

	"surety-service/pkg/money"
)

// Airline represents an airline participant in the pool
type Airline struct {
	Account      string       `json:"account" bson:"account"`
	IsRegistered bool         `json:"isRegistered" bson:"isRegistered"`
	IsFunded     bool         `json:"isFunded" bson:"isFunded"`
	FundedAmount money.Amount `json:"fundedAmount" bson:"fundedAmount"`
	RegisteredAt time.Time    `json:"registeredAt" bson:"registeredAt"`
}

// CanGovern reports whether the airline may vote, register peers or
// register flights. Both flags are required.
func (a *Airline) CanGovern() bool {
	return a != nil && a.IsRegistered && a.IsFunded
}
