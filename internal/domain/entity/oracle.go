package entity

import "time"

// Oracle represents an enrolled status oracle
type Oracle struct {
	Account      string    `json:"account" bson:"account"`
	IsRegistered bool      `json:"isRegistered" bson:"isRegistered"`
	EnrolledAt   time.Time `json:"enrolledAt" bson:"enrolledAt"`
}

// OracleRequest collects independent status submissions for one flight key.
// A request stays open until a quorum of identical submissions arrives;
// there is no expiry.
type OracleRequest struct {
	Key FlightKey `json:"key" bson:"key"`
	// Submissions maps oracle account to the status it reported.
	Submissions map[string]FlightStatus `json:"submissions" bson:"submissions"`
	Resolved    bool                    `json:"resolved" bson:"resolved"`
	OpenedAt    time.Time               `json:"openedAt" bson:"openedAt"`
}

// CountFor returns how many oracles reported the given status.
func (r *OracleRequest) CountFor(status FlightStatus) int {
	n := 0
	for _, s := range r.Submissions {
		if s == status {
			n++
		}
	}
	return n
}
