package templates

import (
	"fmt"

	"surety-service/internal/domain/entity"
)

// Summary renders a short human-readable line for an event, attached to the
// published envelope so dashboards can show events without decoding the
// typed payload.
func Summary(event entity.Event) string {
	switch ev := event.(type) {
	case entity.OperationalStatusChanged:
		if ev.Operational {
			return "Engine resumed: mutating operations accepted again"
		}
		return "Engine halted: mutating operations suspended"
	case entity.AirlineFunded:
		return fmt.Sprintf("Airline %s funded the pool with %s", ev.Account, ev.Amount)
	case entity.AirlineRegistered:
		if ev.Votes > 0 {
			return fmt.Sprintf("Airline %s registered with %d votes", ev.Account, ev.Votes)
		}
		return fmt.Sprintf("Airline %s registered", ev.Account)
	case entity.FlightRegistered:
		return fmt.Sprintf("Flight %s open for insurance", flightLabel(ev.Key))
	case entity.OracleRequestOpened:
		return fmt.Sprintf("Status requested for flight %s", flightLabel(ev.Key))
	case entity.FlightStatusResolved:
		return fmt.Sprintf("Flight %s resolved as %s", flightLabel(ev.Key), ev.Status)
	case entity.EscrowCredited:
		return fmt.Sprintf("Passenger %s credited %s for flight %s", ev.Passenger, ev.Amount, flightLabel(ev.Key))
	case entity.WithdrawalPaid:
		return fmt.Sprintf("Passenger %s withdrew %s", ev.Passenger, ev.Amount)
	}
	return ""
}

func flightLabel(key entity.FlightKey) string {
	return fmt.Sprintf("%s (%s)", key.Code, key.Airline)
}
