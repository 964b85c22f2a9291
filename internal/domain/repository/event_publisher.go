package repository

import (
	"context"

	"surety-service/internal/domain/entity"
)

// EventPublisher broadcasts committed-state events to external observers.
// Publishing happens after commit; a publish failure never rolls back the
// transaction that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event) error
}
