package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"surety-service/internal/domain/entity"
	"surety-service/internal/domain/repository"
	"surety-service/pkg/logger"
	"surety-service/templates"

	"github.com/nats-io/nats.go"
)

// subjectPrefix roots every event subject, e.g. surety.events.escrow_credited.
const subjectPrefix = "surety.events."

// NatsEventPublisher implements EventPublisher over a NATS connection.
type NatsEventPublisher struct {
	conn   *nats.Conn
	logger logger.Logger
}

type eventEnvelope struct {
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
	Summary    string       `json:"summary,omitempty"`
	Data       entity.Event `json:"data"`
}

// NewNatsEventPublisher connects to NATS and returns an event publisher
func NewNatsEventPublisher(url, name string, logger logger.Logger) (*NatsEventPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NatsEventPublisher{conn: conn, logger: logger}, nil
}

// Publish broadcasts one committed-state event.
func (p *NatsEventPublisher) Publish(ctx context.Context, event entity.Event) error {
	envelope := eventEnvelope{
		Type:       event.EventType(),
		OccurredAt: time.Now().UTC(),
		Summary:    templates.Summary(event),
		Data:       event,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.conn.Publish(subjectPrefix+event.EventType(), payload)
}

// Close drains and closes the underlying connection.
func (p *NatsEventPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("NATS drain failed", "error", err)
	}
}

var _ repository.EventPublisher = (*NatsEventPublisher)(nil)
