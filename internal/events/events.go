// Package events publishes booking domain events to Kafka. Publishing is best effort: a failure is
// logged and never fails the operation that produced the event.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"salon/config"
	"salon/infras/kafka"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingCreated       = "booking.created"

	defaultStatusTopic = "booking.status_changed"
)

// StatusChanged is the payload emitted whenever a booking moves to another status.
type StatusChanged struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	BookingNo  int64     `json:"booking_no"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ArtistID   *int64    `json:"artist_id,omitempty"`
	ChangedBy  string    `json:"changed_by"`
	ActorRole  string    `json:"actor_role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCreated is emitted once per order.
type BookingCreated struct {
	Type       string    `json:"type"`
	BookingNo  int64     `json:"booking_no"`
	Items      int       `json:"items"`
	CreatedBy  string    `json:"created_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	StatusChanged(ctx context.Context, payload StatusChanged)
	BookingCreated(ctx context.Context, payload BookingCreated)
}

type publisherImpl struct {
	client kafka.Client
	topic  string
}

func New(cfg *config.Config, client kafka.Client) Publisher {
	topic := cfg.Kafka.Topic.BookingStatus
	if topic == "" {
		topic = defaultStatusTopic
	}

	return &publisherImpl{
		client: client,
		topic:  topic,
	}
}

func (p *publisherImpl) StatusChanged(ctx context.Context, payload StatusChanged) {
	payload.Type = EventBookingStatusChanged

	p.publish(ctx, strconv.FormatInt(payload.BookingID, 10), payload)
}

func (p *publisherImpl) BookingCreated(ctx context.Context, payload BookingCreated) {
	payload.Type = EventBookingCreated

	p.publish(ctx, strconv.FormatInt(payload.BookingNo, 10), payload)
}

func (p *publisherImpl) publish(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := p.client.SendMessages(c, p.topic, kafka.Message{Key: key, Value: value}); err != nil {
			log.Error().Err(err).Str("topic", p.topic).Str("key", key).Msg("failed to publish booking event")
		}
	}()
}
