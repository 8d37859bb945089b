package events

//go:generate go run go.uber.org/mock/mockgen -source=./listener.go -destination=./mocks/listener_mock.go -package=mocks

import (
	"context"
	"salon/config"
	"salon/infras/kafka"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const defaultConsumerGroup = "salon-report-cache"

// Evicter drops data derived from bookings, such as cached report summaries.
type Evicter interface {
	Evict(ctx context.Context)
}

// Listener consumes the booking topic and evicts derived caches on every event, including events
// published by other instances.
type Listener interface {
	Run(ctx context.Context)
}

type envelope struct {
	Type      string `json:"type"`
	BookingNo int64  `json:"booking_no"`
}

type listenerImpl struct {
	client  kafka.Client
	topic   string
	group   string
	evicter Evicter
}

func NewListener(cfg *config.Config, client kafka.Client, evicter Evicter) Listener {
	topic := cfg.Kafka.Topic.BookingStatus
	if topic == "" {
		topic = defaultStatusTopic
	}

	group := cfg.Kafka.ConsumerGroup
	if group == "" {
		group = defaultConsumerGroup
	}

	return &listenerImpl{
		client:  client,
		topic:   topic,
		group:   group,
		evicter: evicter,
	}
}

// Run blocks until ctx is done.
func (l *listenerImpl) Run(ctx context.Context) {
	log.Info().Str("topic", l.topic).Str("group", l.group).Msg("booking event listener started")

	l.client.Consume(ctx, l.group, l.topic, func(msg kafkaGo.Message) {
		l.handle(ctx, msg)
	})
}

func (l *listenerImpl) handle(ctx context.Context, msg kafkaGo.Message) {
	event, err := kafka.Decode[envelope](msg)
	if err != nil {
		return
	}

	switch event.Type {
	case EventBookingCreated, EventBookingStatusChanged:
		l.evicter.Evict(ctx)

		log.Debug().Str("type", event.Type).Int64("booking_no", event.BookingNo).Msg("report cache evicted")
	default:
		log.Warn().Str("type", event.Type).Msg("ignoring unknown booking event")
	}
}
