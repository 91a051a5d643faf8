package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Drivers accepted by Config.Driver.
const (
	DriverGoChannel = "gochannel"
	DriverKafka     = "kafka"
	DriverNone      = "none"
)

// ConsumerGroup is the Kafka consumer group of the recorder.
const ConsumerGroup = "quizcrafter-recorder"

// Publisher publishes quiz events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Config selects and configures the transport.
type Config struct {
	Driver       string
	KafkaBrokers []string
}

// Bus is a Publisher backed by a watermill publisher, with the matching
// subscriber for consumers such as the Recorder.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	wmLogger   watermill.LoggerAdapter
	logger     *slog.Logger
}

// NewBus creates the transport named by cfg.Driver. DriverNone yields a
// Bus whose Publish is a no-op and which has no subscriber.
func NewBus(cfg Config, logger *slog.Logger) (*Bus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	wmLogger := watermill.NewSlogLogger(logger)
	b := &Bus{wmLogger: wmLogger, logger: logger}

	switch cfg.Driver {
	case "", DriverGoChannel:
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
		b.publisher, b.subscriber = ch, ch
	case DriverKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("kafka driver needs at least one broker")
		}
		pub, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   cfg.KafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
		}
		sub, err := kafka.NewSubscriber(kafka.SubscriberConfig{
			Brokers:       cfg.KafkaBrokers,
			Unmarshaler:   kafka.DefaultMarshaler{},
			ConsumerGroup: ConsumerGroup,
		}, wmLogger)
		if err != nil {
			pub.Close()
			return nil, fmt.Errorf("failed to create Kafka subscriber: %w", err)
		}
		b.publisher, b.subscriber = pub, sub
	case DriverNone:
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
	return b, nil
}

// Publish marshals e and sends it to the topic named by its type.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	if b.publisher == nil {
		return nil
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(e.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(e.Type))
	msg.Metadata.Set("session_id", e.SessionID)
	msg.Metadata.Set("timestamp", e.Timestamp.Format(time.RFC3339))

	if err := b.publisher.Publish(string(e.Type), msg); err != nil {
		b.logger.ErrorContext(ctx, "failed to publish event",
			"event_id", e.ID, "event_type", e.Type, "error", err)
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}

	b.logger.DebugContext(ctx, "published event", "event_id", e.ID, "event_type", e.Type)
	return nil
}

// Subscriber returns the subscriber side of the transport, or nil for
// DriverNone.
func (b *Bus) Subscriber() message.Subscriber {
	return b.subscriber
}

// Logger returns the watermill logger adapter.
func (b *Bus) Logger() watermill.LoggerAdapter {
	return b.wmLogger
}

// Close releases the transport.
func (b *Bus) Close() error {
	if b.publisher == nil {
		return nil
	}
	err := b.publisher.Close()
	if b.subscriber != nil && any(b.subscriber) != any(b.publisher) {
		if serr := b.subscriber.Close(); err == nil {
			err = serr
		}
	}
	return err
}
