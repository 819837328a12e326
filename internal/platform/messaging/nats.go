package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	contractsv1 "venuenouveau/contracts/gen/events/v1"

	"github.com/nats-io/nats.go"
)

// NATS publishes envelopes as JSON on a subject equal to the topic. The event
// id travels in the Nats-Msg-Id header so JetStream streams can deduplicate
// relay retries.
type NATS struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func ConnectNATS(url string, name string, logger *slog.Logger) (*NATS, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected",
					"event", "nats_disconnected",
					"module", moduleName,
					"layer", "platform",
					"error", err.Error(),
				)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATS{conn: conn, logger: logger}, nil
}

func (n *NATS) Publish(ctx context.Context, topic string, event contractsv1.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	msg := nats.NewMsg(topic)
	msg.Data = payload
	msg.Header.Set(nats.MsgIdHdr, event.EventID)
	msg.Header.Set("Event-Type", event.EventType)
	if err := n.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	n.logger.Debug("event published",
		"event", "nats_publish",
		"module", moduleName,
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

// Subscribe decodes envelopes from subject and hands them to handler until ctx ends.
func (n *NATS) Subscribe(
	ctx context.Context,
	subject string,
	consumer string,
	handler func(context.Context, contractsv1.Envelope) error,
) error {
	sub, err := n.conn.QueueSubscribe(subject, consumer, func(msg *nats.Msg) {
		var event contractsv1.Envelope
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			n.logger.Error("nats payload decode failed",
				"event", "nats_decode_failed",
				"module", moduleName,
				"layer", "platform",
				"subject", msg.Subject,
				"error", err.Error(),
			)
			return
		}
		if err := handler(ctx, event); err != nil {
			n.logger.Error("consumer handler failed",
				"event", "nats_consume_failed",
				"module", moduleName,
				"layer", "platform",
				"subject", msg.Subject,
				"consumer", consumer,
				"event_id", event.EventID,
				"error", err.Error(),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}

// Close drains pending publishes before closing the connection.
func (n *NATS) Close() error {
	if n == nil || n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
