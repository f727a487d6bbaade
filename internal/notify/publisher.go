// Package notify publishes document events for downstream consumers such as
// search indexers or site rebuilders.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/logfields"
)

const flushTimeout = 5 * time.Second

// Publisher delivers document events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// NATS publishes events as JSON on a core NATS subject.
type NATS struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATS connects to url. The connection reconnects on its own; Close drains it.
func NewNATS(url, subject string, logger *slog.Logger) (*NATS, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := nats.Connect(url,
		nats.Name("specref"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", logfields.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotify, "failed to connect to NATS").
			WithContext("url", url).
			Build()
	}

	logger.Info("NATS publisher connected", slog.String("url", url), logfields.Subject(subject))
	return &NATS{conn: conn, subject: subject, logger: logger}, nil
}

// Publish implements Publisher. The event is flushed before returning so a
// failed delivery surfaces here.
func (n *NATS) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal event").Build()
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return errors.WrapError(err, errors.CategoryNotify, "failed to publish event").
			WithContext("subject", n.subject).
			Build()
	}
	flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := n.conn.FlushWithContext(flushCtx); err != nil {
		return errors.WrapError(err, errors.CategoryNotify, "failed to flush event").
			WithContext("subject", n.subject).
			Build()
	}

	n.logger.Debug("Published document event",
		logfields.Subject(n.subject),
		logfields.TSNumber(event.TSNumber),
		logfields.Count(event.References))
	return nil
}

// Close drains and closes the connection.
func (n *NATS) Close() error {
	if n.conn == nil {
		return nil
	}
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return errors.WrapError(err, errors.CategoryNotify, "failed to drain NATS connection").Build()
	}
	return nil
}
