// Package publisher streams activity log entries to NATS.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	activityModel "github.com/festy23/task_capacity/internal/activity/model"
	"github.com/festy23/task_capacity/internal/config"
	"github.com/festy23/task_capacity/internal/metrics"
	"github.com/festy23/task_capacity/pkg/retry"
)

// ErrNotConnected is returned by health checks when the NATS connection is down.
var ErrNotConnected = errors.New("nats connection is not established")

// Publisher delivers activity entries to subscribers.
type Publisher interface {
	// Publish sends one entry. Delivery is at-most-once.
	Publish(ctx context.Context, activity *activityModel.Activity) error
	// Check reports whether the publisher can currently deliver.
	Check(ctx context.Context) error
	// Close drains pending messages and releases the connection.
	Close()
}

// Subject returns the subject an activity kind is published on.
func Subject(prefix, kind string) string {
	return prefix + "." + kind
}

type natsPublisher struct {
	conn    *nats.Conn
	prefix  string
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
}

// NewNATS connects to the configured NATS server, retrying transient failures.
func NewNATS(ctx context.Context, cfg config.MessagingConfig, m *metrics.Metrics, logger *zap.SugaredLogger) (Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	retryCfg := retry.BrokerConfig()
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("nats connection failed, retrying", "attempt", attempt, "delay", delay, "error", err)
	}

	conn, err := retry.DoWithResult(ctx, retryCfg, func() (*nats.Conn, error) {
		return nats.Connect(cfg.NATSURL,
			nats.Name("task-capacity"),
			nats.Timeout(cfg.ConnectTimeout),
			nats.MaxReconnects(-1),
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				if err != nil {
					logger.Warnw("nats disconnected", "error", err)
				}
			}),
			nats.ReconnectHandler(func(c *nats.Conn) {
				logger.Infow("nats reconnected", "url", c.ConnectedUrl())
			}),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	logger.Infow("nats connected", "url", conn.ConnectedUrl(), "subject_prefix", cfg.SubjectPrefix)
	return &natsPublisher{conn: conn, prefix: cfg.SubjectPrefix, metrics: m, logger: logger}, nil
}

// Publish sends one entry on <prefix>.<kind>.
func (p *natsPublisher) Publish(_ context.Context, activity *activityModel.Activity) error {
	data, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	err = p.conn.Publish(Subject(p.prefix, activity.Kind), data)
	p.metrics.ActivityPublished(activity.Kind, err)
	if err != nil {
		p.logger.Errorw("failed to publish activity", "kind", activity.Kind, "task_id", activity.TaskID, "error", err)
		return err
	}
	return nil
}

// Check reports whether the connection is up.
func (p *natsPublisher) Check(_ context.Context) error {
	if !p.conn.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// Close drains pending messages and releases the connection.
func (p *natsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warnw("nats drain failed", "error", err)
		p.conn.Close()
	}
}

// Nop discards every entry. It is used when no NATS server is configured.
type Nop struct{}

// Publish discards the entry.
func (Nop) Publish(context.Context, *activityModel.Activity) error { return nil }

// Check always succeeds.
func (Nop) Check(context.Context) error { return nil }

// Close does nothing.
func (Nop) Close() {}

// PublishAll sends every entry, logging failures. The activity log in the
// database stays authoritative, so delivery errors never fail the caller.
func PublishAll(ctx context.Context, p Publisher, logger *zap.SugaredLogger, activities ...*activityModel.Activity) {
	for _, a := range activities {
		if err := p.Publish(ctx, a); err != nil {
			logger.Warnw("activity not delivered", "activity_id", a.ID, "kind", a.Kind, "error", err)
		}
	}
}
