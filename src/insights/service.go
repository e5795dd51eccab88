// Package insights fetches workflow data from a provider and turns it into reports.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"actions-insight/src/broker"
	"actions-insight/src/contracts"
	"actions-insight/src/logger"
	"actions-insight/src/provider"
)

const (
	// maxJobFetches bounds concurrent job detail requests per timing report.
	maxJobFetches = 10

	// publishTimeout bounds how long a finished report waits on the broker.
	publishTimeout = 5 * time.Second
)

// Service answers the tool queries. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	provider provider.Provider
	events   broker.Broker
	topic    string
	log      logger.Logger
	now      func() time.Time

	publishTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithEvents publishes an AnalysisEvent to topic after each successful
// analysis or timing report.
func WithEvents(b broker.Broker, topic string) Option {
	return func(s *Service) {
		s.events = b
		s.topic = topic
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// NewService creates a service reading from p.
func NewService(p provider.Provider, opts ...Option) *Service {
	s := &Service{
		provider: p,
		log:      logger.NewSilentLogger(),
		now:      time.Now,

		publishTimeout: publishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish sends an event when a broker is configured. Failures are logged
// and never reach the caller. The send outlives cancellation of ctx but is
// cut off after publishTimeout.
func (s *Service) publish(ctx context.Context, event contracts.AnalysisEvent, report any) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		s.log.Error("marshal %s report for run %d: %v", event.Kind, event.RunID, err)
		return
	}

	event.EventID = uuid.NewString()
	event.Timestamp = s.now().UTC().Format(time.RFC3339)
	event.Report = data

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("marshal %s event for run %d: %v", event.Kind, event.RunID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	key := fmt.Sprintf("%s/%s/%d", event.Owner, event.Repo, event.RunID)
	if err := s.events.Publish(ctx, s.topic, key, payload); err != nil {
		s.log.Error("publish %s event for %s: %v", event.Kind, key, err)
		return
	}
	s.log.Debug("published %s event %s for %s", event.Kind, event.EventID, key)
}
