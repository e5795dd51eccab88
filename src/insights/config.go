package insights

import (
	"fmt"

	"actions-insight/src/broker"
	"actions-insight/src/config"
	"actions-insight/src/logger"
	"actions-insight/src/provider"
)

// ProviderName is the registered provider the service reads from.
const ProviderName = "github"

// NewServiceFromConfig builds the service for cfg: the GitHub provider,
// plus a Redpanda event publisher when brokers are configured. The
// returned close function releases the publisher.
func NewServiceFromConfig(cfg *config.Config, log logger.Logger) (*Service, func() error, error) {
	p, err := provider.GetProvider(ProviderName, cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		return nil, nil, err
	}

	opts := []Option{WithLogger(log)}
	closeFn := func() error { return nil }

	if cfg.Events.Enabled() {
		b, err := broker.NewRedpandaBroker(cfg.Events.Brokers)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to event brokers: %w", err)
		}
		opts = append(opts, WithEvents(b, cfg.Events.Topic))
		closeFn = b.Close
		log.Info("publishing analysis events to %s via %v", cfg.Events.Topic, cfg.Events.Brokers)
	}

	return NewService(p, opts...), closeFn, nil
}
