package publishers

import (
	"context"
	"fmt"

	"github.com/samvad-hq/vernacular-news/internal/logger"
)

// Builder creates a Publisher from a config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error)

// Builders maps publisher types to their constructors.
type Builders map[string]Builder

// DefaultBuilders knows every sink type this package implements.
func DefaultBuilders() Builders {
	return Builders{
		TypeHTTP:   newHTTPPublisher,
		TypeSQS:    newSQSPublisher,
		TypeSNS:    newSNSPublisher,
		TypePubSub: newPubSubPublisher,
	}
}

// Build constructs the publisher for one entry.
func (b Builders) Build(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	build := b[cfg.Type]
	if build == nil {
		return nil, fmt.Errorf("no publisher registered for type %q", cfg.Type)
	}
	return build(ctx, cfg, logger.Ensure(log))
}

// Routes builds one route per entry, carrying the entry's language filter.
// When an entry fails the publishers built so far are closed.
func (b Builders) Routes(ctx context.Context, cfgs []PublisherConfig, log logger.Logger) ([]Route, error) {
	routes := make([]Route, 0, len(cfgs))
	for _, cfg := range cfgs {
		pub, err := b.Build(ctx, cfg, log)
		if err != nil {
			_ = NewFanout(routes, log).Close()
			return nil, fmt.Errorf("build publisher %q: %w", cfg.ID, err)
		}
		routes = append(routes, Route{Publisher: pub, Languages: cfg.Languages})
	}
	return routes, nil
}
