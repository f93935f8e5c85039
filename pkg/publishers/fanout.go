package publishers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samvad-hq/vernacular-news/internal/logger"
	"golang.org/x/sync/errgroup"
)

// ErrNoRoute is returned when no publisher serves the event's language.
var ErrNoRoute = errors.New("publishers: no route for event")

// Delivery summarises one Publish call.
type Delivery struct {
	Routed    int
	Delivered int
}

// Fanout sends each event to every publisher whose route accepts it.
type Fanout struct {
	routes []Route
	log    logger.Logger
}

// NewFanout drops routes without a publisher.
func NewFanout(routes []Route, log logger.Logger) *Fanout {
	kept := make([]Route, 0, len(routes))
	for _, r := range routes {
		if r.Publisher != nil {
			kept = append(kept, r)
		}
	}
	return &Fanout{routes: kept, log: logger.Ensure(log)}
}

// Publish delivers evt to the accepting publishers concurrently. Errors from
// individual publishers are joined; a nil Fanout delivers nothing.
func (f *Fanout) Publish(ctx context.Context, evt Event) (Delivery, error) {
	if f == nil {
		return Delivery{}, nil
	}

	var targets []Publisher
	for _, r := range f.routes {
		if r.Accepts(evt) {
			targets = append(targets, r.Publisher)
		}
	}
	if len(targets) == 0 {
		f.log.DebugObj("no publisher serves event", "publisher_route_miss", map[string]any{
			"kind":     evt.Kind,
			"language": evt.Language,
		})
		return Delivery{}, fmt.Errorf("%w: language %q", ErrNoRoute, evt.Language)
	}

	errs := make([]error, len(targets))
	var g errgroup.Group
	for i, p := range targets {
		g.Go(func() error {
			if err := p.Publish(ctx, evt); err != nil {
				errs[i] = fmt.Errorf("%s publisher[%s]: %w", p.Type(), p.ID(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	d := Delivery{Routed: len(targets)}
	for _, err := range errs {
		if err == nil {
			d.Delivered++
		}
	}
	return d, errors.Join(errs...)
}

// Len returns the number of routes.
func (f *Fanout) Len() int {
	if f == nil {
		return 0
	}
	return len(f.routes)
}

// Close releases publishers that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, r := range f.routes {
		if c, ok := r.Publisher.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s publisher[%s]: %w", r.Publisher.Type(), r.Publisher.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
