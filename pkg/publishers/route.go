package publishers

import (
	"context"
	"strings"
)

// Publisher sends events to one downstream sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Route pairs a publisher with the languages it serves. A route without
// languages serves every language.
type Route struct {
	Publisher Publisher
	Languages []string
}

// Accepts reports whether evt should be delivered through this route.
func (r Route) Accepts(evt Event) bool {
	if len(r.Languages) == 0 {
		return true
	}
	for _, l := range r.Languages {
		if strings.EqualFold(l, evt.Language) {
			return true
		}
	}
	return false
}
