package translate

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limited throttles calls to the wrapped Translator.
type Limited struct {
	next    Translator
	limiter *rate.Limiter
}

// WithRateLimit wraps next with a token bucket of rps requests per second.
// A non-positive rps returns next unchanged.
func WithRateLimit(next Translator, rps float64, burst int) Translator {
	if rps <= 0 {
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limited{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Translate waits for a token, then delegates.
func (l *Limited) Translate(ctx context.Context, text, target string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translate rate limit: %w", err)
	}
	return l.next.Translate(ctx, text, target)
}
