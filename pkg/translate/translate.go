// Package translate provides the machine translation collaborator.
package translate

import "context"

// Translator rewrites text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Func adapts a plain function to Translator.
type Func func(ctx context.Context, text, target string) (string, error)

// Translate calls f.
func (f Func) Translate(ctx context.Context, text, target string) (string, error) {
	return f(ctx, text, target)
}
