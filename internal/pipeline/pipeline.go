package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/samvad-hq/vernacular-news/internal/logger"
	"github.com/samvad-hq/vernacular-news/pkg/newsapi"
	"github.com/samvad-hq/vernacular-news/pkg/translate"
)

// DefaultTopic is the fixed search term every request starts from.
const DefaultTopic = "india"

// Request selects what one pipeline invocation fetches and where it translates to.
type Request struct {
	Language string
	Category domain.Category
}

// Pipeline fetches articles and rewrites their title and description into the
// requested language.
type Pipeline struct {
	news       NewsSource
	translator translate.Translator
	images     ImageResolver
	topic      string
	log        logger.Logger
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithTopic overrides the fixed search term.
func WithTopic(topic string) Option {
	return func(p *Pipeline) {
		if t := strings.TrimSpace(topic); t != "" {
			p.topic = t
		}
	}
}

// WithImageResolver fills missing article images from the article page.
func WithImageResolver(r ImageResolver) Option {
	return func(p *Pipeline) { p.images = r }
}

// WithLogger sets the operator-facing logger.
func WithLogger(log logger.Logger) Option {
	return func(p *Pipeline) { p.log = logger.Ensure(log) }
}

// New wires a pipeline with its two collaborators.
func New(news NewsSource, tr translate.Translator, opts ...Option) *Pipeline {
	p := &Pipeline{
		news:       news,
		translator: tr,
		topic:      DefaultTopic,
		log:        logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run performs one invocation. Only a failed news fetch or a cancelled ctx
// produce an error; per-field translation failures fall back to the source text.
// The returned slice has the same length and order as the fetched articles.
func (p *Pipeline) Run(ctx context.Context, req Request) ([]domain.Article, error) {
	if p == nil || p.news == nil || p.translator == nil {
		return nil, fmt.Errorf("pipeline is not initialized")
	}

	start := time.Now()
	p.log.InfoObj("pipeline started", "pipeline_meta", map[string]any{
		"language": req.Language,
		"category": string(req.Category),
		"topic":    p.topic,
	})

	articles, err := p.news.Search(ctx, newsapi.Query{Topic: p.topic, Category: req.Category})
	if err != nil {
		p.log.ErrorObj("news fetch failed", "pipeline_error", map[string]any{
			"language":   req.Language,
			"category":   string(req.Category),
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	if len(articles) == 0 {
		p.log.InfoObj("pipeline completed", "pipeline_result", map[string]any{
			"articles":   0,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return []domain.Article{}, nil
	}

	out, fallbacks := p.translateAll(ctx, articles, req.Language)

	if err := ctx.Err(); err != nil {
		p.log.InfoObj("pipeline superseded", "pipeline_meta", map[string]any{
			"language": req.Language,
			"category": string(req.Category),
			"reason":   err.Error(),
		})
		return nil, err
	}

	p.log.InfoObj("pipeline completed", "pipeline_result", map[string]any{
		"articles":   len(out),
		"fallbacks":  fallbacks,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return out, nil
}

// translateAll launches one goroutine per translatable field and joins them
// positionally: out[i] is always derived from articles[i].
func (p *Pipeline) translateAll(ctx context.Context, articles []domain.Article, lang string) ([]domain.Article, int64) {
	out := make([]domain.Article, len(articles))
	var fallbacks atomic.Int64
	var g errgroup.Group

	for i := range articles {
		out[i] = articles[i]

		title := articles[i].Title
		g.Go(func() error {
			out[i].Title = p.translateField(ctx, title, title, lang, &fallbacks)
			return nil
		})

		source := articles[i].Description
		g.Go(func() error {
			out[i].Description = p.translateField(ctx, StripHTML(source), source, lang, &fallbacks)
			return nil
		})

		if p.images != nil && strings.TrimSpace(out[i].URLToImage) == "" && out[i].URL != "" {
			pageURL := out[i].URL
			g.Go(func() error {
				out[i].URLToImage = p.resolveImage(ctx, pageURL)
				return nil
			})
		}
	}

	_ = g.Wait()
	return out, fallbacks.Load()
}

// translateField translates the sanitised text. On failure it returns source,
// the field as the news source delivered it.
func (p *Pipeline) translateField(ctx context.Context, text, source, lang string, fallbacks *atomic.Int64) string {
	if strings.TrimSpace(text) == "" {
		return domain.TranslationUnavailable
	}

	translated, err := p.translator.Translate(ctx, text, lang)
	if err != nil {
		fallbacks.Add(1)
		if !errors.Is(err, context.Canceled) {
			p.log.DebugObj("translation fell back to source text", "translate_error", map[string]any{
				"language": lang,
				"error":    err.Error(),
			})
		}
		return source
	}
	return translated
}

func (p *Pipeline) resolveImage(ctx context.Context, pageURL string) string {
	img, err := p.images.ImageFor(ctx, pageURL)
	if err != nil {
		p.log.WarnObj("article image lookup failed", "metadata_error", map[string]any{
			"url":   pageURL,
			"error": err.Error(),
		})
		return ""
	}
	return img
}
