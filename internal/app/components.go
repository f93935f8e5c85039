package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/vernacular-news/internal/config"
	"github.com/samvad-hq/vernacular-news/internal/logger"
	"github.com/samvad-hq/vernacular-news/internal/pipeline"
	"github.com/samvad-hq/vernacular-news/internal/speech"
	"github.com/samvad-hq/vernacular-news/pkg/httpclient"
	"github.com/samvad-hq/vernacular-news/pkg/newsapi"
	"github.com/samvad-hq/vernacular-news/pkg/publishers"
	"github.com/samvad-hq/vernacular-news/pkg/translate"
)

// buildPipeline wires the news and translation clients into a pipeline.
func buildPipeline(cfg *config.Config, client httpclient.Client, log logger.Logger) *pipeline.Pipeline {
	news := newsapi.New(client, cfg.NewsAPIURL, cfg.NewsAPIKey, newsapi.WithPageSize(cfg.NewsPageSize))

	var tr translate.Translator = translate.NewGoogleClient(client, cfg.TranslateAPIURL, cfg.TranslateAPIKey)
	tr = translate.WithRateLimit(tr, cfg.TranslateRPS, cfg.TranslateBurst)

	opts := []pipeline.Option{
		pipeline.WithTopic(cfg.NewsTopic),
		pipeline.WithLogger(log),
	}
	if cfg.EnrichImages {
		opts = append(opts, pipeline.WithImageResolver(pipeline.NewImageScraper(client)))
	}

	log.InfoObj("pipeline configured", "pipeline_config", map[string]any{
		"news_api_url":      cfg.NewsAPIURL,
		"translate_api_url": cfg.TranslateAPIURL,
		"topic":             cfg.NewsTopic,
		"page_size":         cfg.NewsPageSize,
		"translate_rps":     cfg.TranslateRPS,
		"enrich_images":     cfg.EnrichImages,
		"http_timeout":      cfg.HTTPTimeout.String(),
	})
	return pipeline.New(news, tr, opts...)
}

// buildSpeaker selects the speech backend. The returned closer releases
// publisher connections and is never nil.
func buildSpeaker(ctx context.Context, cfg *config.Config, log logger.Logger) (speech.Speaker, func() error, error) {
	noop := func() error { return nil }
	log = logger.Ensure(log)

	switch strings.ToLower(cfg.SpeechBackend) {
	case "", "none":
		return speech.Nop{}, noop, nil
	case "command":
		log.InfoObj("speech backend initialized", "speech_config", map[string]any{
			"backend": "command",
			"command": cfg.SpeechCommand,
		})
		return speech.NewCommandSpeaker(cfg.SpeechCommand, log), noop, nil
	case "publishers":
		fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
		if err != nil {
			return nil, noop, err
		}
		return speech.NewPublisherSpeaker(fanout, log), fanout.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported speech backend %q", cfg.SpeechBackend)
	}
}

// buildFanout loads the publishers file and routes speak events to the
// enabled entries by language.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	log = logger.Ensure(log)
	catalog, err := publishers.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers file: %w", err)
	}

	enabled := catalog.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	routes, err := publishers.DefaultBuilders().Routes(ctx, enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	summaries := make([]map[string]any, 0, len(enabled))
	for _, cfg := range enabled {
		summaries = append(summaries, map[string]any{
			"id":        cfg.ID,
			"type":      cfg.Type,
			"languages": cfg.Languages,
		})
	}
	log.InfoObj("publishers loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(routes, log), nil
}
