package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/samvad-hq/vernacular-news/internal/config"
	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/samvad-hq/vernacular-news/internal/logger"
	"github.com/samvad-hq/vernacular-news/internal/pipeline"
	"github.com/samvad-hq/vernacular-news/pkg/httpclient"
)

// Runner executes one pipeline invocation.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) ([]domain.Article, error)
}

// Digest runs the pipeline once and writes the translated list as JSON.
type Digest struct {
	runner Runner
	req    pipeline.Request
	out    io.Writer
	log    logger.Logger
}

// DigestResult is the document written to out.
type DigestResult struct {
	Language string           `json:"language"`
	Category domain.Category  `json:"category"`
	Articles []domain.Article `json:"articles"`
}

// NewDigest builds a one-shot digest from config.
func NewDigest(cfg *config.Config, out io.Writer, log logger.Logger) (*Digest, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	category, err := domain.ParseCategory(cfg.DefaultCategory)
	if err != nil {
		return nil, fmt.Errorf("default category: %w", err)
	}

	client := httpclient.NewRestyClient(cfg.HTTPTimeout)
	return newDigest(buildPipeline(cfg, client, log), pipeline.Request{
		Language: cfg.DefaultLanguage,
		Category: category,
	}, out, log), nil
}

func newDigest(runner Runner, req pipeline.Request, out io.Writer, log logger.Logger) *Digest {
	return &Digest{runner: runner, req: req, out: out, log: logger.Ensure(log)}
}

// Run fetches, translates and encodes one article list.
func (d *Digest) Run(ctx context.Context) error {
	if d == nil || d.runner == nil {
		return fmt.Errorf("digest is not initialized")
	}

	articles, err := d.runner.Run(ctx, d.req)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	enc := json.NewEncoder(d.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(DigestResult{
		Language: d.req.Language,
		Category: d.req.Category,
		Articles: articles,
	}); err != nil {
		return fmt.Errorf("encode digest: %w", err)
	}

	d.log.InfoObj("digest written", "digest_meta", map[string]any{
		"language": d.req.Language,
		"category": string(d.req.Category),
		"articles": len(articles),
	})
	return nil
}
