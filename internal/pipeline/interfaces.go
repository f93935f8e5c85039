package pipeline

import (
	"context"

	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/samvad-hq/vernacular-news/pkg/newsapi"
)

// NewsSource returns the articles matching a query, in source order.
type NewsSource interface {
	Search(ctx context.Context, q newsapi.Query) ([]domain.Article, error)
}

// ImageResolver finds a representative image for an article page.
type ImageResolver interface {
	ImageFor(ctx context.Context, pageURL string) (string, error)
}
