package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/vernacular-news/pkg/httpclient"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
)

// ImageScraper fetches article pages and reads their og:image tag.
type ImageScraper struct {
	client  httpclient.Client
	headers map[string]string
}

// NewImageScraper constructs a scraper with the provided HTTP client (or default).
func NewImageScraper(client httpclient.Client) *ImageScraper {
	if client == nil {
		client = httpclient.NewRestyClient(0)
	}
	return &ImageScraper{
		client: client,
		headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (compatible; vernacular-news/1.0)",
			"Accept":     "text/html",
		},
	}
}

// ImageFor returns the absolute og:image URL of pageURL, or "" when the page has none.
func (s *ImageScraper) ImageFor(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.client.Get(ctx, pageURL, nil, s.headers)
	if err != nil {
		return "", fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return "", fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return "", err
	}
	return resolveURL(meta.ImageURL, pageURL), nil
}

func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	return pageMeta{
		ImageURL: firstNonEmpty(
			extract(`meta[property="og:image"]`),
			extract(`meta[name="twitter:image"]`),
		),
	}, nil
}

type pageMeta struct {
	ImageURL string
}

// resolveURL makes ref absolute against base; unparsable input is returned as-is.
func resolveURL(ref, base string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return r.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
