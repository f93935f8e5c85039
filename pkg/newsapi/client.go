package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/samvad-hq/vernacular-news/pkg/httpclient"
)

// DefaultBaseURL is the "everything" search endpoint.
const DefaultBaseURL = "https://newsapi.org/v2/everything"

const apiKeyHeader = "X-Api-Key"

// Query describes one search against the news source.
type Query struct {
	Topic    string
	Category domain.Category
}

// SearchTerm combines the fixed topic with the category refinement.
// The general category adds nothing.
func (q Query) SearchTerm() string {
	topic := strings.TrimSpace(q.Topic)
	cat := strings.TrimSpace(string(q.Category))
	if cat == "" || domain.Category(cat) == domain.CategoryGeneral {
		return topic
	}
	if topic == "" {
		return cat
	}
	return topic + " " + cat
}

// Client talks to the news search API.
type Client struct {
	http     httpclient.Client
	baseURL  string
	apiKey   string
	pageSize int
}

// Option customises a Client.
type Option func(*Client)

// WithPageSize caps the number of articles per request; zero keeps the server default.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// New builds a news client. The API key is sent as a header, never in the URL.
func New(client httpclient.Client, baseURL, apiKey string, opts ...Option) *Client {
	if client == nil {
		client = httpclient.NewRestyClient(0)
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http:    client,
		baseURL: strings.TrimSpace(baseURL),
		apiKey:  strings.TrimSpace(apiKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []domain.Article `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

// Search issues one request and returns the articles in server order.
// A successful response without articles yields an empty slice.
func (c *Client) Search(ctx context.Context, q Query) ([]domain.Article, error) {
	term := q.SearchTerm()
	if term == "" {
		return nil, fmt.Errorf("news query is empty")
	}

	params := map[string]string{"q": term}
	if c.pageSize > 0 {
		params["pageSize"] = strconv.Itoa(c.pageSize)
	}
	headers := map[string]string{
		apiKeyHeader: c.apiKey,
		"Accept":     "application/json",
	}

	resp, err := c.http.Get(ctx, c.baseURL, params, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch news %q: %w", term, err)
	}

	body := resp.Body()
	var decoded searchResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if !httpclient.IsSuccess(resp) {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Message: responseSnippet(body)}
		if decodeErr == nil && decoded.Message != "" {
			apiErr.Code = decoded.Code
			apiErr.Message = decoded.Message
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode news response: %w", decodeErr)
	}
	if decoded.Status != "" && !strings.EqualFold(decoded.Status, "ok") {
		return nil, &APIError{StatusCode: resp.StatusCode(), Code: decoded.Code, Message: decoded.Message}
	}

	if len(decoded.Articles) == 0 {
		return []domain.Article{}, nil
	}
	return decoded.Articles, nil
}
