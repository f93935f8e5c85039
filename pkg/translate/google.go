package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/samvad-hq/vernacular-news/pkg/httpclient"
)

// DefaultGoogleURL is the Cloud Translation v2 endpoint.
const DefaultGoogleURL = "https://translation.googleapis.com/language/translate/v2"

// ErrEmptyTranslation is returned when the API answers without a translated string.
var ErrEmptyTranslation = errors.New("translation response contained no text")

// GoogleClient calls the Cloud Translation v2 REST API, one POST per text.
type GoogleClient struct {
	http    httpclient.Client
	baseURL string
	apiKey  string
}

// NewGoogleClient builds a client; a nil http client falls back to resty without timeout.
func NewGoogleClient(client httpclient.Client, baseURL, apiKey string) *GoogleClient {
	if client == nil {
		client = httpclient.NewRestyClient(0)
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultGoogleURL
	}
	return &GoogleClient{
		http:    client,
		baseURL: strings.TrimSpace(baseURL),
		apiKey:  strings.TrimSpace(apiKey),
	}
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Translate sends text, target and key as query parameters and returns the first translation.
func (g *GoogleClient) Translate(ctx context.Context, text, target string) (string, error) {
	params := map[string]string{
		"q":      text,
		"target": target,
		"key":    g.apiKey,
		"format": "text",
	}

	resp, err := g.http.Post(ctx, g.baseURL, params, nil)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}

	var decoded googleResponse
	decodeErr := json.Unmarshal(resp.Body(), &decoded)
	if !httpclient.IsSuccess(resp) {
		if decodeErr == nil && decoded.Error != nil {
			return "", fmt.Errorf("translate status %d: %s", resp.StatusCode(), decoded.Error.Message)
		}
		return "", fmt.Errorf("translate status %d", resp.StatusCode())
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode translate response: %w", decodeErr)
	}
	if len(decoded.Data.Translations) == 0 {
		return "", ErrEmptyTranslation
	}
	out := html.UnescapeString(decoded.Data.Translations[0].TranslatedText)
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyTranslation
	}
	return out, nil
}
