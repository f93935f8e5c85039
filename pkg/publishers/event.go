package publishers

import (
	"time"
)

// Event kinds.
const (
	KindSpeak = "speak"
)

// Event represents the payload published downstream.
type Event struct {
	Kind       string    `json:"kind"`
	Text       string    `json:"text"`
	Language   string    `json:"language"`
	ArticleURL string    `json:"article_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewSpeakEvent constructs a speech request for text in language.
func NewSpeakEvent(text, language, articleURL string) Event {
	return Event{
		Kind:       KindSpeak,
		Text:       text,
		Language:   language,
		ArticleURL: articleURL,
		CreatedAt:  time.Now().UTC(),
	}
}

// attributes returns the routing attributes attached to queue/topic messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"kind":     e.Kind,
		"language": e.Language,
	}
}
