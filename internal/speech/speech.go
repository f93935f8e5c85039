package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/samvad-hq/vernacular-news/internal/logger"
	"github.com/samvad-hq/vernacular-news/pkg/publishers"
)

var (
	// ErrEmptyText is returned when there is nothing to read aloud.
	ErrEmptyText = errors.New("speech: empty text")
	// ErrNoVoice is returned when the local engine has no voice for a language.
	ErrNoVoice = errors.New("speech: no voice for language")
)

// Utterance is one request to read text aloud in a language. ArticleURL
// identifies the article the text came from.
type Utterance struct {
	Text       string
	Language   string
	ArticleURL string
}

// espeakVoices maps lower-cased picker codes to espeak-ng voice names.
// Maithili, Kashmiri, Manipuri, Konkani, Santali, Bodo and Dogri have no
// espeak-ng voice and are rejected.
var espeakVoices = map[string]string{
	"en":    "en",
	"hi":    "hi",
	"mr":    "mr",
	"gu":    "gu",
	"ta":    "ta",
	"te":    "te",
	"bn":    "bn",
	"pa":    "pa",
	"ur":    "ur",
	"kn":    "kn",
	"ml":    "ml",
	"or":    "or",
	"as":    "as",
	"sd":    "sd",
	"ar":    "ar",
	"fr":    "fr",
	"de":    "de",
	"es":    "es",
	"it":    "it",
	"zh-cn": "cmn",
}

// Voice returns the espeak-ng voice for a picker language code.
func Voice(language string) (string, bool) {
	v, ok := espeakVoices[strings.ToLower(strings.TrimSpace(language))]
	return v, ok
}

// Speaker hands an utterance to a speech engine.
type Speaker interface {
	Speak(ctx context.Context, u Utterance) error
}

// Nop discards every utterance.
type Nop struct{}

func (Nop) Speak(context.Context, Utterance) error { return nil }

// CommandSpeaker runs a local espeak-ng compatible binary as `bin -v <voice> <text>`.
type CommandSpeaker struct {
	bin  string
	log  logger.Logger
	exec func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewCommandSpeaker returns a speaker that shells out to bin.
func NewCommandSpeaker(bin string, log logger.Logger) *CommandSpeaker {
	return &CommandSpeaker{
		bin:  strings.TrimSpace(bin),
		log:  logger.Ensure(log),
		exec: exec.CommandContext,
	}
}

// Speak starts the command and reaps it in the background.
func (s *CommandSpeaker) Speak(ctx context.Context, u Utterance) error {
	text := strings.TrimSpace(u.Text)
	if text == "" {
		return ErrEmptyText
	}
	if s.bin == "" {
		return errors.New("speech: no command configured")
	}

	args := make([]string, 0, 3)
	if u.Language != "" {
		voice, ok := Voice(u.Language)
		if !ok {
			return fmt.Errorf("%w %q", ErrNoVoice, u.Language)
		}
		args = append(args, "-v", voice)
	}
	args = append(args, text)

	cmd := s.exec(ctx, s.bin, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.bin, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			s.log.WarnObj("speech command failed", "speech_error", map[string]any{
				"command":  s.bin,
				"language": u.Language,
				"error":    err.Error(),
			})
		}
	}()
	return nil
}

// EventPublisher is the subset of publishers.Fanout used for speech hand-off.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (publishers.Delivery, error)
}

// PublisherSpeaker forwards utterances to remote synthesis services as events.
type PublisherSpeaker struct {
	pub EventPublisher
	log logger.Logger
}

// NewPublisherSpeaker wraps a publisher fan-out.
func NewPublisherSpeaker(pub EventPublisher, log logger.Logger) *PublisherSpeaker {
	return &PublisherSpeaker{pub: pub, log: logger.Ensure(log)}
}

// Speak publishes a speak event to the services serving u.Language. Partial
// delivery is logged, total failure returned.
func (s *PublisherSpeaker) Speak(ctx context.Context, u Utterance) error {
	text := strings.TrimSpace(u.Text)
	if text == "" {
		return ErrEmptyText
	}
	if s.pub == nil {
		return nil
	}

	evt := publishers.NewSpeakEvent(text, u.Language, u.ArticleURL)
	d, err := s.pub.Publish(ctx, evt)
	switch {
	case errors.Is(err, publishers.ErrNoRoute):
		return fmt.Errorf("no speech service for language %q: %w", u.Language, err)
	case err != nil && d.Delivered == 0:
		return fmt.Errorf("publish speak event: %w", err)
	case err != nil:
		s.log.WarnObj("speak event partially delivered", "speech_publish", map[string]any{
			"routed":    d.Routed,
			"delivered": d.Delivered,
			"error":     err.Error(),
		})
	}
	return nil
}
