package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/vernacular-news/internal/config"
	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/samvad-hq/vernacular-news/internal/pipeline"
	"github.com/samvad-hq/vernacular-news/internal/speech"
)

type stubRunner struct {
	articles []domain.Article
	err      error
	got      pipeline.Request
}

func (s *stubRunner) Run(_ context.Context, req pipeline.Request) ([]domain.Article, error) {
	s.got = req
	return s.articles, s.err
}

func TestDigestWritesJSON(t *testing.T) {
	runner := &stubRunner{articles: []domain.Article{{Title: "अ", Description: domain.TranslationUnavailable}}}
	var out bytes.Buffer
	d := newDigest(runner, pipeline.Request{Language: "hi", Category: domain.CategorySports}, &out, nil)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runner.got.Language != "hi" || runner.got.Category != domain.CategorySports {
		t.Fatalf("unexpected request %+v", runner.got)
	}

	if bytes.Contains(out.Bytes(), []byte("publishedAt")) {
		t.Fatalf("undated article should omit publishedAt: %s", out.Bytes())
	}

	var res DigestResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(res.Articles) != 1 || res.Articles[0].Title != "अ" || res.Category != domain.CategorySports {
		t.Fatalf("unexpected digest %+v", res)
	}
}

func TestDigestPropagatesFetchFailure(t *testing.T) {
	var out bytes.Buffer
	d := newDigest(&stubRunner{err: errors.New("status 500")}, pipeline.Request{Language: "hi"}, &out, nil)
	if err := d.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written on failure")
	}
}

func TestBuildSpeakerBackends(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := buildSpeaker(ctx, &config.Config{SpeechBackend: "none"}, nil)
	if err != nil {
		t.Fatalf("none: %v", err)
	}
	if _, ok := s.(speech.Nop); !ok {
		t.Fatalf("expected Nop speaker, got %T", s)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, _, err = buildSpeaker(ctx, &config.Config{SpeechBackend: "command", SpeechCommand: "espeak-ng"}, nil)
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if _, ok := s.(*speech.CommandSpeaker); !ok {
		t.Fatalf("expected CommandSpeaker, got %T", s)
	}

	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := "publishers:\n  - id: hook\n    type: http\n    http:\n      url: https://speech.example/speak\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}
	s, closeFn, err = buildSpeaker(ctx, &config.Config{SpeechBackend: "publishers", PublishersFile: path}, nil)
	if err != nil {
		t.Fatalf("publishers: %v", err)
	}
	if _, ok := s.(*speech.PublisherSpeaker); !ok {
		t.Fatalf("expected PublisherSpeaker, got %T", s)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, _, err := buildSpeaker(ctx, &config.Config{SpeechBackend: "publishers", PublishersFile: filepath.Join(t.TempDir(), "missing.yaml")}, nil); err == nil {
		t.Fatalf("expected error for missing publishers file")
	}
}
