package screen

import (
	"errors"
	"testing"

	"github.com/samvad-hq/vernacular-news/internal/domain"
)

func TestReduceFetchFailedKeepsArticles(t *testing.T) {
	prior := []domain.Article{{Title: "old"}}
	s := State{Articles: prior, Generation: 1}
	s = Reduce(s, FetchStarted{Generation: 2})
	if !s.IsLoading {
		t.Fatalf("FetchStarted should set IsLoading")
	}

	s = Reduce(s, FetchFailed{Generation: 2, Err: errors.New("status 500")})
	if s.IsLoading || s.IsRefreshing {
		t.Fatalf("flags not cleared: %+v", s)
	}
	if len(s.Articles) != 1 || s.Articles[0].Title != "old" {
		t.Fatalf("articles changed on failure: %+v", s.Articles)
	}
	if s.LastError != "status 500" {
		t.Fatalf("LastError = %q", s.LastError)
	}
}

func TestReduceIgnoresStaleGenerations(t *testing.T) {
	s := Reduce(State{}, FetchStarted{Generation: 1})
	s = Reduce(s, FetchStarted{Generation: 2})

	s = Reduce(s, FetchSucceeded{Generation: 1, Articles: []domain.Article{{Title: "stale"}}})
	if len(s.Articles) != 0 || !s.IsLoading {
		t.Fatalf("stale success must be ignored: %+v", s)
	}
	s = Reduce(s, FetchFailed{Generation: 1, Err: errors.New("cancelled")})
	if !s.IsLoading || s.LastError != "" {
		t.Fatalf("stale failure must be ignored: %+v", s)
	}

	s = Reduce(s, FetchSucceeded{Generation: 2, Articles: []domain.Article{{Title: "fresh"}}})
	if s.IsLoading || len(s.Articles) != 1 || s.Articles[0].Title != "fresh" {
		t.Fatalf("current success not applied: %+v", s)
	}

	if got := Reduce(s, FetchStarted{Generation: 1}); got.Generation != 2 || got.IsLoading {
		t.Fatalf("older FetchStarted must not rewind generation: %+v", got)
	}
}

func TestReduceDoesNotAliasInput(t *testing.T) {
	in := []domain.Article{{Title: "a"}, {Title: "b"}}
	s := Reduce(State{Generation: 1}, FetchSucceeded{Generation: 1, Articles: in})
	in[0].Title = "mutated"
	if s.Articles[0].Title != "a" {
		t.Fatalf("state shares backing array with event")
	}

	prev := s
	next := Reduce(prev, ThemeToggled{})
	next.Articles[1].Title = "changed"
	if prev.Articles[1].Title != "b" {
		t.Fatalf("Reduce result shares backing array with input state")
	}
}

func TestReduceRefreshAndTheme(t *testing.T) {
	s := Reduce(State{}, RefreshRequested{})
	if !s.IsRefreshing {
		t.Fatalf("RefreshRequested should set IsRefreshing")
	}
	s = Reduce(s, FetchStarted{Generation: 1, Refreshing: true})
	s = Reduce(s, FetchSucceeded{Generation: 1})
	if s.IsRefreshing || s.IsLoading {
		t.Fatalf("flags not cleared: %+v", s)
	}
	if s.Articles == nil {
		t.Fatalf("empty result should be an empty slice")
	}

	s = Reduce(s, ThemeLoaded{Dark: true})
	if !s.IsDarkMode {
		t.Fatalf("ThemeLoaded not applied")
	}
	if s = Reduce(s, ThemeToggled{}); s.IsDarkMode {
		t.Fatalf("ThemeToggled not applied")
	}
}

func TestReduceSelection(t *testing.T) {
	s := Reduce(State{}, Mounted{Language: "hi", Category: domain.CategoryGeneral})
	s = Reduce(s, LanguageSelected{Code: "ta"})
	s = Reduce(s, CategorySelected{Category: domain.CategorySports})
	if s.Language != "ta" || s.Category != domain.CategorySports {
		t.Fatalf("selection not applied: %+v", s)
	}
}
