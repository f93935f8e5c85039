package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/samvad-hq/vernacular-news/internal/logger"
	"github.com/samvad-hq/vernacular-news/internal/pipeline"
	"github.com/samvad-hq/vernacular-news/internal/speech"
	"github.com/samvad-hq/vernacular-news/internal/storage"
)

// Runner executes one fetch-and-translate invocation.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) ([]domain.Article, error)
}

// Fetch runs a pipeline invocation and returns the event describing its outcome.
// It blocks, so callers run it off the UI loop and Dispatch the result.
type Fetch func() Event

// Controller owns the screen state and its side effects.
type Controller struct {
	runner  Runner
	prefs   storage.PrefStore
	speaker speech.Speaker
	log     logger.Logger

	mu     sync.Mutex
	state  State
	base   context.Context
	cancel context.CancelFunc
	subs   []func(State)
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the operator-facing logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) { c.log = logger.Ensure(log) }
}

// WithSelection sets the language and category used on mount.
func WithSelection(language string, category domain.Category) Option {
	return func(c *Controller) {
		c.state.Language = language
		c.state.Category = category
	}
}

// NewController wires the screen to its collaborators. A nil prefs store or
// speaker disables persistence or speech respectively.
func NewController(runner Runner, prefs storage.PrefStore, speaker speech.Speaker, opts ...Option) *Controller {
	c := &Controller{
		runner:  runner,
		prefs:   prefs,
		speaker: speaker,
		log:     logger.NopLogger{},
		base:    context.Background(),
		state: State{
			Articles: []domain.Article{},
			Language: "en",
			Category: domain.CategoryGeneral,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.prefs == nil {
		c.prefs, _ = storage.NewStore("none", "")
	}
	if c.speaker == nil {
		c.speaker = speech.Nop{}
	}
	return c
}

// Mount loads the theme flag and returns the initial fetch. ctx bounds every
// fetch started by this controller.
func (c *Controller) Mount(ctx context.Context) Fetch {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	c.base = ctx
	lang, cat := c.state.Language, c.state.Category
	c.mu.Unlock()

	c.Dispatch(Mounted{Language: lang, Category: cat})

	raw, err := c.prefs.Get(storage.ThemeKey)
	if err != nil {
		c.log.WarnObj("theme preference read failed", "prefs_error", map[string]any{
			"error": err.Error(),
		})
	}
	c.Dispatch(ThemeLoaded{Dark: storage.IsDark(raw)})

	return c.startFetch(false)
}

// SelectLanguage switches the target language. Selecting the current language
// returns a nil Fetch.
func (c *Controller) SelectLanguage(code string) (Fetch, error) {
	lang, ok := domain.LookupLanguage(code)
	if !ok {
		return nil, fmt.Errorf("unsupported language %q", code)
	}
	if c.Snapshot().Language == lang.Code {
		return nil, nil
	}
	c.Dispatch(LanguageSelected{Code: lang.Code})
	return c.startFetch(false), nil
}

// SelectCategory switches the query refinement. Selecting the current category
// returns a nil Fetch.
func (c *Controller) SelectCategory(cat domain.Category) (Fetch, error) {
	cat, err := domain.ParseCategory(string(cat))
	if err != nil {
		return nil, err
	}
	if c.Snapshot().Category == cat {
		return nil, nil
	}
	c.Dispatch(CategorySelected{Category: cat})
	return c.startFetch(false), nil
}

// Refresh re-runs the pipeline for the current selection.
func (c *Controller) Refresh() Fetch {
	c.Dispatch(RefreshRequested{})
	return c.startFetch(true)
}

// startFetch cancels the in-flight invocation, opens a new generation and
// returns the closure that runs it.
func (c *Controller) startFetch(refreshing bool) Fetch {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel
	gen := c.state.Generation + 1
	req := pipeline.Request{Language: c.state.Language, Category: c.state.Category}
	next, subs := c.applyLocked(FetchStarted{Generation: gen, Refreshing: refreshing})
	c.mu.Unlock()

	c.notify(next, subs)

	return func() Event {
		defer cancel()
		articles, err := c.runner.Run(ctx, req)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				c.log.WarnObj("screen fetch failed", "screen_fetch", map[string]any{
					"generation": gen,
					"language":   req.Language,
					"category":   string(req.Category),
					"error":      err.Error(),
				})
			}
			return FetchFailed{Generation: gen, Err: err}
		}
		return FetchSucceeded{Generation: gen, Articles: articles}
	}
}

// Await runs f synchronously and applies its result.
func (c *Controller) Await(f Fetch) State {
	if f == nil {
		return c.Snapshot()
	}
	return c.Dispatch(f())
}

// Dispatch applies ev and notifies subscribers with the resulting state.
func (c *Controller) Dispatch(ev Event) State {
	c.mu.Lock()
	next, subs := c.applyLocked(ev)
	c.mu.Unlock()

	c.notify(next, subs)
	return next
}

func (c *Controller) applyLocked(ev Event) (State, []func(State)) {
	c.state = Reduce(c.state, ev)
	subs := make([]func(State), len(c.subs))
	copy(subs, c.subs)
	return c.state.clone(), subs
}

func (c *Controller) notify(s State, subs []func(State)) {
	for _, fn := range subs {
		fn(s.clone())
	}
}

// ToggleTheme flips dark mode and persists it. A failed write is logged and the
// in-memory flag stays flipped.
func (c *Controller) ToggleTheme() State {
	next := c.Dispatch(ThemeToggled{})
	if err := c.prefs.Put(storage.ThemeKey, storage.ThemeValue(next.IsDarkMode)); err != nil {
		c.log.ErrorObj("theme preference write failed", "prefs_error", map[string]any{
			"dark":  next.IsDarkMode,
			"error": err.Error(),
		})
	}
	return next
}

// Speak reads the article title aloud in the current language. It returns
// immediately; failures are only logged.
func (c *Controller) Speak(a domain.Article) {
	c.mu.Lock()
	ctx := c.base
	lang := c.state.Language
	c.mu.Unlock()

	u := speech.Utterance{Text: a.Title, Language: lang, ArticleURL: a.URL}
	go func() {
		if err := c.speaker.Speak(ctx, u); err != nil {
			c.log.WarnObj("speech hand-off failed", "speech_error", map[string]any{
				"language": u.Language,
				"error":    err.Error(),
			})
		}
	}()
}

// Subscribe registers fn to receive every new state.
func (c *Controller) Subscribe(fn func(State)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Close cancels any in-flight invocation.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
}
