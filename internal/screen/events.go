package screen

import "github.com/samvad-hq/vernacular-news/internal/domain"

// Event is an input to Reduce.
type Event interface {
	event()
}

// Mounted sets the initial selection when the screen appears.
type Mounted struct {
	Language string
	Category domain.Category
}

// LanguageSelected changes the target language.
type LanguageSelected struct {
	Code string
}

// CategorySelected changes the query refinement.
type CategorySelected struct {
	Category domain.Category
}

// RefreshRequested is the manual pull-to-refresh action.
type RefreshRequested struct{}

// FetchStarted opens a new pipeline invocation.
type FetchStarted struct {
	Generation uint64
	Refreshing bool
}

// FetchSucceeded carries the fully translated list of one invocation.
type FetchSucceeded struct {
	Generation uint64
	Articles   []domain.Article
}

// FetchFailed reports an aborted invocation.
type FetchFailed struct {
	Generation uint64
	Err        error
}

// ThemeLoaded applies the persisted theme flag.
type ThemeLoaded struct {
	Dark bool
}

// ThemeToggled flips dark mode.
type ThemeToggled struct{}

func (Mounted) event()          {}
func (LanguageSelected) event() {}
func (CategorySelected) event() {}
func (RefreshRequested) event() {}
func (FetchStarted) event()     {}
func (FetchSucceeded) event()   {}
func (FetchFailed) event()      {}
func (ThemeLoaded) event()      {}
func (ThemeToggled) event()     {}
