package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/samvad-hq/vernacular-news/internal/logger"
	"github.com/samvad-hq/vernacular-news/internal/screen"
)

const (
	appTitle = "Vernacular News"
	// chromeLines is the height taken by the header, tabs, status and help rows.
	chromeLines = 6
)

// Deps groups external dependencies of the view.
type Deps struct {
	OpenURL func(string) error
	Log     logger.Logger
}

// eventMsg carries a screen event back into the update loop.
type eventMsg struct {
	ev screen.Event
}

// fetchCmd runs a pipeline invocation off the update loop.
func fetchCmd(f screen.Fetch) tea.Cmd {
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		return eventMsg{ev: f()}
	}
}

// Model is the bubbletea model rendering the screen state.
type Model struct {
	ctrl    *screen.Controller
	deps    Deps
	initial screen.Fetch

	state      screen.State
	styles     styles
	dark       bool
	categories []domain.Category

	keys       keyMap
	pickerKeys pickerKeyMap
	cards      list.Model
	picker     list.Model
	picking    bool
	spinner    spinner.Model
	help       help.Model

	width  int
	height int
}

// New mounts the controller and returns a model ready for tea.NewProgram.
func New(ctx context.Context, ctrl *screen.Controller, deps Deps) Model {
	deps.Log = logger.Ensure(deps.Log)
	initial := ctrl.Mount(ctx)
	st := ctrl.Snapshot()

	m := Model{
		ctrl:       ctrl,
		deps:       deps,
		initial:    initial,
		categories: domain.Categories(),
		keys:       defaultKeyMap(),
		pickerKeys: defaultPickerKeyMap(),
		help:       help.New(),
		spinner:    spinner.New(),
		width:      80,
		height:     30,
	}
	m.spinner.Spinner = spinner.Dot

	m.cards = list.New(nil, cardDelegate{}, 0, 0)
	m.cards.SetShowTitle(false)
	m.cards.SetShowStatusBar(false)
	m.cards.SetFilteringEnabled(false)
	m.cards.SetShowHelp(false)
	m.cards.SetStatusBarItemName("article", "articles")
	m.cards.DisableQuitKeybindings()

	m.picker = list.New(languageItems(domain.Languages()), list.NewDefaultDelegate(), 0, 0)
	m.picker.Title = "Choose language"
	m.picker.SetShowStatusBar(false)
	m.picker.SetShowHelp(false)
	m.picker.DisableQuitKeybindings()

	m.applyTheme(st.IsDarkMode)
	m.resize(m.width, m.height)
	m.setState(st)
	return m
}

// Init starts the initial fetch and the loading spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchCmd(m.initial), m.spinner.Tick)
}

// Update handles key presses, fetch results and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case eventMsg:
		m.setState(m.ctrl.Dispatch(msg.ev))
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.ctrl.Close()
			return m, tea.Quit
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateCards(msg)
	}

	// Filter matches and cursor blinks for the picker arrive as their own messages.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	bodyHeight := max(cardHeight, h-chromeLines)
	m.cards.SetSize(w, bodyHeight)
	m.picker.SetSize(w, bodyHeight)
}

func (m *Model) applyTheme(dark bool) {
	m.dark = dark
	m.styles = newStyles(dark)
	m.cards.SetDelegate(cardDelegate{styles: m.styles})
	m.cards.Styles.NoItems = m.styles.source
	m.picker.SetDelegate(m.styles.pickerDelegate())
	m.picker.Styles.Title = m.styles.pickerTitle
	m.help.Styles = m.styles.helpStyles()
	m.spinner.Style = m.styles.loading
}

func (m *Model) setState(s screen.State) {
	m.state = s
	if s.IsDarkMode != m.dark {
		m.applyTheme(s.IsDarkMode)
	}
	m.cards.SetItems(articleItems(s.Articles))
	if n := len(s.Articles); m.cards.Index() >= n {
		m.cards.Select(max(0, n-1))
	}
}

func (m Model) busy() bool {
	return m.state.IsLoading || m.state.IsRefreshing
}

// startFetch issues f and keeps the spinner turning until it lands.
func (m Model) startFetch(f screen.Fetch) tea.Cmd {
	return tea.Batch(fetchCmd(f), m.spinner.Tick)
}

func (m Model) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Language):
		m.picking = true
		m.picker.ResetFilter()
		m.picker.Select(m.languageIndex())
	case key.Matches(msg, m.keys.NextCategory):
		return m.selectCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		return m.selectCategory(-1)
	case key.Matches(msg, m.keys.Refresh):
		f := m.ctrl.Refresh()
		m.setState(m.ctrl.Snapshot())
		return m, m.startFetch(f)
	case key.Matches(msg, m.keys.Theme):
		m.setState(m.ctrl.ToggleTheme())
	case key.Matches(msg, m.keys.Speak):
		if a, ok := m.selected(); ok {
			m.ctrl.Speak(a)
		}
	case key.Matches(msg, m.keys.Open):
		m.openSelected()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		var cmd tea.Cmd
		m.cards, cmd = m.cards.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.pickerKeys.Choose):
		item, ok := m.picker.SelectedItem().(languageItem)
		if !ok {
			return m, nil
		}
		m.picking = false
		m.picker.ResetFilter()
		f, err := m.ctrl.SelectLanguage(item.Code)
		if err != nil {
			m.deps.Log.WarnObj("language selection rejected", "tui_error", map[string]any{
				"error": err.Error(),
			})
			return m, nil
		}
		m.cards.ResetSelected()
		m.setState(m.ctrl.Snapshot())
		return m, m.startFetch(f)
	case key.Matches(msg, m.pickerKeys.Close):
		if m.picker.FilterState() == list.FilterApplied {
			m.picker.ResetFilter()
			return m, nil
		}
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) selectCategory(step int) (tea.Model, tea.Cmd) {
	idx := 0
	for i, c := range m.categories {
		if c == m.state.Category {
			idx = i
			break
		}
	}
	n := len(m.categories)
	next := m.categories[((idx+step)%n+n)%n]

	f, err := m.ctrl.SelectCategory(next)
	if err != nil {
		m.deps.Log.WarnObj("category selection rejected", "tui_error", map[string]any{
			"error": err.Error(),
		})
		return m, nil
	}
	m.cards.ResetSelected()
	m.setState(m.ctrl.Snapshot())
	return m, m.startFetch(f)
}

func (m Model) openSelected() {
	a, ok := m.selected()
	if !ok || a.URL == "" || m.deps.OpenURL == nil {
		return
	}
	if err := m.deps.OpenURL(a.URL); err != nil {
		m.deps.Log.WarnObj("open article failed", "tui_error", map[string]any{
			"url":   a.URL,
			"error": err.Error(),
		})
	}
}

func (m Model) selected() (domain.Article, bool) {
	item, ok := m.cards.SelectedItem().(articleItem)
	return item.Article, ok
}

func (m Model) languageIndex() int {
	for i, item := range m.picker.Items() {
		if l, ok := item.(languageItem); ok && l.Code == m.state.Language {
			return i
		}
	}
	return 0
}
