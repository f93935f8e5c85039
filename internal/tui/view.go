package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/samvad-hq/vernacular-news/internal/domain"
)

// View renders the header, the card list or loading indicator, and the key help.
// Fetch errors are never shown here.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch {
	case m.picking:
		b.WriteString("\n")
		b.WriteString(m.picker.View())
	case m.state.IsLoading && len(m.state.Articles) == 0:
		b.WriteString("\n")
		b.WriteString(m.renderStatus("Loading news…"))
	default:
		b.WriteString(m.renderStatus(m.statusText()))
		b.WriteString("\n")
		b.WriteString(m.cards.View())
	}

	b.WriteString("\n")
	if m.picking {
		b.WriteString(m.help.View(m.pickerKeys))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return m.styles.app.Render(b.String())
}

func (m Model) statusText() string {
	switch {
	case m.state.IsRefreshing:
		return "Refreshing…"
	case m.state.IsLoading:
		return "Loading news…"
	}
	return ""
}

func (m Model) renderStatus(text string) string {
	if text == "" {
		return ""
	}
	return m.styles.loading.Render(fmt.Sprintf("%s %s", m.spinner.View(), text))
}

func (m Model) renderHeader() string {
	lang := m.state.Language
	if l, ok := domain.LookupLanguage(lang); ok {
		lang = l.Name
	}
	mode := "light"
	if m.state.IsDarkMode {
		mode = "dark"
	}
	return m.styles.header.Render(fmt.Sprintf("%s · %s · %s mode", appTitle, lang, mode))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.categories))
	for _, c := range m.categories {
		label := strings.ToUpper(string(c)[:1]) + string(c)[1:]
		if c == m.state.Category {
			tabs = append(tabs, m.styles.activeTab.Render(label))
			continue
		}
		tabs = append(tabs, m.styles.tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
