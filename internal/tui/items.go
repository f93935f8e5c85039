package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/samvad-hq/vernacular-news/internal/domain"
)

const (
	titleLines       = 2
	descriptionLines = 3
	// cardHeight is the rendered height of one card including its border.
	cardHeight = titleLines + 1 + descriptionLines + 1 + 2
)

type articleItem struct {
	domain.Article
}

func (i articleItem) FilterValue() string { return i.Title }

func articleItems(articles []domain.Article) []list.Item {
	items := make([]list.Item, len(articles))
	for i, a := range articles {
		items[i] = articleItem{a}
	}
	return items
}

// cardDelegate renders each article as a fixed-height bordered card.
type cardDelegate struct {
	styles styles
}

func (d cardDelegate) Height() int                         { return cardHeight }
func (d cardDelegate) Spacing() int                        { return 0 }
func (d cardDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	a, ok := item.(articleItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderCard(a.Article, m.Width(), index == m.Index()))
}

func (d cardDelegate) renderCard(a domain.Article, width int, active bool) string {
	width = max(20, width-2)
	inner := width - 4

	parts := []string{
		clampLines(d.styles.title.Width(inner).Render(a.Title), titleLines),
		d.styles.source.Render(a.SourceName()),
		clampLines(d.styles.description.Width(inner).Render(a.Description), descriptionLines),
		d.styles.image.Render("▣ " + a.ImageOrPlaceholder()),
	}

	style := d.styles.card
	if active {
		style = d.styles.activeCard
	}
	return style.Width(width).Height(cardHeight - 2).Render(strings.Join(parts, "\n"))
}

// languageItem is one picker row.
type languageItem struct {
	domain.Language
}

func (i languageItem) Title() string       { return i.Name }
func (i languageItem) Description() string { return i.Code }
func (i languageItem) FilterValue() string { return i.Name + " " + i.Code }

func languageItems(langs []domain.Language) []list.Item {
	items := make([]list.Item, len(langs))
	for i, l := range langs {
		items[i] = languageItem{l}
	}
	return items
}

// clampLines keeps the first n lines of s, marking the cut with an ellipsis.
func clampLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	lines = lines[:n]
	lines[n-1] = strings.TrimRight(lines[n-1], " ") + "…"
	return strings.Join(lines, "\n")
}
