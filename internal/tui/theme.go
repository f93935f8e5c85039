package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Latte (light) and Mocha (dark).
const (
	latteText     lipgloss.Color = "#4c4f69"
	latteSubtext  lipgloss.Color = "#6c6f85"
	latteOverlay  lipgloss.Color = "#9ca0b0"
	latteSurface  lipgloss.Color = "#ccd0da"
	latteBase     lipgloss.Color = "#eff1f5"
	latteAccent   lipgloss.Color = "#1e66f5"
	latteHighlite lipgloss.Color = "#d20f39"

	mochaText     lipgloss.Color = "#cdd6f4"
	mochaSubtext  lipgloss.Color = "#a6adc8"
	mochaOverlay  lipgloss.Color = "#7f849c"
	mochaSurface  lipgloss.Color = "#45475a"
	mochaBase     lipgloss.Color = "#1e1e2e"
	mochaAccent   lipgloss.Color = "#f5c2e7"
	mochaHighlite lipgloss.Color = "#b4befe"
)

type palette struct {
	text, subtext, overlay, surface, base, accent, highlight lipgloss.Color
}

func paletteFor(dark bool) palette {
	if dark {
		return palette{mochaText, mochaSubtext, mochaOverlay, mochaSurface, mochaBase, mochaAccent, mochaHighlite}
	}
	return palette{latteText, latteSubtext, latteOverlay, latteSurface, latteBase, latteAccent, latteHighlite}
}

type styles struct {
	palette palette

	app         lipgloss.Style
	header      lipgloss.Style
	tab         lipgloss.Style
	activeTab   lipgloss.Style
	card        lipgloss.Style
	activeCard  lipgloss.Style
	title       lipgloss.Style
	source      lipgloss.Style
	description lipgloss.Style
	image       lipgloss.Style
	loading     lipgloss.Style
	pickerTitle lipgloss.Style
}

func newStyles(dark bool) styles {
	p := paletteFor(dark)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.surface).
		Padding(0, 1)

	return styles{
		palette:     p,
		app:         lipgloss.NewStyle().Foreground(p.text).Background(p.base),
		header:      lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		tab:         lipgloss.NewStyle().Foreground(p.subtext).Padding(0, 1),
		activeTab:   lipgloss.NewStyle().Bold(true).Foreground(p.base).Background(p.accent).Padding(0, 1),
		card:        card,
		activeCard:  card.BorderForeground(p.highlight),
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.text),
		source:      lipgloss.NewStyle().Italic(true).Foreground(p.subtext),
		description: lipgloss.NewStyle().Foreground(p.text),
		image:       lipgloss.NewStyle().Foreground(p.overlay),
		loading:     lipgloss.NewStyle().Foreground(p.accent),
		pickerTitle: lipgloss.NewStyle().Bold(true).Foreground(p.base).Background(p.accent).Padding(0, 1),
	}
}

// pickerDelegate tints the default list delegate with the palette.
func (s styles) pickerDelegate() list.DefaultDelegate {
	p := s.palette
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(p.text)
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(p.overlay)
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(p.highlight).BorderLeftForeground(p.highlight)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(p.subtext).BorderLeftForeground(p.highlight)
	d.Styles.FilterMatch = d.Styles.FilterMatch.Foreground(p.accent)
	return d
}

func (s styles) helpStyles() help.Styles {
	p := s.palette
	h := help.New().Styles
	h.ShortKey = lipgloss.NewStyle().Foreground(p.accent)
	h.ShortDesc = lipgloss.NewStyle().Foreground(p.overlay)
	h.ShortSeparator = lipgloss.NewStyle().Foreground(p.surface)
	h.FullKey = h.ShortKey
	h.FullDesc = h.ShortDesc
	h.FullSeparator = h.ShortSeparator
	h.Ellipsis = h.ShortSeparator
	return h
}
