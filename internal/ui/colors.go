package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors names the hex foregrounds a [Palette] is built from.
type Colors struct {
	Title, OK, Err, Warn, Muted string
	High, Mid, Low              string // rating bands
}

var styles = NewPalette(Colors{
	Title: "#7D56F4", OK: "#04B575", Err: "#FF0000", Warn: "#FFA500", Muted: "#626262",
	High: "#04B575", Mid: "#E6C229", Low: "#FF5F56",
})

// Palette holds the styles of the catalog browser.
type Palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	label  lipgloss.Style
	rating [3]lipgloss.Style // high, mid, low
}

func NewPalette(c Colors) *Palette {
	return &Palette{
		title:  NewBold(c.Title).MarginBottom(1),
		ok:     NewBold(c.OK),
		err:    NewBold(c.Err),
		warn:   NewStyle(c.Warn),
		help:   NewEm(c.Muted),
		label:  NewStyle(c.Muted).Width(8),
		rating: [3]lipgloss.Style{NewBold(c.High), NewStyle(c.Mid), NewStyle(c.Low)},
	}
}

// Rating picks the style for a score: 8 and up, 5 and up, below 5.
func (p *Palette) Rating(score float64) lipgloss.Style {
	switch {
	case score >= 8:
		return p.rating[0]
	case score >= 5:
		return p.rating[1]
	default:
		return p.rating[2]
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
