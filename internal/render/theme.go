package render

import (
	"image/color"

	"termchess/internal/core"

	"charm.land/lipgloss/v2"
)

const (
	ThemeOff   = "off"
	ThemeBrown = "brown"
	ThemeGreen = "green"
	ThemeGray  = "gray"
)

// Theme paints one square's text
type Theme interface {
	Paint(cell string, light bool, owner core.Player) string
}

type plainTheme struct{}

func (plainTheme) Paint(cell string, _ bool, _ core.Player) string {
	return cell
}

type styledTheme struct {
	light lipgloss.Style
	dark  lipgloss.Style
	white color.Color
	black color.Color
}

func newStyledTheme(light, dark string) styledTheme {
	return styledTheme{
		light: lipgloss.NewStyle().Background(lipgloss.Color(light)),
		dark:  lipgloss.NewStyle().Background(lipgloss.Color(dark)),
		white: lipgloss.Color("15"),
		black: lipgloss.Color("0"),
	}
}

func (t styledTheme) Paint(cell string, light bool, owner core.Player) string {
	style := t.dark
	if light {
		style = t.light
	}
	switch owner {
	case core.White:
		style = style.Foreground(t.white).Bold(true)
	case core.Black:
		style = style.Foreground(t.black).Bold(true)
	}
	return style.Render(cell)
}

var themes = map[string]Theme{
	ThemeOff:   plainTheme{},
	ThemeBrown: newStyledTheme("230", "94"),  // Beige / brown
	ThemeGreen: newStyledTheme("157", "22"),  // Light / dark green
	ThemeGray:  newStyledTheme("251", "240"), // Light / dark gray
}
