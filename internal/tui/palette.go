package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultORPColor is used when no color is configured.
const DefaultORPColor = "red"

// ErrInvalidColor is returned for ORP color names outside the palette.
var ErrInvalidColor = errors.New("invalid ORP color")

// orpColors maps names to ANSI palette indexes. The ORP glyph is always bold.
var orpColors = map[string]lipgloss.Color{
	"red":     lipgloss.Color("1"),
	"green":   lipgloss.Color("2"),
	"yellow":  lipgloss.Color("3"),
	"blue":    lipgloss.Color("4"),
	"magenta": lipgloss.Color("5"),
	"purple":  lipgloss.Color("5"),
	"cyan":    lipgloss.Color("6"),
	"white":   lipgloss.Color("7"),
	"orange":  lipgloss.Color("11"),
}

// ValidORPColors lists accepted color names in sorted order.
func ValidORPColors() []string {
	names := make([]string, 0, len(orpColors))
	for name := range orpColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ORPStyle returns the highlight style for a color name. An empty name
// selects DefaultORPColor.
func ORPStyle(name string) (lipgloss.Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultORPColor
	}
	color, ok := orpColors[name]
	if !ok {
		return lipgloss.Style{}, fmt.Errorf("%w %q (valid: %s)", ErrInvalidColor, name, strings.Join(ValidORPColors(), ", "))
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true), nil
}
