// Package themes holds the lipgloss styles used by the form.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title          lipgloss.Style
	Label          lipgloss.Style
	FocusedLabel   lipgloss.Style
	Input          lipgloss.Style
	FocusedInput   lipgloss.Style
	Button         lipgloss.Style
	FocusedButton  lipgloss.Style
	DisabledButton lipgloss.Style
	Panel          lipgloss.Style
	PanelTitle     lipgloss.Style
	FieldName      lipgloss.Style
	FieldValue     lipgloss.Style
	Unavailable    lipgloss.Style
	Hint           lipgloss.Style
	StatusError    lipgloss.Style
	Help           lipgloss.Style
	Primary        lipgloss.Color
	Muted          lipgloss.Color
	Border         lipgloss.Color
	Error          lipgloss.Color
	Warning        lipgloss.Color
}

func newTheme(primary, foreground, subtle, muted, border, errColor, warning lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   muted,
		Border:  border,
		Error:   errColor,
		Warning: warning,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(subtle),
		FocusedLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		FocusedInput: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(foreground).
			Background(border).
			Padding(0, 2),
		FocusedButton: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground).
			Background(primary).
			Padding(0, 2),
		DisabledButton: lipgloss.NewStyle().
			Foreground(muted).
			Background(border).
			Italic(true).
			Padding(0, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2).
			MarginTop(1),
		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		FieldName: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground),
		FieldValue: lipgloss.NewStyle().
			Foreground(foreground),
		Unavailable: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Hint: lipgloss.NewStyle().
			Foreground(warning),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
	}
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#a3a3a3"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#f59e0b"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#a6adc8"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#f9e2af"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
