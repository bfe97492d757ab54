package tui

import (
	"context"

	"github.com/Veraticus/txrisk/internal/riskapi"
	"github.com/Veraticus/txrisk/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Context    context.Context
	Analyzer   riskapi.Analyzer
	Theme      themes.Theme
	Width      int
	Height     int
	ShowErrors bool
	StrictMode bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Context: context.Background(),
		Theme:   themes.Default,
		Width:   80,
		Height:  24,
	}
}

// WithAnalyzer sets the backend the form submits to.
func WithAnalyzer(analyzer riskapi.Analyzer) Option {
	return func(c *Config) {
		c.Analyzer = analyzer
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithShowErrors renders failed submissions under the button instead of
// only logging them.
func WithShowErrors(enabled bool) Option {
	return func(c *Config) {
		c.ShowErrors = enabled
	}
}

// WithStrictMode records every update and double-renders each view to catch
// impure rendering. It does not change what the user sees.
func WithStrictMode(enabled bool) Option {
	return func(c *Config) {
		c.StrictMode = enabled
	}
}

// WithContext sets the context requests are issued under.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}
