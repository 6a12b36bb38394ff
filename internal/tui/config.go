package tui

import (
	"github.com/rsaniceto14/investctl/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Service  Service
	Theme    themes.Theme
	PageSize int
	Width    int
	Height   int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		PageSize: 10,
		Width:    80,
		Height:   24,
	}
}

// WithService sets the investment service the browser talks to.
func WithService(svc Service) Option {
	return func(c *Config) {
		c.Service = svc
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithPageSize sets how many records each page holds.
func WithPageSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.PageSize = size
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
