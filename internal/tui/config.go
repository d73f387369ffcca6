package tui

import (
	"github.com/quillbank/sarflow/internal/analysis"
	"github.com/quillbank/sarflow/internal/draft"
	"github.com/quillbank/sarflow/internal/model"
	"github.com/quillbank/sarflow/internal/storage"
	"github.com/quillbank/sarflow/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Client    *analysis.Client
	Store     *storage.Store
	Draft     model.AlertDraft
	DraftName string
	Width     int
	Height    int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Ledger,
		Client:    analysis.NewClient(""),
		Draft:     draft.Seed(),
		DraftName: "current",
		Width:     100,
		Height:    30,
	}
}

// WithClient sets the analysis client.
func WithClient(client *analysis.Client) Option {
	return func(c *Config) {
		c.Client = client
	}
}

// WithStore sets the draft store. Without a store, Ctrl+S is a no-op.
func WithStore(store *storage.Store) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithDraft sets the draft the session starts from.
func WithDraft(d model.AlertDraft) Option {
	return func(c *Config) {
		c.Draft = d
	}
}

// WithDraftName sets the name used when saving the draft.
func WithDraftName(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.DraftName = name
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
