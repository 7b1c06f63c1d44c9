package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/aristath/locselect/internal/cascade"
)

// Options configures a Model.
type Options struct {
	DirectoryURL string        // shown when the countries cannot be loaded
	Timeout      time.Duration // per request, 0 means no deadline
	MaxWidth     int           // max columns, 0 means no limit
	Log          zerolog.Logger
}

type Model struct {
	dir          cascade.Directory
	ctrl         *cascade.Controller
	log          zerolog.Logger
	timeout      time.Duration
	directoryURL string

	// UI state
	focus    cascade.Level
	cursor   [3]int
	width    int
	maxWidth int
	ready    bool

	help help.Model
}

// Messages

type listLoadedMsg struct {
	result cascade.Result
}

// maxVisibleOptions bounds the expanded list under the focused control.
const maxVisibleOptions = 8

// NewModel builds the selector around dir. Nothing is fetched until Init.
func NewModel(dir cascade.Directory, opts Options) Model {
	log := opts.Log.With().Str("component", "ui").Logger()
	return Model{
		dir:          dir,
		ctrl:         cascade.New(opts.Log),
		log:          log,
		timeout:      opts.Timeout,
		directoryURL: opts.DirectoryURL,
		focus:        cascade.Countries,
		maxWidth:     opts.MaxWidth,
		help:         help.New(),
	}
}

// Init is the mount: it requests the country list.
func (m Model) Init() tea.Cmd {
	return m.fetch(m.ctrl.Mount())
}

// Selection exposes the current selection.
func (m Model) Selection() cascade.Selection {
	return m.ctrl.Selection()
}

// Commands

func (m Model) fetch(req cascade.Request) tea.Cmd {
	dir, timeout := m.dir, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return listLoadedMsg{result: cascade.Fetch(ctx, dir, req)}
	}
}
