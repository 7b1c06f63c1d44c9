package ui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/locselect/internal/cascade"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.maxWidth > 0 && m.width > m.maxWidth {
			m.width = m.maxWidth
		}
		m.help.Width = m.width
		m.ready = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.moveFocus(1)
		case key.Matches(msg, keys.Prev):
			m.moveFocus(-1)
		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, keys.Select):
			return m.selectHighlighted()
		}

	case listLoadedMsg:
		if m.ctrl.Apply(msg.result) {
			lvl := msg.result.Request.Level
			m.cursor[lvl] = m.cursorFor(lvl)
		}
	}

	return m, nil
}

// selectHighlighted commits the option under the cursor of the focused control.
func (m Model) selectHighlighted() (tea.Model, tea.Cmd) {
	if !m.ctrl.Enabled(m.focus) {
		return m, nil
	}
	options := m.ctrl.Selection().Candidates(m.focus)
	if len(options) == 0 {
		return m, nil
	}
	name := options[m.cursor[m.focus]]

	switch m.focus {
	case cascade.Countries:
		req, err := m.ctrl.SelectCountry(name)
		if err != nil {
			m.log.Warn().Err(err).Msg("Country selection rejected")
			return m, nil
		}
		m.log.Info().Str("country", name).Msg("Country selected")
		m.cursor[cascade.States] = 0
		m.cursor[cascade.Cities] = 0
		m.focus = cascade.States
		return m, m.fetch(req)

	case cascade.States:
		req, err := m.ctrl.SelectState(name)
		if err != nil {
			m.log.Warn().Err(err).Msg("State selection rejected")
			return m, nil
		}
		m.log.Info().Str("state", name).Msg("State selected")
		m.cursor[cascade.Cities] = 0
		m.focus = cascade.Cities
		return m, m.fetch(req)

	case cascade.Cities:
		if err := m.ctrl.SelectCity(name); err != nil {
			m.log.Warn().Err(err).Msg("City selection rejected")
			return m, nil
		}
		m.log.Info().Str("summary", m.ctrl.Summary()).Msg("City selected")
	}

	return m, nil
}

// moveFocus steps to the next enabled control in direction dir, wrapping around.
func (m *Model) moveFocus(dir int) {
	n := int(cascade.Cities) + 1
	next := int(m.focus)
	for i := 0; i < n; i++ {
		next = (next + dir + n) % n
		if m.ctrl.Enabled(cascade.Level(next)) {
			m.focus = cascade.Level(next)
			return
		}
	}
}

func (m *Model) moveCursor(delta int) {
	options := m.ctrl.Selection().Candidates(m.focus)
	if len(options) == 0 {
		m.cursor[m.focus] = 0
		return
	}
	c := m.cursor[m.focus] + delta
	c = max(0, min(c, len(options)-1))
	m.cursor[m.focus] = c
}

// cursorFor points at the selected value of lvl when it is still listed.
func (m Model) cursorFor(lvl cascade.Level) int {
	sel := m.ctrl.Selection()
	if i := slices.Index(sel.Candidates(lvl), sel.Value(lvl)); i >= 0 {
		return i
	}
	return 0
}
