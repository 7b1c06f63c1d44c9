package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/aristath/locselect/internal/cascade"
	"github.com/aristath/locselect/internal/theme"
)

const title = "Select Location"

var (
	controlLabels = [...]string{"Country", "State", "City"}
	placeholders  = [...]string{"Select Country", "Select State", "Select City"}
)

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	sections := []string{m.viewHeading(), "", m.viewControls()}
	if summary := m.viewSummary(); summary != "" {
		sections = append(sections, "", summary)
	}
	if status := m.viewStatus(); status != "" {
		sections = append(sections, "", status)
	}
	sections = append(sections, "", m.help.View(keys))

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))
}

// renderBanner renders the heading in the small figlet font.
func renderBanner(text string) string {
	fig := figure.NewFigure(text, "small", true)
	return strings.TrimRight(strings.Join(fig.Slicify(), "\n"), "\n")
}

func (m Model) viewHeading() string {
	t := theme.Default

	banner := renderBanner(title)
	if m.width > 0 && lipgloss.Width(banner)+4 <= m.width {
		return theme.GradientText(banner, t.Primary, t.Accent)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(title)
}

func (m Model) viewControls() string {
	boxes := make([]string, 0, 3)
	for _, lvl := range []cascade.Level{cascade.Countries, cascade.States, cascade.Cities} {
		boxes = append(boxes, m.viewControl(lvl))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) controlWidth() int {
	if m.width <= 0 {
		return 24
	}
	return max(18, min((m.width-10)/3, 32))
}

func (m Model) viewControl(lvl cascade.Level) string {
	t := theme.Default
	sel := m.ctrl.Selection()
	enabled := m.ctrl.Enabled(lvl)
	focused := enabled && m.focus == lvl

	muted := lipgloss.NewStyle().Foreground(t.Muted)
	label := lipgloss.NewStyle().Foreground(t.Subtext).Bold(true).Render(controlLabels[lvl])

	var value string
	if v := sel.Value(lvl); v != "" {
		value = lipgloss.NewStyle().Foreground(t.Text).Render(v)
	} else {
		value = muted.Render(placeholders[lvl])
	}

	lines := []string{label, value}
	options := sel.Candidates(lvl)

	switch {
	case !enabled:
		lines = append(lines, muted.Render("disabled"))
	case m.ctrl.Pending(lvl):
		lines = append(lines, muted.Render("loading…"))
	case m.ctrl.Err(lvl) != nil:
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).Render("unavailable"))
	case len(options) == 0:
		lines = append(lines, muted.Render("no options"))
	case focused:
		lines = append(lines, "")
		lines = append(lines, m.viewOptions(lvl, options)...)
	default:
		lines = append(lines, muted.Render(fmt.Sprintf("%d options", len(options))))
	}

	border := t.Border
	if focused {
		border = t.Focus
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		MarginRight(1).
		Width(m.controlWidth()).
		Render(strings.Join(lines, "\n"))
}

// viewOptions renders a window of at most maxVisibleOptions around the cursor.
func (m Model) viewOptions(lvl cascade.Level, options []string) []string {
	t := theme.Default
	cursor := m.cursor[lvl]

	start := 0
	if cursor >= maxVisibleOptions {
		start = cursor - maxVisibleOptions + 1
	}
	end := min(start+maxVisibleOptions, len(options))

	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Muted).Render("  ↑ more"))
	}
	for i := start; i < end; i++ {
		if i == cursor {
			lines = append(lines, lipgloss.NewStyle().Foreground(t.Focus).Bold(true).Render("> "+options[i]))
			continue
		}
		lines = append(lines, "  "+options[i])
	}
	if end < len(options) {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Muted).Render("  ↓ more"))
	}
	return lines
}

func (m Model) viewSummary() string {
	sel := m.ctrl.Selection()
	if sel.City == "" {
		return ""
	}
	t := theme.Default

	highlight := lipgloss.NewStyle().Foreground(t.Highlight).Bold(true)
	fade := lipgloss.NewStyle().Foreground(t.Muted)

	return "You selected " + highlight.Render(sel.City) + "," + fade.Render(fmt.Sprintf(" %s, %s", sel.State, sel.Country))
}

func (m Model) viewStatus() string {
	sel := m.ctrl.Selection()
	var lines []string

	if m.ctrl.Err(cascade.Countries) != nil {
		lines = append(lines, fmt.Sprintf("Could not load countries from %s", m.directoryURL))
	}
	if m.ctrl.Err(cascade.States) != nil {
		lines = append(lines, fmt.Sprintf("Could not load states for %s, reselect the country to retry", sel.Country))
	}
	if m.ctrl.Err(cascade.Cities) != nil {
		lines = append(lines, fmt.Sprintf("Could not load cities for %s, reselect the state to retry", sel.State))
	}
	if len(lines) == 0 {
		return ""
	}

	return lipgloss.NewStyle().Foreground(theme.Default.Error).Render(strings.Join(lines, "\n"))
}
