package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillbank/sarflow/internal/draft"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateSubmitting:
		return m.wrapWithBorder(m.renderSubmitting())
	case StateHelp:
		return m.renderHelp()
	case StateReport:
		return m.renderReportView()
	default:
		return m.wrapWithBorder(m.intake.View())
	}
}

// renderReportView shows the report, with the subject summary alongside
// on wide terminals.
func (m Model) renderReportView() string {
	if m.width < 120 {
		return m.wrapWithBorder(m.report.View())
	}

	totalUsableWidth := m.width - 5
	sideWidth := int(float64(totalUsableWidth) * 0.3)
	mainWidth := totalUsableWidth - sideWidth

	side := m.renderSubjectSummary(sideWidth)
	main := lipgloss.NewStyle().Width(mainWidth).MaxWidth(mainWidth).Render(m.report.View())

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		side,
		m.theme.Normal.Render(" │ "),
		main,
	)

	return m.wrapWithBorder(content)
}

// renderSubjectSummary renders the submitted profile next to the report.
func (m Model) renderSubjectSummary(width int) string {
	d := m.intake.Draft()

	lines := []string{
		m.theme.Title.Render("Subject"),
		m.theme.Bold.Render(d.CustomerName),
		m.theme.Normal.Render(d.AlertID),
		m.theme.Rating(d.RiskRating).Render(string(d.RiskRating)),
		"",
		m.theme.Subtitle.Render("Trigger"),
		m.theme.Normal.Render(d.TriggerEvent),
		"",
		m.theme.Subtitle.Render("Ledger"),
		m.theme.Normal.Render(fmt.Sprintf("%d rows, total %s",
			len(d.Transactions), draft.FormatAmount(d.LedgerTotal()))),
	}

	return m.theme.Box.
		Width(width).
		MaxWidth(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderSubmitting renders the in-flight submission screen.
func (m Model) renderSubmitting() string {
	elapsed := time.Since(m.submitTime).Round(time.Second)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View(),
		m.theme.Subtitle.Render("Running multi-pillar analysis..."),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(fmt.Sprintf("elapsed %s", elapsed)),
	)

	return lipgloss.Place(
		m.width-2,
		m.height-3,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	title := m.theme.Title.Render("Alert Dashboard - Help")

	sections := []struct {
		title string
		items []string
	}{
		{
			"Navigation",
			[]string{
				"↑/k, ↓/j    Move up/down",
				"←/h, →/l    Ledger column",
				"Tab         Switch intake/report",
			},
		},
		{
			"Intake",
			[]string{
				"Enter/e     Edit field (rating cycles)",
				"a           Add ledger row",
				"d           Delete ledger row",
				"s           Submit for analysis",
				"Ctrl+S      Save draft",
			},
		},
		{
			"Report",
			[]string{
				"Enter       Expand/collapse item",
				"t           Toggle evidence trace",
				"n           Edit narrative (local only)",
			},
		},
		{
			"Application",
			[]string{
				"?           Toggle help",
				"q           Quit",
				"Ctrl+C      Force quit",
				"Ctrl+L      Clear screen",
			},
		},
	}

	var content []string
	for _, section := range sections {
		content = append(content, m.theme.Subtitle.Render(section.title))

		for _, item := range section.items {
			parts := strings.SplitN(item, "  ", 2)
			if len(parts) == 2 {
				line := fmt.Sprintf("  %-12s %s",
					lipgloss.NewStyle().Foreground(m.theme.Primary).Render(parts[0]),
					m.theme.Normal.Render(strings.TrimSpace(parts[1])),
				)
				content = append(content, line)
			}
		}
		content = append(content, "")
	}

	helpText := lipgloss.JoinVertical(lipgloss.Left, content...)
	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? to close help")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			Width(60).
			MaxHeight(m.height-4).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					title,
					"",
					helpText,
					footer,
				),
			),
	)
}

// wrapWithBorder adds the status bar and outer border around content.
func (m Model) wrapWithBorder(content string) string {
	statusBar := m.renderStatusBar()

	fullContent := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusBar,
	)

	return m.theme.BorderedBox.
		Width(m.width).
		Height(m.height).
		Render(fullContent)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	var left string
	switch m.state {
	case StateIntake:
		left = "Intake"
	case StateSubmitting:
		left = "Submitting"
	case StateReport:
		left = "Report"
	case StateHelp:
		left = "Help"
	}

	d := m.intake.Draft()
	center := fmt.Sprintf("%s  %d rows  %s",
		d.AlertID, len(d.Transactions), draft.FormatAmount(d.LedgerTotal()))

	if m.status != "" {
		style := m.theme.StatusInfo
		if m.statusErr {
			style = m.theme.StatusError
		}
		center = style.Render(m.status)
	}

	right := "? Help"

	totalWidth := m.width - 4
	spacing := totalWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 2 {
		spacing = 2
	}
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	status := m.theme.StatusInfo.Render(left) +
		strings.Repeat(" ", leftPad) +
		center +
		strings.Repeat(" ", rightPad) +
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right)

	return m.theme.Normal.
		Background(m.theme.Border).
		Width(m.width - 2).
		MaxWidth(m.width - 2).
		Render(status)
}
