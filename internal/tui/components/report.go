package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillbank/sarflow/internal/analysis"
	"github.com/quillbank/sarflow/internal/draft"
	"github.com/quillbank/sarflow/internal/model"
	"github.com/quillbank/sarflow/internal/tui/themes"
)

// ReportModel renders a received analysis report with drill-downs: risk
// factors and findings expand one at a time, and a derived evidence
// trace can be toggled on.
//
// The report itself is immutable; narrative edits live in a local
// scratch buffer that is discarded when a new report arrives.
type ReportModel struct {
	theme    themes.Theme
	report   *model.AnalysisReport
	snapshot model.AlertDraft

	cursor          int
	expandedRisk    int
	expandedFinding int
	traceVisible    bool

	narrative        textarea.Model
	narrativeScratch string
	editingNarrative bool

	width  int
	height int
}

// NewReportModel creates an empty report view.
func NewReportModel(theme themes.Theme) ReportModel {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.SetHeight(10)

	return ReportModel{
		theme:           theme,
		expandedRisk:    -1,
		expandedFinding: -1,
		narrative:       ta,
	}
}

// Init returns initial commands.
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// SetReport installs a freshly received report along with the draft it
// was generated from. All drill-down state resets.
func (m *ReportModel) SetReport(report *model.AnalysisReport, snapshot model.AlertDraft) {
	m.report = report
	m.snapshot = snapshot
	m.cursor = 0
	m.expandedRisk = -1
	m.expandedFinding = -1
	m.traceVisible = false
	m.narrativeScratch = ""
	m.editingNarrative = false
	m.narrative.Blur()
}

// HasReport reports whether a report is loaded.
func (m ReportModel) HasReport() bool {
	return m.report != nil
}

// Editing reports whether the narrative scratch buffer has focus.
func (m ReportModel) Editing() bool {
	return m.editingNarrative
}

// Resize updates the component size.
func (m *ReportModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.narrative.SetWidth(max(20, width-8))
}

// Update handles messages.
func (m ReportModel) Update(msg tea.Msg) (ReportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.report == nil {
			return m, nil
		}
		if m.editingNarrative {
			cmd := m.handleNarrativeEdit(msg)
			return m, cmd
		}
		m.handleBrowsing(msg)

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
	}

	return m, nil
}

func (m ReportModel) itemCount() int {
	return len(m.report.Analysis.RiskBreakdown) + len(m.report.Analysis.Findings)
}

func (m ReportModel) onFinding() bool {
	return m.cursor >= len(m.report.Analysis.RiskBreakdown)
}

func (m *ReportModel) handleBrowsing(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, max(0, m.itemCount()-1))

	case "k", "up":
		m.cursor = max(m.cursor-1, 0)

	case "enter", " ":
		m.toggleFocused()

	case "t":
		m.traceVisible = !m.traceVisible

	case "n":
		m.startNarrativeEdit()
	}
}

// toggleFocused expands the focused item, collapsing it when already
// open. Risk factors and findings each keep at most one item expanded.
func (m *ReportModel) toggleFocused() {
	if m.itemCount() == 0 {
		return
	}

	if m.onFinding() {
		idx := m.cursor - len(m.report.Analysis.RiskBreakdown)
		if m.expandedFinding == idx {
			m.expandedFinding = -1
		} else {
			m.expandedFinding = idx
		}
		return
	}

	if m.expandedRisk == m.cursor {
		m.expandedRisk = -1
	} else {
		m.expandedRisk = m.cursor
	}
}

func (m *ReportModel) startNarrativeEdit() {
	m.narrative.SetValue(m.narrativeText())
	m.narrative.Focus()
	m.editingNarrative = true
}

func (m *ReportModel) handleNarrativeEdit(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.narrativeScratch = m.narrative.Value()
		m.narrative.Blur()
		m.editingNarrative = false
		return nil
	}

	var cmd tea.Cmd
	m.narrative, cmd = m.narrative.Update(msg)
	return cmd
}

// narrativeText returns the scratch buffer when the analyst has edited
// the narrative, otherwise the report's own sections.
func (m ReportModel) narrativeText() string {
	if m.narrativeScratch != "" {
		return m.narrativeScratch
	}

	n := m.report.Analysis.Narrative
	sections := []struct {
		title string
		body  string
	}{
		{"BACKGROUND", n.Background},
		{"TIMELINE", n.Timeline},
		{"INDICATORS", n.Indicators},
		{"CONCLUSION", n.Conclusion},
	}

	var parts []string
	for _, section := range sections {
		if section.body == "" {
			continue
		}
		parts = append(parts, section.title+"\n"+section.body)
	}
	return strings.Join(parts, "\n\n")
}

// View renders the report.
func (m ReportModel) View() string {
	if m.report == nil {
		return m.theme.StatusPending.Render("No report yet. Submit an alert for analysis.")
	}

	sections := []string{
		m.theme.Title.Render("Analysis Report"),
		m.renderRecommendation(),
		"",
		m.renderRiskBreakdown(),
		"",
		m.renderFindings(),
		"",
		m.renderNarrative(),
	}

	if m.traceVisible {
		sections = append(sections, "", m.renderTrace())
	}

	if len(m.report.AuditLogs) > 0 {
		sections = append(sections, "", m.renderAuditLog())
	}

	sections = append(sections, "", m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ReportModel) renderRecommendation() string {
	rec := m.report.Analysis.Recommendation
	content := m.theme.StatusError.Render(rec.Action)
	if rec.Reasoning != "" {
		content += "\n" + m.theme.Normal.Render(rec.Reasoning)
	}
	return m.theme.RoundedBox.Render(content)
}

func (m ReportModel) renderRiskBreakdown() string {
	breakdown := m.report.Analysis.RiskBreakdown
	title := m.theme.Subtitle.Render("Risk Breakdown")
	if len(breakdown) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No risk factors returned"))
	}

	var lines []string
	for i, factor := range breakdown {
		prefix := "  "
		if !m.onFinding() && m.cursor == i {
			prefix = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("> ")
		}

		line := fmt.Sprintf("%s%-44s %s %3.0f%%",
			prefix, factor.Factor, m.renderContributionBar(factor.ContributionPercentage),
			factor.ContributionPercentage)
		if !m.onFinding() && m.cursor == i {
			line = m.theme.Highlighted.Render(line)
		}
		lines = append(lines, line)

		if m.expandedRisk == i {
			explanation := analysis.RiskExplanation(factor.Factor)
			lines = append(lines, m.theme.Italic.Render("    "+explanation))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
}

func (m ReportModel) renderContributionBar(pct float64) string {
	const width = 20
	filled := int(float64(width) * pct / 100.0)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return m.theme.ProgressFull.Render(strings.Repeat("█", filled)) +
		m.theme.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

func (m ReportModel) renderFindings() string {
	findings := m.report.Analysis.Findings
	title := m.theme.Subtitle.Render("Compliance Findings")
	if len(findings) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No findings returned"))
	}

	var lines []string
	for i, finding := range findings {
		focused := m.onFinding() && m.cursor-len(m.report.Analysis.RiskBreakdown) == i

		prefix := "  "
		if focused {
			prefix = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("> ")
		}

		line := prefix + m.theme.Bold.Render(finding.Rule)
		if finding.Policy != "" {
			line += lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  [" + finding.Policy + "]")
		}
		if focused {
			line = m.theme.Highlighted.Render(line)
		}
		lines = append(lines, line)

		if finding.Detail != "" {
			lines = append(lines, m.theme.Normal.Render("    "+finding.Detail))
		}

		if m.expandedFinding == i && finding.PolicySnippet != "" {
			snippet := m.theme.Code.Render(finding.PolicySnippet)
			lines = append(lines, "    "+snippet)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
}

func (m ReportModel) renderNarrative() string {
	title := m.theme.Subtitle.Render("SAR Narrative")

	if m.editingNarrative {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.narrative.View())
	}

	text := m.narrativeText()
	if text == "" {
		text = lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No narrative returned")
	} else {
		text = m.theme.Normal.Render(text)
	}
	if m.narrativeScratch != "" {
		title += " " + m.theme.StatusWarning.Render("(edited locally)")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, text)
}

// renderTrace shows the evidence the conclusions trace back to: the
// ledger rows that were submitted, the dominant risk drivers, and the
// policies the findings cite.
func (m ReportModel) renderTrace() string {
	title := m.theme.Subtitle.Render("Evidence Trace")

	var lines []string

	lines = append(lines, m.theme.Bold.Render("Ledger rows considered"))
	for _, tx := range m.snapshot.Transactions {
		lines = append(lines, fmt.Sprintf("  %s  %s  %s  %s",
			tx.TxID, tx.Date, draft.FormatAmount(tx.Amount), tx.DestinationOrigin))
	}
	if len(m.snapshot.Transactions) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  none"))
	}

	if drivers := m.topRiskDrivers(2); len(drivers) > 0 {
		lines = append(lines, m.theme.Bold.Render("Dominant risk drivers"))
		for _, driver := range drivers {
			lines = append(lines, "  "+driver)
		}
	}

	if policies := m.report.Policies(); len(policies) > 0 {
		lines = append(lines, m.theme.Bold.Render("Policies cited"))
		for _, policy := range policies {
			lines = append(lines, "  "+policy)
		}
	}

	return m.theme.BorderedBox.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}

// topRiskDrivers returns up to n factor names ordered by contribution.
func (m ReportModel) topRiskDrivers(n int) []string {
	breakdown := make([]model.RiskFactor, len(m.report.Analysis.RiskBreakdown))
	copy(breakdown, m.report.Analysis.RiskBreakdown)
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].ContributionPercentage > breakdown[j].ContributionPercentage
	})

	var drivers []string
	for i, factor := range breakdown {
		if i >= n {
			break
		}
		drivers = append(drivers, fmt.Sprintf("%s (%.0f%%)", factor.Factor, factor.ContributionPercentage))
	}
	return drivers
}

func (m ReportModel) renderAuditLog() string {
	title := m.theme.Subtitle.Render("Processing Audit Trail")

	var lines []string
	for _, entry := range m.report.AuditLogs {
		lines = append(lines, fmt.Sprintf("%s  %s",
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(entry.Timestamp),
			m.theme.Bold.Render(entry.Action)))
		if entry.Details != "" {
			lines = append(lines, m.theme.Normal.Render("  "+entry.Details))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
}

func (m ReportModel) renderHelp() string {
	var hints []string

	if m.editingNarrative {
		hints = []string{
			"[Esc] Keep edits and close",
		}
	} else {
		hints = []string{
			"[↑↓] Navigate",
			"[Enter] Expand/collapse",
			"[t] Evidence trace",
			"[n] Edit narrative",
		}
	}

	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(hints, "  "))
}
