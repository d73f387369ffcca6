package cli

import (
	"fmt"
	"strings"

	"github.com/quillbank/sarflow/internal/draft"
	"github.com/quillbank/sarflow/internal/model"
)

// RenderReport renders a full analysis report as styled terminal output
// for non-interactive use.
func RenderReport(d model.AlertDraft, report *model.AnalysisReport) string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s  [%s]", d.AlertID, d.CustomerName, d.RiskRating)
	b.WriteString(FormatTitle("Analysis Report"))
	b.WriteString("\n")
	b.WriteString(BoldStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d ledger rows, total %s",
		len(d.Transactions), draft.FormatAmount(d.LedgerTotal()))))
	b.WriteString("\n\n")

	if len(report.Analysis.RiskBreakdown) > 0 {
		b.WriteString(renderRiskBreakdown(report))
		b.WriteString("\n")
	}

	b.WriteString(renderRecommendation(report.Analysis.Recommendation))
	b.WriteString("\n")

	if len(report.Analysis.Findings) > 0 {
		b.WriteString(renderFindings(report.Analysis.Findings))
		b.WriteString("\n")
	}

	b.WriteString(renderNarrative(report.Analysis.Narrative))

	if len(report.AuditLogs) > 0 {
		b.WriteString("\n")
		b.WriteString(renderAuditLog(report.AuditLogs))
	}

	return b.String()
}

func renderRiskBreakdown(report *model.AnalysisReport) string {
	var lines []string
	for _, factor := range report.Analysis.RiskBreakdown {
		bar := contributionBar(factor.ContributionPercentage)
		lines = append(lines, fmt.Sprintf("%-44s %s %3.0f%%",
			factor.Factor, bar, factor.ContributionPercentage))
	}
	lines = append(lines, SubtleStyle.Render(
		fmt.Sprintf("combined contribution: %.0f%%", report.TotalContribution())))
	return RenderBox("Risk Breakdown", strings.Join(lines, "\n"))
}

// contributionBar draws a 20-cell bar for a 0-100 percentage. Values
// outside that range are clamped.
func contributionBar(pct float64) string {
	const cells = 20
	filled := int(pct / 100 * cells)
	if filled < 0 {
		filled = 0
	}
	if filled > cells {
		filled = cells
	}
	return ErrorStyle.Render(strings.Repeat("█", filled)) +
		SubtleStyle.Render(strings.Repeat("░", cells-filled))
}

func renderRecommendation(rec model.Recommendation) string {
	content := ErrorStyle.Bold(true).Render(rec.Action)
	if rec.Reasoning != "" {
		content += "\n" + rec.Reasoning
	}
	return RenderBox("Recommended Action", content)
}

func renderFindings(findings []model.Finding) string {
	var lines []string
	for i, finding := range findings {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, BoldStyle.Render(FlagIcon+" "+finding.Rule))
		if finding.Detail != "" {
			lines = append(lines, "  "+finding.Detail)
		}
		if finding.Policy != "" {
			lines = append(lines, SubtleStyle.Render("  policy: "+finding.Policy))
		}
	}
	return RenderBox("Compliance Findings", strings.Join(lines, "\n"))
}

func renderNarrative(n model.Narrative) string {
	sections := []struct {
		title string
		body  string
	}{
		{"Background", n.Background},
		{"Timeline", n.Timeline},
		{"Indicators", n.Indicators},
		{"Conclusion", n.Conclusion},
	}

	var lines []string
	for _, section := range sections {
		if section.body == "" {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, BoldStyle.Render(section.title))
		lines = append(lines, section.body)
	}
	if len(lines) == 0 {
		lines = append(lines, SubtleStyle.Render("no narrative returned"))
	}
	return RenderBox("SAR Narrative", strings.Join(lines, "\n"))
}

func renderAuditLog(entries []model.AuditEntry) string {
	var lines []string
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s  %s",
			SubtleStyle.Render(entry.Timestamp), BoldStyle.Render(entry.Action)))
		if entry.Details != "" {
			lines = append(lines, "  "+entry.Details)
		}
	}
	return RenderBox("Processing Audit Trail", strings.Join(lines, "\n"))
}
