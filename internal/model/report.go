package model

// RiskFactor is one named driver of the overall risk score.
type RiskFactor struct {
	Factor                 string  `json:"factor"`
	ContributionPercentage float64 `json:"contribution_percentage"`
}

// Recommendation is the engine's suggested disposition for the case.
type Recommendation struct {
	Action    string `json:"action"`
	Reasoning string `json:"reasoning"`
}

// Narrative holds the four sections of the generated SAR narrative.
type Narrative struct {
	Background string `json:"background"`
	Timeline   string `json:"timeline"`
	Indicators string `json:"indicators"`
	Conclusion string `json:"conclusion"`
}

// Finding is one policy-rule match with its citation snippet.
type Finding struct {
	Rule          string `json:"rule"`
	Detail        string `json:"detail"`
	Policy        string `json:"policy"`
	PolicySnippet string `json:"policy_snippet"`
}

// AuditEntry is one event in the engine's processing timeline.
type AuditEntry struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

// Analysis is the ai_analysis portion of the report.
type Analysis struct {
	RiskBreakdown  []RiskFactor   `json:"risk_breakdown"`
	Recommendation Recommendation `json:"recommendation"`
	Narrative      Narrative      `json:"narrative"`
	Findings       []Finding      `json:"findings"`
}

// AnalysisReport is the structured result returned by the analysis
// endpoint for one submitted alert. It is immutable once received; any
// of its collections may be empty and renderers treat missing arrays as
// nothing to show.
type AnalysisReport struct {
	Analysis  Analysis     `json:"ai_analysis"`
	AuditLogs []AuditEntry `json:"audit_logs"`
}

// TotalContribution sums the risk-breakdown percentages. The engine does
// not guarantee they sum to 100.
func (r AnalysisReport) TotalContribution() float64 {
	var total float64
	for _, f := range r.Analysis.RiskBreakdown {
		total += f.ContributionPercentage
	}
	return total
}

// Policies returns the distinct policy names cited by the findings, in
// first-seen order.
func (r AnalysisReport) Policies() []string {
	seen := make(map[string]bool)
	var policies []string
	for _, f := range r.Analysis.Findings {
		if f.Policy == "" || seen[f.Policy] {
			continue
		}
		seen[f.Policy] = true
		policies = append(policies, f.Policy)
	}
	return policies
}
