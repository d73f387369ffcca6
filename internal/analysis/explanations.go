package analysis

// riskExplanations maps well-known risk factor names to the pattern
// description shown when a factor is expanded in the report view. The
// engine returns only factor names and percentages; the descriptions
// live client-side.
var riskExplanations = map[string]string{
	"OFAC/OFSI Sanctions List Match":              "Beneficiary name and/or address strictly matches entries on HM Treasury (OFSI) and US Treasury (OFAC) consolidated watchlists.",
	"Politically Exposed Person (PEP) Connection": "Recipient identified as a Foreign Public Official or a closely connected individual, triggering Anti-Bribery & Corruption (ABC) protocols.",
	"High-Risk Third Country (AML)":               "Funds routed through historically non-cooperative jurisdictions matching FATF/UK watchlists.",
	"Opaque Offshore Trust Routing (ATEF)":        "Use of complex offshore corporate structures indicative of deliberate tax evasion facilitation.",
}

// defaultRiskExplanation covers factors the engine invents dynamically.
const defaultRiskExplanation = "Pattern identified via behavioral baseline deviation."

// RiskExplanation returns the drill-down text for a risk factor name,
// falling back to a generic explanation for unmapped factors.
func RiskExplanation(factor string) string {
	if explanation, ok := riskExplanations[factor]; ok {
		return explanation
	}
	return defaultRiskExplanation
}
