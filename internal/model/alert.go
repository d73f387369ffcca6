// Package model defines the domain types shared across the application.
package model

// RiskRating is the analyst-assigned rating for the alert subject.
//
// The intake form constrains input to the four canonical values, but the
// type itself is advisory: a draft loaded from a file may carry any string
// and the analysis endpoint accepts it as-is.
type RiskRating string

// Canonical risk ratings, in ascending severity.
const (
	RiskLow      RiskRating = "LOW RISK"
	RiskMedium   RiskRating = "MEDIUM RISK"
	RiskHigh     RiskRating = "HIGH RISK"
	RiskCritical RiskRating = "CRITICAL RISK"
)

// RiskRatings lists the canonical ratings in selection order.
var RiskRatings = []RiskRating{RiskLow, RiskMedium, RiskHigh, RiskCritical}

// Next returns the rating after r in selection order, wrapping around.
// Unknown ratings advance to the first canonical value.
func (r RiskRating) Next() RiskRating {
	for i, rating := range RiskRatings {
		if rating == r {
			return RiskRatings[(i+1)%len(RiskRatings)]
		}
	}
	return RiskRatings[0]
}

// Severe reports whether the rating warrants the high-alert treatment in
// the UI (HIGH or CRITICAL).
func (r RiskRating) Severe() bool {
	return r == RiskHigh || r == RiskCritical
}

// Transaction is one row of the alert's evidence ledger. Field names map
// directly onto the analysis endpoint's wire schema.
type Transaction struct {
	Date              string  `json:"date"`
	Type              string  `json:"type"`
	Amount            float64 `json:"amount"`
	DestinationOrigin string  `json:"destination_origin"`
	TxID              string  `json:"tx_id"`
}

// AlertDraft is the editable, not-yet-submitted representation of an
// alert: subject profile plus an ordered transaction ledger. The struct
// doubles as the request body for the analysis endpoint.
type AlertDraft struct {
	AlertID      string        `json:"alert_id"`
	CustomerName string        `json:"customer_name"`
	RiskRating   RiskRating    `json:"risk_rating"`
	TriggerEvent string        `json:"trigger_event"`
	Transactions []Transaction `json:"transactions"`
}

// LedgerTotal sums the ledger amounts.
func (d AlertDraft) LedgerTotal() float64 {
	var total float64
	for _, tx := range d.Transactions {
		total += tx.Amount
	}
	return total
}

// Submittable reports whether the draft may be sent for analysis.
// Submission requires at least one ledger row.
func (d AlertDraft) Submittable() bool {
	return len(d.Transactions) > 0
}

// Clone returns a deep copy of the draft. The ledger slice is copied so
// mutations of the clone never alias the original.
func (d AlertDraft) Clone() AlertDraft {
	out := d
	if d.Transactions != nil {
		out.Transactions = make([]Transaction, len(d.Transactions))
		copy(out.Transactions, d.Transactions)
	}
	return out
}
