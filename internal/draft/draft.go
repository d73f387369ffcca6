// Package draft implements the editable alert draft: copy-on-write field
// updates over the subject profile and CRUD operations over the ordered
// transaction ledger.
package draft

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/quillbank/sarflow/internal/model"
)

// Field names a top-level editable field of the draft profile.
type Field int

const (
	FieldAlertID Field = iota
	FieldCustomerName
	FieldRiskRating
	FieldTriggerEvent
)

// TxField names an editable column of a ledger row.
type TxField int

const (
	TxFieldDate TxField = iota
	TxFieldType
	TxFieldAmount
	TxFieldDestinationOrigin
)

// Seed returns the draft a fresh session starts from: a worked example
// the analyst edits in place rather than an empty form.
func Seed() model.AlertDraft {
	return model.AlertDraft{
		AlertID:      "ALT-2026-9042",
		CustomerName: "Mr. John Doe",
		RiskRating:   model.RiskCritical,
		TriggerEvent: "Multi-Pillar Violation: Sanctions match, PEP involvement, and offshore tax-haven routing.",
		Transactions: []model.Transaction{
			{Date: "2026-02-12", Type: "Inbound Wire", Amount: 250000, DestinationOrigin: "Local Bank A", TxID: "TX-9981-A"},
			{Date: "2026-02-13", Type: "Offshore Transfer", Amount: 150000, DestinationOrigin: "Opaque Trust (Tax Haven)", TxID: "TX-9982-B"},
		},
	}
}

// SetField replaces one top-level profile field, returning a new draft.
// No validation is applied; the intake form constrains the risk rating to
// the canonical set, the store itself does not.
func SetField(d model.AlertDraft, field Field, value string) model.AlertDraft {
	out := d.Clone()
	switch field {
	case FieldAlertID:
		out.AlertID = value
	case FieldCustomerName:
		out.CustomerName = value
	case FieldRiskRating:
		out.RiskRating = model.RiskRating(value)
	case FieldTriggerEvent:
		out.TriggerEvent = value
	}
	return out
}

// UpdateTransactionAt replaces one field of the ledger row at index,
// returning a new draft. Amounts are coerced through ParseAmount so the
// stored value is always numeric. Out-of-bounds indices are a no-op.
func UpdateTransactionAt(d model.AlertDraft, index int, field TxField, value string) model.AlertDraft {
	if index < 0 || index >= len(d.Transactions) {
		return d
	}
	out := d.Clone()
	tx := &out.Transactions[index]
	switch field {
	case TxFieldDate:
		tx.Date = value
	case TxFieldType:
		tx.Type = value
	case TxFieldAmount:
		tx.Amount = ParseAmount(value)
	case TxFieldDestinationOrigin:
		tx.DestinationOrigin = value
	}
	return out
}

// AppendTransaction adds an empty ledger row with a freshly generated
// transaction ID and today's date.
func AppendTransaction(d model.AlertDraft) model.AlertDraft {
	out := d.Clone()
	out.Transactions = append(out.Transactions, model.Transaction{
		Date: time.Now().Format("2006-01-02"),
		TxID: NewTransactionID(),
	})
	return out
}

// RemoveTransactionAt deletes the ledger row at index, shifting later
// rows left. Out-of-bounds indices are a no-op.
func RemoveTransactionAt(d model.AlertDraft, index int) model.AlertDraft {
	if index < 0 || index >= len(d.Transactions) {
		return d
	}
	out := d.Clone()
	out.Transactions = append(out.Transactions[:index], out.Transactions[index+1:]...)
	return out
}

// ParseAmount coerces free-form analyst input to a currency amount.
// Currency symbols, grouping commas and whitespace are stripped before
// parsing; anything that still fails to parse becomes 0 so the ledger
// never holds a non-numeric amount.
func ParseAmount(s string) float64 {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders an amount in the ledger's $1,000 display style.
func FormatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(v*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String()
	if frac > 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

// NewTransactionID generates a display-only ledger row label in the
// TX-<4 digits>-X convention. IDs are not guaranteed unique; they exist
// so an analyst can reference a row in the narrative.
func NewTransactionID() string {
	return fmt.Sprintf("TX-%04d-X", 1000+rand.Intn(9000))
}
