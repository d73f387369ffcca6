// Package ofx converts OFX/QFX bank statements into alert ledger rows so
// an analyst can seed a draft from an exported account statement instead
// of keying every transaction by hand.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/quillbank/sarflow/internal/draft"
	"github.com/quillbank/sarflow/internal/model"
)

// Parser reads OFX/QFX statements into ledger rows.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// ledgerTypes maps OFX transaction types onto the movement labels used in
// the evidence ledger.
var ledgerTypes = map[string]string{
	"CREDIT":      "Inbound Transfer",
	"DEP":         "Deposit",
	"DIRECTDEP":   "Direct Deposit",
	"DEBIT":       "Outbound Transfer",
	"XFER":        "Account Transfer",
	"PAYMENT":     "Payment",
	"CHECK":       "Check",
	"ATM":         "Cash Withdrawal",
	"CASH":        "Cash Withdrawal",
	"FEE":         "Fee",
	"SRVCHG":      "Fee",
	"INT":         "Interest",
	"DIRECTDEBIT": "Direct Debit",
}

// preprocess fixes common formatting issues in real-world OFX exports.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values (must be INFO, WARN, or ERROR).
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style files with opening tags missing their closing bracket.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ImportLedger parses an OFX/QFX statement and returns its transactions
// as ledger rows, in statement order.
func (p *Parser) ImportLedger(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX statement: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX statement: %w", err)
	}

	var rows []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				rows = append(rows, p.convert(ofxTx))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				rows = append(rows, p.convert(ofxTx))
			}
		}
	}

	slog.Info("Imported OFX statement",
		"ledger_rows", len(rows),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return rows, nil
}

// convert maps one OFX transaction onto a ledger row. Ledger amounts are
// magnitudes; direction is carried by the type label.
func (p *Parser) convert(ofxTx ofxgo.Transaction) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount < 0 {
		amount = -amount
	}

	txID := string(ofxTx.FiTID)
	if txID == "" {
		txID = draft.NewTransactionID()
	}

	return model.Transaction{
		Date:              ofxTx.DtPosted.Time.Format("2006-01-02"),
		Type:              p.ledgerType(ofxTx),
		Amount:            amount,
		DestinationOrigin: p.counterparty(ofxTx),
		TxID:              txID,
	}
}

// ledgerType derives the movement label for a transaction.
func (p *Parser) ledgerType(tx ofxgo.Transaction) string {
	raw := fmt.Sprintf("%v", tx.TrnType)
	if label, ok := ledgerTypes[strings.ToUpper(raw)]; ok {
		return label
	}
	return raw
}

// counterparty extracts the cleanest available counterparty name.
func (p *Parser) counterparty(tx ofxgo.Transaction) string {
	// PAYEE carries the cleanest name when present.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
		"WIRE TRANSFER ",
		"WIRE OUT ",
		"WIRE IN ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " date fragments from processor descriptions.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	if name == "" {
		return "Unknown Counterparty"
	}
	return name
}

// isGenericDescription reports whether a transaction name carries no
// counterparty information.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}
	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
