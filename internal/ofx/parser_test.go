package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260215120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260201120000[0:GMT]
<DTEND>20260214120000[0:GMT]
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20260212120000[0:GMT]
<TRNAMT>250000.00
<FITID>2026021201
<NAME>WIRE IN LOCAL BANK A
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260213120000[0:GMT]
<TRNAMT>-150000.00
<FITID>2026021301
<NAME>OPAQUE TRUST HOLDINGS
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20260214120000[0:GMT]
<TRNAMT>-9500.00
<FITID>
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>90500.00
<DTASOF>20260214120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260215120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20260201120000[0:GMT]
<DTEND>20260214120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260210120000[0:GMT]
<TRNAMT>-4599.00
<FITID>CC2026021001
<NAME>LUXURY GOODS EMPORIUM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-4599.00
<DTASOF>20260214120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestImportLedger(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 3,
		},
		{
			name:          "credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 1,
		},
		{
			name:          "invalid data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty file",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := NewParser().ImportLedger(context.Background(), strings.NewReader(tt.ofxData))
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rows, tt.expectedCount)
		})
	}
}

func TestImportLedgerRowMapping(t *testing.T) {
	rows, err := NewParser().ImportLedger(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	inbound := rows[0]
	assert.Equal(t, "2026-02-12", inbound.Date)
	assert.Equal(t, "Inbound Transfer", inbound.Type)
	assert.Equal(t, 250000.00, inbound.Amount)
	assert.Equal(t, "LOCAL BANK A", inbound.DestinationOrigin)
	assert.Equal(t, "2026021201", inbound.TxID)

	outbound := rows[1]
	assert.Equal(t, "Outbound Transfer", outbound.Type)
	assert.Equal(t, 150000.00, outbound.Amount)
	assert.Equal(t, "OPAQUE TRUST HOLDINGS", outbound.DestinationOrigin)

	// Missing FITID gets a generated ledger ID.
	check := rows[2]
	assert.Equal(t, "Check", check.Type)
	assert.Regexp(t, `^TX-\d{4}-X$`, check.TxID)
}

func TestImportLedgerAmountsAreMagnitudes(t *testing.T) {
	rows, err := NewParser().ImportLedger(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4599.00, rows[0].Amount)
}

func TestCounterparty(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strip POS prefix",
			input:    "POS PURCHASE HARRODS",
			expected: "HARRODS",
		},
		{
			name:     "strip wire prefix",
			input:    "WIRE OUT OPAQUE TRUST",
			expected: "OPAQUE TRUST",
		},
		{
			name:     "clean name unchanged",
			input:    "LOCAL BANK A",
			expected: "LOCAL BANK A",
		},
		{
			name:     "whitespace trimmed",
			input:    "  ACME IMPORTS  ",
			expected: "ACME IMPORTS",
		},
		{
			name:     "empty falls back",
			input:    "",
			expected: "Unknown Counterparty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{Name: ofxgo.String(tt.input)}
			assert.Equal(t, tt.expected, parser.counterparty(tx))
		})
	}
}
