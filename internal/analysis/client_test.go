package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillbank/sarflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDraft() model.AlertDraft {
	return model.AlertDraft{
		AlertID:      "ALT-1",
		CustomerName: "X",
		RiskRating:   model.RiskHigh,
		TriggerEvent: "t",
		Transactions: []model.Transaction{
			{Date: "2026-01-01", Type: "Wire", Amount: 1000, DestinationOrigin: "Bank B", TxID: "TX-1"},
		},
	}
}

func minimalResponse() map[string]any {
	return map[string]any{
		"ai_analysis": map[string]any{
			"risk_breakdown": []map[string]any{
				{"factor": "High-Risk Third Country (AML)", "contribution_percentage": 60},
			},
			"recommendation": map[string]any{"action": "ESCALATE", "reasoning": "because"},
			"narrative": map[string]any{
				"background": "b", "timeline": "t", "indicators": "i", "conclusion": "c",
			},
			"findings": []map[string]any{
				{"rule": "AML Flag", "detail": "d", "policy": "AML Standards", "policy_snippet": "s"},
			},
		},
		"audit_logs": []map[string]any{
			{"timestamp": "2026-02-14T10:00:00Z", "action": "Engine Started", "details": "screening"},
		},
	}
}

func TestSubmitSuccess(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.NoError(t, json.NewEncoder(w).Encode(minimalResponse()))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	report, err := client.Submit(context.Background(), testDraft())
	require.NoError(t, err)
	require.NotNil(t, report)

	// Wire format of the request.
	assert.Equal(t, "ALT-1", gotBody["alert_id"])
	assert.Equal(t, "X", gotBody["customer_name"])
	assert.Equal(t, "HIGH RISK", gotBody["risk_rating"])
	txs, ok := gotBody["transactions"].([]any)
	require.True(t, ok)
	require.Len(t, txs, 1)
	tx := txs[0].(map[string]any)
	assert.Equal(t, "Bank B", tx["destination_origin"])
	assert.Equal(t, "TX-1", tx["tx_id"])
	assert.InDelta(t, 1000, tx["amount"].(float64), 0.001)

	// Decoded report.
	require.Len(t, report.Analysis.RiskBreakdown, 1)
	assert.Equal(t, "ESCALATE", report.Analysis.Recommendation.Action)
	assert.Equal(t, "i", report.Analysis.Narrative.Indicators)
	require.Len(t, report.AuditLogs, 1)
	assert.Equal(t, "Engine Started", report.AuditLogs[0].Action)
}

func TestSubmitTolerantOfSparseReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Schema-valid but semantically incomplete: missing arrays render
		// as empty sections rather than failing.
		_, _ = w.Write([]byte(`{"ai_analysis":{"recommendation":{"action":"REVIEW","reasoning":""}}}`))
	}))
	defer srv.Close()

	report, err := NewClient(srv.URL).Submit(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Empty(t, report.Analysis.RiskBreakdown)
	assert.Empty(t, report.Analysis.Findings)
	assert.Empty(t, report.AuditLogs)
	assert.Equal(t, "REVIEW", report.Analysis.Recommendation.Action)
}

func TestSubmitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "engine exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	report, err := NewClient(srv.URL).Submit(context.Background(), testDraft())
	assert.Nil(t, report)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, NetworkFailure, submitErr.Kind)
	assert.Contains(t, submitErr.Error(), "500")
}

func TestSubmitConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	report, err := NewClient(srv.URL).Submit(context.Background(), testDraft())
	assert.Nil(t, report)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, NetworkFailure, submitErr.Kind)
}

func TestSubmitMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	report, err := NewClient(srv.URL).Submit(context.Background(), testDraft())
	assert.Nil(t, report)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, DecodeFailure, submitErr.Kind)
}

func TestSubmitContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(ctx, testDraft())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewClientDefaultEndpoint(t *testing.T) {
	assert.Equal(t, DefaultEndpoint, NewClient("").Endpoint())
	assert.Equal(t, "http://example.com/x", NewClient("http://example.com/x").Endpoint())
}

func TestRiskExplanation(t *testing.T) {
	assert.Contains(t, RiskExplanation("OFAC/OFSI Sanctions List Match"), "OFAC")
	assert.Equal(t, defaultRiskExplanation, RiskExplanation("Some Novel Factor"))
}
