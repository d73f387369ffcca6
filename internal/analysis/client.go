// Package analysis talks to the remote financial-crime analysis engine.
// The engine is a black box reached over a single HTTP call: the client
// serializes an alert draft, posts it, and decodes the structured report.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/quillbank/sarflow/internal/model"
)

// DefaultEndpoint is used when no endpoint is configured.
const DefaultEndpoint = "http://localhost:8000/api/process-alert"

// Client submits alerts to the analysis endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint URL. An empty
// endpoint falls back to DefaultEndpoint.
//
// The client carries no request timeout of its own: a submission is a
// single best-effort attempt that runs until the transport resolves or
// the caller's context is canceled.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts the draft and decodes the returned report.
//
// The caller is responsible for the non-empty-ledger guard; Submit sends
// whatever draft it is given. Failures are classified as NetworkFailure
// (request not sent, no response, or non-2xx status) or DecodeFailure
// (response received but not well-formed). The draft is never mutated.
func (c *Client) Submit(ctx context.Context, alert model.AlertDraft) (*model.AnalysisReport, error) {
	body, err := json.Marshal(alert)
	if err != nil {
		return nil, &SubmitError{Kind: DecodeFailure, Err: fmt.Errorf("failed to encode alert: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &SubmitError{Kind: NetworkFailure, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("Submitting alert for analysis",
		"endpoint", c.endpoint,
		"alert_id", alert.AlertID,
		"transactions", len(alert.Transactions))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SubmitError{Kind: NetworkFailure, Err: fmt.Errorf("failed to reach analysis engine: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &SubmitError{
			Kind: NetworkFailure,
			Err:  fmt.Errorf("analysis engine returned %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var report model.AnalysisReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, &SubmitError{Kind: DecodeFailure, Err: fmt.Errorf("failed to decode report: %w", err)}
	}

	slog.Debug("Received analysis report",
		"alert_id", alert.AlertID,
		"risk_factors", len(report.Analysis.RiskBreakdown),
		"findings", len(report.Analysis.Findings),
		"audit_entries", len(report.AuditLogs))

	return &report, nil
}
