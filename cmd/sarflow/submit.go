package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillbank/sarflow/internal/analysis"
	"github.com/quillbank/sarflow/internal/cli"
	"github.com/quillbank/sarflow/internal/common"
	"github.com/quillbank/sarflow/internal/model"
)

func submitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an alert for analysis without the dashboard",
		Long: `Submit an alert draft straight to the analysis engine and print the
resulting report. Intended for scripting and for re-running saved cases.

The draft comes from a JSON file (--file) or from the draft store
(--draft).`,
		RunE: runSubmit,
	}

	// Flags
	cmd.Flags().StringP("file", "f", "", "Draft JSON file to submit")
	cmd.Flags().String("draft", "", "Saved draft to submit")
	cmd.Flags().String("output", "pretty", "Output format (pretty, json)")
	cmd.Flags().Bool("record", true, "Record the submission in the local log")

	// Bind to viper
	_ = viper.BindPFlag("submit.file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("submit.draft", cmd.Flags().Lookup("draft"))
	_ = viper.BindPFlag("submit.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("submit.record", cmd.Flags().Lookup("record"))

	return cmd
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(os.Stdout)
	ctx := handler.HandleInterrupts(cmd.Context())

	d, err := loadSubmitDraft(cmd)
	if err != nil {
		return err
	}

	if !d.Submittable() {
		return fmt.Errorf("%w: nothing to analyze", common.ErrEmptyLedger)
	}

	client := analysis.NewClient(viper.GetString("engine.endpoint"))
	slog.Debug("Submitting alert", "alert_id", d.AlertID, "endpoint", client.Endpoint(), "rows", len(d.Transactions))

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][bold]Running multi-pillar analysis...[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	report, err := client.Submit(ctx, d)
	close(done)
	_ = bar.Finish()

	if err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("%s: %w", analysis.UserMessage(err), err)
	}

	if viper.GetString("submit.output") == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if encodeErr := encoder.Encode(report); encodeErr != nil {
			return fmt.Errorf("failed to encode report: %w", encodeErr)
		}
	} else {
		fmt.Println(cli.RenderReport(d, report))
	}

	if viper.GetBool("submit.record") {
		if recordErr := recordSubmission(cmd, d, report); recordErr != nil {
			slog.Warn("Failed to record submission", "error", recordErr)
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Analysis complete for %s", d.AlertID)))
	return nil
}

// loadSubmitDraft resolves the draft to submit from --file or --draft.
func loadSubmitDraft(cmd *cobra.Command) (model.AlertDraft, error) {
	file := viper.GetString("submit.file")
	name := viper.GetString("submit.draft")

	switch {
	case file != "" && name != "":
		return model.AlertDraft{}, fmt.Errorf("%w: --file and --draft are mutually exclusive", common.ErrInvalidConfig)

	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return model.AlertDraft{}, fmt.Errorf("failed to read draft file: %w", err)
		}
		var d model.AlertDraft
		if err := json.Unmarshal(data, &d); err != nil {
			return model.AlertDraft{}, fmt.Errorf("failed to parse draft file: %w", err)
		}
		return d, nil

	case name != "":
		store, err := openStore()
		if err != nil {
			return model.AlertDraft{}, fmt.Errorf("failed to open draft store: %w", err)
		}
		defer func() { _ = store.Close() }()
		return store.GetDraft(cmd.Context(), name)

	default:
		return model.AlertDraft{}, fmt.Errorf("%w: provide --file or --draft", common.ErrMissingConfig)
	}
}

// recordSubmission appends the result to the local submission log.
func recordSubmission(cmd *cobra.Command, d model.AlertDraft, report *model.AnalysisReport) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.RecordSubmission(cmd.Context(), d, report)
	if err != nil {
		return err
	}
	slog.Debug("Recorded submission", "id", id, "alert_id", d.AlertID)
	return nil
}
