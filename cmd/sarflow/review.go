package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillbank/sarflow/internal/analysis"
	"github.com/quillbank/sarflow/internal/common"
	"github.com/quillbank/sarflow/internal/draft"
	"github.com/quillbank/sarflow/internal/model"
	"github.com/quillbank/sarflow/internal/ofx"
	"github.com/quillbank/sarflow/internal/tui"
	"github.com/quillbank/sarflow/internal/tui/themes"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Open the interactive alert dashboard",
		Long: `Open the full-screen dashboard to review an alert: edit the subject
profile and evidence ledger, submit the case for analysis, and drill
into the resulting report.

Without flags the session starts from the built-in example alert. Use
--draft to resume a saved draft or --ofx to seed the ledger from a bank
statement export.`,
		RunE: runReview,
	}

	// Flags
	cmd.Flags().String("draft", "", "Saved draft to resume")
	cmd.Flags().String("ofx", "", "OFX/QFX statement to seed the ledger from")
	cmd.Flags().String("theme", "ledger", "Visual theme (ledger, midnight)")

	// Bind to viper
	_ = viper.BindPFlag("review.draft", cmd.Flags().Lookup("draft"))
	_ = viper.BindPFlag("review.ofx", cmd.Flags().Lookup("ofx"))
	_ = viper.BindPFlag("review.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open draft store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close draft store", "error", closeErr)
		}
	}()

	d := draft.Seed()
	draftName := "current"

	if name := viper.GetString("review.draft"); name != "" {
		loaded, loadErr := store.GetDraft(ctx, name)
		if loadErr != nil {
			return fmt.Errorf("failed to load draft: %w", loadErr)
		}
		d = loaded
		draftName = name
		slog.Info("Resumed draft", "name", name, "alert_id", d.AlertID)
	}

	if path := common.ExpandPath(viper.GetString("review.ofx")); path != "" {
		rows, importErr := importLedger(ctx, path)
		if importErr != nil {
			return importErr
		}
		d.Transactions = rows
		slog.Info("Seeded ledger from statement", "path", path, "rows", len(rows))
	}

	return tui.Run(ctx,
		tui.WithClient(analysis.NewClient(viper.GetString("engine.endpoint"))),
		tui.WithStore(store),
		tui.WithDraft(d),
		tui.WithDraftName(draftName),
		tui.WithTheme(themes.GetTheme(viper.GetString("review.theme"))),
	)
}

// importLedger reads an OFX/QFX statement into ledger rows.
func importLedger(ctx context.Context, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ofx.NewParser().ImportLedger(ctx, f)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
