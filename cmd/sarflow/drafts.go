package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quillbank/sarflow/internal/cli"
	"github.com/quillbank/sarflow/internal/draft"
)

func draftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Manage saved alert drafts",
	}

	cmd.AddCommand(draftsListCmd())
	cmd.AddCommand(draftsShowCmd())
	cmd.AddCommand(draftsDeleteCmd())

	return cmd
}

func draftsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved drafts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open draft store: %w", err)
			}
			defer func() { _ = store.Close() }()

			records, err := store.ListDrafts(cmd.Context())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println(cli.FormatInfo("No saved drafts. Use Ctrl+S in 'sarflow review' to save one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALERT\tCUSTOMER\tRATING\tROWS\tTOTAL\tUPDATED")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					rec.Name,
					rec.Draft.AlertID,
					rec.Draft.CustomerName,
					rec.Draft.RiskRating,
					len(rec.Draft.Transactions),
					draft.FormatAmount(rec.Draft.LedgerTotal()),
					rec.UpdatedAt.Local().Format("2006-01-02 15:04"),
				)
			}
			return w.Flush()
		},
	}
}

func draftsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a saved draft as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open draft store: %w", err)
			}
			defer func() { _ = store.Close() }()

			d, err := store.GetDraft(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(d)
		},
	}
}

func draftsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open draft store: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteDraft(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted draft %q", args[0])))
			return nil
		},
	}
}

func submissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submissions",
		Short: "Show the local submission log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open draft store: %w", err)
			}
			defer func() { _ = store.Close() }()

			records, err := store.ListSubmissions(cmd.Context())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println(cli.FormatInfo("No submissions recorded yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SUBMITTED\tALERT\tCUSTOMER\tACTION\tID")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					rec.SubmittedAt.Local().Format("2006-01-02 15:04"),
					rec.AlertID,
					rec.Customer,
					rec.Action,
					rec.ID,
				)
			}
			return w.Flush()
		},
	}
}
