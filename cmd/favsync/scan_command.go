package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"favsync/internal/reconcile"
	"favsync/internal/services"
	"favsync/internal/store"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Reconcile favorites from the Kodi favourites document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(ctx, cmd, reconcile.Options{Force: force}, asJSON)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Reconcile even when the document is unchanged")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the scan outcome as JSON")
	return cmd
}

func newEnableCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Initialize the database and run the first reconciliation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(ctx, cmd, reconcile.Options{Force: true, Type: reconcile.ScanTypeInitial}, false)
		},
	}
}

func runScan(ctx *commandContext, cmd *cobra.Command, opts reconcile.Options, asJSON bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	return ctx.withStore(func(st *store.Store) error {
		engine := reconcile.NewEngine(cfg, st, ctx.ensureLogger())
		outcome, err := engine.Scan(cmd.Context(), opts)
		if err != nil {
			if errors.Is(err, services.ErrScanInProgress) {
				return errors.New("a scan is already running; try again once it finishes")
			}
			return err
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), scanOutcomeView(outcome))
		}

		out := cmd.OutOrStdout()
		if outcome.Skipped {
			fmt.Fprintf(out, "Favourites unchanged since last scan (%s); nothing to do\n", outcome.SourcePath)
			return nil
		}
		fmt.Fprintf(out, "Scanned %s\n", outcome.SourcePath)
		fmt.Fprintf(out, "  favorites found:  %d\n", outcome.ItemsFound)
		fmt.Fprintf(out, "  library matches:  %d\n", outcome.ItemsMapped)
		fmt.Fprintf(out, "  rows added:       %d\n", outcome.ItemsAdded)
		fmt.Fprintf(out, "  rows updated:     %d\n", outcome.ItemsUpdated)
		fmt.Fprintf(out, "  duration:         %s\n", outcome.Duration.Round(time.Millisecond))
		if outcome.Warning != "" {
			fmt.Fprintf(out, "Warning: %s\n", outcome.Warning)
		}
		return nil
	})
}

type scanOutcomeJSON struct {
	ScanID       string `json:"scan_id"`
	SourcePath   string `json:"source_path"`
	Skipped      bool   `json:"skipped"`
	ItemsFound   int    `json:"items_found"`
	ItemsMapped  int    `json:"items_mapped"`
	ItemsAdded   int    `json:"items_added"`
	ItemsUpdated int    `json:"items_updated"`
	DurationMS   int64  `json:"duration_ms"`
	Warning      string `json:"warning,omitempty"`
}

func scanOutcomeView(outcome *reconcile.Outcome) scanOutcomeJSON {
	return scanOutcomeJSON{
		ScanID:       outcome.ScanID,
		SourcePath:   outcome.SourcePath,
		Skipped:      outcome.Skipped,
		ItemsFound:   outcome.ItemsFound,
		ItemsMapped:  outcome.ItemsMapped,
		ItemsAdded:   outcome.ItemsAdded,
		ItemsUpdated: outcome.ItemsUpdated,
		DurationMS:   outcome.Duration.Milliseconds(),
		Warning:      outcome.Warning,
	}
}
