package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"favsync/internal/preflight"
	"favsync/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show environment health and database summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				p := newStatusPrinter(cmd.OutOrStdout())

				p.section("Environment")
				for _, result := range preflight.RunAll(cmd.Context(), cfg, st) {
					kind := statusError
					if result.Passed {
						kind = statusOK
					}
					p.line(result.Name, kind, result.Detail)
				}

				stats, err := st.FavoriteCounts(cmd.Context())
				if err != nil {
					return err
				}
				p.blank()
				p.section("Favorites")
				p.line("Total", statusInfo, fmt.Sprintf("%d", stats.Total))
				p.line("Present", statusOK, fmt.Sprintf("%d", stats.Present))
				p.line("Retired", statusInfo, fmt.Sprintf("%d", stats.Total-stats.Present))
				p.line("Library matches", statusInfo, fmt.Sprintf("%d", stats.Mapped))
				missingKind := statusOK
				if stats.Missing > 0 {
					missingKind = statusWarn
				}
				p.line("Missing targets", missingKind, fmt.Sprintf("%d", stats.Missing))

				records, err := st.ListScans(cmd.Context(), 1)
				if err != nil {
					return err
				}
				p.blank()
				p.section("Last scan")
				if len(records) == 0 {
					p.line("Scan", statusWarn, "never run; use `favsync enable`")
					return nil
				}
				last := records[0]
				kind := statusOK
				detail := fmt.Sprintf("%s scan at %s", last.ScanType, last.CreatedAt.Local().Format(time.RFC1123))
				if !last.Success {
					kind = statusError
					detail = fmt.Sprintf("%s (%s)", detail, last.ErrorMessage)
				} else if last.ErrorMessage != "" {
					kind = statusWarn
					detail = fmt.Sprintf("%s (warning: %s)", detail, last.ErrorMessage)
				}
				p.line("Scan", kind, detail)
				return nil
			})
		},
	}
}
