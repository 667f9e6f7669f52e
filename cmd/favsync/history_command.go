package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"favsync/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the scan audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				records, err := st.ListScans(cmd.Context(), limit)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), scanRecordViews(records))
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No scans recorded")
					return nil
				}

				headers := []string{"ID", "When", "Type", "Found", "Mapped", "Added", "Updated", "Duration", "Result"}
				rows := make([][]string, 0, len(records))
				for _, record := range records {
					result := "ok"
					if !record.Success {
						result = "failed"
					} else if record.ErrorMessage != "" {
						result = "ok (warning)"
					}
					rows = append(rows, []string{
						strconv.FormatInt(record.ID, 10),
						record.CreatedAt.Local().Format("2006-01-02 15:04:05"),
						record.ScanType,
						strconv.Itoa(record.ItemsFound),
						strconv.Itoa(record.ItemsMapped),
						strconv.Itoa(record.ItemsAdded),
						strconv.Itoa(record.ItemsUpdated),
						(time.Duration(record.ScanDurationMS) * time.Millisecond).String(),
						result,
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, 0, 3, 4, 5, 6, 7))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of scans to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit scan history as JSON")
	return cmd
}

type scanRecordJSON struct {
	ID           int64      `json:"id"`
	ScanType     string     `json:"scan_type"`
	FilePath     string     `json:"file_path"`
	FileModified *time.Time `json:"file_modified,omitempty"`
	ItemsFound   int        `json:"items_found"`
	ItemsMapped  int        `json:"items_mapped"`
	ItemsAdded   int        `json:"items_added"`
	ItemsUpdated int        `json:"items_updated"`
	DurationMS   int64      `json:"duration_ms"`
	Success      bool       `json:"success"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func scanRecordViews(records []*store.ScanRecord) []scanRecordJSON {
	views := make([]scanRecordJSON, 0, len(records))
	for _, record := range records {
		views = append(views, scanRecordJSON{
			ID:           record.ID,
			ScanType:     record.ScanType,
			FilePath:     record.FilePath,
			FileModified: record.FileModified,
			ItemsFound:   record.ItemsFound,
			ItemsMapped:  record.ItemsMapped,
			ItemsAdded:   record.ItemsAdded,
			ItemsUpdated: record.ItemsUpdated,
			DurationMS:   record.ScanDurationMS,
			Success:      record.Success,
			ErrorMessage: record.ErrorMessage,
			CreatedAt:    record.CreatedAt,
		})
	}
	return views
}
