package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"favsync/internal/config"
	"favsync/internal/pathnorm"
	"favsync/internal/store"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the local movie catalog favorites are matched against",
	}
	libraryCmd.AddCommand(newLibraryAddCommand(ctx))
	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibraryRemoveCommand(ctx))
	return libraryCmd
}

func newLibraryAddCommand(ctx *commandContext) *cobra.Command {
	var title string
	var year int

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a movie file in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			movieTitle := strings.TrimSpace(title)
			if movieTitle == "" {
				return fmt.Errorf("--title is required")
			}

			return ctx.withStore(func(st *store.Store) error {
				item := &store.MediaItem{
					Title:          movieTitle,
					Year:           year,
					Path:           path,
					NormalizedPath: pathnorm.Normalize(path),
				}
				if err := st.AddMedia(cmd.Context(), item); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (id %d)\n", movieTitle, item.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Movie title")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Release year")
	return cmd
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				items, err := st.ListMedia(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), mediaViews(items))
				}

				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}

				headers := []string{"ID", "Title", "Year", "Path"}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					year := ""
					if item.Year != 0 {
						year = strconv.Itoa(item.Year)
					}
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						item.Title,
						year,
						item.Path,
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, 0, 2))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit catalog entries as JSON")
	return cmd
}

type mediaJSON struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Year           int    `json:"year,omitempty"`
	Path           string `json:"path"`
	NormalizedPath string `json:"normalized_path"`
}

func mediaViews(items []*store.MediaItem) []mediaJSON {
	views := make([]mediaJSON, 0, len(items))
	for _, item := range items {
		views = append(views, mediaJSON{
			ID:             item.ID,
			Title:          item.Title,
			Year:           item.Year,
			Path:           item.Path,
			NormalizedPath: item.NormalizedPath,
		})
	}
	return views
}

func newLibraryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid catalog id %q", args[0])
			}
			return ctx.withStore(func(st *store.Store) error {
				if err := st.RemoveMedia(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed catalog entry %d\n", id)
				return nil
			})
		},
	}
}
