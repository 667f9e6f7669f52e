package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"favsync/internal/store"
)

func newFavoritesCommand(ctx *commandContext) *cobra.Command {
	favoritesCmd := &cobra.Command{
		Use:   "favorites",
		Short: "Inspect reconciled favorites",
	}
	favoritesCmd.AddCommand(newFavoritesListCommand(ctx))
	return favoritesCmd
}

func newFavoritesListCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var unmapped bool
	var missing bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites known to the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				filter := store.FavoriteFilter{
					PresentOnly:  !all,
					UnmappedOnly: unmapped,
					MissingOnly:  missing,
				}
				favorites, err := st.ListFavorites(cmd.Context(), filter)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), favoriteViews(favorites))
				}

				out := cmd.OutOrStdout()
				if len(favorites) == 0 {
					fmt.Fprintln(out, "No favorites found")
					return nil
				}

				headers := []string{"ID", "Name", "Type", "Class", "Path", "Mapped", "Missing", "Present"}
				rows := make([][]string, 0, len(favorites))
				for _, fav := range favorites {
					path := fav.NormalizedPath
					if path == "" {
						path = fav.TargetRaw
					}
					rows = append(rows, []string{
						strconv.FormatInt(fav.ID, 10),
						fav.Name,
						fav.FavoriteType,
						fav.TargetClassification,
						path,
						yesNo(fav.IsMapped),
						yesNo(fav.IsMissing),
						yesNo(fav.Present),
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, 0))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include retired favorites no longer in the document")
	cmd.Flags().BoolVar(&unmapped, "unmapped", false, "Only favorites without a library match")
	cmd.Flags().BoolVar(&missing, "missing", false, "Only favorites whose file target is unreachable")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit favorites as JSON")
	return cmd
}

type favoriteJSON struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	NormalizedPath       string    `json:"normalized_path,omitempty"`
	OriginalPath         string    `json:"original_path,omitempty"`
	FavoriteType         string    `json:"favorite_type"`
	TargetRaw            string    `json:"target_raw"`
	TargetClassification string    `json:"target_classification"`
	LibraryMovieID       *int64    `json:"library_movie_id,omitempty"`
	IsMapped             bool      `json:"is_mapped"`
	IsMissing            bool      `json:"is_missing"`
	Present              bool      `json:"present"`
	ThumbRef             string    `json:"thumb_ref,omitempty"`
	FirstSeen            time.Time `json:"first_seen"`
	LastSeen             time.Time `json:"last_seen"`
}

func favoriteViews(favorites []*store.Favorite) []favoriteJSON {
	views := make([]favoriteJSON, 0, len(favorites))
	for _, fav := range favorites {
		views = append(views, favoriteJSON{
			ID:                   fav.ID,
			Name:                 fav.Name,
			NormalizedPath:       fav.NormalizedPath,
			OriginalPath:         fav.OriginalPath,
			FavoriteType:         fav.FavoriteType,
			TargetRaw:            fav.TargetRaw,
			TargetClassification: fav.TargetClassification,
			LibraryMovieID:       fav.LibraryMovieID,
			IsMapped:             fav.IsMapped,
			IsMissing:            fav.IsMissing,
			Present:              fav.Present,
			ThumbRef:             fav.ThumbRef,
			FirstSeen:            fav.FirstSeen,
			LastSeen:             fav.LastSeen,
		})
	}
	return views
}
