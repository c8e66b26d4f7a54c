package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/vidrec/internal/model"
	"github.com/rcliao/vidrec/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog",
		Long:  "Find videos whose title, description, tags or creator match the query substring.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("category", "c", "", "Filter by category")
	cmd.Flags().IntP("limit", "n", 20, "Maximum results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	videos, err := s.SearchVideos(cmd.Context(), store.SearchParams{Query: query, Category: category, Limit: limit})
	if err != nil {
		exitErr("search", err)
	}
	if videos == nil {
		videos = []model.Video{}
	}

	printJSON(videos)
}
