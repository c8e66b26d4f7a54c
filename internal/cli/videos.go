package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/vidrec/internal/model"
	"github.com/rcliao/vidrec/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "List the catalog",
		Long:  "List catalog videos, most viewed first, optionally filtered by category.",
		Run:   runVideos,
	}

	cmd.Flags().StringP("category", "c", "", "Filter by category")
	cmd.Flags().IntP("limit", "n", 20, "Maximum videos to list")

	RootCmd.AddCommand(cmd)
}

func runVideos(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	videos, err := s.SearchVideos(cmd.Context(), store.SearchParams{Category: category, Limit: limit})
	if err != nil {
		exitErr("videos", err)
	}
	if videos == nil {
		videos = []model.Video{}
	}

	printJSON(videos)
}
