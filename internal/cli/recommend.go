package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Serve ranked recommendations for a user",
		Long:  "Rank unwatched videos for a user, log every served (video, score) pair for effectiveness tracking, and print the list.",
		Run:   runRecommend,
	}

	cmd.Flags().StringP("user", "u", "", "User id (required)")
	cmd.Flags().IntP("limit", "n", 10, "Maximum recommendations")
	cmd.Flags().String("type", "personalized", "Recommendation type tag for the log")
	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runRecommend(cmd *cobra.Command, args []string) {
	userID, _ := cmd.Flags().GetString("user")
	limit, _ := cmd.Flags().GetInt("limit")
	recType, _ := cmd.Flags().GetString("type")

	eng, s, err := openEngine(cmd.Context())
	if err != nil {
		exitErr("open engine", err)
	}
	defer s.Close()

	recs, err := eng.ServeRecommendations(cmd.Context(), userID, limit, recType)
	if err != nil {
		exitErr("recommend", err)
	}

	printJSON(recs)
}
