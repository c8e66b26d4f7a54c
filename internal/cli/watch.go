package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/vidrec/internal/engine"
)

func init() {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Record a watch event",
		Long:  "Record that a user watched a video, with an optional rating (the engine works on a 1.0-5.0 scale). Increments the video's view counter.",
		Run:   runWatch,
	}

	cmd.Flags().StringP("user", "u", "", "User id (required)")
	cmd.Flags().StringP("video", "v", "", "Video id (required)")
	cmd.Flags().Float64P("rating", "r", 0, "Rating for this watch")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("video")

	RootCmd.AddCommand(cmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	userID, _ := cmd.Flags().GetString("user")
	videoID, _ := cmd.Flags().GetString("video")

	var rating *float64
	if cmd.Flags().Changed("rating") {
		r, _ := cmd.Flags().GetFloat64("rating")
		rating = &r
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	eng := engine.New(s)
	if err := eng.RecordWatch(cmd.Context(), userID, videoID, rating); err != nil {
		exitErr("watch", err)
	}

	printJSON(map[string]any{"user_id": userID, "video_id": videoID, "recorded": true})
}
