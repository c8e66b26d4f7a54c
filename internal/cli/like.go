package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/vidrec/internal/engine"
)

func init() {
	cmd := &cobra.Command{
		Use:   "like",
		Short: "Record a like event",
		Long:  "Record that a user liked a video. Increments the video's like counter; the user's liked set stays deduplicated.",
		Run:   runLike,
	}

	cmd.Flags().StringP("user", "u", "", "User id (required)")
	cmd.Flags().StringP("video", "v", "", "Video id (required)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("video")

	RootCmd.AddCommand(cmd)
}

func runLike(cmd *cobra.Command, args []string) {
	userID, _ := cmd.Flags().GetString("user")
	videoID, _ := cmd.Flags().GetString("video")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	eng := engine.New(s)
	if err := eng.RecordLike(cmd.Context(), userID, videoID); err != nil {
		exitErr("like", err)
	}

	printJSON(map[string]any{"user_id": userID, "video_id": videoID, "recorded": true})
}
