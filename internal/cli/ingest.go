package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/vidrec/internal/engine"
	"github.com/rcliao/vidrec/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Add a video to the catalog",
		Long:  "Add a video to the catalog. Fields come from flags, or pipe a full video JSON object via stdin.",
		Run:   runIngest,
	}

	cmd.Flags().String("id", "", "Video id (generated when omitted)")
	cmd.Flags().String("title", "", "Title")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	cmd.Flags().String("category", "", "Category")
	cmd.Flags().Int("duration", 0, "Duration in seconds")
	cmd.Flags().String("upload-date", "", "Upload date (YYYY-MM-DD)")
	cmd.Flags().String("creator", "", "Creator name")

	RootCmd.AddCommand(cmd)
}

func runIngest(cmd *cobra.Command, args []string) {
	var v model.Video

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		if err := json.Unmarshal(b, &v); err != nil {
			exitErr("parse video json", err)
		}
	} else {
		v.ID, _ = cmd.Flags().GetString("id")
		v.Title, _ = cmd.Flags().GetString("title")
		v.Description, _ = cmd.Flags().GetString("description")
		v.Category, _ = cmd.Flags().GetString("category")
		v.Duration, _ = cmd.Flags().GetInt("duration")
		v.UploadDate, _ = cmd.Flags().GetString("upload-date")
		v.Creator, _ = cmd.Flags().GetString("creator")

		tagsStr, _ := cmd.Flags().GetString("tags")
		v.Tags = splitTags(tagsStr)
	}

	if strings.TrimSpace(v.Title) == "" {
		exitErr("ingest", fmt.Errorf("title is required (flag or stdin json)"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	eng := engine.New(s)
	added, err := eng.AddVideo(cmd.Context(), v)
	if err != nil {
		exitErr("ingest", err)
	}

	printJSON(added)
}

func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
