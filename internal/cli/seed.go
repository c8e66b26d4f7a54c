package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/vidrec/internal/engine"
	"github.com/rcliao/vidrec/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample data",
		Long:  "Create a small sample catalog, user profiles and interactions for trying the engine out.",
		Run:   runSeed,
	}

	RootCmd.AddCommand(cmd)
}

var seedVideos = []model.Video{
	{
		ID:          "vid1",
		Title:       "Python Machine Learning Tutorial",
		Description: "Learn machine learning with Python from scratch",
		Tags:        []string{"python", "machine learning", "tutorial", "programming"},
		Category:    "Education",
		Duration:    1800,
		UploadDate:  "2023-01-15",
		Views:       150000,
		Likes:       5000,
		Creator:     "ML Academy",
	},
	{
		ID:          "vid2",
		Title:       "Advanced React Patterns",
		Description: "Explore advanced React patterns and best practices",
		Tags:        []string{"react", "javascript", "web development", "frontend"},
		Category:    "Technology",
		Duration:    2400,
		UploadDate:  "2023-02-20",
		Views:       95000,
		Likes:       3200,
		Creator:     "React Masters",
	},
	{
		ID:          "vid3",
		Title:       "Cooking Italian Pasta",
		Description: "Learn to cook authentic Italian pasta at home",
		Tags:        []string{"cooking", "italian", "pasta", "food"},
		Category:    "Food",
		Duration:    900,
		UploadDate:  "2023-03-10",
		Views:       210000,
		Likes:       8500,
		Creator:     "Chef Mario",
	},
	{
		ID:          "vid4",
		Title:       "Travel to Japan Guide",
		Description: "Complete guide to traveling in Japan",
		Tags:        []string{"travel", "japan", "tourism", "adventure"},
		Category:    "Travel",
		Duration:    3000,
		UploadDate:  "2023-01-30",
		Views:       320000,
		Likes:       12000,
		Creator:     "Wanderlust World",
	},
	{
		ID:          "vid5",
		Title:       "Financial Planning Basics",
		Description: "Essential financial planning strategies for beginners",
		Tags:        []string{"finance", "investment", "money", "planning"},
		Category:    "Finance",
		Duration:    1500,
		UploadDate:  "2023-02-05",
		Views:       78000,
		Likes:       2800,
		Creator:     "Money Matters",
	},
}

func runSeed(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	eng := engine.New(s)
	for _, v := range seedVideos {
		if _, err := eng.AddVideo(ctx, v); err != nil {
			exitErr("seed video", err)
		}
	}

	if _, err := eng.UpsertProfile(ctx, "user123", map[string]any{
		"interests":            []string{"python", "machine learning", "programming"},
		"preferred_categories": []string{"Education", "Technology"},
		"min_duration":         1000,
		"max_duration":         3000,
	}); err != nil {
		exitErr("seed profile", err)
	}

	r1, r2 := 5.0, 4.0
	if err := eng.RecordWatch(ctx, "user123", "vid1", &r1); err != nil {
		exitErr("seed watch", err)
	}
	if err := eng.RecordWatch(ctx, "user123", "vid2", &r2); err != nil {
		exitErr("seed watch", err)
	}
	if err := eng.RecordLike(ctx, "user123", "vid1"); err != nil {
		exitErr("seed like", err)
	}

	if err := eng.RecomputeVectors(ctx); err != nil {
		exitErr("seed vectors", err)
	}

	fmt.Printf("seeded %d videos, 1 profile, 2 watches, 1 like\n", len(seedVideos))
}
