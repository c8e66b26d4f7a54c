package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/vidrec/internal/engine"
	"github.com/rcliao/vidrec/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "overlaps",
		Short: "Report cross-user watch overlaps",
		Long:  "Find pairs of users with overlapping watch sets and surface videos one user rated highly that the other has not seen.",
		Run:   runOverlaps,
	}

	RootCmd.AddCommand(cmd)
}

func runOverlaps(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	eng := engine.New(s)
	if err := eng.LoadAll(cmd.Context()); err != nil {
		exitErr("load", err)
	}

	overlaps := eng.FindOverlaps()
	if overlaps == nil {
		overlaps = []model.Overlap{}
	}
	printJSON(overlaps)
}
