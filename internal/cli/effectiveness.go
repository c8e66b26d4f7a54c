package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "effectiveness",
		Short: "Show recommendation effectiveness metrics",
		Long:  "Join recommendations served in the trailing 30 days against watch history: click-through rate and average resulting rating, optionally scoped to one user.",
		Run:   runEffectiveness,
	}

	cmd.Flags().StringP("user", "u", "", "Scope metrics to one user")

	RootCmd.AddCommand(cmd)
}

func runEffectiveness(cmd *cobra.Command, args []string) {
	userID, _ := cmd.Flags().GetString("user")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	eff, err := s.Effectiveness(cmd.Context(), userID)
	if err != nil {
		exitErr("effectiveness", err)
	}

	printJSON(eff)
}
