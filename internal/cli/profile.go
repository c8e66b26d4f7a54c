package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/vidrec/internal/engine"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile [preferences-json]",
		Short: "Create or replace a user profile",
		Long:  "Create or replace a user's preferences document. The document is free-form JSON; ranking reads `interests` and `preferred_categories` when present. Re-creating a profile replaces preferences entirely.",
		Run:   runProfile,
	}

	cmd.Flags().StringP("user", "u", "", "User id (required)")
	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runProfile(cmd *cobra.Command, args []string) {
	userID, _ := cmd.Flags().GetString("user")

	var raw string
	if len(args) > 0 {
		raw = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			raw = string(b)
		}
	}
	if strings.TrimSpace(raw) == "" {
		exitErr("profile", fmt.Errorf("preferences json is required (positional arg or stdin)"))
	}

	var prefs map[string]any
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		exitErr("parse preferences", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	eng := engine.New(s)
	p, err := eng.UpsertProfile(cmd.Context(), userID, prefs)
	if err != nil {
		exitErr("profile", err)
	}

	printJSON(p)
}
