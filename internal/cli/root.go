// Package cli implements the vidrec CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/vidrec/internal/engine"
	"github.com/rcliao/vidrec/internal/store"
)

var dbPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "vidrec",
	Short: "Video recommendations that learn from feedback",
	Long:  "A video recommendation engine blending content similarity with watch and like history. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $VIDREC_DB or ~/.vidrec/vidrec.db)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("VIDREC_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vidrec", "vidrec.db")
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// openEngine opens the store and loads a ready-to-rank engine: full
// state reload plus similarity vector recompute.
func openEngine(ctx context.Context) (*engine.Recommender, *store.SQLiteStore, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	eng := engine.New(s)
	if err := eng.Refresh(ctx); err != nil {
		s.Close()
		return nil, nil, err
	}
	return eng, s, nil
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
