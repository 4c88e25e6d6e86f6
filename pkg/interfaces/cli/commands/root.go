package commands

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tkoide/drp/pkg/infrastructure/db"
)

// NewRootCmd builds the drp command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "drp",
		Short: "Chemical delivery dispatch planner",
		Long: `drp projects tank stock levels across a planning horizon from a draft
delivery schedule and flags arrival-window conflicts against previously
finalized plans.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("db", "", "path to the drp database (default $DRP_DB or ~/.drp/drp.db)")

	root.AddCommand(newProjectCmd())
	root.AddCommand(newConflictsCmd())
	root.AddCommand(newCalibrationCmd())
	root.AddCommand(newPlanCmd())
	return root
}

// openDB resolves the database path from the --db flag, the DRP_DB
// environment variable, or the default under the home directory.
func openDB(cmd *cobra.Command) (*sql.DB, error) {
	path, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = os.Getenv("DRP_DB")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".drp", "drp.db")
	}
	return db.Open(path)
}
