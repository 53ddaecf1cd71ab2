package cmd

import (
	"github.com/spf13/cobra"
)

// migrateSQLCmd represents the migrate sql command
var migrateSQLCmd = &cobra.Command{
	Use:   "sql <database-url>",
	Short: "Create SQL schemas and apply migration plans",
	Run: func(cmd *cobra.Command, args []string) {
		cmdHandler.Migration.MigrateSQL(cmd, args)
	},
}

func init() {
	migrateCmd.AddCommand(migrateSQLCmd)
}
