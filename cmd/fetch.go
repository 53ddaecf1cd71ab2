package cmd

import (
	"github.com/spf13/cobra"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run a single fetch pass against the search API",
	Run: func(cmd *cobra.Command, args []string) {
		cmdHandler.Fetch.Run(cmd, args)
	},
}

func init() {
	RootCmd.AddCommand(fetchCmd)
}
