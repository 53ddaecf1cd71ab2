package cmd

import (
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a single anomaly detection pass over the stored mentions",
	Run: func(cmd *cobra.Command, args []string) {
		cmdHandler.Analyze.Run(cmd, args)
	},
}

func init() {
	RootCmd.AddCommand(analyzeCmd)
}
