package cmd

import (
	"github.com/spf13/cobra"
	"github.com/toddkasper/outage-query/pkg/cmd/server"
)

// serveWatcherCmd represents the serve watcher command
var serveWatcherCmd = &cobra.Command{
	Use:   "watcher",
	Short: "Serve the keyword watcher with its scheduled fetch and analyze runs",
	Run:   server.RunServeWatcher(c),
}

func init() {
	serveCmd.AddCommand(serveWatcherCmd)
}
