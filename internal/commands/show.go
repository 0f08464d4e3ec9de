// internal/commands/show.go
package commands

import (
	"github.com/spf13/cobra"
)

// showCmd groups subcommands that display resources or information.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
	Long:  `The 'show' command groups subcommands that display resources or information related to weather-mcp.`,
}

func init() {
	rootCmd.AddCommand(showCmd)
}
