package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pathsCmd shows where the application reads and writes files.
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show paths used by the application",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Config directory: %s\n", settings.ConfigDir)
		fmt.Printf("Config file: %s\n", settings.ConfigFile)
		fmt.Printf("Output directory: %s\n", settings.OutputDir)
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
