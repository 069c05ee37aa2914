package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dbactl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("dbactl", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
