package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// resourcegovCmd represents the resourcegov command
var resourcegovCmd = &cobra.Command{
	Use:   "resourcegov",
	Short: "Manage Resource Governor",
	Long:  `Manage Resource Governor pools, workload groups and classifier functions.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'resourcegov' requires a subcommand (copy)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(resourcegovCmd)
}
