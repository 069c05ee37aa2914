package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage Agent job schedules",
	Long:  `Manage SQL Server Agent job schedules.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'schedule' requires a subcommand (set)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
