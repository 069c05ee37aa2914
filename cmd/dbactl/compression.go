package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// compressionCmd represents the compression command
var compressionCmd = &cobra.Command{
	Use:   "compression",
	Short: "Manage data compression",
	Long:  `Manage table and index data compression.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'compression' requires a subcommand (set)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(compressionCmd)
}
