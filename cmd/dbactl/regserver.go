package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// regserverCmd represents the regserver command
var regserverCmd = &cobra.Command{
	Use:   "regserver",
	Short: "Manage Central Management Server registered servers",
	Long:  `Manage the shared registered-server tree of a Central Management Server.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'regserver' requires a subcommand (copy)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(regserverCmd)
}
