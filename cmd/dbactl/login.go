package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Manage server logins",
	Long:  `Manage SQL Server logins.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'login' requires a subcommand (set)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
