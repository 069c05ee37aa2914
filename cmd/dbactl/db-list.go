package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/database"
)

// dbListCmd represents the db list command
var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List database metadata",
	Long: `List databases on the source instance with owner, collation,
compatibility level, recovery model, state, size and query store flag.
Read only.

Example:
  dbactl db list --source sql01
  dbactl db list --source sql01 --exclude-system --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := connectSource(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = source.Close() }()

		names, _ := cmd.Flags().GetStringSlice("database")
		exclude, _ := cmd.Flags().GetStringSlice("exclude-database")
		excludeSystem, _ := cmd.Flags().GetBool("exclude-system")

		details, err := database.NewLister(source).List(cmd.Context(), database.Filter{
			Databases:     names,
			Exclude:       exclude,
			ExcludeSystem: excludeSystem,
		})
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if strings.ToLower(output) == "json" {
			return database.WriteJSON(os.Stdout, details)
		}
		database.WriteTable(os.Stdout, details)
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbListCmd)
	addSourceFlags(dbListCmd)
	addOutputFlag(dbListCmd)
	dbListCmd.Flags().StringSlice("database", nil, "Restrict to the named databases (repeatable)")
	dbListCmd.Flags().StringSlice("exclude-database", nil, "Leave out the named databases (repeatable)")
	dbListCmd.Flags().Bool("exclude-system", false, "Leave out master, model, msdb and tempdb")
}
