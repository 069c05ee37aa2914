package main

import (
	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/compression"
	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// compressionSetCmd represents the compression set command
var compressionSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Apply data compression to databases",
	Long: `Rebuild the heaps and indexes of the chosen databases at a target
compression level (none, row or page). Objects already at the target level
are skipped; --max-run-time stops issuing rebuilds once the budget elapses.

Example:
  dbactl compression set --destination sql02 --database AppDb --level page
  dbactl compression set --destination sql02 --database AppDb --level row --max-run-time 1h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("level")
		level, err := compression.ParseLevel(levelName)
		if err != nil {
			return err
		}

		databases, _ := cmd.Flags().GetStringSlice("database")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		maxRunTime, _ := cmd.Flags().GetDuration("max-run-time")

		rec := status.NewRecorder()
		err = forEachDestination(cmd, "", rec, func(dest *instance.Instance) error {
			setter := compression.NewSetter(dest, dryRun, maxRunTime)
			return setter.Set(cmd.Context(), rec, databases, level)
		})
		if err != nil {
			return err
		}
		return finish(cmd, rec)
	},
}

func init() {
	compressionCmd.AddCommand(compressionSetCmd)
	addDestinationFlags(compressionSetCmd)
	addSetFlags(compressionSetCmd)
	compressionSetCmd.Flags().StringSlice("database", nil, "Database to compress (repeatable)")
	compressionSetCmd.Flags().String("level", "page", "Compression level (none, row or page)")
	compressionSetCmd.Flags().Duration("max-run-time", 0, "Stop issuing rebuilds after this long (for example 1h30m)")
	_ = compressionSetCmd.MarkFlagRequired("database")
}
