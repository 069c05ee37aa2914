package main

import (
	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/resourcegov"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// resourcegovCopyCmd represents the resourcegov copy command
var resourcegovCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy Resource Governor state between instances",
	Long: `Copy user-defined resource pools, their workload groups, the classifier
function and the enabled flag from a source instance to one or more
destinations, then reconfigure the destination governor.

Example:
  dbactl resourcegov copy --source sql01 --destination sql02
  dbactl resourcegov copy --source sql01 --destination sql02 --resource-pool reporting --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := connectSource(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = source.Close() }()

		force, _ := cmd.Flags().GetBool("force")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		pools, _ := cmd.Flags().GetStringSlice("resource-pool")

		rec := status.NewRecorder()
		err = forEachDestination(cmd, source.Name(), rec, func(dest *instance.Instance) error {
			return resourcegov.New(source, dest, force, dryRun, pools).Copy(cmd.Context(), rec)
		})
		if err != nil {
			return err
		}
		return finish(cmd, rec)
	},
}

func init() {
	resourcegovCmd.AddCommand(resourcegovCopyCmd)
	addSourceFlags(resourcegovCopyCmd)
	addDestinationFlags(resourcegovCopyCmd)
	addCopyFlags(resourcegovCopyCmd)
	resourcegovCopyCmd.Flags().StringSlice("resource-pool", nil, "Restrict to the named resource pools (repeatable)")
}
