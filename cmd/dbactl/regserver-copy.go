package main

import (
	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/regserver"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// regserverCopyCmd represents the regserver copy command
var regserverCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy registered server groups and servers",
	Long: `Copy the shared registered-server tree (groups and their registered
servers) from a source Central Management Server to one or more destinations.

A registered server that points at the destination itself is skipped, since a
CMS cannot register itself.

Example:
  dbactl regserver copy --source sql01 --destination sql02
  dbactl regserver copy --source sql01 --destination sql02 --group Production`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := connectSource(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = source.Close() }()

		force, _ := cmd.Flags().GetBool("force")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		groups, _ := cmd.Flags().GetStringSlice("group")

		rec := status.NewRecorder()
		err = forEachDestination(cmd, source.Name(), rec, func(dest *instance.Instance) error {
			return regserver.New(source, dest, force, dryRun, groups).Copy(cmd.Context(), rec)
		})
		if err != nil {
			return err
		}
		return finish(cmd, rec)
	},
}

func init() {
	regserverCmd.AddCommand(regserverCopyCmd)
	addSourceFlags(regserverCopyCmd)
	addDestinationFlags(regserverCopyCmd)
	addCopyFlags(regserverCopyCmd)
	regserverCopyCmd.Flags().StringSlice("group", nil, "Restrict to the named top-level groups (repeatable)")
}
