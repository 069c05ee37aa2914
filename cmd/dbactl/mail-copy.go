package main

import (
	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/mail"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// mailCopyCmd represents the mail copy command
var mailCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy Database Mail between instances",
	Long: `Copy Database Mail configuration, accounts, mail servers and profiles
from a source instance to one or more destinations.

Objects that already exist on a destination are skipped unless --force drops
and recreates them. Mail server credentials cannot be read from msdb and must
be re-entered on the destination.

Example:
  dbactl mail copy --source sql01 --destination sql02 --destination sql03
  dbactl mail copy --source sql01 --destination sql02 --type accounts --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := connectSource(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = source.Close() }()

		force, _ := cmd.Flags().GetBool("force")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		types, _ := cmd.Flags().GetStringSlice("type")

		rec := status.NewRecorder()
		err = forEachDestination(cmd, source.Name(), rec, func(dest *instance.Instance) error {
			return mail.New(source, dest, force, dryRun, types).Copy(cmd.Context(), rec)
		})
		if err != nil {
			return err
		}
		return finish(cmd, rec)
	},
}

func init() {
	mailCmd.AddCommand(mailCopyCmd)
	addSourceFlags(mailCopyCmd)
	addDestinationFlags(mailCopyCmd)
	addCopyFlags(mailCopyCmd)
	mailCopyCmd.Flags().StringSlice("type", nil, "Restrict to object types (config, accounts, mailservers, profiles)")
}
