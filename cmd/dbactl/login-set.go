package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/login"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// loginSetCmd represents the login set command
var loginSetCmd = &cobra.Command{
	Use:   "set <login>...",
	Short: "Change server logins",
	Long: `Change one or more server logins on the target instances:
enable/disable, unlock, password resets, default database, connect grants,
server role membership and renames.

Conflicting switches are rejected before any instance is contacted.

Example:
  dbactl login set app_user --destination sql02 --disable
  dbactl login set app_user --destination sql02 --random-password --must-change
  dbactl login set old_name --destination sql02 --new-name new_name`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loginOptions(cmd)
		if err != nil {
			return err
		}
		if err := opts.Validate(); err != nil {
			return err
		}
		if opts.NewName != "" && len(args) > 1 {
			return fmt.Errorf("--new-name works with exactly one login")
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")

		rec := status.NewRecorder()
		err = forEachDestination(cmd, "", rec, func(dest *instance.Instance) error {
			return login.NewSetter(dest, dryRun).Set(cmd.Context(), rec, args, opts)
		})
		if err != nil {
			return err
		}
		return finish(cmd, rec)
	},
}

func loginOptions(cmd *cobra.Command) (login.Options, error) {
	var opts login.Options
	var err error
	flags := cmd.Flags()

	if opts.Enable, err = flags.GetBool("enable"); err != nil {
		return opts, err
	}
	opts.Disable, _ = flags.GetBool("disable")
	opts.Unlock, _ = flags.GetBool("unlock")
	opts.MustChange, _ = flags.GetBool("must-change")
	opts.Password, _ = flags.GetString("password")
	opts.RandomPassword, _ = flags.GetBool("random-password")
	opts.DefaultDatabase, _ = flags.GetString("default-database")
	opts.GrantConnect, _ = flags.GetBool("grant-connect")
	opts.DenyConnect, _ = flags.GetBool("deny-connect")
	opts.AddRoles, _ = flags.GetStringSlice("add-role")
	opts.RemoveRoles, _ = flags.GetStringSlice("remove-role")
	opts.NewName, _ = flags.GetString("new-name")
	return opts, nil
}

func init() {
	loginCmd.AddCommand(loginSetCmd)
	addDestinationFlags(loginSetCmd)
	addSetFlags(loginSetCmd)
	loginSetCmd.Flags().Bool("enable", false, "Enable the login")
	loginSetCmd.Flags().Bool("disable", false, "Disable the login")
	loginSetCmd.Flags().Bool("unlock", false, "Unlock the login (needs a new password)")
	loginSetCmd.Flags().Bool("must-change", false, "Force a password change at next login")
	loginSetCmd.Flags().String("password", "", "New password")
	loginSetCmd.Flags().Bool("random-password", false, "Generate a random 32-character password")
	loginSetCmd.Flags().String("default-database", "", "New default database")
	loginSetCmd.Flags().Bool("grant-connect", false, "Grant CONNECT SQL")
	loginSetCmd.Flags().Bool("deny-connect", false, "Deny CONNECT SQL")
	loginSetCmd.Flags().StringSlice("add-role", nil, "Server role to add the login to (repeatable)")
	loginSetCmd.Flags().StringSlice("remove-role", nil, "Server role to remove the login from (repeatable)")
	loginSetCmd.Flags().String("new-name", "", "Rename the login")
}
