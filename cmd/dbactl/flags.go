package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/config"
	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// addSourceFlags registers the source connection flags on cmd.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "Source instance (host, host,port or host\\instance)")
	cmd.Flags().String("source-user", "", "Source SQL login (default: trusted auth or env)")
	cmd.Flags().String("source-password", "", "Source SQL password")
}

// addDestinationFlags registers the destination connection flags on cmd.
func addDestinationFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("destination", nil, "Destination instance (repeatable)")
	cmd.Flags().String("dest-user", "", "Destination SQL login (default: trusted auth or env)")
	cmd.Flags().String("dest-password", "", "Destination SQL password")
}

// addSetFlags registers the flags shared by every mutating command.
func addSetFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Report what would change without mutating anything")
	cmd.Flags().Bool("enable-exception", false, "Return an error when any object fails instead of only recording it")
	addOutputFlag(cmd)
}

// addCopyFlags adds --force on top for commands that drop and recreate
// existing objects.
func addCopyFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "Drop and recreate objects that already exist")
	addSetFlags(cmd)
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "Output format (table or json)")
}

func credential(user, password string) *instance.Credential {
	if user == "" {
		return nil
	}
	return &instance.Credential{Username: user, Password: password}
}

// connectSource resolves the source address and credential from flags, config
// and environment, then connects.
func connectSource(cmd *cobra.Command) (*instance.Instance, error) {
	cfg := config.Get()

	address, _ := cmd.Flags().GetString("source")
	if address == "" {
		address = cfg.Source
	}
	if address == "" {
		return nil, fmt.Errorf("no source instance: use --source or set it in %s", cfg.ConfigFilePath())
	}

	user, _ := cmd.Flags().GetString("source-user")
	password, _ := cmd.Flags().GetString("source-password")
	if user == "" {
		user, password = cfg.SourceCredentialFromEnv()
	}

	inst, err := instance.Connect(instance.Config{
		Address:                address,
		Credential:             credential(user, password),
		ConnectTimeout:         cfg.ConnectTimeout(),
		TrustServerCertificate: cfg.TrustServerCertificate,
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("connected to source", "instance", inst.Name())
	return inst, nil
}

// destinations resolves the destination address list from flags or config.
func destinations(cmd *cobra.Command) ([]string, error) {
	dests, _ := cmd.Flags().GetStringSlice("destination")
	if len(dests) == 0 {
		dests = config.Get().Destinations
	}
	if len(dests) == 0 {
		return nil, fmt.Errorf("no destination instances: use --destination or set them in %s", config.Get().ConfigFilePath())
	}
	return dests, nil
}

// forEachDestination connects to every destination in turn and runs fn on the
// live handle. A connection failure is recorded against that target and the
// loop continues with the rest.
func forEachDestination(cmd *cobra.Command, sourceName string, rec *status.Recorder, fn func(dest *instance.Instance) error) error {
	dests, err := destinations(cmd)
	if err != nil {
		return err
	}

	cfg := config.Get()
	user, _ := cmd.Flags().GetString("dest-user")
	password, _ := cmd.Flags().GetString("dest-password")
	if user == "" {
		user, password = cfg.DestCredentialFromEnv()
	}

	for _, address := range dests {
		// Set-style commands have no separate source; the target is both.
		srcName := sourceName
		if srcName == "" {
			srcName = address
		}

		dest, err := instance.Connect(instance.Config{
			Address:                address,
			Credential:             credential(user, password),
			ConnectTimeout:         cfg.ConnectTimeout(),
			TrustServerCertificate: cfg.TrustServerCertificate,
		})
		if err != nil {
			slog.Error("skipping destination", "instance", address, "error", err)
			rec.Add(status.Record{
				SourceServer:      srcName,
				DestinationServer: address,
				Name:              address,
				Type:              "Connection",
				Status:            status.OutcomeFailed,
				Notes:             err.Error(),
			})
			continue
		}

		if err := fn(dest); err != nil {
			slog.Error("destination failed", "instance", dest.Name(), "error", err)
			rec.Add(status.Record{
				SourceServer:      srcName,
				DestinationServer: dest.Name(),
				Name:              dest.Name(),
				Type:              "Connection",
				Status:            status.OutcomeFailed,
				Notes:             err.Error(),
			})
		}
		_ = dest.Close()
	}
	return nil
}

// finish renders the collected records and honors --enable-exception.
func finish(cmd *cobra.Command, rec *status.Recorder) error {
	output, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(output) {
	case "json":
		if err := status.WriteJSON(os.Stdout, rec.Records()); err != nil {
			return err
		}
	default:
		status.WriteTable(os.Stdout, rec.Records())
	}

	if raise, _ := cmd.Flags().GetBool("enable-exception"); raise && rec.Failed() {
		return fmt.Errorf("one or more objects failed")
	}
	return nil
}
