package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/config"
)

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show dbactl configuration attributes and their sources",
	Long: `Show dbactl configuration attributes and their sources.

Values come from the config file (~/.dbactl/dbactl.yml, or the directory
named by DBACTL_CONFIG), overridden by DBACTL_* environment variables.

Example:
  dbactl config show
  dbactl config show --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if strings.ToLower(output) == "json" {
			out, err := cfg.JSON()
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Name", "Value", "Source"})
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(false)
		table.SetBorder(true)
		for _, attr := range cfg.Attributes() {
			table.Append([]string{attr.Name, attr.Value, attr.Source})
		}
		table.Render()
		fmt.Println("Config file:", cfg.ConfigFilePath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	addOutputFlag(configShowCmd)
}
