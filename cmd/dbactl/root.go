package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "dbactl",
	Short: "SQL Server administrative automation",
	Long: `dbactl automates common SQL Server administrative tasks: copying
Database Mail, registered servers and Resource Governor state between
instances, listing database metadata, and setting logins, compression and
Agent schedules.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(config.Get().LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   level,
		NoColor: os.Getenv("NO_COLOR") != "",
	})))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func main() {
	// Optional; credentials commonly arrive via a .env during development.
	_ = godotenv.Load()
	Execute()
}
