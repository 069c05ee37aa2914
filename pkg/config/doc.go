// Package config manages dbactl configuration.
//
// Settings are loaded from ~/.dbactl/dbactl.yml (or the directory named by
// DBACTL_CONFIG) and overridden by DBACTL_* environment variables. Each
// attribute tracks whether its value came from defaults, the file or the
// environment, which `dbactl config show` reports.
//
// Credentials are never stored in the file; the file only names the
// environment variables they are read from.
package config
