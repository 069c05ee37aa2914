// Package main implements dbactl, a CLI for common SQL Server
// administrative tasks.
//
// # Commands
//
//   - mail copy: copy Database Mail between instances
//   - regserver copy: copy Central Management Server registered servers
//   - resourcegov copy: copy Resource Governor state
//   - db list: list database metadata
//   - login set: change server logins
//   - compression set: apply data compression
//   - schedule set: change Agent job schedules
//   - rename-helper: rewrite deprecated names in scripts
//   - config show: show configuration and sources
//
// # Quick start
//
//	export DBACTL_SOURCE_USER=sa
//	export DBACTL_SOURCE_PASSWORD=...
//	dbactl mail copy --source sql01 --destination sql02
//
// Copy commands skip objects that already exist on the destination; --force
// drops and recreates them, --dry-run previews without mutating. Every
// command emits one status record per object, as a table or as JSON.
//
// # Environment variables
//
//   - DBACTL_SOURCE / DBACTL_DESTINATIONS: default instances
//   - DBACTL_SOURCE_USER / DBACTL_SOURCE_PASSWORD: source credential
//   - DBACTL_DEST_USER / DBACTL_DEST_PASSWORD: destination credential
//   - DBACTL_CONFIG: directory holding dbactl.yml
//   - DBACTL_LOG_LEVEL: debug, info, warn or error
package main
