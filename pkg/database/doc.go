// Package database lists database metadata (owner, collation, compatibility
// level, recovery model, state, size, query store) from sys.databases and
// sys.master_files. Read only.
package database
