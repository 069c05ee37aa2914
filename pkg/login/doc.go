// Package login mutates server logins: enable/disable, unlock, password
// resets, default database, connect grants, server role membership and
// renames. Conflicting switches are rejected by Options.Validate before any
// server contact.
package login
