// Package mail copies Database Mail objects between instances:
// configuration values, accounts with their mail servers, and profiles with
// account bindings and principal grants.
//
// Everything is read from the msdb.dbo.sysmail_* views and written through
// the documented sysmail_* procedures. Mail server credentials cannot be
// read back from msdb and are never copied.
package mail
