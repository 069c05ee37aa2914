// Package resourcegov copies Resource Governor state between instances:
// user-defined resource pools, their workload groups, the classifier
// function, and the enabled flag.
//
// Resource Governor DDL does not accept parameterized identifiers, so the
// copier generates CREATE/DROP statements with bracket-quoted names and
// finishes with ALTER RESOURCE GOVERNOR RECONFIGURE (or DISABLE when the
// source governor is off).
package resourcegov
