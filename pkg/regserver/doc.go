// Package regserver copies the Central Management Server registered-server
// tree (groups and their registered servers) between instances, using the
// msdb sysmanagement shared store.
package regserver
