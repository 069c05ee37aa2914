// Package instance provides the connection layer for dbactl.
//
// It wraps gorm with the SQL Server driver and exposes both the gorm handle
// and the raw database/sql handle, since the administrative commands mostly
// issue raw T-SQL against system views and msdb procedures.
//
// # Connection
//
//	inst, err := instance.Connect(instance.Config{
//	    Address:    `sqlprod01\reporting`,
//	    Credential: &instance.Credential{Username: "sa", Password: pw},
//	})
//	if err != nil {
//	    // err is a *ConnectionError carrying the target address
//	}
//	defer inst.Close()
//
// # Address formats
//
//   - host            default port
//   - host,1433       explicit port
//   - host\named      named instance
//
// Connection failures are categorized (ConnectionError) so multi-target
// commands can abandon one unreachable target and continue with the rest.
package instance
