package renamer

// ParameterRenames maps deprecated parameter names to their replacements.
// Read-only; built into match rules once at process start.
var ParameterRenames = map[string]string{
	"Credential":         "SqlCredential",
	"Databases":          "Database",
	"Detailed":           "Verbose",
	"Exclude":            "ExcludeDatabase",
	"ExcludeAllSystemDb": "ExcludeSystem",
	"ExcludeAllUserDb":   "ExcludeUser",
	"IncludeSystemDBs":   "IncludeSystemDb",
	"Jobs":               "Job",
	"Logins":             "Login",
	"NoSystemDb":         "ExcludeSystem",
	"NoSystemLogins":     "ExcludeSystemLogin",
	"NoSystemObjects":    "ExcludeSystemObjects",
	"ServerInstance":     "SqlInstance",
	"SqlServer":          "SqlInstance",
}

// CommandRenames maps deprecated command names to their replacements.
// Read-only; built into match rules once at process start.
var CommandRenames = map[string]string{
	"Add-DbaRegisteredServer":            "Add-DbaRegServer",
	"Add-DbaRegisteredServerGroup":       "Add-DbaRegServerGroup",
	"Backup-DbaDatabaseCertificate":      "Backup-DbaDbCertificate",
	"Backup-DbaDatabaseMasterKey":        "Backup-DbaDbMasterKey",
	"Clear-DbaSqlConnectionPool":         "Clear-DbaConnectionPool",
	"Connect-DbaServer":                  "Connect-DbaInstance",
	"Connect-DbaSqlServer":               "Connect-DbaInstance",
	"Copy-DbaAgentCategory":              "Copy-DbaAgentJobCategory",
	"Copy-DbaAgentProxyAccount":          "Copy-DbaAgentProxy",
	"Copy-DbaAgentSharedSchedule":        "Copy-DbaAgentSchedule",
	"Copy-DbaCentralManagementServer":    "Copy-DbaRegServer",
	"Copy-DbaDatabaseAssembly":           "Copy-DbaDbAssembly",
	"Copy-DbaDatabaseMail":               "Copy-DbaDbMail",
	"Copy-DbaExtendedEvent":              "Copy-DbaXESession",
	"Copy-DbaQueryStoreConfig":           "Copy-DbaDbQueryStoreOption",
	"Copy-DbaSqlDataCollector":           "Copy-DbaDataCollector",
	"Copy-DbaSqlPolicyManagement":        "Copy-DbaPolicyManagement",
	"Copy-DbaSqlServerAgent":             "Copy-DbaAgentServer",
	"Copy-DbaTableData":                  "Copy-DbaDbTableData",
	"Copy-SqlAgentCategory":              "Copy-DbaAgentJobCategory",
	"Copy-SqlAlert":                      "Copy-DbaAgentAlert",
	"Copy-SqlAudit":                      "Copy-DbaInstanceAudit",
	"Copy-SqlAuditSpecification":         "Copy-DbaInstanceAuditSpecification",
	"Copy-SqlBackupDevice":               "Copy-DbaBackupDevice",
	"Copy-SqlCentralManagementServer":    "Copy-DbaRegServer",
	"Copy-SqlCredential":                 "Copy-DbaCredential",
	"Copy-SqlCustomError":                "Copy-DbaCustomError",
	"Copy-SqlDatabase":                   "Copy-DbaDatabase",
	"Copy-SqlDatabaseAssembly":           "Copy-DbaDbAssembly",
	"Copy-SqlDatabaseMail":               "Copy-DbaDbMail",
	"Copy-SqlEndpoint":                   "Copy-DbaEndpoint",
	"Copy-SqlExtendedEvent":              "Copy-DbaXESession",
	"Copy-SqlJob":                        "Copy-DbaAgentJob",
	"Copy-SqlJobServer":                  "Copy-DbaAgentServer",
	"Copy-SqlLinkedServer":               "Copy-DbaLinkedServer",
	"Copy-SqlLogin":                      "Copy-DbaLogin",
	"Copy-SqlOperator":                   "Copy-DbaAgentOperator",
	"Copy-SqlPolicyManagement":           "Copy-DbaPolicyManagement",
	"Copy-SqlProxyAccount":               "Copy-DbaAgentProxy",
	"Copy-SqlResourceGovernor":           "Copy-DbaResourceGovernor",
	"Copy-SqlServerTrigger":              "Copy-DbaInstanceTrigger",
	"Copy-SqlSharedSchedule":             "Copy-DbaAgentSchedule",
	"Copy-SqlSpConfigure":                "Copy-DbaSpConfigure",
	"Copy-SqlSsisCatalog":                "Copy-DbaSsisCatalog",
	"Copy-SqlSysDbUserObjects":           "Copy-DbaSystemDbUserObject",
	"Expand-DbaTLogResponsibly":          "Expand-DbaDbLogFile",
	"Expand-SqlTLogResponsibly":          "Expand-DbaDbLogFile",
	"Export-DbaDacpac":                   "Export-DbaDacPackage",
	"Export-DbaExecutionPlan":            "Export-DbaExecPlan",
	"Export-SqlLogin":                    "Export-DbaLogin",
	"Export-SqlSpConfigure":              "Export-DbaSpConfigure",
	"Export-SqlUser":                     "Export-DbaUser",
	"Find-DbaDatabaseGrowthEvent":        "Find-DbaDbGrowthEvent",
	"Find-DbaDuplicateIndex":             "Find-DbaDbDuplicateIndex",
	"Find-DbaDisabledIndex":              "Find-DbaDbDisabledIndex",
	"Find-DbaUnusedIndex":                "Find-DbaDbUnusedIndex",
	"Get-DbaConfig":                      "Get-DbatoolsConfig",
	"Get-DbaConfigValue":                 "Get-DbatoolsConfigValue",
	"Get-DbaDatabaseAssembly":            "Get-DbaDbAssembly",
	"Get-DbaDatabaseCertificate":         "Get-DbaDbCertificate",
	"Get-DbaDatabaseEncryption":          "Get-DbaDbEncryption",
	"Get-DbaDatabaseFile":                "Get-DbaDbFile",
	"Get-DbaDatabaseFreespace":           "Get-DbaDbSpace",
	"Get-DbaDatabaseMasterKey":           "Get-DbaDbMasterKey",
	"Get-DbaDatabasePartitionFunction":   "Get-DbaDbPartitionFunction",
	"Get-DbaDatabasePartitionScheme":     "Get-DbaDbPartitionScheme",
	"Get-DbaDatabaseSnapshot":            "Get-DbaDbSnapshot",
	"Get-DbaDatabaseSpace":               "Get-DbaDbSpace",
	"Get-DbaDatabaseState":               "Get-DbaDbState",
	"Get-DbaDatabaseUdf":                 "Get-DbaDbUdf",
	"Get-DbaDatabaseUser":                "Get-DbaDbUser",
	"Get-DbaDatabaseView":                "Get-DbaDbView",
	"Get-DbaDbQueryStoreOptions":         "Get-DbaDbQueryStoreOption",
	"Get-DbaJobCategory":                 "Get-DbaAgentJobCategory",
	"Get-DbaLog":                         "Get-DbaErrorLog",
	"Get-DbaOrphanUser":                  "Get-DbaDbOrphanUser",
	"Get-DbaPolicy":                      "Get-DbaPbmPolicy",
	"Get-DbaQueryStoreConfig":            "Get-DbaDbQueryStoreOption",
	"Get-DbaRegisteredServer":            "Get-DbaRegServer",
	"Get-DbaRegisteredServerGroup":       "Get-DbaRegServerGroup",
	"Get-DbaRegisteredServerStore":       "Get-DbaRegServerStore",
	"Get-DbaRestoreHistory":              "Get-DbaDbRestoreHistory",
	"Get-DbaRoleMember":                  "Get-DbaDbRoleMember",
	"Get-DbaSqlBuildReference":           "Get-DbaBuildReference",
	"Get-DbaSqlFeature":                  "Get-DbaFeature",
	"Get-DbaSqlInstanceProperty":         "Get-DbaInstanceProperty",
	"Get-DbaSqlInstanceUserOption":       "Get-DbaInstanceUserOption",
	"Get-DbaSqlManagementObject":         "Get-DbaManagementObject",
	"Get-DbaSqlModule":                   "Get-DbaModule",
	"Get-DbaSqlProductKey":               "Get-DbaProductKey",
	"Get-DbaSqlRegistryRoot":             "Get-DbaRegistryRoot",
	"Get-DbaSqlService":                  "Get-DbaService",
	"Get-DbaTable":                       "Get-DbaDbTable",
	"Get-DbaTraceFile":                   "Get-DbaTrace",
	"Get-DbaUserLevelPermission":         "Get-DbaUserPermission",
	"Get-DbaXEventSession":               "Get-DbaXESession",
	"Get-DbaXEventSessionTarget":         "Get-DbaXESessionTarget",
	"Get-SqlMaxMemory":                   "Get-DbaMaxMemory",
	"Get-SqlRegisteredServerName":        "Get-DbaRegServer",
	"Get-SqlServerKey":                   "Get-DbaProductKey",
	"Import-DbaCsvToSql":                 "Import-DbaCsv",
	"Import-DbaRegisteredServer":         "Import-DbaRegServer",
	"Import-SqlSpConfigure":              "Import-DbaSpConfigure",
	"Install-SqlWhoIsActive":             "Install-DbaWhoIsActive",
	"Invoke-DbaCmd":                      "Invoke-DbaQuery",
	"Invoke-DbaDatabaseClone":            "Invoke-DbaDbClone",
	"Invoke-DbaDatabaseShrink":           "Invoke-DbaDbShrink",
	"Invoke-DbaDatabaseUpgrade":          "Invoke-DbaDbUpgrade",
	"Invoke-DbaLogShipping":              "Invoke-DbaDbLogShipping",
	"Invoke-DbaLogShippingRecovery":      "Invoke-DbaDbLogShipRecovery",
	"Invoke-DbaSqlQuery":                 "Invoke-DbaQuery",
	"Invoke-Sqlcmd2":                     "Invoke-DbaQuery",
	"Measure-DbaVirtualLogFile":          "Measure-DbaDbVirtualLogFile",
	"Move-DbaRegisteredServer":           "Move-DbaRegServer",
	"Move-DbaRegisteredServerGroup":      "Move-DbaRegServerGroup",
	"New-DbaDatabaseCertificate":         "New-DbaDbCertificate",
	"New-DbaDatabaseMasterKey":           "New-DbaDbMasterKey",
	"New-DbaDatabaseSnapshot":            "New-DbaDbSnapshot",
	"New-DbaPublishProfile":              "New-DbaDacProfile",
	"New-DbaSqlConnectionString":         "New-DbaConnectionString",
	"New-DbaSqlConnectionStringBuilder":  "New-DbaConnectionStringBuilder",
	"New-DbaSqlDirectory":                "New-DbaDirectory",
	"Out-DbaDataTable":                   "ConvertTo-DbaDataTable",
	"Publish-DbaDacpac":                  "Publish-DbaDacPackage",
	"Read-DbaXEventFile":                 "Read-DbaXEFile",
	"Remove-DbaDatabaseCertificate":      "Remove-DbaDbCertificate",
	"Remove-DbaDatabaseMasterKey":        "Remove-DbaDbMasterKey",
	"Remove-DbaDatabaseSafely":           "Remove-DbaDbSafely",
	"Remove-DbaDatabaseSnapshot":         "Remove-DbaDbSnapshot",
	"Remove-DbaOrphanUser":               "Remove-DbaDbOrphanUser",
	"Remove-DbaRegisteredServer":         "Remove-DbaRegServer",
	"Remove-DbaRegisteredServerGroup":    "Remove-DbaRegServerGroup",
	"Remove-SqlDatabaseSafely":           "Remove-DbaDbSafely",
	"Remove-SqlOrphanUser":               "Remove-DbaDbOrphanUser",
	"Repair-DbaOrphanUser":               "Repair-DbaDbOrphanUser",
	"Repair-SqlOrphanUser":               "Repair-DbaDbOrphanUser",
	"Reset-SqlAdmin":                     "Reset-DbaAdmin",
	"Restore-DbaDatabaseSnapshot":        "Restore-DbaDbSnapshot",
	"Restore-DbaFromDatabaseSnapshot":    "Restore-DbaDbSnapshot",
	"Restore-SqlBackupFromDirectory":     "Restore-DbaBackupFromDirectory",
	"Set-DbaConfig":                      "Set-DbatoolsConfig",
	"Set-DbaDatabaseOwner":               "Set-DbaDbOwner",
	"Set-DbaDatabaseState":               "Set-DbaDbState",
	"Set-DbaDbQueryStoreOptions":         "Set-DbaDbQueryStoreOption",
	"Set-DbaJobOwner":                    "Set-DbaAgentJobOwner",
	"Set-DbaQueryStoreConfig":            "Set-DbaDbQueryStoreOption",
	"Set-DbaTempDbConfiguration":         "Set-DbaTempdbConfig",
	"Set-SqlMaxMemory":                   "Set-DbaMaxMemory",
	"Set-SqlTempDbConfiguration":         "Set-DbaTempdbConfig",
	"Show-SqlDatabaseList":               "Show-DbaDbList",
	"Show-SqlMigrationConstraint":        "Test-DbaMigrationConstraint",
	"Show-SqlServerFileSystem":           "Show-DbaServerFileSystem",
	"Show-SqlWhoIsActive":                "Invoke-DbaWhoIsActive",
	"Start-DbaSqlService":                "Start-DbaService",
	"Start-SqlMigration":                 "Start-DbaMigration",
	"Stop-DbaSqlService":                 "Stop-DbaService",
	"Sync-SqlLoginPermission":            "Sync-DbaLoginPermission",
	"Test-DbaDatabaseCollation":          "Test-DbaDbCollation",
	"Test-DbaDatabaseCompatibility":      "Test-DbaDbCompatibility",
	"Test-DbaDatabaseOwner":              "Test-DbaDbOwner",
	"Test-DbaFullRecoveryModel":          "Test-DbaDbRecoveryModel",
	"Test-DbaJobOwner":                   "Test-DbaAgentJobOwner",
	"Test-DbaRecoveryModel":              "Test-DbaDbRecoveryModel",
	"Test-DbaTempDbConfiguration":        "Test-DbaTempdbConfig",
	"Test-DbaValidLogin":                 "Test-DbaWindowsLogin",
	"Test-DbaVirtualLogFile":             "Measure-DbaDbVirtualLogFile",
	"Test-SqlConnection":                 "Test-DbaConnection",
	"Test-SqlDiskAllocation":             "Test-DbaDiskAllocation",
	"Test-SqlMigrationConstraint":        "Test-DbaMigrationConstraint",
	"Test-SqlNetworkLatency":             "Test-DbaNetworkLatency",
	"Test-SqlPath":                       "Test-DbaPath",
	"Test-SqlTempDbConfiguration":        "Test-DbaTempdbConfig",
	"Update-DbaSqlServiceAccount":        "Update-DbaServiceAccount",
	"Watch-DbaXEventSession":             "Watch-DbaXESession",
	"Watch-SqlDbLogin":                   "Watch-DbaDbLogin",
}
