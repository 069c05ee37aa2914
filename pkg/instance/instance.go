package instance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultConnectTimeout bounds the initial connection attempt.
const DefaultConnectTimeout = 15 * time.Second

// Credential is a SQL login used to connect to an instance. When nil,
// integrated/trusted authentication is attempted.
type Credential struct {
	Username string
	Password string
}

// Config holds everything needed to reach one instance.
type Config struct {
	// Address is the instance address: "host", "host,port" or "host\named".
	Address string
	// Credential is optional; nil means trusted authentication.
	Credential *Credential
	// Database to connect to (defaults to master).
	Database string
	// ConnectTimeout bounds the connection attempt (defaults to DefaultConnectTimeout).
	ConnectTimeout time.Duration
	// TrustServerCertificate disables certificate validation.
	TrustServerCertificate bool
}

// ConnectionError marks a failure to reach a target instance. Commands treat
// it as fatal for that target only and continue with the remaining targets.
type ConnectionError struct {
	Address string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.Address, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsConnectionError reports whether err is (or wraps) a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// Querier is the subset of database/sql used by the copy and set engines.
// *sql.DB satisfies it, as does sqlmock in tests.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Instance is a live handle to one SQL Server instance.
type Instance struct {
	address string
	name    string
	gorm    *gorm.DB
	sql     *sql.DB
}

// DSN builds a go-mssqldb connection URL from cfg.
func DSN(cfg Config) string {
	host := cfg.Address
	instancePath := ""

	// "host\named" carries an instance name, "host,port" a port.
	if idx := strings.IndexByte(host, '\\'); idx >= 0 {
		instancePath = host[idx+1:]
		host = host[:idx]
	}
	host = strings.Replace(host, ",", ":", 1)

	database := cfg.Database
	if database == "" {
		database = "master"
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = DefaultConnectTimeout
	}

	query := url.Values{}
	query.Set("database", database)
	query.Set("app name", "dbactl")
	query.Set("dial timeout", fmt.Sprintf("%d", int(timeout.Seconds())))
	if cfg.TrustServerCertificate {
		query.Set("TrustServerCertificate", "true")
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     host,
		RawQuery: query.Encode(),
	}
	if instancePath != "" {
		u.Path = instancePath
	}
	if cfg.Credential != nil {
		u.User = url.UserPassword(cfg.Credential.Username, cfg.Credential.Password)
	}

	return u.String()
}

// Connect establishes a connection to the instance described by cfg. Any
// failure is returned as a ConnectionError carrying the target address.
func Connect(cfg Config) (*Instance, error) {
	logMode := logger.Silent
	if os.Getenv("DBACTL_LOG_LEVEL") == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(
		sqlserver.Open(DSN(cfg)),
		&gorm.Config{
			Logger:               logger.Default.LogMode(logMode),
			DisableAutomaticPing: true,
		},
	)
	if err != nil {
		return nil, &ConnectionError{Address: cfg.Address, Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{Address: cfg.Address, Err: err}
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = DefaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectionError{Address: cfg.Address, Err: err}
	}

	inst := &Instance{
		address: cfg.Address,
		gorm:    db,
		sql:     sqlDB,
	}

	// Best effort; falls back to the configured address.
	var name sql.NullString
	if err := sqlDB.QueryRowContext(ctx, "SELECT @@SERVERNAME").Scan(&name); err == nil && name.Valid {
		inst.name = name.String
	}

	return inst, nil
}

// NewWithDB wraps an existing database handle. Useful for testing with
// sqlmock; the gorm handle is layered over the same connection.
func NewWithDB(address string, sqlDB *sql.DB) (*Instance, error) {
	db, err := gorm.Open(
		sqlserver.New(sqlserver.Config{Conn: sqlDB}),
		&gorm.Config{
			Logger:               logger.Default.LogMode(logger.Silent),
			DisableAutomaticPing: true,
		},
	)
	if err != nil {
		return nil, err
	}

	return &Instance{address: address, name: address, gorm: db, sql: sqlDB}, nil
}

// Address returns the address the instance was connected with.
func (i *Instance) Address() string { return i.address }

// Name returns the server's reported name (@@SERVERNAME), falling back to
// the address when it could not be resolved.
func (i *Instance) Name() string {
	if i.name != "" {
		return i.name
	}
	return i.address
}

// Gorm returns the gorm handle.
func (i *Instance) Gorm() *gorm.DB { return i.gorm }

// DB returns the underlying database/sql handle.
func (i *Instance) DB() *sql.DB { return i.sql }

// Close closes the underlying connection.
func (i *Instance) Close() error {
	if i.sql != nil {
		return i.sql.Close()
	}
	return nil
}
