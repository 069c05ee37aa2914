package integration

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmssql "github.com/testcontainers/testcontainers-go/modules/mssql"

	"github.com/antonio-bravo/dbactl/pkg/instance"
)

const (
	mssqlImage    = "mcr.microsoft.com/mssql/server:2022-latest"
	mssqlPassword = "yourStrong(!)Password"
)

// TestContext holds the SQL Server container and a connected instance handle
// shared by the integration tests.
type TestContext struct {
	Container *tcmssql.MSSQLServerContainer
	Instance  *instance.Instance
	Address   string
}

// NewTestContext starts a SQL Server container and connects to it.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	container, err := tcmssql.Run(ctx,
		mssqlImage,
		tcmssql.WithAcceptEULA(),
		tcmssql.WithPassword(mssqlPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start mssql container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "1433")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	address := fmt.Sprintf("%s,%s", host, port.Port())

	inst, err := instance.Connect(instance.Config{
		Address:                address,
		Credential:             &instance.Credential{Username: "sa", Password: mssqlPassword},
		ConnectTimeout:         2 * time.Minute,
		TrustServerCertificate: true,
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	log.Printf("connected to %s", inst.Name())
	return &TestContext{Container: container, Instance: inst, Address: address}, nil
}

// Connect opens an additional handle to the same container, optionally
// against a specific database.
func (tc *TestContext) Connect(database string) (*instance.Instance, error) {
	return instance.Connect(instance.Config{
		Address:                tc.Address,
		Credential:             &instance.Credential{Username: "sa", Password: mssqlPassword},
		Database:               database,
		ConnectTimeout:         2 * time.Minute,
		TrustServerCertificate: true,
	})
}

// Close tears down the connection and the container.
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Instance != nil {
		_ = tc.Instance.Close()
	}
	if tc.Container != nil {
		if err := testcontainers.TerminateContainer(tc.Container); err != nil {
			log.Printf("failed to terminate container: %v", err)
		}
	}
}
