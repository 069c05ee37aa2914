package resourcegov

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/antonio-bravo/dbactl/pkg/status"
)

func newResourcegovCopier(t *testing.T, force, dryRun bool, pools []string) (*Copier, sqlmock.Sqlmock, sqlmock.Sqlmock) {
	t.Helper()
	sourceDB, sourceMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create source sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sourceDB.Close() })

	destDB, destMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create dest sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = destDB.Close() })

	copier := &Copier{
		Source:     sourceDB,
		Dest:       destDB,
		SourceName: "sql01",
		DestName:   "sql02",
		Force:      force,
		DryRun:     dryRun,
		Pools:      pools,
	}
	return copier, sourceMock, destMock
}

func poolRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"name", "min_cpu_percent", "max_cpu_percent", "cap_cpu_percent",
		"min_memory_percent", "max_memory_percent",
	})
}

func groupRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"name", "importance", "request_max_memory_grant_percent",
		"request_max_cpu_time_sec", "request_memory_grant_timeout_sec",
		"max_dop", "group_max_requests",
	})
}

func TestCopyCreatesPoolAndGroup(t *testing.T) {
	copier, sourceMock, destMock := newResourcegovCopier(t, false, false, nil)

	sourceMock.ExpectQuery(`FROM sys.resource_governor_resource_pools`).
		WillReturnRows(poolRows().AddRow("reporting", 0, 50, 100, 0, 40))
	sourceMock.ExpectQuery(`FROM sys.resource_governor_workload_groups g`).
		WithArgs("reporting").
		WillReturnRows(groupRows().AddRow("reports", "Medium", 25, 0, 0, 4, 0))
	sourceMock.ExpectQuery(`JOIN sys.sql_modules m`).
		WillReturnRows(sqlmock.NewRows([]string{"schema", "name", "definition"}))
	sourceMock.ExpectQuery(`SELECT is_enabled FROM sys.resource_governor_configuration`).
		WillReturnRows(sqlmock.NewRows([]string{"is_enabled"}).AddRow(true))

	destMock.ExpectQuery(`SELECT 1 FROM sys.resource_governor_resource_pools`).
		WithArgs("reporting").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	destMock.ExpectExec(`CREATE RESOURCE POOL \[reporting\] WITH \(MIN_CPU_PERCENT = 0, MAX_CPU_PERCENT = 50`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	destMock.ExpectExec(`CREATE WORKLOAD GROUP \[reports\] WITH \(IMPORTANCE = Medium`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	destMock.ExpectExec(`ALTER RESOURCE GOVERNOR RECONFIGURE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := status.NewRecorder()
	if err := copier.Copy(context.Background(), rec); err != nil {
		t.Errorf("Copy() error = %v", err)
	}

	records := rec.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].Type != "Resource Pool" || records[0].Status != status.OutcomeSuccessful {
		t.Errorf("unexpected pool record: %+v", records[0])
	}
	if records[1].Type != "Resource Governor State" || records[1].Status != status.OutcomeSuccessful {
		t.Errorf("unexpected state record: %+v", records[1])
	}

	if err := sourceMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled source expectations: %v", err)
	}
	if err := destMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled dest expectations: %v", err)
	}
}

func TestCopySkipsExistingPoolWithoutForce(t *testing.T) {
	copier, sourceMock, destMock := newResourcegovCopier(t, false, false, nil)

	sourceMock.ExpectQuery(`FROM sys.resource_governor_resource_pools`).
		WillReturnRows(poolRows().AddRow("reporting", 0, 50, 100, 0, 40))
	sourceMock.ExpectQuery(`FROM sys.resource_governor_workload_groups g`).
		WithArgs("reporting").
		WillReturnRows(groupRows())
	sourceMock.ExpectQuery(`JOIN sys.sql_modules m`).
		WillReturnRows(sqlmock.NewRows([]string{"schema", "name", "definition"}))
	sourceMock.ExpectQuery(`SELECT is_enabled FROM sys.resource_governor_configuration`).
		WillReturnRows(sqlmock.NewRows([]string{"is_enabled"}).AddRow(true))

	destMock.ExpectQuery(`SELECT 1 FROM sys.resource_governor_resource_pools`).
		WithArgs("reporting").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	rec := status.NewRecorder()
	if err := copier.Copy(context.Background(), rec); err != nil {
		t.Errorf("Copy() error = %v", err)
	}

	records := rec.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].Status != status.OutcomeSkipped {
		t.Errorf("expected pool Skipped, got %+v", records[0])
	}
	// Nothing changed: the governor is left alone.
	if records[1].Status != status.OutcomeSkipped {
		t.Errorf("expected state Skipped, got %+v", records[1])
	}

	if err := destMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled dest expectations: %v", err)
	}
}

func TestCopyClassifierFunction(t *testing.T) {
	copier, sourceMock, destMock := newResourcegovCopier(t, false, false, nil)

	definition := "CREATE FUNCTION dbo.classify() RETURNS SYSNAME WITH SCHEMABINDING AS BEGIN RETURN N'reports' END"

	sourceMock.ExpectQuery(`FROM sys.resource_governor_resource_pools`).
		WillReturnRows(poolRows())
	sourceMock.ExpectQuery(`JOIN sys.sql_modules m`).
		WillReturnRows(sqlmock.NewRows([]string{"schema", "name", "definition"}).
			AddRow("dbo", "classify", definition))
	sourceMock.ExpectQuery(`SELECT is_enabled FROM sys.resource_governor_configuration`).
		WillReturnRows(sqlmock.NewRows([]string{"is_enabled"}).AddRow(true))

	destMock.ExpectQuery(`WHERE classifier_function_id <> 0`).
		WillReturnRows(sqlmock.NewRows([]string{"schema", "name"}))
	destMock.ExpectExec(`CREATE FUNCTION dbo.classify`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	destMock.ExpectExec(`ALTER RESOURCE GOVERNOR WITH \(CLASSIFIER_FUNCTION = \[dbo\].\[classify\]\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	destMock.ExpectExec(`ALTER RESOURCE GOVERNOR RECONFIGURE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := status.NewRecorder()
	if err := copier.Copy(context.Background(), rec); err != nil {
		t.Errorf("Copy() error = %v", err)
	}

	records := rec.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].Type != "Classifier Function" || records[0].Status != status.OutcomeSuccessful {
		t.Errorf("unexpected classifier record: %+v", records[0])
	}

	if err := destMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled dest expectations: %v", err)
	}
}

func TestCopyClassifierReadFailure(t *testing.T) {
	copier, sourceMock, destMock := newResourcegovCopier(t, false, false, nil)

	sourceMock.ExpectQuery(`FROM sys.resource_governor_resource_pools`).
		WillReturnRows(poolRows())
	sourceMock.ExpectQuery(`JOIN sys.sql_modules m`).
		WillReturnError(errors.New("definition unavailable"))
	sourceMock.ExpectQuery(`SELECT is_enabled FROM sys.resource_governor_configuration`).
		WillReturnRows(sqlmock.NewRows([]string{"is_enabled"}).AddRow(true))

	rec := status.NewRecorder()
	if err := copier.Copy(context.Background(), rec); err != nil {
		t.Errorf("Copy() error = %v", err)
	}

	records := rec.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].Status != status.OutcomeFailed {
		t.Errorf("expected classifier Failed, got %+v", records[0])
	}
	// The record keeps a readable name when the source row never scanned.
	if records[0].Name != "classifier function" {
		t.Errorf("unexpected record name %q", records[0].Name)
	}

	if err := sourceMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled source expectations: %v", err)
	}
	if err := destMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled dest expectations: %v", err)
	}
}

func TestCopyPoolFilter(t *testing.T) {
	copier, sourceMock, destMock := newResourcegovCopier(t, false, true, []string{"etl"})

	sourceMock.ExpectQuery(`FROM sys.resource_governor_resource_pools`).
		WillReturnRows(poolRows().AddRow("reporting", 0, 50, 100, 0, 40))
	sourceMock.ExpectQuery(`FROM sys.resource_governor_workload_groups g`).
		WithArgs("reporting").
		WillReturnRows(groupRows())
	sourceMock.ExpectQuery(`JOIN sys.sql_modules m`).
		WillReturnRows(sqlmock.NewRows([]string{"schema", "name", "definition"}))
	sourceMock.ExpectQuery(`SELECT is_enabled FROM sys.resource_governor_configuration`).
		WillReturnRows(sqlmock.NewRows([]string{"is_enabled"}).AddRow(true))

	rec := status.NewRecorder()
	if err := copier.Copy(context.Background(), rec); err != nil {
		t.Errorf("Copy() error = %v", err)
	}

	// The filtered-out pool produces no record; dry run leaves the governor
	// untouched.
	records := rec.Records()
	if len(records) != 1 || records[0].Type != "Resource Governor State" {
		t.Fatalf("expected only the state record, got %+v", records)
	}
	if records[0].Status != status.OutcomeSkipped {
		t.Errorf("expected state Skipped, got %+v", records[0])
	}

	if err := destMock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled dest expectations: %v", err)
	}
}
