package login

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonio-bravo/dbactl/pkg/status"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"disable alone", Options{Disable: true}, ""},
		{"password alone", Options{Password: "s3cret!"}, ""},
		{"enable and disable", Options{Enable: true, Disable: true}, "mutually exclusive"},
		{"grant and deny", Options{GrantConnect: true, DenyConnect: true}, "mutually exclusive"},
		{"password and random", Options{Password: "x", RandomPassword: true}, "mutually exclusive"},
		{"must change without password", Options{MustChange: true}, "requires a new password"},
		{"must change with random password", Options{MustChange: true, RandomPassword: true}, ""},
		{"unlock without password", Options{Unlock: true}, "requires a new password"},
		{"unlock with password", Options{Unlock: true, Password: "x"}, ""},
		{"role in both lists", Options{AddRoles: []string{"sysadmin"}, RemoveRoles: []string{"SYSADMIN"}}, "both"},
		{"nothing requested", Options{}, "no changes requested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestStatementsOrderAndQuoting(t *testing.T) {
	stmts := statements("app]user", Options{
		Password:        "p'ss",
		MustChange:      true,
		DefaultDatabase: "AppDb",
		Disable:         true,
		AddRoles:        []string{"dbcreator"},
		NewName:         "new_user",
	})

	require.Len(t, stmts, 5)
	assert.Equal(t, "ALTER LOGIN [app]]user] WITH PASSWORD = N'p''ss' MUST_CHANGE, CHECK_EXPIRATION = ON, CHECK_POLICY = ON", stmts[0])
	assert.Equal(t, "ALTER LOGIN [app]]user] WITH DEFAULT_DATABASE = [AppDb]", stmts[1])
	assert.Equal(t, "ALTER LOGIN [app]]user] DISABLE", stmts[2])
	assert.Equal(t, "ALTER SERVER ROLE [dbcreator] ADD MEMBER [app]]user]", stmts[3])
	// The rename always comes last.
	assert.Equal(t, "ALTER LOGIN [app]]user] WITH NAME = [new_user]", stmts[4])
}

func TestRandomPassword(t *testing.T) {
	a, err := RandomPassword()
	require.NoError(t, err)
	b, err := RandomPassword()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestSetAppliesStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	setter := &Setter{DB: db, InstanceName: "sql02"}

	mock.ExpectQuery(`SELECT 1 FROM sys.server_principals`).
		WithArgs("app_user").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(`ALTER LOGIN \[app_user\] DISABLE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DENY CONNECT SQL TO \[app_user\]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := status.NewRecorder()
	err = setter.Set(context.Background(), rec, []string{"app_user"}, Options{Disable: true, DenyConnect: true})
	require.NoError(t, err)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, status.OutcomeSuccessful, records[0].Status)
	assert.Equal(t, "disabled; connect denied", records[0].Notes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetMissingLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	setter := &Setter{DB: db, InstanceName: "sql02"}

	mock.ExpectQuery(`SELECT 1 FROM sys.server_principals`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	rec := status.NewRecorder()
	err = setter.Set(context.Background(), rec, []string{"ghost"}, Options{Disable: true})
	require.NoError(t, err)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, status.OutcomeFailed, records[0].Status)
	assert.Equal(t, "Login not found", records[0].Notes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetDryRunNeverMutates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	setter := &Setter{DB: db, InstanceName: "sql02", DryRun: true}

	mock.ExpectQuery(`SELECT 1 FROM sys.server_principals`).
		WithArgs("app_user").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	rec := status.NewRecorder()
	err = setter.Set(context.Background(), rec, []string{"app_user"}, Options{Disable: true})
	require.NoError(t, err)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, status.OutcomeSkipped, records[0].Status)
	assert.Contains(t, records[0].Notes, "Dry run")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetContinuesPastFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	setter := &Setter{DB: db, InstanceName: "sql02"}

	mock.ExpectQuery(`SELECT 1 FROM sys.server_principals`).
		WithArgs("broken").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(`ALTER LOGIN \[broken\] DISABLE`).
		WillReturnError(assert.AnError)
	mock.ExpectQuery(`SELECT 1 FROM sys.server_principals`).
		WithArgs("fine").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(`ALTER LOGIN \[fine\] DISABLE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := status.NewRecorder()
	err = setter.Set(context.Background(), rec, []string{"broken", "fine"}, Options{Disable: true})
	require.NoError(t, err)

	records := rec.Records()
	require.Len(t, records, 2)
	assert.Equal(t, status.OutcomeFailed, records[0].Status)
	assert.Equal(t, status.OutcomeSuccessful, records[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
