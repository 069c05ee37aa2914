package integration

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonio-bravo/dbactl/pkg/agent"
	"github.com/antonio-bravo/dbactl/pkg/database"
	"github.com/antonio-bravo/dbactl/pkg/login"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// The suite runs against a disposable SQL Server container. Set
// INTEGRATION_TEST=1 to enable it.

func testContext(t *testing.T) (*TestContext, context.Context) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
	}

	ctx := context.Background()
	tc, err := NewTestContext(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { tc.Close(ctx) })
	return tc, ctx
}

func TestDatabaseList(t *testing.T) {
	tc, ctx := testContext(t)

	details, err := database.NewLister(tc.Instance).List(ctx, database.Filter{})
	require.NoError(t, err)

	names := make(map[string]database.Details)
	for _, d := range details {
		names[d.Name] = d
	}
	require.Contains(t, names, "master")
	require.Contains(t, names, "msdb")

	master := names["master"]
	assert.Equal(t, "SIMPLE", master.RecoveryModel)
	assert.Equal(t, "ONLINE", master.State)
	assert.Greater(t, master.SizeMB, 0.0)

	filtered, err := database.NewLister(tc.Instance).List(ctx, database.Filter{ExcludeSystem: true})
	require.NoError(t, err)
	for _, d := range filtered {
		assert.NotContains(t, []string{"master", "model", "msdb", "tempdb"}, d.Name)
	}
}

func TestLoginSetDisableEnable(t *testing.T) {
	tc, ctx := testContext(t)

	_, err := tc.Instance.DB().ExecContext(ctx,
		"CREATE LOGIN integration_login WITH PASSWORD = 'yourStrong(!)Password', CHECK_POLICY = OFF")
	require.NoError(t, err)

	setter := login.NewSetter(tc.Instance, false)
	rec := status.NewRecorder()
	err = setter.Set(ctx, rec, []string{"integration_login"}, login.Options{Disable: true})
	require.NoError(t, err)
	require.Len(t, rec.Records(), 1)
	assert.Equal(t, status.OutcomeSuccessful, rec.Records()[0].Status)

	var disabled bool
	err = tc.Instance.DB().QueryRowContext(ctx,
		"SELECT is_disabled FROM sys.server_principals WHERE name = 'integration_login'").Scan(&disabled)
	require.NoError(t, err)
	assert.True(t, disabled)

	rec = status.NewRecorder()
	err = setter.Set(ctx, rec, []string{"integration_login"}, login.Options{Enable: true})
	require.NoError(t, err)
	require.NoError(t, tc.Instance.DB().QueryRowContext(ctx,
		"SELECT is_disabled FROM sys.server_principals WHERE name = 'integration_login'").Scan(&disabled))
	assert.False(t, disabled)
}

func TestLoginSetMissingLogin(t *testing.T) {
	tc, ctx := testContext(t)

	rec := status.NewRecorder()
	err := login.NewSetter(tc.Instance, false).Set(ctx, rec, []string{"does_not_exist"}, login.Options{Disable: true})
	require.NoError(t, err)
	require.Len(t, rec.Records(), 1)
	assert.Equal(t, status.OutcomeFailed, rec.Records()[0].Status)
	assert.Equal(t, "Login not found", rec.Records()[0].Notes)
}

func TestAgentScheduleCreateWithForce(t *testing.T) {
	tc, ctx := testContext(t)

	// A job with no schedule; the container has msdb but no running Agent,
	// which is enough for the schedule procedures.
	_, err := tc.Instance.DB().ExecContext(ctx,
		"EXEC msdb.dbo.sp_add_job @job_name = N'integration job'")
	require.NoError(t, err)

	rec := status.NewRecorder()
	setter := agent.NewSetter(tc.Instance, true, false)
	err = setter.Set(ctx, rec, []string{"integration job"}, agent.Schedule{
		Name:                      "nightly",
		FrequencyType:             agent.FrequencyWeekly,
		FrequencyInterval:         agent.IntervalWeekdays,
		FrequencyRecurrenceFactor: 1,
		StartTime:                 30000,
		EndTime:                   -1,
	})
	require.NoError(t, err)
	require.Len(t, rec.Records(), 1)
	assert.Equal(t, status.OutcomeSuccessful, rec.Records()[0].Status)

	var freqType, freqInterval int
	err = tc.Instance.DB().QueryRowContext(ctx, `
SELECT s.freq_type, s.freq_interval
FROM msdb.dbo.sysschedules s
JOIN msdb.dbo.sysjobschedules js ON js.schedule_id = s.schedule_id
JOIN msdb.dbo.sysjobs j ON j.job_id = js.job_id
WHERE j.name = 'integration job' AND s.name = 'nightly'`).Scan(&freqType, &freqInterval)
	require.NoError(t, err)
	assert.Equal(t, int(agent.FrequencyWeekly), freqType)
	assert.Equal(t, agent.IntervalWeekdays, freqInterval)
}

func TestAgentScheduleMissingWithoutForce(t *testing.T) {
	tc, ctx := testContext(t)

	_, err := tc.Instance.DB().ExecContext(ctx,
		"EXEC msdb.dbo.sp_add_job @job_name = N'forceless job'")
	require.NoError(t, err)

	rec := status.NewRecorder()
	setter := agent.NewSetter(tc.Instance, false, false)
	err = setter.Set(ctx, rec, []string{"forceless job"}, agent.Schedule{
		Name:          "missing",
		FrequencyType: agent.FrequencyDaily,
		StartTime:     -1,
		EndTime:       -1,
	})
	require.NoError(t, err)
	require.Len(t, rec.Records(), 1)
	assert.Equal(t, status.OutcomeSkipped, rec.Records()[0].Status)
}
