package agent

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// Schedule describes the desired state of a job schedule. Zero values mean
// "leave unchanged" for updates.
type Schedule struct {
	Name    string
	NewName string
	Enabled *bool

	FrequencyType             FrequencyType
	FrequencyInterval         int
	FrequencySubdayType       SubdayType
	FrequencySubdayInterval   int
	FrequencyRelativeInterval RelativeInterval
	FrequencyRecurrenceFactor int

	StartDate int // yyyyMMdd as int, 0 = unchanged
	EndDate   int
	StartTime int // HHmmss as int, -1 = unchanged
	EndTime   int
}

// Setter applies schedules to Agent jobs on one instance.
type Setter struct {
	DB           instance.Querier
	InstanceName string
	Force        bool
	DryRun       bool
}

// NewSetter builds a Setter for a connected instance.
func NewSetter(inst *instance.Instance, force, dryRun bool) *Setter {
	return &Setter{DB: inst.DB(), InstanceName: inst.Name(), Force: force, DryRun: dryRun}
}

const scheduleLookupQuery = `
SELECT s.schedule_id
FROM msdb.dbo.sysschedules s
JOIN msdb.dbo.sysjobschedules js ON js.schedule_id = s.schedule_id
JOIN msdb.dbo.sysjobs j ON j.job_id = js.job_id
WHERE j.name = @p1 AND s.name = @p2`

const jobLookupQuery = `SELECT job_id FROM msdb.dbo.sysjobs WHERE name = @p1`

// Set applies the schedule to each named job, emitting one record per job.
// A missing schedule is created only when Force is set, mirroring the
// update-or-skip behavior of the original tooling.
func (s *Setter) Set(ctx context.Context, rec *status.Recorder, jobs []string, sched Schedule) error {
	for _, job := range jobs {
		record := status.Record{
			DestinationServer: s.InstanceName,
			Name:              fmt.Sprintf("%s - %s", job, sched.Name),
			Type:              "Agent Schedule",
		}

		var jobID string
		err := s.DB.QueryRowContext(ctx, jobLookupQuery, job).Scan(&jobID)
		if err == sql.ErrNoRows {
			record.Status = status.OutcomeFailed
			record.Notes = fmt.Sprintf("Job %s does not exist on %s", job, s.InstanceName)
			rec.Add(record)
			continue
		}
		if err != nil {
			record.Status = status.OutcomeFailed
			record.Notes = err.Error()
			rec.Add(record)
			continue
		}

		var scheduleID int
		err = s.DB.QueryRowContext(ctx, scheduleLookupQuery, job, sched.Name).Scan(&scheduleID)
		exists := err == nil
		if err != nil && err != sql.ErrNoRows {
			record.Status = status.OutcomeFailed
			record.Notes = err.Error()
			rec.Add(record)
			continue
		}

		switch {
		case !exists && !s.Force:
			record.Status = status.OutcomeSkipped
			record.Notes = fmt.Sprintf("Schedule %s not attached to job %s. Use --force to create it.", sched.Name, job)
		case s.DryRun:
			record.Status = status.OutcomeSkipped
			if exists {
				record.Notes = "Dry run: would update schedule"
			} else {
				record.Notes = "Dry run: would create and attach schedule"
			}
		case exists:
			if err := s.update(ctx, sched); err != nil {
				record.Status = status.OutcomeFailed
				record.Notes = err.Error()
			} else {
				record.Status = status.OutcomeSuccessful
			}
		default:
			if err := s.create(ctx, job, sched); err != nil {
				record.Status = status.OutcomeFailed
				record.Notes = err.Error()
			} else {
				record.Status = status.OutcomeSuccessful
			}
		}

		rec.Add(record)
	}
	return nil
}

func (s *Setter) update(ctx context.Context, sched Schedule) error {
	query := `EXEC msdb.dbo.sp_update_schedule @name = @p1`
	args := []any{sched.Name}
	n := 1

	add := func(param string, value any) {
		n++
		query += fmt.Sprintf(", %s = @p%d", param, n)
		args = append(args, value)
	}

	if sched.NewName != "" {
		add("@new_name", sched.NewName)
	}
	if sched.Enabled != nil {
		enabled := 0
		if *sched.Enabled {
			enabled = 1
		}
		add("@enabled", enabled)
	}
	if sched.FrequencyType != 0 {
		add("@freq_type", int(sched.FrequencyType))
	}
	if sched.FrequencyInterval != 0 {
		add("@freq_interval", sched.FrequencyInterval)
	}
	if sched.FrequencySubdayType != 0 {
		add("@freq_subday_type", int(sched.FrequencySubdayType))
	}
	if sched.FrequencySubdayInterval != 0 {
		add("@freq_subday_interval", sched.FrequencySubdayInterval)
	}
	if sched.FrequencyRelativeInterval != RelativeUnused {
		add("@freq_relative_interval", int(sched.FrequencyRelativeInterval))
	}
	if sched.FrequencyRecurrenceFactor != 0 {
		add("@freq_recurrence_factor", sched.FrequencyRecurrenceFactor)
	}
	if sched.StartDate != 0 {
		add("@active_start_date", sched.StartDate)
	}
	if sched.EndDate != 0 {
		add("@active_end_date", sched.EndDate)
	}
	if sched.StartTime >= 0 {
		add("@active_start_time", sched.StartTime)
	}
	if sched.EndTime >= 0 {
		add("@active_end_time", sched.EndTime)
	}

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating schedule %s: %w", sched.Name, err)
	}
	return nil
}

func (s *Setter) create(ctx context.Context, job string, sched Schedule) error {
	enabled := 1
	if sched.Enabled != nil && !*sched.Enabled {
		enabled = 0
	}
	freqType := sched.FrequencyType
	if freqType == 0 {
		freqType = FrequencyOnce
	}
	query := `EXEC msdb.dbo.sp_add_schedule @schedule_name = @p1, @enabled = @p2, @freq_type = @p3`
	args := []any{sched.Name, enabled, int(freqType)}
	n := 3

	add := func(param string, value any) {
		n++
		query += fmt.Sprintf(", %s = @p%d", param, n)
		args = append(args, value)
	}

	if sched.FrequencyInterval != 0 {
		add("@freq_interval", sched.FrequencyInterval)
	}
	if sched.FrequencySubdayType != 0 {
		add("@freq_subday_type", int(sched.FrequencySubdayType))
	}
	if sched.FrequencySubdayInterval != 0 {
		add("@freq_subday_interval", sched.FrequencySubdayInterval)
	}
	if sched.FrequencyRelativeInterval != RelativeUnused {
		add("@freq_relative_interval", int(sched.FrequencyRelativeInterval))
	}
	if sched.FrequencyRecurrenceFactor != 0 {
		add("@freq_recurrence_factor", sched.FrequencyRecurrenceFactor)
	}
	if sched.StartDate != 0 {
		add("@active_start_date", sched.StartDate)
	}
	if sched.EndDate != 0 {
		add("@active_end_date", sched.EndDate)
	}
	if sched.StartTime >= 0 {
		add("@active_start_time", sched.StartTime)
	}
	if sched.EndTime >= 0 {
		add("@active_end_time", sched.EndTime)
	}

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("creating schedule %s: %w", sched.Name, err)
	}

	_, err := s.DB.ExecContext(ctx,
		`EXEC msdb.dbo.sp_attach_schedule @job_name = @p1, @schedule_name = @p2`,
		job, sched.Name,
	)
	if err != nil {
		return fmt.Errorf("attaching schedule %s to job %s: %w", sched.Name, job, err)
	}
	return nil
}
