package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/agent"
	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// scheduleSetCmd represents the schedule set command
var scheduleSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change an Agent job schedule",
	Long: `Change the named schedule on one or more Agent jobs. The schedule
must already be attached to the job; --force creates and attaches it when
missing.

Weekly day lists fold into the Agent bit flags, so
"--frequency-interval Monday,Wednesday,Friday" and any reordering of it are
the same schedule. Dates are yyyyMMdd, times are HHmmss; both are validated
before any instance is contacted.

Example:
  dbactl schedule set --destination sql02 --job NightlyEtl --schedule Nightly \
    --frequency-type Daily --start-time 030000
  dbactl schedule set --destination sql02 --job NightlyEtl --schedule Nightly \
    --frequency-type Weekly --frequency-interval Weekdays --disable`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, err := scheduleFromFlags(cmd)
		if err != nil {
			return err
		}

		jobs, _ := cmd.Flags().GetStringSlice("job")
		force, _ := cmd.Flags().GetBool("force")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		rec := status.NewRecorder()
		err = forEachDestination(cmd, "", rec, func(dest *instance.Instance) error {
			setter := agent.NewSetter(dest, force, dryRun)
			return setter.Set(cmd.Context(), rec, jobs, sched)
		})
		if err != nil {
			return err
		}
		return finish(cmd, rec)
	},
}

// scheduleFromFlags validates every flag before any server contact.
func scheduleFromFlags(cmd *cobra.Command) (agent.Schedule, error) {
	flags := cmd.Flags()
	sched := agent.Schedule{StartTime: -1, EndTime: -1}

	sched.Name, _ = flags.GetString("schedule")
	sched.NewName, _ = flags.GetString("new-name")

	if flags.Changed("enable") && flags.Changed("disable") {
		return sched, fmt.Errorf("--enable and --disable are mutually exclusive")
	}
	if flags.Changed("enable") || flags.Changed("disable") {
		enabled := !flags.Changed("disable")
		sched.Enabled = &enabled
	}

	var err error
	if name, _ := flags.GetString("frequency-type"); name != "" {
		if sched.FrequencyType, err = agent.ParseFrequencyType(name); err != nil {
			return sched, err
		}
	}

	if days, _ := flags.GetStringSlice("frequency-interval"); len(days) > 0 {
		switch sched.FrequencyType {
		case agent.FrequencyMonthly:
			day, _ := flags.GetInt("frequency-interval-day")
			if sched.FrequencyInterval, err = agent.MonthlyInterval(day); err != nil {
				return sched, err
			}
		default:
			if sched.FrequencyInterval, err = agent.WeeklyInterval(days); err != nil {
				return sched, err
			}
		}
	} else if day, _ := flags.GetInt("frequency-interval-day"); day > 0 {
		if sched.FrequencyInterval, err = agent.MonthlyInterval(day); err != nil {
			return sched, err
		}
	}

	if name, _ := flags.GetString("frequency-subday-type"); name != "" {
		if sched.FrequencySubdayType, err = agent.ParseSubdayType(name); err != nil {
			return sched, err
		}
	}
	sched.FrequencySubdayInterval, _ = flags.GetInt("frequency-subday-interval")
	if err := agent.ValidateSubdayInterval(sched.FrequencySubdayType, sched.FrequencySubdayInterval); err != nil {
		return sched, err
	}

	if name, _ := flags.GetString("frequency-relative-interval"); name != "" {
		if sched.FrequencyRelativeInterval, err = agent.ParseRelativeInterval(name); err != nil {
			return sched, err
		}
	}
	sched.FrequencyRecurrenceFactor, _ = flags.GetInt("frequency-recurrence-factor")

	start, _ := flags.GetString("start-date")
	if sched.StartDate, err = agent.ValidateDate("--start-date", start); err != nil {
		return sched, err
	}
	end, _ := flags.GetString("end-date")
	if sched.EndDate, err = agent.ValidateDate("--end-date", end); err != nil {
		return sched, err
	}
	if err := agent.ValidateDateRange(sched.StartDate, sched.EndDate); err != nil {
		return sched, err
	}

	startTime, _ := flags.GetString("start-time")
	if sched.StartTime, err = agent.ValidateTime("--start-time", startTime); err != nil {
		return sched, err
	}
	endTime, _ := flags.GetString("end-time")
	if sched.EndTime, err = agent.ValidateTime("--end-time", endTime); err != nil {
		return sched, err
	}

	return sched, nil
}

func init() {
	scheduleCmd.AddCommand(scheduleSetCmd)
	addDestinationFlags(scheduleSetCmd)
	addCopyFlags(scheduleSetCmd)
	scheduleSetCmd.Flags().StringSlice("job", nil, "Agent job to change (repeatable)")
	scheduleSetCmd.Flags().String("schedule", "", "Schedule name")
	scheduleSetCmd.Flags().String("new-name", "", "Rename the schedule")
	scheduleSetCmd.Flags().Bool("enable", false, "Enable the schedule")
	scheduleSetCmd.Flags().Bool("disable", false, "Disable the schedule")
	scheduleSetCmd.Flags().String("frequency-type", "", "Once, Daily, Weekly, Monthly, MonthlyRelative, AgentStart or IdleComputer")
	scheduleSetCmd.Flags().StringSlice("frequency-interval", nil, "Day names (Monday,... or Weekdays, Weekend, EveryDay) or a raw bit mask")
	scheduleSetCmd.Flags().Int("frequency-interval-day", 0, "Day of month 1-31 for monthly schedules")
	scheduleSetCmd.Flags().String("frequency-subday-type", "", "Time, Seconds, Minutes or Hours")
	scheduleSetCmd.Flags().Int("frequency-subday-interval", 0, "Repeat interval within the day")
	scheduleSetCmd.Flags().String("frequency-relative-interval", "", "First, Second, Third, Fourth or Last")
	scheduleSetCmd.Flags().Int("frequency-recurrence-factor", 0, "Weeks or months between runs")
	scheduleSetCmd.Flags().String("start-date", "", "Schedule start date (yyyyMMdd)")
	scheduleSetCmd.Flags().String("end-date", "", "Schedule end date (yyyyMMdd)")
	scheduleSetCmd.Flags().String("start-time", "", "Schedule start time (HHmmss)")
	scheduleSetCmd.Flags().String("end-time", "", "Schedule end time (HHmmss)")
	_ = scheduleSetCmd.MarkFlagRequired("job")
	_ = scheduleSetCmd.MarkFlagRequired("schedule")
}
