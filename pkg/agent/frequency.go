package agent

import (
	"fmt"
	"strconv"
	"strings"
)

// FrequencyType is the msdb freq_type value for an Agent schedule.
type FrequencyType int

const (
	FrequencyOnce            FrequencyType = 1
	FrequencyDaily           FrequencyType = 4
	FrequencyWeekly          FrequencyType = 8
	FrequencyMonthly         FrequencyType = 16
	FrequencyMonthlyRelative FrequencyType = 32
	FrequencyAgentStart      FrequencyType = 64
	FrequencyIdleComputer    FrequencyType = 128
)

// ParseFrequencyType accepts both the canonical names and the historical
// aliases (OneTime, AutoStart, OnIdle), case-insensitively, as well as the
// raw numeric values.
func ParseFrequencyType(s string) (FrequencyType, error) {
	switch strings.ToLower(s) {
	case "once", "onetime", "1":
		return FrequencyOnce, nil
	case "daily", "4":
		return FrequencyDaily, nil
	case "weekly", "8":
		return FrequencyWeekly, nil
	case "monthly", "16":
		return FrequencyMonthly, nil
	case "monthlyrelative", "32":
		return FrequencyMonthlyRelative, nil
	case "agentstart", "autostart", "64":
		return FrequencyAgentStart, nil
	case "idlecomputer", "onidle", "128":
		return FrequencyIdleComputer, nil
	default:
		return 0, fmt.Errorf("invalid frequency type %q", s)
	}
}

// SubdayType is the msdb freq_subday_type value.
type SubdayType int

const (
	SubdayTime    SubdayType = 1
	SubdaySeconds SubdayType = 2
	SubdayMinutes SubdayType = 4
	SubdayHours   SubdayType = 8
)

// ParseSubdayType accepts the canonical names, the Once alias for Time, and
// the raw numeric values.
func ParseSubdayType(s string) (SubdayType, error) {
	switch strings.ToLower(s) {
	case "time", "once", "1":
		return SubdayTime, nil
	case "seconds", "second", "2":
		return SubdaySeconds, nil
	case "minutes", "minute", "4":
		return SubdayMinutes, nil
	case "hours", "hour", "8":
		return SubdayHours, nil
	default:
		return 0, fmt.Errorf("invalid frequency subday type %q", s)
	}
}

// RelativeInterval is the msdb freq_relative_interval value for
// monthly-relative schedules.
type RelativeInterval int

const (
	RelativeUnused RelativeInterval = 0
	RelativeFirst  RelativeInterval = 1
	RelativeSecond RelativeInterval = 2
	RelativeThird  RelativeInterval = 4
	RelativeFourth RelativeInterval = 8
	RelativeLast   RelativeInterval = 16
)

// ParseRelativeInterval accepts the ordinal names and raw numeric values.
func ParseRelativeInterval(s string) (RelativeInterval, error) {
	switch strings.ToLower(s) {
	case "", "unused", "0":
		return RelativeUnused, nil
	case "first", "1":
		return RelativeFirst, nil
	case "second", "2":
		return RelativeSecond, nil
	case "third", "4":
		return RelativeThird, nil
	case "fourth", "8":
		return RelativeFourth, nil
	case "last", "16":
		return RelativeLast, nil
	default:
		return 0, fmt.Errorf("invalid frequency relative interval %q", s)
	}
}

// Weekly interval bit values, Sunday=1 through Saturday=64. The composite
// literals fold to fixed values regardless of input order.
const (
	IntervalSunday    = 1
	IntervalMonday    = 2
	IntervalTuesday   = 4
	IntervalWednesday = 8
	IntervalThursday  = 16
	IntervalFriday    = 32
	IntervalSaturday  = 64
	IntervalWeekdays  = 62
	IntervalWeekend   = 65
	IntervalEveryDay  = 127
)

var weekdayBits = map[string]int{
	"sunday":    IntervalSunday,
	"monday":    IntervalMonday,
	"tuesday":   IntervalTuesday,
	"wednesday": IntervalWednesday,
	"thursday":  IntervalThursday,
	"friday":    IntervalFriday,
	"saturday":  IntervalSaturday,
	"weekdays":  IntervalWeekdays,
	"weekend":   IntervalWeekend,
	"everyday":  IntervalEveryDay,
}

// WeeklyInterval folds a set of day names (or the Weekdays/Weekend/EveryDay
// literals, or raw bit values) into the freq_interval bit-field. The result
// is independent of input order.
func WeeklyInterval(days []string) (int, error) {
	interval := 0
	for _, day := range days {
		bit, ok := weekdayBits[strings.ToLower(strings.TrimSpace(day))]
		if !ok {
			// Raw bit values 1..127 pass through.
			n, err := strconv.Atoi(strings.TrimSpace(day))
			if err != nil || n < 1 || n > IntervalEveryDay {
				return 0, fmt.Errorf("invalid day of week %q", day)
			}
			bit = n
		}
		interval |= bit
	}
	if interval == 0 {
		return 0, fmt.Errorf("weekly schedules require at least one day")
	}
	return interval, nil
}

// MonthlyInterval validates a day-of-month for monthly schedules.
func MonthlyInterval(day int) (int, error) {
	if day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day of month %d: must be between 1 and 31", day)
	}
	return day, nil
}
