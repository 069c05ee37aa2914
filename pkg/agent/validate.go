package agent

import (
	"fmt"
	"strconv"
	"time"
)

// Schedule date bounds enforced by msdb.
var (
	minScheduleDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	maxScheduleDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// ValidateDate parses a yyyyMMdd schedule date and checks the msdb range.
// The empty string is allowed and returns zero.
func ValidateDate(name, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	t, err := time.Parse("20060102", value)
	if err != nil {
		return 0, fmt.Errorf("%s %q must be a valid yyyyMMdd date", name, value)
	}
	if t.Before(minScheduleDate) || t.After(maxScheduleDate) {
		return 0, fmt.Errorf("%s %q must be between 19900101 and 99991231", name, value)
	}
	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s %q must be a valid yyyyMMdd date", name, value)
	}
	return out, nil
}

// ValidateTime parses an HHmmss schedule time with range checks.
// The empty string is allowed and returns -1 so callers can distinguish
// "not supplied" from midnight.
func ValidateTime(name, value string) (int, error) {
	if value == "" {
		return -1, nil
	}
	if len(value) != 6 {
		return 0, fmt.Errorf("%s %q must be a valid HHmmss time", name, value)
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%s %q must be a valid HHmmss time", name, value)
		}
	}
	h, _ := strconv.Atoi(value[0:2])
	m, _ := strconv.Atoi(value[2:4])
	s, _ := strconv.Atoi(value[4:6])
	if h > 23 || m > 59 || s > 59 {
		return 0, fmt.Errorf("%s %q is out of range: hours 00-23, minutes 00-59, seconds 00-59", name, value)
	}
	return h*10000 + m*100 + s, nil
}

// ValidateDateRange checks end >= start when both are supplied.
func ValidateDateRange(start, end int) error {
	if start != 0 && end != 0 && end < start {
		return fmt.Errorf("end date %d cannot precede start date %d", end, start)
	}
	return nil
}

// ValidateSubdayInterval checks the recurrence interval against the subday type.
func ValidateSubdayInterval(subdayType SubdayType, interval int) error {
	switch subdayType {
	case SubdayTime:
		if interval != 0 {
			return fmt.Errorf("subday interval must be 0 when subday type is Time")
		}
	case SubdaySeconds:
		if interval < 10 || interval > 59 {
			return fmt.Errorf("subday interval %d out of range for Seconds: 10-59", interval)
		}
	case SubdayMinutes:
		if interval < 1 || interval > 59 {
			return fmt.Errorf("subday interval %d out of range for Minutes: 1-59", interval)
		}
	case SubdayHours:
		if interval < 1 || interval > 23 {
			return fmt.Errorf("subday interval %d out of range for Hours: 1-23", interval)
		}
	}
	return nil
}
