// Package agent manipulates SQL Server Agent job schedules.
//
// The interesting part is the frequency encoding: msdb stores a schedule's
// recurrence as bit-flag integers (freq_type, freq_interval,
// freq_subday_type, freq_relative_interval). Weekly intervals fold day names
// into a bit-field, Sunday=1 through Saturday=64, with the literals
// Weekdays=62, Weekend=65 and EveryDay=127.
//
// Validation happens before any server contact: malformed dates (yyyyMMdd),
// times (HHmmss) and out-of-range intervals abort the invocation.
package agent
