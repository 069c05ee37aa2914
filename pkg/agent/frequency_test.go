package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequencyType(t *testing.T) {
	tests := []struct {
		in   string
		want FrequencyType
	}{
		{"Once", FrequencyOnce},
		{"OneTime", FrequencyOnce},
		{"daily", FrequencyDaily},
		{"Weekly", FrequencyWeekly},
		{"monthly", FrequencyMonthly},
		{"MonthlyRelative", FrequencyMonthlyRelative},
		{"AgentStart", FrequencyAgentStart},
		{"AutoStart", FrequencyAgentStart},
		{"IdleComputer", FrequencyIdleComputer},
		{"OnIdle", FrequencyIdleComputer},
		{"64", FrequencyAgentStart},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFrequencyType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFrequencyType("fortnightly")
	assert.Error(t, err)
}

func TestFrequencyTypeValues(t *testing.T) {
	assert.Equal(t, 1, int(FrequencyOnce))
	assert.Equal(t, 4, int(FrequencyDaily))
	assert.Equal(t, 8, int(FrequencyWeekly))
	assert.Equal(t, 16, int(FrequencyMonthly))
	assert.Equal(t, 32, int(FrequencyMonthlyRelative))
	assert.Equal(t, 64, int(FrequencyAgentStart))
	assert.Equal(t, 128, int(FrequencyIdleComputer))
}

func TestWeeklyIntervalBits(t *testing.T) {
	tests := []struct {
		name string
		days []string
		want int
	}{
		{"sunday", []string{"Sunday"}, 1},
		{"monday", []string{"Monday"}, 2},
		{"saturday", []string{"Saturday"}, 64},
		{"monday wednesday friday", []string{"Monday", "Wednesday", "Friday"}, 42},
		{"weekdays literal", []string{"Weekdays"}, 62},
		{"weekend literal", []string{"Weekend"}, 65},
		{"everyday literal", []string{"EveryDay"}, 127},
		{"all days equals everyday", []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}, 127},
		{"weekdays spelled out", []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, 62},
		{"raw bit mask", []string{"42"}, 42},
		{"duplicates fold", []string{"Monday", "Monday"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeeklyInterval(tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeeklyIntervalOrderIndependent(t *testing.T) {
	a, err := WeeklyInterval([]string{"Friday", "Monday", "Wednesday"})
	require.NoError(t, err)
	b, err := WeeklyInterval([]string{"Wednesday", "Friday", "Monday"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWeeklyIntervalErrors(t *testing.T) {
	_, err := WeeklyInterval(nil)
	assert.Error(t, err)

	_, err = WeeklyInterval([]string{"Smonday"})
	assert.Error(t, err)

	_, err = WeeklyInterval([]string{"128"})
	assert.Error(t, err)

	_, err = WeeklyInterval([]string{"12abc"})
	assert.Error(t, err)
}

func TestMonthlyInterval(t *testing.T) {
	got, err := MonthlyInterval(15)
	require.NoError(t, err)
	assert.Equal(t, 15, got)

	_, err = MonthlyInterval(0)
	assert.Error(t, err)
	_, err = MonthlyInterval(32)
	assert.Error(t, err)
}

func TestParseSubdayType(t *testing.T) {
	tests := []struct {
		in   string
		want SubdayType
	}{
		{"Time", SubdayTime},
		{"Once", SubdayTime},
		{"Seconds", SubdaySeconds},
		{"Minutes", SubdayMinutes},
		{"Hours", SubdayHours},
	}

	for _, tt := range tests {
		got, err := ParseSubdayType(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSubdayType("days")
	assert.Error(t, err)
}

func TestParseRelativeInterval(t *testing.T) {
	tests := []struct {
		in   string
		want RelativeInterval
	}{
		{"First", RelativeFirst},
		{"Second", RelativeSecond},
		{"Third", RelativeThird},
		{"Fourth", RelativeFourth},
		{"Last", RelativeLast},
		{"", RelativeUnused},
	}

	for _, tt := range tests {
		got, err := ParseRelativeInterval(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
