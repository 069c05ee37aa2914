package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"empty means unchanged", "", 0, false},
		{"valid date", "20250301", 20250301, false},
		{"lower bound", "19900101", 19900101, false},
		{"upper bound", "99991231", 99991231, false},
		{"before lower bound", "19891231", 0, true},
		{"not a date", "2025030", 0, true},
		{"impossible day", "20250231", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateDate("--start-date", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateTime(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"empty means unchanged", "", -1, false},
		{"midnight", "000000", 0, false},
		{"three am", "030000", 30000, false},
		{"last second", "235959", 235959, false},
		{"hour out of range", "240000", 0, true},
		{"minute out of range", "126000", 0, true},
		{"second out of range", "120060", 0, true},
		{"too short", "1200", 0, true},
		{"space padded digits", "1 2 34", 0, true},
		{"signed component", "-10000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTime("--start-time", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, ValidateDateRange(20250101, 20251231))
	assert.NoError(t, ValidateDateRange(20250101, 20250101))
	assert.NoError(t, ValidateDateRange(0, 20251231))
	assert.NoError(t, ValidateDateRange(20250101, 0))
	assert.Error(t, ValidateDateRange(20251231, 20250101))
}

func TestValidateSubdayInterval(t *testing.T) {
	assert.NoError(t, ValidateSubdayInterval(SubdayTime, 0))
	assert.Error(t, ValidateSubdayInterval(SubdayTime, 5))

	assert.NoError(t, ValidateSubdayInterval(SubdaySeconds, 10))
	assert.Error(t, ValidateSubdayInterval(SubdaySeconds, 9))

	assert.NoError(t, ValidateSubdayInterval(SubdayMinutes, 59))
	assert.Error(t, ValidateSubdayInterval(SubdayMinutes, 60))

	assert.NoError(t, ValidateSubdayInterval(SubdayHours, 23))
	assert.Error(t, ValidateSubdayInterval(SubdayHours, 24))
}
