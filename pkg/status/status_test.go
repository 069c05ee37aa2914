package status

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderStampsTime(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := NewRecorderWithClock(clockwork.NewFakeClockAt(at))

	added := rec.Add(Record{Name: "profile", Type: "Mail Profile", Status: OutcomeSuccessful})
	assert.Equal(t, at, added.DateTime)

	require.Len(t, rec.Records(), 1)
	assert.Equal(t, at, rec.Records()[0].DateTime)
}

func TestRecorderFailed(t *testing.T) {
	rec := NewRecorder()
	rec.Add(Record{Name: "a", Status: OutcomeSuccessful})
	rec.Add(Record{Name: "b", Status: OutcomeSkipped})
	assert.False(t, rec.Failed())

	rec.Add(Record{Name: "c", Status: OutcomeFailed})
	assert.True(t, rec.Failed())
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "Successful", OutcomeSuccessful.String())
	assert.Equal(t, "Skipped", OutcomeSkipped.String())
	assert.Equal(t, "Failed", OutcomeFailed.String())
}

func TestOutcomeJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(OutcomeSkipped)
	require.NoError(t, err)
	assert.Equal(t, `"Skipped"`, string(out))

	var parsed Outcome
	require.NoError(t, json.Unmarshal([]byte(`"Failed"`), &parsed))
	assert.Equal(t, OutcomeFailed, parsed)
}

func TestWriteJSON(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := NewRecorderWithClock(clockwork.NewFakeClockAt(at))
	rec.Add(Record{
		SourceServer:      "sql01",
		DestinationServer: "sql02",
		Name:              "ops profile",
		Type:              "Mail Profile",
		Status:            OutcomeSuccessful,
	})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rec.Records()))

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, "ops profile", parsed[0]["name"])
	assert.Equal(t, "Successful", parsed[0]["status"])
}

func TestWriteTable(t *testing.T) {
	rec := NewRecorder()
	rec.Add(Record{
		SourceServer:      "sql01",
		DestinationServer: "sql02",
		Name:              "ops profile",
		Type:              "Mail Profile",
		Status:            OutcomeSkipped,
		Notes:             "Already exists on destination. Use --force to drop and recreate.",
	})

	var buf bytes.Buffer
	WriteTable(&buf, rec.Records())

	out := buf.String()
	assert.Contains(t, out, "ops profile")
	assert.Contains(t, out, "Skipped")
	assert.Contains(t, out, "sql02")
}
