package status

import (
	"time"

	"github.com/jonboulle/clockwork"
)

//go:generate go run github.com/dmarkham/enumer -type Outcome -trimprefix Outcome -json -output outcome.gen.go

// Outcome is the final disposition of one processed object.
type Outcome int

const (
	OutcomeSuccessful Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

// Record is the uniform per-object result emitted by every copy and set
// command. One record is produced for each object touched (or deliberately
// not touched) on a destination instance.
type Record struct {
	SourceServer      string    `json:"sourceServer,omitempty"`
	DestinationServer string    `json:"destinationServer"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Status            Outcome   `json:"status"`
	Notes             string    `json:"notes,omitempty"`
	DateTime          time.Time `json:"dateTime"`
}

// Recorder accumulates records for a single command invocation and stamps
// each one with the current time. The clock is injectable for tests.
type Recorder struct {
	clock   clockwork.Clock
	records []Record
}

func NewRecorder() *Recorder {
	return &Recorder{clock: clockwork.NewRealClock()}
}

// NewRecorderWithClock creates a recorder with the given clock.
// Useful for testing with clockwork.NewFakeClock.
func NewRecorderWithClock(clock clockwork.Clock) *Recorder {
	return &Recorder{clock: clock}
}

// Add stamps the record with the current time, stores it and returns it.
func (r *Recorder) Add(rec Record) Record {
	rec.DateTime = r.clock.Now().UTC()
	r.records = append(r.records, rec)
	return rec
}

// Records returns all records added so far, in order.
func (r *Recorder) Records() []Record {
	return r.records
}

// Failed reports whether any record has a Failed outcome.
func (r *Recorder) Failed() bool {
	for _, rec := range r.records {
		if rec.Status == OutcomeFailed {
			return true
		}
	}
	return false
}
