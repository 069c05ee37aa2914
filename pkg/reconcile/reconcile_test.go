package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/antonio-bravo/dbactl/pkg/status"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
		force  bool
		want   Action
	}{
		{"missing object is created", false, false, ActionCreate},
		{"missing object with force is created", false, true, ActionCreate},
		{"existing object is skipped", true, false, ActionSkip},
		{"existing object with force is replaced", true, true, ActionReplace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.exists, tt.force))
		})
	}
}

func TestApplySkipNeverMutates(t *testing.T) {
	dropped, created := false, false
	res := Apply(true, false, false, Callbacks{
		Drop:   func() error { dropped = true; return nil },
		Create: func() error { created = true; return nil },
	})

	assert.Equal(t, status.OutcomeSkipped, res.Outcome)
	assert.Contains(t, res.Notes, "--force")
	assert.False(t, dropped)
	assert.False(t, created)
}

func TestApplyCreate(t *testing.T) {
	created := false
	res := Apply(false, false, false, Callbacks{
		Create: func() error { created = true; return nil },
	})

	assert.Equal(t, status.OutcomeSuccessful, res.Outcome)
	assert.True(t, created)
}

func TestApplyForceDropsThenCreates(t *testing.T) {
	var order []string
	res := Apply(true, true, false, Callbacks{
		Drop:   func() error { order = append(order, "drop"); return nil },
		Create: func() error { order = append(order, "create"); return nil },
	})

	assert.Equal(t, status.OutcomeSuccessful, res.Outcome)
	assert.Equal(t, []string{"drop", "create"}, order)
}

func TestApplyDropFailureSkipsCreate(t *testing.T) {
	created := false
	res := Apply(true, true, false, Callbacks{
		Drop:   func() error { return errors.New("drop refused") },
		Create: func() error { created = true; return nil },
	})

	assert.Equal(t, status.OutcomeFailed, res.Outcome)
	assert.Equal(t, "drop refused", res.Notes)
	assert.False(t, created)
}

func TestApplyCreateFailure(t *testing.T) {
	res := Apply(false, false, false, Callbacks{
		Create: func() error { return errors.New("create refused") },
	})

	assert.Equal(t, status.OutcomeFailed, res.Outcome)
	assert.Equal(t, "create refused", res.Notes)
}

func TestApplyDryRunNeverMutates(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
		force  bool
		notes  string
	}{
		{"would create", false, false, "Dry run: would create"},
		{"would drop and recreate", true, true, "Dry run: would drop and recreate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := false
			res := Apply(tt.exists, tt.force, true, Callbacks{
				Drop:   func() error { mutated = true; return nil },
				Create: func() error { mutated = true; return nil },
			})

			assert.Equal(t, status.OutcomeSkipped, res.Outcome)
			assert.Equal(t, tt.notes, res.Notes)
			assert.False(t, mutated)
		})
	}
}
