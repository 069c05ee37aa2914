// Package reconcile implements the shared overwrite policy used by every
// copy command: an object that already exists on the destination is skipped
// unless force is set, in which case it is dropped and recreated.
package reconcile

import (
	"github.com/antonio-bravo/dbactl/pkg/status"
)

//go:generate go run github.com/dmarkham/enumer -type Action -trimprefix Action -output action.gen.go

// Action is the decision taken for one destination object.
type Action int

const (
	ActionCreate Action = iota
	ActionSkip
	ActionReplace
)

// Decide returns the action for a destination object given whether it
// already exists and whether the caller asked for a forced overwrite.
func Decide(exists, force bool) Action {
	switch {
	case !exists:
		return ActionCreate
	case force:
		return ActionReplace
	default:
		return ActionSkip
	}
}

// Callbacks holds the object-specific mutations. Drop is only invoked for
// ActionReplace; Create for ActionCreate and ActionReplace.
type Callbacks struct {
	Drop   func() error
	Create func() error
}

// Result is the outcome of applying the policy to one object.
type Result struct {
	Outcome status.Outcome
	Notes   string
}

// Apply runs the reconcile policy for one object. When dryRun is set no
// callback is invoked and the result describes what would have happened.
func Apply(exists, force, dryRun bool, cb Callbacks) Result {
	action := Decide(exists, force)

	if action == ActionSkip {
		return Result{
			Outcome: status.OutcomeSkipped,
			Notes:   "Already exists on destination. Use --force to drop and recreate.",
		}
	}

	if dryRun {
		notes := "Dry run: would create"
		if action == ActionReplace {
			notes = "Dry run: would drop and recreate"
		}
		return Result{Outcome: status.OutcomeSkipped, Notes: notes}
	}

	if action == ActionReplace {
		if err := cb.Drop(); err != nil {
			return Result{Outcome: status.OutcomeFailed, Notes: err.Error()}
		}
	}

	if err := cb.Create(); err != nil {
		return Result{Outcome: status.OutcomeFailed, Notes: err.Error()}
	}

	return Result{Outcome: status.OutcomeSuccessful}
}
