package pinfile

import (
	"context"

	"github.com/nvman/nvman/src/internal/manager"
)

// Decision is the user's answer to the apply prompt.
type Decision int

const (
	// DecisionNo leaves the active version alone.
	DecisionNo Decision = iota
	// DecisionYes applies this pin once.
	DecisionYes
	// DecisionAlways applies this pin and asks the caller to stop
	// prompting for future pins.
	DecisionAlways
)

// ConfirmFunc asks the user whether a pin should be applied. A nil
// ConfirmFunc means apply without asking.
type ConfirmFunc func(pin Pin) Decision

// ApplyOutcome reports what Apply did.
type ApplyOutcome struct {
	Applied bool
	Always  bool // the user asked for future pins to auto-apply
	Result  *manager.SetResult
}

// Apply activates a pin through the adapter at local scope, after the
// confirm callback approves it. A pin the current version already
// satisfies is a no-op.
func Apply(ctx context.Context, a manager.Adapter, pin Pin, confirm ConfirmFunc) (*ApplyOutcome, error) {
	if a == nil {
		return nil, manager.ErrNoManager
	}

	if Satisfied(&pin, a.CurrentVersion(ctx)) {
		return &ApplyOutcome{Applied: false}, nil
	}

	outcome := &ApplyOutcome{}
	if confirm != nil {
		switch confirm(pin) {
		case DecisionNo:
			return outcome, nil
		case DecisionAlways:
			outcome.Always = true
		}
	}

	res, err := a.SetVersion(ctx, pin.Version, manager.ScopeLocal)
	if err != nil {
		return nil, err
	}
	outcome.Applied = true
	outcome.Result = res
	return outcome, nil
}
