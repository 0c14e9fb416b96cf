package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/nvman/nvman/src/internal/pinfile"
)

// Confirm asks a yes/no question. A failed prompt (no TTY, interrupted)
// reads as no.
func Confirm(prompt string) bool {
	var confirmed bool
	form := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)
	if err := form.Run(); err != nil {
		return false
	}
	return confirmed
}

// ConfirmPin asks whether a discovered pin should be applied, with an
// "always" answer that opts into auto-apply for future pins.
func ConfirmPin(pin pinfile.Pin) pinfile.Decision {
	decision := pinfile.DecisionNo
	form := huh.NewSelect[pinfile.Decision]().
		Title(fmt.Sprintf("Switch to Node.js %s (pinned in %s)?", pin.Version, pin.Path)).
		Options(
			huh.NewOption("Yes", pinfile.DecisionYes),
			huh.NewOption("No", pinfile.DecisionNo),
			huh.NewOption("Always (stop asking)", pinfile.DecisionAlways),
		).
		Value(&decision)
	if err := form.Run(); err != nil {
		return pinfile.DecisionNo
	}
	return decision
}
