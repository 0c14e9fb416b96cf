package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nvman/nvman/src/internal/config"
	"github.com/nvman/nvman/src/internal/manager"
	"github.com/nvman/nvman/src/internal/pinfile"
	"github.com/nvman/nvman/src/internal/ui"
)

var (
	pinApplyFlag bool
	pinWatchFlag bool
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Show and apply the project's Node.js version pin",
	Long: `Discover the project's version pin (.nvmrc, .node-version,
package.json volta.node, or .tool-versions), walking up from the current
directory. The nearest pin wins.

Examples:
  nvman pin            # show the discovered pin
  nvman pin --apply    # switch to the pinned version (with confirmation)
  nvman pin --watch    # keep watching the pin and re-apply on change`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		pin, err := pinfile.Discover(cwd)
		if err != nil {
			ui.Info("no version pin found in %s or any parent directory", cwd)
			return
		}

		source := "pin file"
		if pin.Source == pinfile.SourceManifest {
			source = "package.json volta.node"
		}
		ui.Info("pinned to Node.js %s (%s, %s)", ui.HighlightVersion(pin.Version), source, pin.Path)

		if !pinApplyFlag && !pinWatchFlag {
			return
		}

		app, err := newApp()
		if err != nil {
			ui.Error("%v", err)
			return
		}
		active, ok := app.detectActive(cmd.Context())
		if !ok {
			reportNoManager()
			return
		}
		if declineIfOfficialNode() {
			return
		}

		if !applyPin(cmd, app, active, *pin) {
			return
		}

		if pinWatchFlag {
			watchPin(cmd, app, active, *pin)
		}
	},
}

// applyPin applies the pin once, honoring the autoApply setting and
// persisting an "always" answer. Returns false on failure.
func applyPin(cmd *cobra.Command, app *app, active manager.Adapter, pin pinfile.Pin) bool {
	var confirm pinfile.ConfirmFunc
	if !app.cfg.PinAutoApply() {
		confirm = ui.ConfirmPin
	}

	var outcome *pinfile.ApplyOutcome
	err := app.detector.Exclusive(active.Name(), func() error {
		var applyErr error
		outcome, applyErr = pinfile.Apply(cmd.Context(), active, pin, confirm)
		return applyErr
	})
	if err != nil {
		ui.Error("%v", err)
		return false
	}

	if outcome.Always {
		app.cfg.Set(config.KeyPinAutoApply, true)
		if err := app.cfg.Save(); err != nil {
			ui.Warning("could not persist auto-apply: %v", err)
		}
	}

	if outcome.Applied {
		for _, notice := range outcome.Result.Notices {
			ui.Notice("%s", notice)
		}
		ui.Success("applied pin %s via %s", ui.HighlightVersion(pin.Version), active.DisplayName())
	} else {
		ui.Info("pin not applied")
	}
	return true
}

// watchPin re-applies the pin whenever its artifact changes, until the
// command context is cancelled.
func watchPin(cmd *cobra.Command, app *app, active manager.Adapter, pin pinfile.Pin) {
	w, err := pinfile.Watch(pin)
	if err != nil {
		ui.Error("%v", err)
		return
	}
	defer func() { _ = w.Close() }()

	ui.Info("watching %s (ctrl-c to stop)", pin.Path)
	for {
		select {
		case <-cmd.Context().Done():
			return
		case err := <-w.Errors():
			ui.Warning("watch error: %v", err)
		case version := <-w.Changes():
			pin.Version = version
			ui.Info("pin changed to %s", ui.HighlightVersion(version))
			applyPin(cmd, app, active, pin)
		}
	}
}

func init() {
	rootCmd.AddCommand(pinCmd)
	pinCmd.Flags().BoolVar(&pinApplyFlag, "apply", false, "Apply the discovered pin")
	pinCmd.Flags().BoolVar(&pinWatchFlag, "watch", false, "Watch the pin and re-apply on change")
}
