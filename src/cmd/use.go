package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nvman/nvman/src/internal/manager"
	"github.com/nvman/nvman/src/internal/ui"
)

var useGlobalFlag bool

var useCmd = &cobra.Command{
	Use:   "use <version>",
	Short: "Switch the active Node.js version",
	Long: `Switch the active Node.js version through the detected manager.
The project scope is the default; --global changes the machine default
instead. Tools that only support one scope apply it and say so.

Examples:
  nvman use 20.10.0
  nvman use 20            # partial versions match on release boundaries
  nvman use --global 20.10.0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
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

		scope := manager.ScopeLocal
		if useGlobalFlag {
			scope = manager.ScopeGlobal
		}

		var res *manager.SetResult
		err = app.detector.Exclusive(active.Name(), func() error {
			var setErr error
			res, setErr = active.SetVersion(cmd.Context(), args[0], scope)
			return setErr
		})
		if err != nil {
			ui.Error("%v", err)
			return
		}

		for _, notice := range res.Notices {
			ui.Notice("%s", notice)
		}
		ui.Success("%s now uses Node.js %s (%s scope)",
			active.DisplayName(), ui.HighlightVersion(args[0]), res.ScopeUsed)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
	useCmd.Flags().BoolVarP(&useGlobalFlag, "global", "g", false, "Change the machine default instead of the project")
}
