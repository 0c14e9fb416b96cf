package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nvman/nvman/src/internal/ui"
)

var installCmd = &cobra.Command{
	Use:   "install <version>",
	Short: "Install a Node.js version without activating it",
	Long: `Install a Node.js version through the detected manager. The active
version is left alone; use 'nvman use' to switch.

Examples:
  nvman install 20.10.0
  nvman install 18`,
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

		err = ui.WithSpinner("Installing Node.js "+args[0], func() error {
			return app.detector.Exclusive(active.Name(), func() error {
				return active.InstallVersion(cmd.Context(), args[0])
			})
		})
		if err != nil {
			ui.Error("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
