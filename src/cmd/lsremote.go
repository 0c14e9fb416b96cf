package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvman/nvman/src/internal/manager"
	"github.com/nvman/nvman/src/internal/tui"
	"github.com/nvman/nvman/src/internal/ui"
)

var lsRemoteCmd = &cobra.Command{
	Use:   "ls-remote",
	Short: "List Node.js versions available to install",
	Long: `List the newest Node.js versions the detected manager can install,
newest first. Tools without a remote listing fall back to the nodejs.org
release index.

Examples:
  nvman ls-remote`,
	Args: cobra.NoArgs,
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

		var available []manager.Available
		spin := ui.NewSpinner("Fetching available versions")
		spin.Start()
		available = active.AvailableVersions(cmd.Context())
		spin.Stop()

		if len(available) == 0 {
			ui.Warning("%s reported no available versions", active.DisplayName())
			return
		}

		table := tui.NewTable("Version", "LTS")
		table.SetTitle(fmt.Sprintf("Available via %s", active.DisplayName()))
		for _, a := range available {
			table.AddRow(a.Version, a.LTS)
		}
		fmt.Println(table.Render())
	},
}

func init() {
	rootCmd.AddCommand(lsRemoteCmd)
}
