package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvman/nvman/src/internal/manager"
	"github.com/nvman/nvman/src/internal/tui"
	"github.com/nvman/nvman/src/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed Node.js versions",
	Long: `List the Node.js versions the detected manager has installed,
with the active one marked.

Examples:
  nvman list`,
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

		versions := active.InstalledVersions(cmd.Context())
		if len(versions) == 0 {
			ui.Info("%s has no Node.js versions installed", active.DisplayName())
			return
		}

		current := active.CurrentVersion(cmd.Context())

		table := tui.NewTable("Version", "")
		table.SetTitle(fmt.Sprintf("Installed via %s", active.DisplayName()))
		for _, v := range versions {
			if current != "" && manager.IsVersionMatching(current, v) {
				table.AddActiveRow(v, "current")
				continue
			}
			table.AddRow(v, "")
		}
		fmt.Println(table.Render())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
