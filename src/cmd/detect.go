package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvman/nvman/src/internal/manager"
	"github.com/nvman/nvman/src/internal/tui"
	"github.com/nvman/nvman/src/internal/ui"
)

var detectSwitchFlag string

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect installed version managers",
	Long: `Probe for installed Node.js version managers in priority order and
report the outcome. Detection short-circuits on the first hit, so lower
priority tools may show as not probed.

Examples:
  nvman detect
  nvman detect --switch fnm   # override the detected manager`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		result := app.detector.DetectAll(cmd.Context(), app.cfg.PreferredManager())

		if detectSwitchFlag != "" {
			if err := app.detector.SwitchManager(cmd.Context(), detectSwitchFlag); err != nil {
				ui.Error("%v", err)
				return
			}
			result = app.detector.Result()
			ui.Success("switched to %s", ui.HighlightTool(detectSwitchFlag))
		}

		table := tui.NewTable("Manager", "Probed", "Found")
		table.SetTitle("Detection")
		for _, p := range result.Probes {
			probed, found := "-", "-"
			if p.Probed {
				probed = "yes"
				found = tui.GetCrossMark()
				if p.Available {
					found = tui.GetCheckMark()
				}
			}
			if p.Name == result.ActiveName {
				table.AddActiveRow(p.Name, probed, found+" active")
				continue
			}
			table.AddRow(p.Name, probed, found)
		}
		fmt.Println(table.Render())

		if result.ActiveName == "" {
			reportNoManager()
		}

		if path, found := manager.DetectOfficialNode(); found {
			ui.Warning("a system Node.js install at %s shadows manager switching", path)
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringVar(&detectSwitchFlag, "switch", "", "Manually switch to the named manager")
}
