package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvman/nvman/src/internal/manager"
	"github.com/nvman/nvman/src/internal/pinfile"
	"github.com/nvman/nvman/src/internal/tui"
	"github.com/nvman/nvman/src/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the detected manager, active version, and project pin",
	Long: `Show which Node.js version manager is active, what version it has
selected, and whether the project pin (if any) is satisfied.

Examples:
  nvman status`,
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

		current := active.CurrentVersion(cmd.Context())

		var lines []string
		lines = append(lines, fmt.Sprintf("Manager  %s", tui.RenderTool(active.DisplayName())))
		if current != "" {
			lines = append(lines, fmt.Sprintf("Node.js  %s", tui.RenderActiveVersion(current)))
		} else {
			lines = append(lines, fmt.Sprintf("Node.js  %s", tui.RenderMuted("none active")))
		}

		if cwd, err := os.Getwd(); err == nil {
			if pin, err := pinfile.Discover(cwd); err == nil {
				state := tui.RenderWarning("not applied")
				if pinfile.Satisfied(pin, current) {
					state = tui.GetCheckMark()
				}
				lines = append(lines, fmt.Sprintf("Pin      %s %s (%s)", tui.RenderVersion(pin.Version), state, tui.RenderMuted(pin.Path)))
			}
		}

		if path, found := manager.DetectOfficialNode(); found {
			lines = append(lines, tui.RenderWarning(fmt.Sprintf("System Node.js at %s shadows manager switching", path)))
		}

		content := ""
		for i, l := range lines {
			if i > 0 {
				content += "\n"
			}
			content += l
		}
		fmt.Println(tui.RenderBox(content))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
