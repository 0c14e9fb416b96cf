package cmd

import (
	"context"
	"os"
	goruntime "runtime"

	"github.com/nvman/nvman/src/internal/config"
	"github.com/nvman/nvman/src/internal/execx"
	"github.com/nvman/nvman/src/internal/manager"
	"github.com/nvman/nvman/src/internal/nodeindex"
	"github.com/nvman/nvman/src/internal/ui"
)

// app wires configuration, the process runner, the release index, and the
// detector together for the command layer.
type app struct {
	cfg      *config.Settings
	detector *manager.Detector
}

// newApp loads configuration and builds the adapters in platform priority
// order, each with its configured executable override.
func newApp() (*app, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	runner := &execx.Local{Timeout: cfg.ExecTimeout()}
	index := nodeindex.New(nodeindex.NewCachedSource(
		nodeindex.NewHTTPSource(cfg.IndexURL()), "", cfg.IndexTTL()))

	projectDir, err := os.Getwd()
	if err != nil {
		projectDir = ""
	}

	var adapters []manager.Adapter
	for _, name := range manager.PlatformOrder(goruntime.GOOS) {
		f, err := manager.Get(name)
		if err != nil {
			ui.Debug("no adapter compiled in for %s", name)
			continue
		}
		adapters = append(adapters, f.New(manager.Deps{
			Runner:     runner,
			ToolPath:   cfg.ToolPath(name),
			ProjectDir: projectDir,
			Index:      index,
			Confirm:    ui.Confirm,
		}))
	}

	return &app{cfg: cfg, detector: manager.NewDetector(adapters)}, nil
}

// detectActive runs a detection cycle and returns the active adapter.
func (a *app) detectActive(ctx context.Context) (manager.Adapter, bool) {
	a.detector.DetectAll(ctx, a.cfg.PreferredManager())
	return a.detector.Active()
}

// reportNoManager explains the empty detection outcome.
func reportNoManager() {
	ui.Error("no Node.js version manager found")
	ui.Info("install one of: nvm, nvm-windows, fnm, volta, mise, pnpm")
}

// declineIfOfficialNode warns about a manager-shadowing system Node.js
// install and reports whether the operation should stop.
func declineIfOfficialNode() bool {
	path, found := manager.DetectOfficialNode()
	if !found {
		return false
	}
	ui.Warning("a system Node.js install at %s shadows manager switching", path)
	ui.Info("remove it before using nvman to switch versions")
	return true
}
