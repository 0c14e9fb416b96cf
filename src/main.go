package main

import (
	"github.com/nvman/nvman/src/cmd"

	// Import manager adapters to register them
	_ "github.com/nvman/nvman/src/managers/fnm"
	_ "github.com/nvman/nvman/src/managers/mise"
	_ "github.com/nvman/nvman/src/managers/nvm"
	_ "github.com/nvman/nvman/src/managers/nvmwin"
	_ "github.com/nvman/nvman/src/managers/pnpm"
	_ "github.com/nvman/nvman/src/managers/volta"
)

func main() {
	cmd.Execute()
}
