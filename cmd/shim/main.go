// Command shim launches the target program described by its sidecar
// configuration file, forwarding arguments, suppressing interactive
// signals and relaying the target's exit code as its own.
//
// It takes no flags. Everything on its command line belongs to the
// target.
package main

import (
	"os"

	"github.com/kiennq/scoop-better-shimexe/internal/cmdline"
	"github.com/kiennq/scoop-better-shimexe/internal/launch"
	"github.com/kiennq/scoop-better-shimexe/internal/shim"
	"github.com/kiennq/scoop-better-shimexe/pkg/logger"
)

func main() {
	log := logger.Console(os.Stderr, shim.LogLevel())

	exePath, err := os.Executable()
	if err != nil {
		log.Error().Err(err).Msg("could not determine own executable path")
		os.Exit(1)
	}

	runner := shim.NewRunner(launch.NewSystem(), log)
	os.Exit(runner.Run(exePath, cmdline.CallerArgs()))
}
