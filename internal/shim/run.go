// Package shim drives one shim invocation end to end: load the sidecar
// configuration, assemble the command line, launch the target, contain
// it, and relay its exit code.
package shim

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/kiennq/scoop-better-shimexe/internal/cmdline"
	"github.com/kiennq/scoop-better-shimexe/internal/launch"
	"github.com/kiennq/scoop-better-shimexe/internal/shimfile"
)

// LogLevel selects the shim's diagnostic verbosity. The shim shares
// stderr with the child, so diagnostics stay at warn unless SHIM_DEBUG
// is set.
func LogLevel() zerolog.Level {
	if os.Getenv("SHIM_DEBUG") != "" {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// Runner executes the shim pipeline on a platform capability surface.
type Runner struct {
	sys launch.System
	log zerolog.Logger
}

func NewRunner(sys launch.System, log zerolog.Logger) *Runner {
	return &Runner{sys: sys, log: log}
}

// Run launches the target configured for the shim at exePath, passing
// callerTail (the caller's arguments, verbatim) through to it. The
// return value is the shim's exit code: the target's own exit code for
// console targets, 0 for detached windowed targets, 1 on any
// configuration or launch failure.
func (r *Runner) Run(exePath, callerTail string) int {
	cfg, err := shimfile.Load(exePath)
	if err != nil {
		r.log.Error().Err(err).Msg("could not read shim file")
		return 1
	}
	if cfg.TargetPath == "" {
		r.log.Error().Err(shimfile.ErrNoTarget).Str("shim", exePath).Msg("could not read shim file")
		return 1
	}

	target := launch.Target{
		CommandLine: cmdline.Assemble(cfg.TargetPath, cfg.DeclaredArgs, callerTail),
		Path:        cmdline.Unquote(cfg.TargetPath),
		Params:      cfg.DeclaredArgs + callerTail,
		Env:         cfg.Env,
	}
	r.log.Debug().Str("command", target.CommandLine).Msg("launching target")

	res, err := launch.New(r.sys, r.log).Launch(target)
	if err != nil {
		return 1
	}
	defer res.Process.Close()
	if res.Thread != nil {
		defer res.Thread.Close()
	}

	completion := launch.CompletionOf(res)
	r.log.Debug().Stringer("completion", completion).Msg("target running")

	if completion == launch.DetachZero {
		return 0
	}

	// Console target: bind the child's lifetime to the shim's, then
	// adopt its exit code. The group must stay open until the wait is
	// over, closing it earlier would kill the child.
	if cont, err := r.sys.NewContainment(); err != nil {
		r.log.Warn().Err(err).Msg("could not create containment group, child may outlive the shim")
	} else {
		if err := cont.Assign(res.Process); err != nil {
			r.log.Warn().Err(err).Msg("could not contain child process")
		}
		defer cont.Close()
	}

	code, err := res.Process.Wait()
	if err != nil {
		r.log.Error().Err(err).Msg("could not retrieve target exit code")
		return 1
	}
	return code
}
