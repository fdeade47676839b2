package launch

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Launcher applies the launch policy: classification, console
// ownership, environment overrides, strategy selection and signal
// suppression.
type Launcher struct {
	sys System
	log zerolog.Logger
}

func New(sys System, log zerolog.Logger) *Launcher {
	return &Launcher{sys: sys, log: log}
}

// Launch starts the target. Direct creation is attempted first; when it
// is refused for privilege reasons the launch is handed to the platform
// shell, which can prompt for elevation. A nil error guarantees
// Result.Process is usable.
func (l *Launcher) Launch(t Target) (*Result, error) {
	windowed, err := l.sys.Classify(t.Path)
	if err != nil {
		l.log.Warn().Err(err).Str("path", t.Path).
			Msg("could not determine if target is a GUI app, assuming console")
		windowed = false
	}

	if windowed {
		// Inheriting a console into a GUI program flashes an unwanted
		// console window, so give ours up before the child exists.
		if err := l.sys.ReleaseConsole(); err != nil {
			l.log.Warn().Err(err).Msg("could not release console")
		}
	}

	for _, v := range t.Env {
		if err := l.sys.SetEnv(v.Name, v.Value); err != nil {
			l.log.Warn().Err(err).Str("name", v.Name).
				Msg("could not set environment variable")
		}
	}

	proc, thread, err := l.sys.StartSuspended(t.CommandLine)
	switch {
	case err == nil:
		if err := thread.Resume(); err != nil {
			l.log.Warn().Err(err).Msg("could not resume target thread")
		}
	case l.sys.ElevationRequired(err):
		// Direct creation cannot elevate, so fall back to the shell
		// launch. It takes file and parameters separately and opens a
		// new window, an accepted tradeoff of the elevation prompt.
		proc, err = l.sys.StartElevated(t.Path, t.Params)
		if err != nil {
			l.log.Error().Err(err).Msg("unable to create elevated process")
			return nil, fmt.Errorf("elevated launch: %w", err)
		}
	default:
		l.log.Error().Err(err).Str("command", t.CommandLine).Msg("could not create process")
		return nil, fmt.Errorf("launch: %w", err)
	}

	// From here on interactive break/close signals belong to the child;
	// the shim must survive them to relay the exit code.
	if err := l.sys.SuppressInterrupts(); err != nil {
		l.log.Warn().Err(err).Msg("could not set control handler, Ctrl-C behavior may be invalid")
	}

	return &Result{Process: proc, Thread: thread, Windowed: windowed}, nil
}
