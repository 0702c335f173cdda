// Package logx wraps zerolog into the small value-type Logger spec §9
// asks for ("level, writer"), passed explicitly through cmd/render's
// run/runTask rather than used as a package-level global. cmd/explorer
// and the task package do not log through it.
package logx

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin, copyable value wrapping zerolog.Logger.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger writing to w at the given level. Passing
// zerolog.Disabled silences all output (quiet mode); DebugLevel turns
// on the Debugf, Progress and WorkerStarted/WorkerFinished lines.
func New(w io.Writer, level zerolog.Level) Logger {
	z := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return Logger{z: z}
}

// Quiet returns a Logger that discards everything.
func Quiet() Logger {
	return Logger{z: zerolog.Nop()}
}

func (l Logger) Debugf(format string, args ...any) {
	l.z.Debug().Msgf(format, args...)
}

func (l Logger) Infof(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

func (l Logger) Warnf(format string, args ...any) {
	l.z.Warn().Msgf(format, args...)
}

func (l Logger) Errorf(format string, args ...any) {
	l.z.Error().Msgf(format, args...)
}

// Progress logs a named task's completion fraction at debug level, the
// per-task progress line spec.md §7 asks verbose mode to emit.
func (l Logger) Progress(message string, frac float64) {
	l.z.Debug().Str("task", message).Float64("progress", frac).Msg("progress")
}

// WorkerStarted/WorkerFinished log one worker's lifecycle within a task,
// at debug level only. Nothing in the task package calls them, so a
// render emits no per-worker lines.
func (l Logger) WorkerStarted(message string, id int) {
	l.z.Debug().Str("task", message).Int("worker", id).Msg("worker started")
}

func (l Logger) WorkerFinished(message string, id int, elapsed time.Duration) {
	l.z.Debug().Str("task", message).Int("worker", id).Dur("elapsed", elapsed).Msg("worker finished")
}
