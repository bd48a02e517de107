// +build !logless

// Package telemetry gives each running Filter its own session-scoped
// logger, so interleaved log lines from multiple filters in one
// process (or multiple runs replayed from a log file) stay attributable
// to the session that produced them.
package telemetry

import (
	"os"

	"github.com/rs/zerolog"
	baselog "github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

var base = baselog.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})

// Logger is bound to one filter's session ID; every event it emits
// carries that ID as a field.
type Logger struct {
	log zerolog.Logger
}

// Session returns a Logger scoped to sessionID.
func Session(sessionID string) Logger {
	return Logger{log: base.With().Str("session", sessionID).Logger()}
}

// Tick logs one filter iteration's diagnostics: population size,
// effective sample size (1/sum(w_i^2)) and the best particle's weight.
func (l Logger) Tick(particles int, ess, bestWeight float32) {
	l.log.Debug().Int("particles", particles).Float32("ess", ess).Float32("best_weight", bestWeight).Msg("tick")
}

// Degenerate logs that resampling weights collapsed to zero and were
// reset to uniform.
func (l Logger) Degenerate() {
	l.log.Info().Msg("degenerate weights, reset to uniform")
}

// Summary logs a free-form session summary, e.g. Filter.Summary().
func (l Logger) Summary(s string) {
	l.log.Debug().Msg(s)
}
