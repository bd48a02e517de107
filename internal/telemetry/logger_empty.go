// +build logless

package telemetry

// Logger is a zero-overhead stand-in compiled in under the logless
// build tag, matching the method set of the zerolog-backed Logger.
type Logger struct{}

// Session returns a no-op Logger; sessionID is ignored.
func Session(sessionID string) Logger { return Logger{} }

func (l Logger) Tick(particles int, ess, bestWeight float32) {}
func (l Logger) Degenerate()                                 {}
func (l Logger) Summary(s string)                            {}
