package sound

import (
	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/display"
	"github.com/zjrosen/soundctl/internal/library"
	"github.com/zjrosen/soundctl/internal/log"
)

// Diagnostics receives the non-fatal problems a script call runs into:
// missing assets, unresolved names, unsupported operations.
type Diagnostics interface {
	Diagnose(msg string, kv ...any)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(msg string, kv ...any)

// Diagnose implements Diagnostics.
func (f DiagnosticsFunc) Diagnose(msg string, kv ...any) { f(msg, kv...) }

// LogDiagnostics writes diagnostics as warnings under the script category.
var LogDiagnostics Diagnostics = DiagnosticsFunc(func(msg string, kv ...any) {
	log.Warn(log.CatScript, msg, kv...)
})

// Host is everything a controller calls into. Library, Audio and Stage are
// required; a nil Diagnostics logs.
type Host struct {
	Library     *library.Library
	Audio       audio.Backend
	Stage       *display.Stage
	Diagnostics Diagnostics
}

// Diagnose reports a non-fatal problem.
func (h *Host) Diagnose(msg string, kv ...any) {
	if h.Diagnostics == nil {
		LogDiagnostics.Diagnose(msg, kv...)
		return
	}
	h.Diagnostics.Diagnose(msg, kv...)
}
