// Package speakerout plays a MixerBackend on the system speaker.
//
// The speaker needs cgo and the platform sound library. Builds tagged
// headless replace it with a stub whose Start always fails, so the rest of
// the module builds with CGO_ENABLED=0.
package speakerout

import (
	"errors"
	"time"
)

// DefaultBuffer is the speaker latency used when none is configured.
const DefaultBuffer = 100 * time.Millisecond

// ErrUnavailable is returned by Start in headless builds.
var ErrUnavailable = errors.New("speaker output not compiled in (headless build)")

func bufferOrDefault(buffer time.Duration) time.Duration {
	if buffer <= 0 {
		return DefaultBuffer
	}
	return buffer
}
