//go:build headless

package speakerout

import (
	"time"

	"github.com/zjrosen/soundctl/internal/audio"
)

// Output is never created in headless builds.
type Output struct{}

// Start always fails with ErrUnavailable.
func Start(_ *audio.MixerBackend, _ time.Duration) (*Output, error) {
	return nil, ErrUnavailable
}

// Close does nothing.
func (o *Output) Close() {}
