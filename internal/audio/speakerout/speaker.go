//go:build !headless

package speakerout

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/speaker"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/log"
)

// Output is a running speaker fed by one mixer.
type Output struct {
	mixer *audio.MixerBackend
	once  sync.Once
}

// Start initializes the speaker and plays mixer on it. buffer sets the
// speaker latency; zero means DefaultBuffer.
func Start(mixer *audio.MixerBackend, buffer time.Duration) (*Output, error) {
	buffer = bufferOrDefault(buffer)
	rate := mixer.SampleRate()
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(mixer)

	log.Info(log.CatAudio, "Speaker output started", "sampleRate", int(rate), "buffer", buffer)
	return &Output{mixer: mixer}, nil
}

// Close stops all sounds and releases the speaker. Further calls do nothing.
func (o *Output) Close() {
	o.once.Do(func() {
		o.mixer.StopAllSounds()
		speaker.Clear()
		speaker.Close()
		log.Debug(log.CatAudio, "Speaker output closed")
	})
}
