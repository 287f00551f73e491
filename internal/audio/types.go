// Package audio plays registered sounds and tracks their playback instances.
//
// A Backend owns two kinds of opaque handles: a SoundHandle names decoded
// sample data registered once at load time, and an InstanceHandle names one
// playback occurrence of that data. Instance handles may outlive the playback
// they refer to; every operation on a finished or unknown instance is a no-op.
package audio

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gopxl/beep"
)

// SoundHandle identifies a sound registered with a Backend. The zero value
// never refers to a registered sound.
type SoundHandle uint32

// IsValid reports whether h could refer to a registered sound.
func (h SoundHandle) IsValid() bool {
	return h != 0
}

// InstanceHandle identifies one playback of a sound. The zero value refers to
// no instance.
type InstanceHandle struct {
	id uuid.UUID
}

func newInstanceHandle() InstanceHandle {
	return InstanceHandle{id: uuid.New()}
}

// IsZero reports whether h is the empty handle.
func (h InstanceHandle) IsZero() bool {
	return h.id == uuid.Nil
}

// String returns the handle's identifier.
func (h InstanceHandle) String() string {
	return h.id.String()
}

// ParseInstanceHandle parses the output of InstanceHandle.String.
func ParseInstanceHandle(s string) (InstanceHandle, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return InstanceHandle{}, err
	}
	return InstanceHandle{id: id}, nil
}

// SoundEvent selects how a start request treats other instances of the same sound.
type SoundEvent int

const (
	// EventStart plays a new instance.
	EventStart SoundEvent = iota
	// EventEvent plays a new instance unconditionally.
	EventEvent
	// EventStop stops every instance of the sound instead of starting one.
	EventStop
)

// String returns the event name.
func (e SoundEvent) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventEvent:
		return "event"
	case EventStop:
		return "stop"
	default:
		return "unknown"
	}
}

// EnvelopePoint is one volume breakpoint, positioned in 44.1 kHz samples.
type EnvelopePoint struct {
	Sample      uint32
	LeftVolume  float64
	RightVolume float64
}

// SoundInfo describes a start request.
type SoundInfo struct {
	Event SoundEvent
	// InSample is the first sample to play, or nil to play from the beginning.
	InSample *uint32
	// OutSample is the sample to stop at, or nil to play to the end.
	OutSample *uint32
	// NumLoops is the number of times to play the range. Zero is treated as 1.
	NumLoops uint16
	Envelope []EnvelopePoint
}

// Sound is decoded sample data ready to be registered.
type Sound struct {
	Name   string
	Format beep.Format
	// Buffer holds the samples. A nil buffer registers a sound whose duration
	// is unknown and which plays as silence.
	Buffer *beep.Buffer
}

// Duration returns the sound's length, or false if it has no samples.
func (s *Sound) Duration() (time.Duration, bool) {
	if s == nil || s.Buffer == nil {
		return 0, false
	}
	return s.Format.SampleRate.D(s.Buffer.Len()), true
}

// Backend plays registered sounds.
type Backend interface {
	// RegisterSound makes sound available for playback.
	RegisterSound(sound *Sound) (SoundHandle, error)
	// UnregisterSound stops every instance of sound and releases it. The
	// handle is never reused. Unknown handles are ignored.
	UnregisterSound(sound SoundHandle)
	// StartSound plays a new instance of the sound.
	StartSound(sound SoundHandle, info SoundInfo) (InstanceHandle, error)
	// StopSound stops one instance. Unknown or finished instances are ignored.
	StopSound(instance InstanceHandle)
	// StopSoundsWithHandle stops every instance of sound, whoever started it.
	StopSoundsWithHandle(sound SoundHandle)
	// StopAllSounds stops every playing instance.
	StopAllSounds()
	// SoundDuration returns the sound's length in milliseconds, or false if
	// the backend cannot tell.
	SoundDuration(sound SoundHandle) (int, bool)
	// IsPlaying reports whether instance is still producing samples.
	IsPlaying(instance InstanceHandle) bool
}

// Sentinel errors.
var (
	ErrUnknownSound = errors.New("unknown sound handle")
	ErrNilSound     = errors.New("nil sound")
	ErrStopEvent    = errors.New("stop event does not start an instance")
)

// loopCount normalises a requested loop count.
func loopCount(n uint16) int {
	if n == 0 {
		return 1
	}
	return int(n)
}
