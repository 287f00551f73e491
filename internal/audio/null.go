package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/zjrosen/soundctl/internal/log"
)

// ErrStartRejected is returned by NullBackend.StartSound while RejectStarts is set.
var ErrStartRejected = errors.New("start rejected")

// nullInstance is a virtual playback with a fixed remaining time.
type nullInstance struct {
	sound     SoundHandle
	remaining time.Duration
	endless   bool
}

// StartRecord is one accepted start request.
type StartRecord struct {
	Sound    SoundHandle
	Instance InstanceHandle
	Info     SoundInfo
}

// NullBackend keeps playback bookkeeping without producing audio.
// Instances end when Advance moves virtual time past their length, or when
// stopped. Sounds without sample data play until stopped.
type NullBackend struct {
	mu        sync.Mutex
	sounds    map[SoundHandle]*Sound
	nextSound SoundHandle
	instances map[InstanceHandle]*nullInstance
	started   []StartRecord

	// RejectStarts makes every StartSound fail.
	RejectStarts bool
}

// NewNullBackend creates an empty headless backend.
func NewNullBackend() *NullBackend {
	return &NullBackend{
		sounds:    make(map[SoundHandle]*Sound),
		instances: make(map[InstanceHandle]*nullInstance),
	}
}

// Ensure NullBackend implements Backend.
var _ Backend = (*NullBackend)(nil)

// RegisterSound implements Backend.
func (b *NullBackend) RegisterSound(sound *Sound) (SoundHandle, error) {
	if sound == nil {
		return 0, ErrNilSound
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSound++
	b.sounds[b.nextSound] = sound
	return b.nextSound, nil
}

// UnregisterSound implements Backend.
func (b *NullBackend) UnregisterSound(sound SoundHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.sounds[sound]; !ok {
		return
	}
	b.stopWithHandleLocked(sound)
	delete(b.sounds, sound)
}

// Registered returns the number of registered sounds.
func (b *NullBackend) Registered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sounds)
}

// StartSound implements Backend.
func (b *NullBackend) StartSound(sound SoundHandle, info SoundInfo) (InstanceHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snd, ok := b.sounds[sound]
	if !ok {
		return InstanceHandle{}, ErrUnknownSound
	}
	if b.RejectStarts {
		return InstanceHandle{}, ErrStartRejected
	}
	if info.Event == EventStop {
		b.stopWithHandleLocked(sound)
		return InstanceHandle{}, ErrStopEvent
	}

	inst := &nullInstance{sound: sound}
	if d, ok := snd.Duration(); ok {
		length := snd.Buffer.Len()
		from := 0
		if info.InSample != nil {
			from = min(int(*info.InSample), length)
		}
		to := length
		if info.OutSample != nil {
			to = max(from, min(int(*info.OutSample), length))
		}
		per := time.Duration(0)
		if length > 0 {
			per = d * time.Duration(to-from) / time.Duration(length)
		}
		inst.remaining = per * time.Duration(loopCount(info.NumLoops))
	} else {
		inst.endless = true
	}

	h := newInstanceHandle()
	b.instances[h] = inst
	b.started = append(b.started, StartRecord{Sound: sound, Instance: h, Info: info})
	log.Debug(log.CatAudio, "Null sound started", "sound", snd.Name, "instance", h)
	return h, nil
}

// StopSound implements Backend.
func (b *NullBackend) StopSound(instance InstanceHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.instances, instance)
}

// StopSoundsWithHandle implements Backend.
func (b *NullBackend) StopSoundsWithHandle(sound SoundHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopWithHandleLocked(sound)
}

func (b *NullBackend) stopWithHandleLocked(sound SoundHandle) {
	for h, inst := range b.instances {
		if inst.sound == sound {
			delete(b.instances, h)
		}
	}
}

// StopAllSounds implements Backend.
func (b *NullBackend) StopAllSounds() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.instances)
}

// SoundDuration implements Backend.
func (b *NullBackend) SoundDuration(sound SoundHandle) (int, bool) {
	b.mu.Lock()
	snd, ok := b.sounds[sound]
	b.mu.Unlock()
	if !ok {
		return 0, false
	}
	d, ok := snd.Duration()
	if !ok {
		return 0, false
	}
	return int(d / time.Millisecond), true
}

// IsPlaying implements Backend.
func (b *NullBackend) IsPlaying(instance InstanceHandle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.instances[instance]
	return ok
}

// Advance moves virtual time forward, ending instances that run out.
func (b *NullBackend) Advance(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for h, inst := range b.instances {
		if inst.endless {
			continue
		}
		inst.remaining -= d
		if inst.remaining <= 0 {
			delete(b.instances, h)
		}
	}
}

// Playing returns the number of live instances.
func (b *NullBackend) Playing() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.instances)
}

// PlayingSound returns the number of live instances of sound.
func (b *NullBackend) PlayingSound(sound SoundHandle) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, inst := range b.instances {
		if inst.sound == sound {
			n++
		}
	}
	return n
}

// Started returns every accepted start request in order.
func (b *NullBackend) Started() []StartRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]StartRecord, len(b.started))
	copy(out, b.started)
	return out
}
