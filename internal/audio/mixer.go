package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/zjrosen/soundctl/internal/log"
)

// resampleQuality is passed to beep.Resample for sounds whose rate differs
// from the output rate.
const resampleQuality = 4

// DefaultSampleRate is the output rate used when none is configured.
const DefaultSampleRate = beep.SampleRate(44100)

// MixerConfig configures a MixerBackend.
type MixerConfig struct {
	SampleRate   beep.SampleRate
	MasterVolume float64 // 0.0-1.0
}

// mixerInstance tracks one playing instance.
type mixerInstance struct {
	sound SoundHandle
	ctrl  *beep.Ctrl
}

// MixerBackend mixes registered sounds with a beep.Mixer.
//
// MixerBackend is itself a beep.Streamer producing the mixed output; hand it
// to the speaker with speakerout.Start, or pull samples directly with Stream.
type MixerBackend struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	mixer      *beep.Mixer
	volume     *effects.Volume

	sounds    map[SoundHandle]*Sound
	nextSound SoundHandle
	instances map[InstanceHandle]*mixerInstance

	// Accessed only while streaming, under mu.
	finished []InstanceHandle
}

// NewMixerBackend creates a mixer backend. Output is silent until streamed.
func NewMixerBackend(cfg MixerConfig) *MixerBackend {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	mixer := &beep.Mixer{}
	b := &MixerBackend{
		sampleRate: cfg.SampleRate,
		mixer:      mixer,
		volume:     &effects.Volume{Streamer: mixer, Base: 2},
		sounds:     make(map[SoundHandle]*Sound),
		instances:  make(map[InstanceHandle]*mixerInstance),
	}
	b.setVolumeLocked(cfg.MasterVolume)
	return b
}

// Ensure MixerBackend implements Backend.
var _ Backend = (*MixerBackend)(nil)

// SampleRate returns the output rate.
func (b *MixerBackend) SampleRate() beep.SampleRate {
	return b.sampleRate
}

// SetMasterVolume sets the output gain (0.0-1.0).
func (b *MixerBackend) SetMasterVolume(vol float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setVolumeLocked(vol)
}

func (b *MixerBackend) setVolumeLocked(vol float64) {
	if vol <= 0 {
		b.volume.Volume = 0
		b.volume.Silent = true
		return
	}
	if vol > 1 {
		vol = 1
	}
	b.volume.Volume = math.Log2(vol)
	b.volume.Silent = false
}

// RegisterSound implements Backend.
func (b *MixerBackend) RegisterSound(sound *Sound) (SoundHandle, error) {
	if sound == nil {
		return 0, ErrNilSound
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSound++
	h := b.nextSound
	b.sounds[h] = sound
	log.Debug(log.CatAudio, "Sound registered", "sound", sound.Name, "handle", h)
	return h, nil
}

// UnregisterSound implements Backend.
func (b *MixerBackend) UnregisterSound(sound SoundHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.sounds[sound]; !ok {
		return
	}
	b.stopWithHandleLocked(sound)
	delete(b.sounds, sound)
	log.Debug(log.CatAudio, "Sound unregistered", "handle", sound)
}

// Registered returns the number of registered sounds.
func (b *MixerBackend) Registered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sounds)
}

// StartSound implements Backend.
func (b *MixerBackend) StartSound(sound SoundHandle, info SoundInfo) (InstanceHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snd, ok := b.sounds[sound]
	if !ok {
		return InstanceHandle{}, ErrUnknownSound
	}
	if info.Event == EventStop {
		b.stopWithHandleLocked(sound)
		return InstanceHandle{}, ErrStopEvent
	}

	h := newInstanceHandle()
	ctrl := &beep.Ctrl{Streamer: b.instanceStreamer(snd, info, h)}
	b.instances[h] = &mixerInstance{sound: sound, ctrl: ctrl}
	b.mixer.Add(ctrl)

	log.Debug(log.CatAudio, "Sound started",
		"sound", snd.Name, "instance", h, "loops", loopCount(info.NumLoops), "event", info.Event)
	return h, nil
}

// instanceStreamer builds the streamer for one playback. The sample range is
// taken in the sound's own frames and each loop replays the same range.
func (b *MixerBackend) instanceStreamer(snd *Sound, info SoundInfo, h InstanceHandle) beep.Streamer {
	done := beep.Callback(func() { b.finished = append(b.finished, h) })
	if snd.Buffer == nil {
		return done
	}

	length := snd.Buffer.Len()
	from, to := 0, length
	if info.InSample != nil {
		from = min(int(*info.InSample), length)
	}
	if info.OutSample != nil {
		to = max(from, min(int(*info.OutSample), length))
	}
	if from >= to {
		return done
	}

	var s beep.Streamer = beep.Loop(loopCount(info.NumLoops), snd.Buffer.Streamer(from, to))
	if snd.Format.SampleRate != b.sampleRate {
		s = beep.Resample(resampleQuality, snd.Format.SampleRate, b.sampleRate, s)
	}
	return beep.Seq(s, done)
}

// StopSound implements Backend.
func (b *MixerBackend) StopSound(instance InstanceHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	inst, ok := b.instances[instance]
	if !ok {
		return
	}
	inst.ctrl.Streamer = nil
	delete(b.instances, instance)
	log.Debug(log.CatAudio, "Sound stopped", "instance", instance)
}

// StopSoundsWithHandle implements Backend.
func (b *MixerBackend) StopSoundsWithHandle(sound SoundHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopWithHandleLocked(sound)
}

func (b *MixerBackend) stopWithHandleLocked(sound SoundHandle) {
	stopped := 0
	for h, inst := range b.instances {
		if inst.sound != sound {
			continue
		}
		inst.ctrl.Streamer = nil
		delete(b.instances, h)
		stopped++
	}
	log.Debug(log.CatAudio, "Stopped sounds with handle", "handle", sound, "count", stopped)
}

// StopAllSounds implements Backend.
func (b *MixerBackend) StopAllSounds() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for h, inst := range b.instances {
		inst.ctrl.Streamer = nil
		delete(b.instances, h)
	}
	b.mixer.Clear()
	log.Debug(log.CatAudio, "Stopped all sounds")
}

// SoundDuration implements Backend.
func (b *MixerBackend) SoundDuration(sound SoundHandle) (int, bool) {
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
func (b *MixerBackend) IsPlaying(instance InstanceHandle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.instances[instance]
	return ok
}

// Playing returns the number of live instances.
func (b *MixerBackend) Playing() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.instances)
}

// Stream mixes the live instances into samples. It never drains: with no
// instances it produces silence.
func (b *MixerBackend) Stream(samples [][2]float64) (n int, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.volume.Stream(samples)
	for _, h := range b.finished {
		delete(b.instances, h)
	}
	b.finished = b.finished[:0]
	return len(samples), true
}

// Err implements beep.Streamer.
func (b *MixerBackend) Err() error {
	return nil
}
