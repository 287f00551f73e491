// Package playback journals what content scripts ask the audio backend to do.
package playback

import (
	"sync"
	"time"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/log"
	"github.com/zjrosen/soundctl/internal/playback/domain"
)

// RecordingBackend is an audio.Backend that forwards to another backend and
// appends an event for every start and stop request. Journal write failures
// are logged and never affect playback.
type RecordingBackend struct {
	audio.Backend

	events  domain.EventRepository
	runGUID string
	now     func() time.Time

	mu    sync.Mutex
	seq   int
	names map[audio.SoundHandle]string
}

// NewRecordingBackend wraps inner, journaling into events under runGUID.
func NewRecordingBackend(inner audio.Backend, events domain.EventRepository, runGUID string) *RecordingBackend {
	return &RecordingBackend{
		Backend: inner,
		events:  events,
		runGUID: runGUID,
		now:     time.Now,
		names:   make(map[audio.SoundHandle]string),
	}
}

// Ensure RecordingBackend implements audio.Backend.
var _ audio.Backend = (*RecordingBackend)(nil)

// RunGUID returns the run events are recorded under.
func (b *RecordingBackend) RunGUID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.runGUID
}

// SetRunGUID switches recording to another run and restarts its sequence.
// Registered sound names are kept.
func (b *RecordingBackend) SetRunGUID(guid string) {
	b.mu.Lock()
	b.runGUID = guid
	b.seq = 0
	b.mu.Unlock()
}

// RegisterSound implements audio.Backend and remembers the sound's name.
func (b *RecordingBackend) RegisterSound(sound *audio.Sound) (audio.SoundHandle, error) {
	h, err := b.Backend.RegisterSound(sound)
	if err != nil {
		return h, err
	}
	b.mu.Lock()
	b.names[h] = sound.Name
	b.mu.Unlock()
	return h, nil
}

// UnregisterSound implements audio.Backend. Releasing a sound is host
// housekeeping and is not journaled.
func (b *RecordingBackend) UnregisterSound(sound audio.SoundHandle) {
	b.Backend.UnregisterSound(sound)
	b.mu.Lock()
	delete(b.names, sound)
	b.mu.Unlock()
}

// knownSounds returns the number of sound names remembered for events.
func (b *RecordingBackend) knownSounds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.names)
}

// StartSound implements audio.Backend.
func (b *RecordingBackend) StartSound(sound audio.SoundHandle, info audio.SoundInfo) (audio.InstanceHandle, error) {
	inst, err := b.Backend.StartSound(sound, info)

	e := &domain.Event{
		Kind:        domain.EventStarted,
		Sound:       uint32(sound),
		StartSample: info.InSample,
		Loops:       int(info.NumLoops),
	}
	switch {
	case err != nil:
		e.Kind = domain.EventStartFailed
		e.Detail = err.Error()
	default:
		e.Instance = inst.String()
	}
	b.record(e)
	return inst, err
}

// StopSound implements audio.Backend.
func (b *RecordingBackend) StopSound(instance audio.InstanceHandle) {
	b.Backend.StopSound(instance)
	b.record(&domain.Event{Kind: domain.EventStopped, Instance: instance.String()})
}

// StopSoundsWithHandle implements audio.Backend.
func (b *RecordingBackend) StopSoundsWithHandle(sound audio.SoundHandle) {
	b.Backend.StopSoundsWithHandle(sound)
	b.record(&domain.Event{Kind: domain.EventStoppedSound, Sound: uint32(sound)})
}

// StopAllSounds implements audio.Backend.
func (b *RecordingBackend) StopAllSounds() {
	b.Backend.StopAllSounds()
	b.record(&domain.Event{Kind: domain.EventStoppedAll})
}

func (b *RecordingBackend) record(e *domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	e.RunGUID = b.runGUID
	e.Seq = b.seq
	e.OccurredAt = b.now()
	if e.Sound != 0 {
		e.SoundName = b.names[audio.SoundHandle(e.Sound)]
	}
	if err := b.events.Append(e); err != nil {
		log.ErrorErr(log.CatDB, "Failed to record playback event", err, "kind", e.Kind, "run", b.runGUID)
	}
}
