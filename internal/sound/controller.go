// Package sound implements the state behind a scripted Sound object.
//
// A Controller is attached to at most one library sound and tracks the last
// playback instance it started. It may be scoped to an owner display node,
// which decides where export names are resolved and what a bare stop()
// affects. The owner is held by identity only; once the node is removed the
// controller falls back to the level 0 context.
//
// Controllers are used from the script goroutine only and do no locking.
package sound

import (
	"math"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/display"
	"github.com/zjrosen/soundctl/internal/library"
	"github.com/zjrosen/soundctl/internal/log"
)

// ReferenceSampleRate converts start offsets in seconds to sample positions.
// It is applied regardless of the sound's own rate.
const ReferenceSampleRate = 44100

// MaxLoops is the largest loop count a start request can carry.
const MaxLoops = math.MaxUint16

// Controller is one scripted Sound object.
type Controller struct {
	owner    display.NodeID
	hasOwner bool

	sound    audio.SoundHandle
	duration int // ms
	position int // ms

	instance audio.InstanceHandle
}

// New creates a controller. owner may be nil.
func New(owner *display.Node) *Controller {
	c := &Controller{}
	if owner != nil {
		c.owner = owner.ID()
		c.hasOwner = true
	}
	return c
}

// Owner returns the owner node's ID, if the controller was created with one.
// The node may since have been removed.
func (c *Controller) Owner() (display.NodeID, bool) {
	return c.owner, c.hasOwner
}

// Sound returns the attached sound.
func (c *Controller) Sound() (audio.SoundHandle, bool) {
	return c.sound, c.sound.IsValid()
}

// Duration returns the attached sound's length in milliseconds, or 0.
func (c *Controller) Duration() int { return c.duration }

// Position returns the playback position in milliseconds. It is reset on
// attach and not tracked afterwards.
func (c *Controller) Position() int { return c.position }

// Instance returns the most recently started instance. It may have finished.
func (c *Controller) Instance() (audio.InstanceHandle, bool) {
	return c.instance, !c.instance.IsZero()
}

// context returns the movie export names are resolved in: the owner's, or
// level 0's when there is no live owner with a movie.
func (c *Controller) context(h *Host) (*library.Movie, bool) {
	if c.hasOwner {
		if n, ok := h.Stage.Lookup(c.owner); ok {
			if m, ok := n.Movie(); ok {
				return m, true
			}
		}
	}
	root, ok := h.Stage.Level(0)
	if !ok {
		return nil, false
	}
	return root.Movie()
}

// resolve looks name up as a sound in the controller's context.
func (c *Controller) resolve(h *Host, op, name string) (*library.SoundAsset, bool) {
	movie, ok := c.context(h)
	if !ok {
		h.Diagnose("Sound."+op+": no movie to resolve sound in", "name", name)
		return nil, false
	}
	asset, ok := h.Library.Resolve(movie, name)
	if !ok {
		h.Diagnose("Sound."+op+": sound not found", "name", name, "movie", movie.Name())
		return nil, false
	}
	snd, ok := library.AsSound(asset)
	if !ok {
		h.Diagnose("Sound."+op+": export is not a sound", "name", name, "movie", movie.Name())
		return nil, false
	}
	return snd, true
}

// AttachSound binds the controller to the sound exported as name. On failure
// the controller is left unchanged. The tracked instance is kept either way.
func (c *Controller) AttachSound(h *Host, name string) {
	snd, ok := c.resolve(h, "attachSound", name)
	if !ok {
		return
	}
	c.sound = snd.Handle
	c.duration = 0
	if ms, ok := h.Audio.SoundDuration(snd.Handle); ok {
		c.duration = ms
	}
	c.position = 0
}

// Start plays a new instance of the attached sound from offset seconds,
// looping loops times. The new instance replaces the tracked one; the old
// one keeps playing. Backend failures leave the controller unchanged.
func (c *Controller) Start(h *Host, offset, loops float64) {
	if !c.sound.IsValid() {
		h.Diagnose("Sound.start: no sound attached")
		return
	}

	info := audio.SoundInfo{
		Event:    audio.EventStart,
		InSample: StartSample(offset),
		NumLoops: LoopCount(loops),
	}
	inst, err := h.Audio.StartSound(c.sound, info)
	if err != nil {
		log.Debug(log.CatScript, "Sound start failed", "sound", c.sound, "error", err)
		return
	}
	c.instance = inst
}

// StopNamed stops every instance of the sound exported as name, whoever
// started it. The name is resolved in this controller's context.
func (c *Controller) StopNamed(h *Host, name string) {
	snd, ok := c.resolve(h, "stop", name)
	if !ok {
		return
	}
	h.Audio.StopSoundsWithHandle(snd.Handle)
}

// Stop stops the tracked instance when the controller has an owner, and
// every sound on the stage when it does not. The tracked handle is kept.
func (c *Controller) Stop(h *Host) {
	if !c.hasOwner {
		h.Audio.StopAllSounds()
		return
	}
	if !c.instance.IsZero() {
		h.Audio.StopSound(c.instance)
	}
}

// LoopCount converts a script loop count: floored, at least 1, saturating at
// MaxLoops. NaN counts as 1.
func LoopCount(loops float64) uint16 {
	loops = math.Floor(loops)
	switch {
	case !(loops >= 1):
		return 1
	case loops >= MaxLoops:
		return MaxLoops
	default:
		return uint16(loops)
	}
}

// StartSample converts a start offset in seconds to a sample position at
// ReferenceSampleRate. Offsets that are not positive mean "from the start".
func StartSample(offset float64) *uint32 {
	if !(offset > 0) {
		return nil
	}
	v := offset * ReferenceSampleRate
	var s uint32
	if v >= math.MaxUint32 {
		s = math.MaxUint32
	} else {
		s = uint32(v)
	}
	return &s
}
