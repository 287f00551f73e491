package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/zjrosen/soundctl/internal/display"
	"github.com/zjrosen/soundctl/internal/sound"
)

// Object is a Go value carried by a script userdata. The set of kinds is
// closed: *SoundObject and *DisplayObject.
type Object interface {
	objectKind() string
}

// SoundObject is the script side of a sound.Controller.
type SoundObject struct {
	ctrl *sound.Controller
	// fields holds values the script stored on the object; nil until the
	// first assignment.
	fields *lua.LTable
}

// Controller returns the object's controller.
func (o *SoundObject) Controller() *sound.Controller { return o.ctrl }

func (*SoundObject) objectKind() string { return soundTypeName }

// DisplayObject refers to a display node by identity. It does not keep the
// node alive; calls on a removed node degrade to diagnostics.
type DisplayObject struct {
	id display.NodeID
}

// ID returns the referenced node's identity.
func (o *DisplayObject) ID() display.NodeID { return o.id }

func (*DisplayObject) objectKind() string { return displayTypeName }
