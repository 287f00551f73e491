package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/zjrosen/soundctl/internal/display"
	"github.com/zjrosen/soundctl/internal/sound"
)

const soundTypeName = "Sound"

// Fixed placeholder results.
const (
	placeholderPan   = 0
	placeholderVol   = 100
	placeholderBytes = 1
)

// registerSound installs the Sound class. Instances are userdata whose
// metatable resolves methods from the class table and the duration, position
// and id3 properties through their getters. Other fields a script assigns are
// kept per object and shadow the class methods; the getter properties are
// read-only and assignments to them are ignored.
func (e *Engine) registerSound() {
	L := e.L

	methods := map[string]lua.LGFunction{
		"attachSound": e.luaAttachSound,
		"start":       e.luaStart,
		"stop":        e.luaStop,

		"getDuration": e.luaDuration,
		"getPosition": e.luaPosition,

		"getPan":         e.placeholder("getPan", lua.LNumber(placeholderPan)),
		"setPan":         e.placeholder("setPan", lua.LNil),
		"getTransform":   e.placeholder("getTransform", lua.LNil),
		"setTransform":   e.placeholder("setTransform", lua.LNil),
		"getVolume":      e.placeholder("getVolume", lua.LNumber(placeholderVol)),
		"setVolume":      e.placeholder("setVolume", lua.LNil),
		"getBytesLoaded": e.gatedPlaceholder("getBytesLoaded", lua.LNumber(placeholderBytes)),
		"getBytesTotal":  e.gatedPlaceholder("getBytesTotal", lua.LNumber(placeholderBytes)),
		"loadSound":      e.gatedPlaceholder("loadSound", lua.LNil),
	}
	properties := map[string]lua.LGFunction{
		"duration": e.traced("Sound.duration", e.luaDuration),
		"position": e.traced("Sound.position", e.luaPosition),
		"id3":      e.gatedPlaceholder("id3", lua.LNil),
	}

	class := L.NewTable()
	for name, fn := range methods {
		class.RawSetString(name, L.NewFunction(e.traced("Sound."+name, fn)))
	}
	class.RawSetString("new", L.NewFunction(e.luaNewSound))

	classMeta := L.NewTable()
	classMeta.RawSetString("__call", L.NewFunction(e.luaNewSound))
	L.SetMetatable(class, classMeta)
	e.soundClass = class

	mt := L.NewTypeMetatable(soundTypeName)
	mt.RawSetString("__index", L.NewFunction(func(L *lua.LState) int {
		key := L.Get(2)
		if obj, ok := soundObject(L.Get(1)); ok && obj.fields != nil {
			if v := obj.fields.RawGet(key); v != lua.LNil {
				L.Push(v)
				return 1
			}
		}
		name, ok := key.(lua.LString)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		if get, ok := properties[string(name)]; ok {
			return get(L)
		}
		L.Push(class.RawGetString(string(name)))
		return 1
	}))
	mt.RawSetString("__newindex", L.NewFunction(func(L *lua.LState) int {
		obj, ok := soundObject(L.Get(1))
		if !ok {
			return 0
		}
		key, value := L.Get(2), L.Get(3)
		if key == lua.LNil {
			L.RaiseError("index is nil")
			return 0
		}
		if name, ok := key.(lua.LString); ok {
			if _, readOnly := properties[string(name)]; readOnly {
				return 0
			}
		}
		if obj.fields == nil {
			obj.fields = L.NewTable()
		}
		obj.fields.RawSet(key, value)
		return 0
	}))
	mt.RawSetString("__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("[object Sound]"))
		return 1
	}))

	L.SetGlobal(soundTypeName, class)
}

// luaNewSound is Sound.new(owner), Sound:new(owner) and Sound(owner). Any
// owner that is not a live DisplayObject yields a sound without owner.
func (e *Engine) luaNewSound(L *lua.LState) int {
	arg := 1
	if L.Get(1) == lua.LValue(e.soundClass) {
		arg = 2
	}

	var owner *display.Node
	if obj, ok := toObject(L.Get(arg)); ok {
		if d, ok := obj.(*DisplayObject); ok {
			owner, _ = e.host.Stage.Lookup(d.id)
		}
	}
	L.Push(e.soundValue(sound.New(owner)))
	return 1
}

func (e *Engine) soundValue(c *sound.Controller) *lua.LUserData {
	ud := e.L.NewUserData()
	ud.Value = &SoundObject{ctrl: c}
	e.L.SetMetatable(ud, e.L.GetTypeMetatable(soundTypeName))
	return ud
}

func soundObject(v lua.LValue) (*SoundObject, bool) {
	obj, ok := toObject(v)
	if !ok {
		return nil, false
	}
	s, ok := obj.(*SoundObject)
	return s, ok
}

// checkSound returns the receiver when it is a Sound. Any other receiver is
// reported and the caller returns nil.
func (e *Engine) checkSound(L *lua.LState, method string) (*sound.Controller, bool) {
	if obj, ok := toObject(L.Get(1)); ok {
		if s, ok := obj.(*SoundObject); ok {
			return s.ctrl, true
		}
	}
	e.host.Diagnose("Sound."+method+": receiver is not a Sound", "receiver", L.Get(1).Type().String())
	return nil, false
}

// snd:attachSound(name)
func (e *Engine) luaAttachSound(L *lua.LState) int {
	c, ok := e.checkSound(L, "attachSound")
	if !ok {
		return 0
	}
	name := L.ToStringMeta(L.Get(2)).String()
	c.AttachSound(e.host, name)
	return 0
}

// snd:start([offset [, loops]])
func (e *Engine) luaStart(L *lua.LState) int {
	c, ok := e.checkSound(L, "start")
	if !ok {
		return 0
	}
	offset := optNumber(L, 2, 0)
	loops := optNumber(L, 3, 1)
	c.Start(e.host, offset, loops)
	return 0
}

// optNumber coerces argument n to a number, raising a Lua error when it
// cannot be converted. A missing or nil argument yields def.
func optNumber(L *lua.LState, n int, def float64) float64 {
	if L.Get(n) == lua.LNil {
		return def
	}
	return float64(L.CheckNumber(n))
}

// snd:stop([name])
func (e *Engine) luaStop(L *lua.LState) int {
	c, ok := e.checkSound(L, "stop")
	if !ok {
		return 0
	}
	if L.GetTop() >= 2 {
		c.StopNamed(e.host, L.ToStringMeta(L.Get(2)).String())
		return 0
	}
	c.Stop(e.host)
	return 0
}

func (e *Engine) luaDuration(L *lua.LState) int {
	if !e.versionOK() {
		L.Push(lua.LNil)
		return 1
	}
	c, ok := e.checkSound(L, "duration")
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(c.Duration()))
	return 1
}

func (e *Engine) luaPosition(L *lua.LState) int {
	if !e.versionOK() {
		L.Push(lua.LNil)
		return 1
	}
	c, ok := e.checkSound(L, "position")
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	if _, ok := c.Sound(); !ok {
		L.Push(lua.LNil)
		return 1
	}
	if _, playing := c.Instance(); playing {
		e.host.Diagnose("Sound.position: playback position is not tracked")
	}
	L.Push(lua.LNumber(c.Position()))
	return 1
}

// placeholder returns an operation that only reports itself and returns v.
// It never inspects its arguments.
func (e *Engine) placeholder(name string, v lua.LValue) lua.LGFunction {
	return func(L *lua.LState) int {
		e.host.Diagnose("Sound." + name + ": unimplemented")
		L.Push(v)
		return 1
	}
}

// gatedPlaceholder is placeholder below MinSoundVersion returning nil silently.
func (e *Engine) gatedPlaceholder(name string, v lua.LValue) lua.LGFunction {
	inner := e.placeholder(name, v)
	return func(L *lua.LState) int {
		if !e.versionOK() {
			L.Push(lua.LNil)
			return 1
		}
		return inner(L)
	}
}
