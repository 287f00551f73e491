package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/zjrosen/soundctl/internal/display"
)

const displayTypeName = "DisplayObject"

func (e *Engine) registerDisplay() {
	L := e.L

	methods := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"createEmptyMovieClip": e.luaCreateEmptyMovieClip,
		"removeMovieClip":      e.luaRemoveMovieClip,
		"loadMovie":            e.luaLoadMovie,
		"getName":              e.luaGetName,
		"getPath":              e.luaGetPath,
	})

	mt := L.NewTypeMetatable(displayTypeName)
	mt.RawSetString("__index", L.NewFunction(func(L *lua.LState) int {
		name, ok := L.Get(2).(lua.LString)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		key := string(name)
		if fn := methods.RawGetString(key); fn != lua.LNil {
			L.Push(fn)
			return 1
		}
		// Child clips are reachable as fields: _root.menu.button
		if n, ok := e.node(L.Get(1)); ok {
			if child, ok := n.Child(key); ok {
				L.Push(e.displayValue(child))
				return 1
			}
		}
		L.Push(lua.LNil)
		return 1
	}))
	mt.RawSetString("__tostring", L.NewFunction(func(L *lua.LState) int {
		if n, ok := e.node(L.Get(1)); ok {
			L.Push(lua.LString(n.Path()))
		} else {
			L.Push(lua.LString("[removed]"))
		}
		return 1
	}))
	mt.RawSetString("__eq", L.NewFunction(func(L *lua.LState) int {
		a, aok := toObject(L.Get(1))
		b, bok := toObject(L.Get(2))
		da, _ := a.(*DisplayObject)
		db, _ := b.(*DisplayObject)
		L.Push(lua.LBool(aok && bok && da != nil && db != nil && da.id == db.id))
		return 1
	}))
}

func (e *Engine) displayValue(n *display.Node) *lua.LUserData {
	ud := e.L.NewUserData()
	ud.Value = &DisplayObject{id: n.ID()}
	e.L.SetMetatable(ud, e.L.GetTypeMetatable(displayTypeName))
	return ud
}

// node resolves v to a live display node.
func (e *Engine) node(v lua.LValue) (*display.Node, bool) {
	obj, ok := toObject(v)
	if !ok {
		return nil, false
	}
	d, ok := obj.(*DisplayObject)
	if !ok {
		return nil, false
	}
	return e.host.Stage.Lookup(d.id)
}

func (e *Engine) checkNode(L *lua.LState, method string) (*display.Node, bool) {
	n, ok := e.node(L.Get(1))
	if !ok {
		e.host.Diagnose("DisplayObject."+method+": not a live display object", "receiver", L.Get(1).Type().String())
	}
	return n, ok
}

// clip:createEmptyMovieClip(name)
func (e *Engine) luaCreateEmptyMovieClip(L *lua.LState) int {
	n, ok := e.checkNode(L, "createEmptyMovieClip")
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	child, err := n.CreateChild(L.CheckString(2))
	if err != nil {
		e.host.Diagnose("DisplayObject.createEmptyMovieClip: "+err.Error(), "parent", n.Path())
		L.Push(lua.LNil)
		return 1
	}
	L.Push(e.displayValue(child))
	return 1
}

// clip:removeMovieClip()
func (e *Engine) luaRemoveMovieClip(L *lua.LState) int {
	n, ok := e.checkNode(L, "removeMovieClip")
	if !ok {
		return 0
	}
	root, _ := e.host.Stage.Level(0)
	n.Remove()
	if n == root {
		e.refreshRoot()
	}
	return 0
}

// clip:loadMovie(name) loads a library movie into the clip, making it the
// clip's content context.
func (e *Engine) luaLoadMovie(L *lua.LState) int {
	n, ok := e.checkNode(L, "loadMovie")
	if !ok {
		return 0
	}
	name := L.CheckString(2)
	m, ok := e.host.Library.Movie(name)
	if !ok {
		e.host.Diagnose("DisplayObject.loadMovie: movie not found", "movie", name)
		return 0
	}
	n.SetMovie(m)
	return 0
}

func (e *Engine) luaGetName(L *lua.LState) int {
	n, ok := e.checkNode(L, "getName")
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(n.Name()))
	return 1
}

func (e *Engine) luaGetPath(L *lua.LState) int {
	n, ok := e.checkNode(L, "getPath")
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(n.Path()))
	return 1
}
