// Package script runs Lua content scripts against the sound and display
// subsystems.
//
// Scripts see a Sound class, DisplayObjects for the nodes of the stage, and a
// handful of globals (_root, trace, stopAllSounds, loadMovieNum, getVersion).
// Problems that legacy content is expected to survive, such as a missing
// sound or an unsupported call, are reported through sound.Diagnostics and
// return nil. Only argument coercion failures raise Lua errors.
package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/display"
	"github.com/zjrosen/soundctl/internal/library"
	"github.com/zjrosen/soundctl/internal/log"
	"github.com/zjrosen/soundctl/internal/sound"
)

// MinSoundVersion is the first content version for which the Sound getters
// and loading placeholders report values.
const MinSoundVersion = 6

const tracerName = "github.com/zjrosen/soundctl/internal/script"

// Options configures an Engine.
type Options struct {
	Library *library.Library
	Audio   audio.Backend
	Stage   *display.Stage
	// Version is the script's content version. Zero means the version of the
	// movie at level 0, or library.DefaultVersion when there is none.
	Version uint8
	// Output receives trace() output. Nil discards it.
	Output      io.Writer
	Diagnostics sound.Diagnostics
	// Tracer defaults to the global otel tracer provider.
	Tracer trace.Tracer
}

// Engine is a Lua state with the soundctl API installed. It must be used from
// one goroutine at a time.
type Engine struct {
	L       *lua.LState
	host    *sound.Host
	version uint8
	out     io.Writer
	tracer  trace.Tracer

	soundClass *lua.LTable
}

// New creates an engine and installs the API.
func New(opts Options) *Engine {
	e := &Engine{
		L: lua.NewState(),
		host: &sound.Host{
			Library:     opts.Library,
			Audio:       opts.Audio,
			Stage:       opts.Stage,
			Diagnostics: opts.Diagnostics,
		},
		version: opts.Version,
		out:     opts.Output,
		tracer:  opts.Tracer,
	}
	if e.out == nil {
		e.out = io.Discard
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	if e.version == 0 {
		e.version = library.DefaultVersion
		if root, ok := opts.Stage.Level(0); ok {
			if m, ok := root.Movie(); ok {
				e.version = m.Version()
			}
		}
	}

	e.registerDisplay()
	e.registerSound()
	e.registerGlobals()
	return e
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.L.Close()
}

// Version returns the content version the engine gates on.
func (e *Engine) Version() uint8 { return e.version }

// Host returns the collaborators the engine's sounds call into.
func (e *Engine) Host() *sound.Host { return e.host }

// RunString executes src. Cancelling ctx aborts the script.
func (e *Engine) RunString(ctx context.Context, src string) error {
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	if err := e.L.DoString(src); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// RunFile executes the script at path.
func (e *Engine) RunFile(ctx context.Context, path string) error {
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	if err := e.L.DoFile(path); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}
	return nil
}

func (e *Engine) versionOK() bool {
	return e.version >= MinSoundVersion
}

func (e *Engine) context() context.Context {
	if ctx := e.L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// traced wraps fn in a span named name.
func (e *Engine) traced(name string, fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		_, span := e.tracer.Start(e.context(), name)
		defer span.End()
		return fn(L)
	}
}

func toObject(v lua.LValue) (Object, bool) {
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return nil, false
	}
	obj, ok := ud.Value.(Object)
	return obj, ok
}

func (e *Engine) registerGlobals() {
	L := e.L
	L.SetGlobal("trace", L.NewFunction(e.luaTrace))
	L.SetGlobal("stopAllSounds", L.NewFunction(e.traced("stopAllSounds", e.luaStopAllSounds)))
	L.SetGlobal("loadMovieNum", L.NewFunction(e.luaLoadMovieNum))
	L.SetGlobal("getVersion", L.NewFunction(e.luaGetVersion))
	e.refreshRoot()
}

// refreshRoot points _root at the current level 0 node.
func (e *Engine) refreshRoot() {
	if root, ok := e.host.Stage.Level(0); ok {
		e.L.SetGlobal("_root", e.displayValue(root))
		return
	}
	e.L.SetGlobal("_root", lua.LNil)
}

func (e *Engine) luaTrace(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	line := strings.Join(parts, " ")
	log.Debug(log.CatScript, "trace", "message", line)
	_, _ = fmt.Fprintln(e.out, line)
	return 0
}

func (e *Engine) luaStopAllSounds(L *lua.LState) int {
	e.host.Audio.StopAllSounds()
	return 0
}

// luaLoadMovieNum(name, level) loads a library movie at level and returns
// its root node.
func (e *Engine) luaLoadMovieNum(L *lua.LState) int {
	name := L.CheckString(1)
	level := L.OptInt(2, 0)

	m, ok := e.host.Library.Movie(name)
	if !ok {
		e.host.Diagnose("loadMovieNum: movie not found", "movie", name)
		L.Push(lua.LNil)
		return 1
	}
	n, err := e.host.Stage.LoadMovie(level, m)
	if err != nil {
		e.host.Diagnose("loadMovieNum: "+err.Error(), "movie", name, "level", level)
		L.Push(lua.LNil)
		return 1
	}
	if level == 0 {
		e.refreshRoot()
	}
	L.Push(e.displayValue(n))
	return 1
}

func (e *Engine) luaGetVersion(L *lua.LState) int {
	L.Push(lua.LNumber(e.version))
	return 1
}
