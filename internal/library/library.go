package library

import "github.com/zjrosen/soundctl/internal/audio"

// Library is the set of loaded movies. It is built once by a Loader and then
// only read, so it needs no locking.
type Library struct {
	movies map[string]*Movie
	order  []*Movie
	root   *Movie
	dir    string
}

// New creates an empty library whose content lives in dir.
func New(dir string) *Library {
	return &Library{
		movies: make(map[string]*Movie),
		dir:    dir,
	}
}

// Dir returns the content directory the library was loaded from.
func (l *Library) Dir() string { return l.dir }

// Add inserts m. The first movie added becomes the root unless SetRoot is called.
func (l *Library) Add(m *Movie) {
	if _, exists := l.movies[m.Name()]; !exists {
		l.order = append(l.order, m)
	}
	l.movies[m.Name()] = m
	if l.root == nil {
		l.root = m
	}
}

// SetRoot selects the movie loaded at level 0.
func (l *Library) SetRoot(name string) error {
	m, ok := l.movies[name]
	if !ok {
		return &MovieNotFoundError{Name: name}
	}
	l.root = m
	return nil
}

// Root returns the level 0 movie.
func (l *Library) Root() (*Movie, bool) {
	return l.root, l.root != nil
}

// Movie returns the movie named name.
func (l *Library) Movie(name string) (*Movie, bool) {
	m, ok := l.movies[name]
	return m, ok
}

// Movies returns all movies in load order.
func (l *Library) Movies() []*Movie {
	out := make([]*Movie, len(l.order))
	copy(out, l.order)
	return out
}

// Resolve looks up an export name within movie's library.
func (l *Library) Resolve(movie *Movie, name string) (Asset, bool) {
	if movie == nil {
		return nil, false
	}
	return movie.Export(name)
}

// SoundHandles returns the backend handles of every sound the library holds.
func (l *Library) SoundHandles() []audio.SoundHandle {
	var out []audio.SoundHandle
	for _, m := range l.order {
		for _, a := range m.Exports() {
			if snd, ok := AsSound(a); ok {
				out = append(out, snd.Handle)
			}
		}
	}
	return out
}

// Release unregisters every sound in the library from backend. The library
// must not be used for playback afterwards.
func (l *Library) Release(backend audio.Backend) {
	for _, h := range l.SoundHandles() {
		backend.UnregisterSound(h)
	}
}
