package display

import (
	"errors"
	"sort"
	"strconv"

	"github.com/zjrosen/soundctl/internal/library"
	"github.com/zjrosen/soundctl/internal/log"
)

// Errors returned by tree mutations.
var (
	ErrNodeRemoved = errors.New("node has been removed")
	ErrEmptyName   = errors.New("node name must not be empty")
	ErrBadLevel    = errors.New("level must not be negative")
)

// Stage holds the level roots and the identity registry for every live node.
// It is not safe for concurrent use; it belongs to the script goroutine.
type Stage struct {
	levels map[int]*Node
	nodes  map[NodeID]*Node
	nextID NodeID
}

// NewStage creates a stage with no levels loaded.
func NewStage() *Stage {
	return &Stage{
		levels: make(map[int]*Node),
		nodes:  make(map[NodeID]*Node),
	}
}

func (s *Stage) newNode(name string, level int) *Node {
	s.nextID++
	n := &Node{id: s.nextID, name: name, stage: s, level: level}
	s.nodes[n.id] = n
	return n
}

func (s *Stage) unregister(n *Node) {
	n.removed = true
	delete(s.nodes, n.id)
	for _, c := range n.children {
		s.unregister(c)
	}
}

// LoadMovie loads m at level, replacing whatever was there. The previous
// level root and its subtree are removed.
func (s *Stage) LoadMovie(level int, m *library.Movie) (*Node, error) {
	if level < 0 {
		return nil, ErrBadLevel
	}
	if old, ok := s.levels[level]; ok {
		old.Remove()
	}
	root := s.newNode("_level"+strconv.Itoa(level), level)
	root.movie = m
	s.levels[level] = root

	name := ""
	if m != nil {
		name = m.Name()
	}
	log.Debug(log.CatScript, "Movie loaded at level", "level", level, "movie", name, "node", root.id)
	return root, nil
}

// UnloadLevel removes the level root and its subtree.
func (s *Stage) UnloadLevel(level int) {
	if n, ok := s.levels[level]; ok {
		n.Remove()
	}
}

// Level returns the root node of level.
func (s *Stage) Level(level int) (*Node, bool) {
	n, ok := s.levels[level]
	return n, ok
}

// Levels returns the loaded level numbers in ascending order.
func (s *Stage) Levels() []int {
	out := make([]int, 0, len(s.levels))
	for l := range s.levels {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// Lookup resolves id to a live node.
func (s *Stage) Lookup(id NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Len returns the number of live nodes.
func (s *Stage) Len() int {
	return len(s.nodes)
}
