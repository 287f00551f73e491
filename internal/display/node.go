// Package display models the display tree that scripted objects attach to.
//
// Nodes are owned by their parent; the Stage owns the level roots. Anything
// else that needs to refer to a node holds its NodeID and resolves it through
// Stage.Lookup, so references never keep a removed node reachable.
package display

import (
	"strconv"
	"strings"

	"github.com/zjrosen/soundctl/internal/library"
)

// NodeID identifies a node for the lifetime of its stage. IDs are never reused.
type NodeID uint64

// Node is one element of the display tree.
type Node struct {
	id       NodeID
	name     string
	stage    *Stage
	parent   *Node
	children []*Node
	movie    *library.Movie
	level    int // >= 0 for level roots, -1 otherwise
	removed  bool
}

// ID returns the node's identity.
func (n *Node) ID() NodeID { return n.id }

// Name returns the node's instance name.
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil for a level root.
func (n *Node) Parent() *Node { return n.parent }

// Removed reports whether the node has been taken off the stage.
func (n *Node) Removed() bool { return n.removed }

// Children returns the node's children in creation order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Path returns the dotted target path, e.g. "_level0.menu.button".
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		if cur.level >= 0 {
			parts = append(parts, "_level"+strconv.Itoa(cur.level))
			break
		}
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Movie returns the content context of the node: the movie loaded into it,
// or the nearest ancestor's.
func (n *Node) Movie() (*library.Movie, bool) {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.movie != nil {
			return cur.movie, true
		}
	}
	return nil, false
}

// SetMovie loads m into the node. Passing nil makes the node inherit its
// parent's context again.
func (n *Node) SetMovie(m *library.Movie) {
	n.movie = m
}

// Child returns the direct child named name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// CreateChild adds an empty child node. An existing child with the same name
// is replaced.
func (n *Node) CreateChild(name string) (*Node, error) {
	if n.removed {
		return nil, ErrNodeRemoved
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if old, ok := n.Child(name); ok {
		old.Remove()
	}
	child := n.stage.newNode(name, -1)
	child.parent = n
	n.children = append(n.children, child)
	return child, nil
}

// Remove detaches the node and its subtree from the stage. Removing a level
// root unloads the level.
func (n *Node) Remove() {
	if n.removed {
		return
	}
	if n.parent != nil {
		siblings := n.parent.children
		for i, c := range siblings {
			if c == n {
				n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
		n.parent = nil
	} else if n.level >= 0 {
		delete(n.stage.levels, n.level)
	}
	n.stage.unregister(n)
}
