package display

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundctl/internal/library"
)

func TestStage_LoadMovieAndLookup(t *testing.T) {
	s := NewStage()
	main := library.NewMovie("main", 6)

	root, err := s.LoadMovie(0, main)
	require.NoError(t, err)
	require.Equal(t, "_level0", root.Path())

	got, ok := s.Level(0)
	require.True(t, ok)
	require.Same(t, root, got)

	got, ok = s.Lookup(root.ID())
	require.True(t, ok)
	require.Same(t, root, got)

	m, ok := root.Movie()
	require.True(t, ok)
	require.Same(t, main, m)

	_, err = s.LoadMovie(-1, main)
	require.ErrorIs(t, err, ErrBadLevel)
}

func TestNode_ChildrenInheritMovie(t *testing.T) {
	s := NewStage()
	main := library.NewMovie("main", 6)
	other := library.NewMovie("other", 6)
	root, _ := s.LoadMovie(0, main)

	menu, err := root.CreateChild("menu")
	require.NoError(t, err)
	button, err := menu.CreateChild("button")
	require.NoError(t, err)
	require.Equal(t, "_level0.menu.button", button.Path())

	m, _ := button.Movie()
	require.Same(t, main, m)

	menu.SetMovie(other)
	m, _ = button.Movie()
	require.Same(t, other, m)

	menu.SetMovie(nil)
	m, _ = button.Movie()
	require.Same(t, main, m)
}

func TestNode_DetachedWithoutMovieHasNoContext(t *testing.T) {
	s := NewStage()
	root, _ := s.LoadMovie(1, nil)
	child, _ := root.CreateChild("c")

	_, ok := child.Movie()
	require.False(t, ok)
}

func TestNode_RemoveUnregistersSubtree(t *testing.T) {
	s := NewStage()
	root, _ := s.LoadMovie(0, nil)
	a, _ := root.CreateChild("a")
	b, _ := a.CreateChild("b")
	require.Equal(t, 3, s.Len())

	a.Remove()
	require.True(t, a.Removed())
	require.True(t, b.Removed())
	require.Empty(t, root.Children())
	require.Equal(t, 1, s.Len())

	_, ok := s.Lookup(a.ID())
	require.False(t, ok)
	_, ok = s.Lookup(b.ID())
	require.False(t, ok)

	_, err := a.CreateChild("x")
	require.ErrorIs(t, err, ErrNodeRemoved)

	require.NotPanics(t, a.Remove)
}

func TestNode_CreateChildReplacesSameName(t *testing.T) {
	s := NewStage()
	root, _ := s.LoadMovie(0, nil)
	first, _ := root.CreateChild("clip")
	second, _ := root.CreateChild("clip")

	require.True(t, first.Removed())
	require.NotEqual(t, first.ID(), second.ID())
	require.Len(t, root.Children(), 1)

	_, err := root.CreateChild("")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestStage_ReplacingLevelRemovesOldTree(t *testing.T) {
	s := NewStage()
	old, _ := s.LoadMovie(2, nil)
	child, _ := old.CreateChild("c")

	fresh, _ := s.LoadMovie(2, library.NewMovie("next", 6))
	require.True(t, old.Removed())
	require.True(t, child.Removed())
	require.False(t, fresh.Removed())
	require.NotEqual(t, old.ID(), fresh.ID())

	_, _ = s.LoadMovie(0, nil)
	require.Equal(t, []int{0, 2}, s.Levels())

	s.UnloadLevel(2)
	require.Equal(t, []int{0}, s.Levels())
	_, ok := s.Lookup(fresh.ID())
	require.False(t, ok)
}
