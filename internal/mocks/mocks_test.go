package mocks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/playback/domain"
)

// Regenerate with mockery (see .mockery.yaml) when these stop compiling.
var (
	_ audio.Backend          = (*MockBackend)(nil)
	_ domain.EventRepository = (*MockEventRepository)(nil)
)

func TestMockBackend_UnregisterSound(t *testing.T) {
	m := NewMockBackend(t)
	var got audio.SoundHandle
	m.EXPECT().UnregisterSound(audio.SoundHandle(3)).Run(func(h audio.SoundHandle) { got = h }).Once()

	var b audio.Backend = m
	b.UnregisterSound(3)
	require.Equal(t, audio.SoundHandle(3), got)
}
