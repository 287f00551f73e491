package sound

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/display"
	"github.com/zjrosen/soundctl/internal/library"
	"github.com/zjrosen/soundctl/internal/mocks"
)

const (
	hitHandle  audio.SoundHandle = 7
	loopHandle audio.SoundHandle = 8
	ownHandle  audio.SoundHandle = 9
)

type diagRecorder struct {
	msgs []string
}

func (d *diagRecorder) Diagnose(msg string, _ ...any) {
	d.msgs = append(d.msgs, msg)
}

type fixture struct {
	host    *Host
	backend *mocks.MockBackend
	diags   *diagRecorder
	root    *display.Node
	clip    *display.Node // child of root with its own movie
	main    *library.Movie
	other   *library.Movie
}

// newFixture builds a stage with "main" at level 0 and a child clip that has
// "other" loaded into it. Both movies export "hit" with different handles.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	main := library.NewMovie("main", 6)
	require.NoError(t, main.AddExport(&library.SoundAsset{Export: "hit", Handle: hitHandle}))
	require.NoError(t, main.AddExport(&library.SoundAsset{Export: "loop", Handle: loopHandle}))
	require.NoError(t, main.AddExport(&library.SymbolAsset{Export: "button", Kind: "clip"}))

	other := library.NewMovie("other", 6)
	require.NoError(t, other.AddExport(&library.SoundAsset{Export: "hit", Handle: ownHandle}))

	lib := library.New("")
	lib.Add(main)
	lib.Add(other)

	stage := display.NewStage()
	root, err := stage.LoadMovie(0, main)
	require.NoError(t, err)
	clip, err := root.CreateChild("clip")
	require.NoError(t, err)
	clip.SetMovie(other)

	backend := mocks.NewMockBackend(t)
	diags := &diagRecorder{}
	return &fixture{
		host:    &Host{Library: lib, Audio: backend, Stage: stage, Diagnostics: diags},
		backend: backend,
		diags:   diags,
		root:    root,
		clip:    clip,
		main:    main,
		other:   other,
	}
}

func newInstance(t *testing.T) audio.InstanceHandle {
	t.Helper()
	b := audio.NewNullBackend()
	h, err := b.RegisterSound(&audio.Sound{Name: "x"})
	require.NoError(t, err)
	inst, err := b.StartSound(h, audio.SoundInfo{})
	require.NoError(t, err)
	return inst
}

func TestNew_WithoutOwner(t *testing.T) {
	c := New(nil)

	_, ok := c.Owner()
	require.False(t, ok)
	_, ok = c.Sound()
	require.False(t, ok)
	_, ok = c.Instance()
	require.False(t, ok)
	require.Zero(t, c.Duration())
	require.Zero(t, c.Position())
}

func TestNew_WithOwner(t *testing.T) {
	f := newFixture(t)
	c := New(f.clip)

	id, ok := c.Owner()
	require.True(t, ok)
	require.Equal(t, f.clip.ID(), id)
}

func TestAttachSound_SetsStateFromBackend(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().SoundDuration(hitHandle).Return(1500, true).Once()

	c := New(nil)
	c.AttachSound(f.host, "hit")

	h, ok := c.Sound()
	require.True(t, ok)
	require.Equal(t, hitHandle, h)
	require.Equal(t, 1500, c.Duration())
	require.Zero(t, c.Position())
	require.Empty(t, f.diags.msgs)
}

func TestAttachSound_UnknownDurationIsZero(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().SoundDuration(hitHandle).Return(1500, true).Once()
	f.backend.EXPECT().SoundDuration(loopHandle).Return(0, false).Once()

	c := New(nil)
	c.AttachSound(f.host, "hit")
	c.AttachSound(f.host, "loop")

	h, _ := c.Sound()
	require.Equal(t, loopHandle, h)
	require.Zero(t, c.Duration())
}

func TestAttachSound_FailuresLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		export string
		setup  func(f *fixture)
	}{
		{name: "unknown export", export: "missing"},
		{name: "export is not a sound", export: "button"},
		{
			name:   "no level 0",
			export: "hit",
			setup:  func(f *fixture) { f.host.Stage.UnloadLevel(0) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.backend.EXPECT().SoundDuration(loopHandle).Return(250, true).Once()

			c := New(nil)
			c.AttachSound(f.host, "loop")
			before := *c
			if tt.setup != nil {
				tt.setup(f)
			}

			c.AttachSound(f.host, tt.export)

			require.Equal(t, before, *c)
			require.Len(t, f.diags.msgs, 1)
		})
	}
}

func TestAttachSound_ResolvesInOwnerMovie(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().SoundDuration(ownHandle).Return(100, true).Once()

	c := New(f.clip)
	c.AttachSound(f.host, "hit")

	h, _ := c.Sound()
	require.Equal(t, ownHandle, h)
}

func TestAttachSound_OwnerWithoutMovieFallsBackToRoot(t *testing.T) {
	f := newFixture(t)
	detached, err := f.host.Stage.LoadMovie(3, nil)
	require.NoError(t, err)
	f.backend.EXPECT().SoundDuration(hitHandle).Return(100, true).Once()

	c := New(detached)
	c.AttachSound(f.host, "hit")

	h, _ := c.Sound()
	require.Equal(t, hitHandle, h)
}

func TestAttachSound_RemovedOwnerFallsBackToRoot(t *testing.T) {
	f := newFixture(t)
	c := New(f.clip)
	f.clip.Remove()
	f.backend.EXPECT().SoundDuration(hitHandle).Return(100, true).Once()

	c.AttachSound(f.host, "hit")

	h, _ := c.Sound()
	require.Equal(t, hitHandle, h)
	_, ok := c.Owner()
	require.True(t, ok, "owner stays set after the node is gone")
}

func TestAttachSound_KeepsTrackedInstance(t *testing.T) {
	f := newFixture(t)
	inst := newInstance(t)
	f.backend.EXPECT().SoundDuration(mock.Anything).Return(100, true)
	f.backend.EXPECT().StartSound(hitHandle, mock.Anything).Return(inst, nil).Once()

	c := New(nil)
	c.AttachSound(f.host, "hit")
	c.Start(f.host, 0, 1)
	c.AttachSound(f.host, "loop")

	got, ok := c.Instance()
	require.True(t, ok)
	require.Equal(t, inst, got)
}

func TestStart_WithoutSoundDoesNothing(t *testing.T) {
	f := newFixture(t)

	c := New(nil)
	c.Start(f.host, 0, 1)

	_, ok := c.Instance()
	require.False(t, ok)
	require.Len(t, f.diags.msgs, 1)
	f.backend.AssertNotCalled(t, "StartSound", mock.Anything, mock.Anything)
}

func TestStart_FromBeginning(t *testing.T) {
	f := newFixture(t)
	inst := newInstance(t)
	f.backend.EXPECT().SoundDuration(hitHandle).Return(100, true)
	f.backend.EXPECT().
		StartSound(hitHandle, audio.SoundInfo{Event: audio.EventStart, NumLoops: 1}).
		Return(inst, nil).
		Once()

	c := New(nil)
	c.AttachSound(f.host, "hit")
	c.Start(f.host, 0, 1)

	got, ok := c.Instance()
	require.True(t, ok)
	require.Equal(t, inst, got)
}

func TestStart_OffsetAndLoopClamp(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().SoundDuration(hitHandle).Return(100, true)
	f.backend.EXPECT().
		StartSound(hitHandle, mock.MatchedBy(func(info audio.SoundInfo) bool {
			return info.Event == audio.EventStart &&
				info.InSample != nil && *info.InSample == 88200 &&
				info.OutSample == nil &&
				info.NumLoops == 1 &&
				info.Envelope == nil
		})).
		Return(newInstance(t), nil).
		Once()

	c := New(nil)
	c.AttachSound(f.host, "hit")
	c.Start(f.host, 2.0, 0)
}

func TestStart_ReplacesTrackedInstanceWithoutStopping(t *testing.T) {
	f := newFixture(t)
	first, second := newInstance(t), newInstance(t)
	f.backend.EXPECT().SoundDuration(hitHandle).Return(100, true)
	f.backend.EXPECT().StartSound(hitHandle, mock.Anything).Return(first, nil).Once()
	f.backend.EXPECT().StartSound(hitHandle, mock.Anything).Return(second, nil).Once()

	c := New(nil)
	c.AttachSound(f.host, "hit")
	c.Start(f.host, 0, 1)
	c.Start(f.host, 0, 1)

	got, _ := c.Instance()
	require.Equal(t, second, got)
	f.backend.AssertNotCalled(t, "StopSound", mock.Anything)
}

func TestStart_BackendFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	first := newInstance(t)
	f.backend.EXPECT().SoundDuration(hitHandle).Return(100, true)
	f.backend.EXPECT().StartSound(hitHandle, mock.Anything).Return(first, nil).Once()
	f.backend.EXPECT().StartSound(hitHandle, mock.Anything).Return(audio.InstanceHandle{}, errors.New("device busy")).Once()

	c := New(nil)
	c.AttachSound(f.host, "hit")
	c.Start(f.host, 0, 1)
	c.Start(f.host, 0, 1)

	got, ok := c.Instance()
	require.True(t, ok)
	require.Equal(t, first, got)
	require.Empty(t, f.diags.msgs)
}

func TestStopNamed_StopsEverywhere(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().StopSoundsWithHandle(hitHandle).Return().Once()

	// The controller never attached or started anything itself.
	New(nil).StopNamed(f.host, "hit")
}

func TestStopNamed_ResolvesInOwnerMovie(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().StopSoundsWithHandle(ownHandle).Return().Once()

	New(f.clip).StopNamed(f.host, "hit")
}

func TestStopNamed_UnresolvedIsNoop(t *testing.T) {
	f := newFixture(t)

	c := New(f.clip)
	c.StopNamed(f.host, "missing")
	c.StopNamed(f.host, "button")

	require.Len(t, f.diags.msgs, 2)
	f.backend.AssertNotCalled(t, "StopSoundsWithHandle", mock.Anything)
	f.backend.AssertNotCalled(t, "StopAllSounds")
}

func TestStop_OwnerStopsOnlyTrackedInstance(t *testing.T) {
	f := newFixture(t)
	inst := newInstance(t)
	f.backend.EXPECT().SoundDuration(ownHandle).Return(100, true)
	f.backend.EXPECT().StartSound(ownHandle, mock.Anything).Return(inst, nil).Once()
	f.backend.EXPECT().StopSound(inst).Return().Twice()

	c := New(f.clip)
	c.AttachSound(f.host, "hit")
	c.Start(f.host, 0, 1)
	c.Stop(f.host)

	got, ok := c.Instance()
	require.True(t, ok, "stop keeps the tracked handle")
	require.Equal(t, inst, got)

	// Stopping a stale handle again goes to the backend as a no-op.
	c.Stop(f.host)
}

func TestStop_OwnerWithoutInstanceIsNoop(t *testing.T) {
	f := newFixture(t)

	New(f.clip).Stop(f.host)

	f.backend.AssertNotCalled(t, "StopSound", mock.Anything)
	f.backend.AssertNotCalled(t, "StopAllSounds")
}

func TestStop_NoOwnerStopsAll(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().StopAllSounds().Return().Once()

	New(nil).Stop(f.host)
}

func TestHost_NilDiagnosticsLogs(t *testing.T) {
	f := newFixture(t)
	f.host.Diagnostics = nil

	require.NotPanics(t, func() { New(nil).AttachSound(f.host, "missing") })
}
