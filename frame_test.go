package guiplatform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameDeltaTime(t *testing.T) {
	tb := newTestBackend(t)
	io := tb.IO()

	tb.platform.now = 10
	require.NoError(t, tb.NewFrame())
	assert.InDelta(t, 1.0/60.0, io.DeltaTime, 1e-6)

	tb.platform.now = 10.25
	require.NoError(t, tb.NewFrame())
	assert.InDelta(t, 0.25, io.DeltaTime, 1e-6)

	tb.platform.now = 10.5
	require.NoError(t, tb.NewFrame())
	assert.InDelta(t, 0.25, io.DeltaTime, 1e-6)
}

func TestNewFrameDisplaySizeAndScale(t *testing.T) {
	tb := newTestBackend(t)
	io := tb.IO()
	main := tb.platform.windows[tb.MainViewport().PlatformHandle]
	main.fbSize = Vec2{X: 1600, Y: 1200}

	require.NoError(t, tb.NewFrame())
	assert.Equal(t, Vec2{X: 800, Y: 600}, io.DisplaySize)
	assert.Equal(t, Vec2{X: 2, Y: 2}, io.DisplayFramebufferScale)

	// A minimized window reports zero size; the last scale is kept.
	main.size = Vec2{}
	require.NoError(t, tb.NewFrame())
	assert.Equal(t, Vec2{}, io.DisplaySize)
	assert.Equal(t, Vec2{X: 2, Y: 2}, io.DisplayFramebufferScale)
}

func TestNewFrameModifiers(t *testing.T) {
	tb := newTestBackend(t)
	io := tb.IO()

	tb.platform.mods = Modifiers{Ctrl: true, Super: true}
	require.NoError(t, tb.NewFrame())
	assert.True(t, io.KeyCtrl)
	assert.False(t, io.KeyShift)
	assert.False(t, io.KeyAlt)
	assert.True(t, io.KeySuper)

	tb.platform.mods = Modifiers{Shift: true, Alt: true}
	require.NoError(t, tb.NewFrame())
	assert.False(t, io.KeyCtrl)
	assert.True(t, io.KeyShift)
	assert.True(t, io.KeyAlt)
	assert.False(t, io.KeySuper)
}

func TestNewFrameCursor(t *testing.T) {
	tb := newTestBackend(t)
	io := tb.IO()
	main := tb.platform.windows[tb.MainViewport().PlatformHandle]

	io.MouseCursor = CursorHand
	require.NoError(t, tb.NewFrame())
	assert.Equal(t, CursorHand, main.system)
	assert.Zero(t, main.cursor)

	io.MouseCursor = CursorNone
	require.NoError(t, tb.NewFrame())
	assert.NotZero(t, main.cursor)
	assert.Equal(t, tb.invisibleCursor, main.cursor)

	io.MouseCursor = CursorArrow
	io.MouseDrawCursor = true
	require.NoError(t, tb.NewFrame())
	assert.Equal(t, tb.invisibleCursor, main.cursor, "software cursor hides the OS cursor")

	io.MouseDrawCursor = false
	require.NoError(t, tb.NewFrame())
	assert.Equal(t, CursorArrow, main.system)
}

func TestNewFrameInvisibleCursorImage(t *testing.T) {
	tb := newTestBackend(t)
	require.NoError(t, tb.NewFrame())

	img := tb.platform.cursors[tb.invisibleCursor]
	require.NotNil(t, img)
	b := img.Bounds()
	assert.Equal(t, 8, b.Dx())
	assert.Equal(t, 8, b.Dy())
	_, _, _, a := img.At(3, 3).RGBA()
	assert.Zero(t, a)
}

func TestNewFrameNoMouseCursorChange(t *testing.T) {
	tb := newTestBackend(t, WithNoMouseCursorChange(true))
	io := tb.IO()
	main := tb.platform.windows[tb.MainViewport().PlatformHandle]
	main.system = CursorResizeAll

	io.MouseCursor = CursorHand
	require.NoError(t, tb.NewFrame())
	assert.Equal(t, CursorResizeAll, main.system)

	io.MouseCursor = CursorNone
	require.NoError(t, tb.NewFrame())
	assert.Zero(t, main.cursor)
}

func TestNewFrameCreatesDeviceObjectsOnce(t *testing.T) {
	tb := newTestBackend(t)
	assert.Zero(t, tb.FontTexture())

	require.NoError(t, tb.NewFrame())
	tex := tb.FontTexture()
	require.NotZero(t, tex)
	require.NoError(t, tb.NewFrame())

	assert.Equal(t, tex, tb.FontTexture())
	assert.Len(t, tb.device.textures, 1)
	assert.Equal(t, []TextureID{tex}, tb.atlas.setIDs)
}

func TestNewFrameDeviceObjectFailure(t *testing.T) {
	tb := newTestBackend(t)
	boom := errors.New("out of memory")
	tb.device.createErr = boom
	tb.platform.mods = Modifiers{Ctrl: true, Shift: true}

	err := tb.NewFrame()
	require.ErrorIs(t, err, boom)
	io := tb.IO()
	assert.Equal(t, Vec2{X: 800, Y: 600}, io.DisplaySize, "IO is still synced when the frame fails")
	assert.InDelta(t, defaultDeltaTime, io.DeltaTime, 1e-6)
	assert.True(t, io.KeyCtrl)
	assert.True(t, io.KeyShift)
	assert.False(t, io.KeyAlt)
	assert.Zero(t, tb.FontTexture())

	tb.device.createErr = nil
	require.NoError(t, tb.NewFrame())
	assert.NotZero(t, tb.FontTexture())
}

func TestNewFrameRefreshesMonitorsWhenDirty(t *testing.T) {
	tb := newTestBackend(t, WithViewports(true))
	extra := Monitor{MainPos: Vec2{X: 1920}, MainSize: Vec2{X: 1024, Y: 768}, DpiScale: 1}
	tb.platform.monitors = append(tb.platform.monitors, extra)

	require.NoError(t, tb.NewFrame())
	assert.Len(t, tb.PlatformIO().Monitors, 1)

	tb.InvalidateMonitors()
	require.NoError(t, tb.NewFrame())
	assert.Equal(t, tb.platform.monitors, tb.PlatformIO().Monitors)
}

func TestNewFrameIgnoresMonitorsWithoutViewports(t *testing.T) {
	tb := newTestBackend(t)
	tb.InvalidateMonitors()
	require.NoError(t, tb.NewFrame())
	assert.Empty(t, tb.PlatformIO().Monitors)
}
