package guiplatform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEventMouseAxes(t *testing.T) {
	tb := newTestBackend(t)
	main := tb.MainViewport().PlatformHandle
	io := tb.IO()

	assert.True(t, tb.ProcessEvent(Event{Type: EventMouseAxes, Source: main, X: 10, Y: 20, DZ: 1}))
	assert.True(t, tb.ProcessEvent(Event{Type: EventMouseAxes, Source: main, X: 11, Y: 21, DZ: 2, DW: -1}))

	assert.Equal(t, Vec2{X: 11, Y: 21}, io.MousePos)
	assert.Equal(t, float32(3), io.MouseWheel)
	assert.Equal(t, float32(-1), io.MouseWheelH)
}

func TestProcessEventMouseButtons(t *testing.T) {
	tb := newTestBackend(t)
	main := tb.MainViewport().PlatformHandle
	io := tb.IO()

	for button := 1; button <= MouseButtonCount; button++ {
		require.True(t, tb.ProcessEvent(Event{Type: EventMouseButtonDown, Source: main, Button: button}))
		assert.True(t, io.MouseDown[button-1], "button %d", button)
	}
	tb.ProcessEvent(Event{Type: EventMouseButtonUp, Source: main, Button: 2})
	assert.False(t, io.MouseDown[1])
	assert.True(t, io.MouseDown[0])

	before := io.MouseDown
	assert.True(t, tb.ProcessEvent(Event{Type: EventMouseButtonDown, Source: main, Button: 0}))
	assert.True(t, tb.ProcessEvent(Event{Type: EventMouseButtonDown, Source: main, Button: MouseButtonCount + 1}))
	assert.Equal(t, before, io.MouseDown, "out of range buttons are ignored")
}

func TestProcessEventIgnoresOtherWindows(t *testing.T) {
	tb := newTestBackend(t, WithViewports(true))
	vp := &Viewport{ID: 2}
	require.NoError(t, tb.Viewports().CreateWindow(vp))
	io := tb.IO()
	other := vp.PlatformHandle

	events := []Event{
		{Type: EventMouseAxes, Source: other, X: 5, Y: 5, DZ: 1},
		{Type: EventMouseButtonDown, Source: other, Button: 1},
		{Type: EventTouchBegin, Source: other, Primary: true},
		{Type: EventKeyChar, Source: other, Char: 'x'},
		{Type: EventKeyDown, Source: other, Keycode: 65},
	}
	for _, ev := range events {
		assert.True(t, tb.ProcessEvent(ev), ev.Type.String())
	}

	assert.False(t, io.MouseAvailable())
	assert.Zero(t, io.MouseWheel)
	assert.False(t, io.MouseDown[0])
	assert.Empty(t, io.InputQueueCharacters)
	assert.False(t, io.KeysDown[65])
}

func TestProcessEventTouch(t *testing.T) {
	tb := newTestBackend(t)
	main := tb.MainViewport().PlatformHandle
	io := tb.IO()

	tb.ProcessEvent(Event{Type: EventTouchBegin, Source: main})
	assert.False(t, io.MouseDown[0], "secondary touches do not press")

	tb.ProcessEvent(Event{Type: EventTouchBegin, Source: main, Primary: true})
	assert.True(t, io.MouseDown[0])

	tb.ProcessEvent(Event{Type: EventTouchMove, Source: main, X: 40, Y: 50})
	assert.Equal(t, Vec2{X: 40, Y: 50}, io.MousePos)

	tb.ProcessEvent(Event{Type: EventTouchEnd, Source: main, Primary: true})
	assert.False(t, io.MouseDown[0])

	tb.ProcessEvent(Event{Type: EventTouchBegin, Source: main, Primary: true})
	tb.ProcessEvent(Event{Type: EventTouchCancel, Source: main, Primary: true})
	assert.False(t, io.MouseDown[0])
}

func TestProcessEventMouseLeave(t *testing.T) {
	tb := newTestBackend(t)
	main := tb.MainViewport().PlatformHandle
	io := tb.IO()

	tb.ProcessEvent(Event{Type: EventMouseAxes, Source: main, X: 1, Y: 1})
	require.True(t, io.MouseAvailable())

	assert.True(t, tb.ProcessEvent(Event{Type: EventMouseLeave, Source: main}))
	assert.Equal(t, float32(-math.MaxFloat32), io.MousePos.X)
	assert.Equal(t, float32(-math.MaxFloat32), io.MousePos.Y)
}

func TestProcessEventKeyboard(t *testing.T) {
	tb := newTestBackend(t)
	main := tb.MainViewport().PlatformHandle
	io := tb.IO()

	tb.ProcessEvent(Event{Type: EventKeyChar, Source: main, Char: 'h'})
	tb.ProcessEvent(Event{Type: EventKeyChar, Source: main, Char: 0})
	tb.ProcessEvent(Event{Type: EventKeyChar, Source: main, Char: 'é'})
	assert.Equal(t, []rune{'h', 'é'}, io.InputQueueCharacters)

	tb.ProcessEvent(Event{Type: EventKeyDown, Source: main, Keycode: 258})
	assert.True(t, io.KeyDown(KeyTab))
	tb.ProcessEvent(Event{Type: EventKeyUp, Source: main, Keycode: 258})
	assert.False(t, io.KeyDown(KeyTab))

	assert.NotPanics(t, func() {
		tb.ProcessEvent(Event{Type: EventKeyDown, Source: main, Keycode: -1})
		tb.ProcessEvent(Event{Type: EventKeyDown, Source: main, Keycode: KeysDownCount})
	})
}

func TestProcessEventDisplaySwitch(t *testing.T) {
	tb := newTestBackend(t, WithViewports(true))
	vm := tb.Viewports()
	main := tb.MainViewport()
	vp := &Viewport{ID: 2}
	require.NoError(t, vm.CreateWindow(vp))

	assert.True(t, tb.ProcessEvent(Event{Type: EventDisplaySwitchIn, Source: main.PlatformHandle}))
	assert.True(t, main.Focused())

	assert.True(t, tb.ProcessEvent(Event{Type: EventDisplaySwitchIn, Source: vp.PlatformHandle}))
	assert.True(t, vp.Focused())
	assert.False(t, main.Focused())

	assert.True(t, tb.ProcessEvent(Event{Type: EventDisplaySwitchOut, Source: vp.PlatformHandle}))
	assert.False(t, vp.Focused())

	assert.False(t, tb.ProcessEvent(Event{Type: EventDisplaySwitchIn, Source: 999}))
}

func TestProcessEventResizeAndClose(t *testing.T) {
	tb := newTestBackend(t)
	main := tb.MainViewport().PlatformHandle

	assert.True(t, tb.ProcessEvent(Event{Type: EventDisplayResize, Source: main}))
	assert.False(t, tb.ProcessEvent(Event{Type: EventDisplayResize, Source: 999}))
	assert.False(t, tb.ProcessEvent(Event{Type: EventDisplayClose, Source: main}))
	assert.False(t, tb.ProcessEvent(Event{Type: EventNone, Source: main}))
	assert.False(t, tb.ProcessEvent(Event{Type: EventType(100), Source: main}))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "mouse_axes", EventMouseAxes.String())
	assert.Equal(t, "display_close", EventDisplayClose.String())
	assert.Equal(t, "unknown", EventType(-1).String())
	assert.Equal(t, "unknown", EventType(100).String())
}
