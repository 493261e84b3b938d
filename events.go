package guiplatform

// EventType is the kind of a native input or window event.
type EventType int

const (
	EventNone EventType = iota
	EventMouseAxes
	EventMouseButtonDown
	EventMouseButtonUp
	EventMouseLeave
	EventTouchBegin
	EventTouchMove
	EventTouchEnd
	EventTouchCancel
	EventKeyChar
	EventKeyDown
	EventKeyUp
	EventDisplaySwitchIn
	EventDisplaySwitchOut
	EventDisplayResize
	EventDisplayClose
)

var eventTypeNames = [...]string{
	EventNone:             "none",
	EventMouseAxes:        "mouse_axes",
	EventMouseButtonDown:  "mouse_button_down",
	EventMouseButtonUp:    "mouse_button_up",
	EventMouseLeave:       "mouse_leave",
	EventTouchBegin:       "touch_begin",
	EventTouchMove:        "touch_move",
	EventTouchEnd:         "touch_end",
	EventTouchCancel:      "touch_cancel",
	EventKeyChar:          "key_char",
	EventKeyDown:          "key_down",
	EventKeyUp:            "key_up",
	EventDisplaySwitchIn:  "display_switch_in",
	EventDisplaySwitchOut: "display_switch_out",
	EventDisplayResize:    "display_resize",
	EventDisplayClose:     "display_close",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event is a native event translated by the platform. Only the fields
// relevant to Type are set.
type Event struct {
	Type   EventType
	Source WindowHandle

	// Pointer position in window coordinates.
	X, Y float32
	// Wheel deltas: DZ vertical, DW horizontal.
	DZ, DW float32
	// Button is 1-based: 1 left, 2 right, 3 middle.
	Button int
	// Primary marks the primary touch point.
	Primary bool

	Keycode int
	Char    rune
}

// ProcessEvent feeds one native event into IO. Pointer and keyboard events
// only count when they come from the main window. Display switch events are
// resolved to their viewport and move focus to it.
//
// It returns whether the event is relevant to GUI input. Applications should
// still forward every event to their own logic and consult
// IO.WantCaptureMouse and IO.WantCaptureKeyboard instead.
func (b *Backend) ProcessEvent(ev Event) bool {
	io := b.io
	main := ev.Source == b.mainWindow

	switch ev.Type {
	case EventMouseAxes:
		if main {
			io.MouseWheel += ev.DZ
			io.MouseWheelH += ev.DW
			io.MousePos = Vec2{X: ev.X, Y: ev.Y}
		}
		return true
	case EventMouseButtonDown, EventMouseButtonUp:
		if main && ev.Button >= 1 && ev.Button <= MouseButtonCount {
			io.MouseDown[ev.Button-1] = ev.Type == EventMouseButtonDown
		}
		return true
	case EventTouchMove:
		if main {
			io.MousePos = Vec2{X: ev.X, Y: ev.Y}
		}
		return true
	case EventTouchBegin, EventTouchEnd, EventTouchCancel:
		if main && ev.Primary {
			io.MouseDown[0] = ev.Type == EventTouchBegin
		}
		return true
	case EventMouseLeave:
		if main {
			io.ClearMousePos()
		}
		return true
	case EventKeyChar:
		if main {
			io.AddInputCharacter(ev.Char)
		}
		return true
	case EventKeyDown, EventKeyUp:
		if main {
			io.SetKeyDown(ev.Keycode, ev.Type == EventKeyDown)
		}
		return true
	case EventDisplaySwitchIn:
		return b.viewports.HandleFocusChange(ev.Source, true)
	case EventDisplaySwitchOut:
		return b.viewports.HandleFocusChange(ev.Source, false)
	case EventDisplayResize:
		return b.viewports.FindViewport(ev.Source) != nil
	}
	return false
}
