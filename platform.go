package guiplatform

import "image"

// WindowHandle identifies a native window. Zero is never a valid handle.
type WindowHandle uint64

// CursorHandle identifies a native cursor. Zero means the default cursor.
type CursorHandle uint64

// WindowOptions describes a native window to create.
type WindowOptions struct {
	Pos   Vec2
	Size  Vec2
	Title string

	Decorated bool // Draw OS decorations and allow resizing
	TopMost   bool
}

// Monitor describes one physical display.
type Monitor struct {
	MainPos  Vec2
	MainSize Vec2
	WorkPos  Vec2 // Usable area, excluding task bars and docks
	WorkSize Vec2
	DpiScale float32
}

// Modifiers is the sampled state of the modifier keys.
type Modifiers struct {
	Ctrl, Shift, Alt, Super bool
}

// Platform is the windowing side of a backend. It covers exactly what the
// viewport manager, frame synchronizer and cursor handling need.
type Platform interface {
	CreateWindow(opts WindowOptions) (WindowHandle, error)
	DestroyWindow(h WindowHandle)
	// ShowWindow makes the window visible, taking focus only if focus is set.
	ShowWindow(h WindowHandle, focus bool)

	WindowPos(h WindowHandle) Vec2
	SetWindowPos(h WindowHandle, pos Vec2)
	WindowSize(h WindowHandle) Vec2
	SetWindowSize(h WindowHandle, size Vec2)
	SetWindowTitle(h WindowHandle, title string)
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize(h WindowHandle) Vec2

	// BindBackbuffer makes the window's backbuffer the draw target.
	BindBackbuffer(h WindowHandle)
	// SwapBuffers presents the window's backbuffer.
	SwapBuffers(h WindowHandle)

	Monitors() []Monitor
	Modifiers() Modifiers
	// KeyMap returns native key codes for the GUI keys.
	KeyMap() map[Key]int
	// Time returns seconds from an arbitrary fixed origin.
	Time() float64

	CreateCursor(img image.Image, hotX, hotY int) (CursorHandle, error)
	DestroyCursor(c CursorHandle)
	SetCursor(h WindowHandle, c CursorHandle)
	SetSystemCursor(h WindowHandle, shape MouseCursor)
}

// FocusController is implemented by platforms that can query and set OS
// window focus directly.
type FocusController interface {
	FocusWindow(h WindowHandle)
	WindowFocused(h WindowHandle) bool
}

// MinimizedQuerier is implemented by platforms that can report whether a
// window is minimized.
type MinimizedQuerier interface {
	WindowMinimized(h WindowHandle) bool
}

// MonitorNotifier is implemented by platforms that report monitor
// configuration changes.
type MonitorNotifier interface {
	OnMonitorsChanged(fn func())
}
