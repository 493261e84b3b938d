package guiplatform

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrViewportCreated is returned by CreateWindow for a viewport that already
// has a native window.
var ErrViewportCreated = errors.New("guiplatform: viewport already has a window")

// defaultWindowSize is used when a viewport asks for a non-positive size.
var defaultWindowSize = Vec2{X: 1280, Y: 720}

// defaultWindowTitle is shown until the GUI library sets a title.
const defaultWindowTitle = "No Title Yet"

// ViewportFlags carry the GUI library's per-viewport window requests.
type ViewportFlags uint32

const (
	ViewportNoDecoration ViewportFlags = 1 << iota
	ViewportTopMost
	ViewportNoFocusOnAppearing
	ViewportNoTaskBarIcon
)

// FocusPolicy selects where viewport focus is read from and written to.
type FocusPolicy string

const (
	// FocusPolicyCache tracks focus from native focus events only.
	FocusPolicyCache FocusPolicy = "cache"
	// FocusPolicyOS uses the platform's FocusController when it has one and
	// falls back to the cache otherwise.
	FocusPolicyOS FocusPolicy = "os"
)

// Viewport is a GUI-library window surface. The GUI library owns the value;
// the manager attaches the native window to it.
type Viewport struct {
	ID    uint32
	Flags ViewportFlags
	Pos   Vec2
	Size  Vec2
	Title string

	// PlatformHandle is the native window, zero when none is attached.
	PlatformHandle WindowHandle

	data *viewportData
}

// viewportData is the backend's per-viewport record.
type viewportData struct {
	handle    WindowHandle
	owned     bool // the manager created the window and must destroy it
	focused   bool
	minimized bool
}

// Created reports whether a native window is attached.
func (vp *Viewport) Created() bool {
	return vp.data != nil && vp.data.handle != 0
}

// Owned reports whether the manager created, and will destroy, the window.
func (vp *Viewport) Owned() bool {
	return vp.data != nil && vp.data.owned
}

// Focused returns the cached focus flag.
func (vp *Viewport) Focused() bool {
	return vp.data != nil && vp.data.focused
}

// PlatformInterface is the window contract the GUI library drives for
// secondary viewports.
type PlatformInterface interface {
	CreateWindow(vp *Viewport) error
	DestroyWindow(vp *Viewport)
	ShowWindow(vp *Viewport)
	WindowPos(vp *Viewport) Vec2
	SetWindowPos(vp *Viewport, pos Vec2)
	WindowSize(vp *Viewport) Vec2
	SetWindowSize(vp *Viewport, size Vec2)
	SetWindowTitle(vp *Viewport, title string)
	WindowFocus(vp *Viewport) bool
	SetWindowFocus(vp *Viewport)
	WindowMinimized(vp *Viewport) bool
	RenderWindow(vp *Viewport)
	SwapBuffers(vp *Viewport)
}

// PlatformIO is the GUI library's record of platform state.
type PlatformIO struct {
	Monitors     []Monitor
	MainViewport *Viewport
	// Platform is set when multi-viewport support is enabled.
	Platform PlatformInterface
}

// ViewportManager owns the viewport registry and executes the GUI library's
// open and close decisions against the native platform.
type ViewportManager struct {
	platform   Platform
	platformIO *PlatformIO
	reg        *registry
	policy     FocusPolicy

	// SupportsMinimizedQuery is true when WindowMinimized reports real
	// state. Without a MinimizedQuerier every viewport reports false.
	SupportsMinimizedQuery bool

	metrics *Metrics
	logger  *slog.Logger
}

var _ PlatformInterface = (*ViewportManager)(nil)

// NewViewportManager creates a manager. maxViewports of zero means unbounded.
func NewViewportManager(platform Platform, pio *PlatformIO, maxViewports int) *ViewportManager {
	if pio == nil {
		pio = &PlatformIO{}
	}
	_, canQuery := platform.(MinimizedQuerier)
	return &ViewportManager{
		platform:               platform,
		platformIO:             pio,
		reg:                    newRegistry(maxViewports),
		policy:                 FocusPolicyCache,
		SupportsMinimizedQuery: canQuery,
		logger:                 viewportLogger,
	}
}

// SetFocusPolicy changes where focus is read from and written to.
func (m *ViewportManager) SetFocusPolicy(p FocusPolicy) {
	if p != FocusPolicyOS {
		p = FocusPolicyCache
	}
	m.policy = p
}

// FocusPolicy returns the active policy.
func (m *ViewportManager) FocusPolicy() FocusPolicy {
	return m.policy
}

// RegisterMainViewport attaches the application's window to vp. The manager
// never destroys this window.
func (m *ViewportManager) RegisterMainViewport(vp *Viewport, h WindowHandle) error {
	if vp.Created() {
		return ErrViewportCreated
	}
	if err := m.reg.add(h, vp); err != nil {
		return fmt.Errorf("register main viewport: %w", err)
	}
	vp.data = &viewportData{handle: h}
	vp.PlatformHandle = h
	m.platformIO.MainViewport = vp
	m.metrics.setViewports(m.reg.len())
	return nil
}

// CreateWindow creates and registers a native window for vp.
func (m *ViewportManager) CreateWindow(vp *Viewport) error {
	if vp.Created() {
		return ErrViewportCreated
	}
	if m.reg.full() {
		m.metrics.viewportCreateFailed("registry_full")
		m.logger.Warn("viewport registry full", "viewport", vp.ID, "live", m.reg.len())
		return ErrRegistryFull
	}

	size := vp.Size
	if !size.Positive() {
		size = defaultWindowSize
	}
	h, err := m.platform.CreateWindow(WindowOptions{
		Pos:       vp.Pos,
		Size:      size,
		Title:     defaultWindowTitle,
		Decorated: vp.Flags&ViewportNoDecoration == 0,
		TopMost:   vp.Flags&ViewportTopMost != 0,
	})
	if err != nil {
		m.metrics.viewportCreateFailed("native")
		return fmt.Errorf("create window for viewport %d: %w", vp.ID, err)
	}
	if err := m.reg.add(h, vp); err != nil {
		m.platform.DestroyWindow(h)
		m.metrics.viewportCreateFailed("registry")
		return fmt.Errorf("register viewport %d: %w", vp.ID, err)
	}

	vp.data = &viewportData{handle: h, owned: true}
	vp.PlatformHandle = h
	vp.Title = defaultWindowTitle
	m.metrics.setViewports(m.reg.len())
	m.logger.Debug("viewport created", "viewport", vp.ID, "handle", h, "size", size)
	return nil
}

// DestroyWindow detaches vp from its native window, destroying the window
// only if the manager created it. Destroying twice is a no-op.
func (m *ViewportManager) DestroyWindow(vp *Viewport) {
	if vp == nil {
		return
	}
	if d := vp.data; d != nil {
		if d.handle != 0 {
			if d.owned {
				m.platform.DestroyWindow(d.handle)
			}
			m.reg.remove(d.handle)
			m.logger.Debug("viewport destroyed", "viewport", vp.ID, "handle", d.handle, "owned", d.owned)
		}
		vp.data = nil
	}
	vp.PlatformHandle = 0
	m.metrics.setViewports(m.reg.len())
}

// ShowWindow makes the window visible.
func (m *ViewportManager) ShowWindow(vp *Viewport) {
	if !vp.Created() {
		return
	}
	m.platform.ShowWindow(vp.data.handle, vp.Flags&ViewportNoFocusOnAppearing == 0)
}

// WindowPos returns the OS-reported window position.
func (m *ViewportManager) WindowPos(vp *Viewport) Vec2 {
	if !vp.Created() {
		return Vec2{}
	}
	return m.platform.WindowPos(vp.data.handle)
}

// SetWindowPos moves the window.
func (m *ViewportManager) SetWindowPos(vp *Viewport, pos Vec2) {
	if vp.Created() {
		m.platform.SetWindowPos(vp.data.handle, pos)
	}
}

// WindowSize returns the OS-reported window size.
func (m *ViewportManager) WindowSize(vp *Viewport) Vec2 {
	if !vp.Created() {
		return Vec2{}
	}
	return m.platform.WindowSize(vp.data.handle)
}

// SetWindowSize resizes the window.
func (m *ViewportManager) SetWindowSize(vp *Viewport, size Vec2) {
	if vp.Created() {
		m.platform.SetWindowSize(vp.data.handle, size)
	}
}

// SetWindowTitle sets the window title.
func (m *ViewportManager) SetWindowTitle(vp *Viewport, title string) {
	if vp.Created() {
		m.platform.SetWindowTitle(vp.data.handle, title)
		vp.Title = title
	}
}

// WindowFocus reports whether vp has focus.
func (m *ViewportManager) WindowFocus(vp *Viewport) bool {
	if !vp.Created() {
		return false
	}
	if fc, ok := m.focusController(); ok {
		return fc.WindowFocused(vp.data.handle)
	}
	return vp.data.focused
}

// SetWindowFocus focuses vp. The cache is updated in every policy so it
// stays usable as a fallback.
func (m *ViewportManager) SetWindowFocus(vp *Viewport) {
	if !vp.Created() {
		return
	}
	if fc, ok := m.focusController(); ok {
		fc.FocusWindow(vp.data.handle)
	}
	m.setFocused(vp)
}

// WindowMinimized reports whether vp is minimized. Without platform support
// it is always false.
func (m *ViewportManager) WindowMinimized(vp *Viewport) bool {
	if !vp.Created() || !m.SupportsMinimizedQuery {
		return false
	}
	q, ok := m.platform.(MinimizedQuerier)
	if !ok {
		return false
	}
	vp.data.minimized = q.WindowMinimized(vp.data.handle)
	return vp.data.minimized
}

// RenderWindow makes vp's backbuffer the draw target. The GUI library draws
// the viewport's DrawData after this call.
func (m *ViewportManager) RenderWindow(vp *Viewport) {
	if vp.Created() {
		m.platform.BindBackbuffer(vp.data.handle)
	}
}

// SwapBuffers presents vp's backbuffer.
func (m *ViewportManager) SwapBuffers(vp *Viewport) {
	if !vp.Created() {
		return
	}
	m.platform.BindBackbuffer(vp.data.handle)
	m.platform.SwapBuffers(vp.data.handle)
}

// FindViewport returns the viewport attached to h, or nil.
func (m *ViewportManager) FindViewport(h WindowHandle) *Viewport {
	return m.reg.find(h)
}

// Len returns the number of registered viewports, main included.
func (m *ViewportManager) Len() int {
	return m.reg.len()
}

// Viewports returns the registered viewports in registration order.
func (m *ViewportManager) Viewports() []*Viewport {
	out := make([]*Viewport, 0, m.reg.len())
	m.reg.each(func(vp *Viewport) { out = append(out, vp) })
	return out
}

// UpdateMonitors republishes the platform's monitors to PlatformIO.
func (m *ViewportManager) UpdateMonitors() {
	mons := m.platform.Monitors()
	m.platformIO.Monitors = append(m.platformIO.Monitors[:0], mons...)
	m.logger.Debug("monitors updated", "count", len(mons))
}

// HandleFocusChange applies a native focus change for window h. Gaining
// focus clears the flag on every other viewport. It reports whether h
// belongs to a registered viewport.
func (m *ViewportManager) HandleFocusChange(h WindowHandle, focused bool) bool {
	vp := m.reg.find(h)
	if vp == nil {
		return false
	}
	if focused {
		m.setFocused(vp)
	} else {
		vp.data.focused = false
	}
	return true
}

// Shutdown destroys every owned window and empties the registry.
func (m *ViewportManager) Shutdown() {
	for _, vp := range m.Viewports() {
		m.DestroyWindow(vp)
	}
	m.platformIO.MainViewport = nil
	m.platformIO.Platform = nil
}

func (m *ViewportManager) setFocused(target *Viewport) {
	m.reg.each(func(vp *Viewport) {
		if vp.data != nil {
			vp.data.focused = vp == target
		}
	})
	m.logger.Debug("viewport focused", "viewport", target.ID)
}

func (m *ViewportManager) focusController() (FocusController, bool) {
	if m.policy != FocusPolicyOS {
		return nil, false
	}
	fc, ok := m.platform.(FocusController)
	return fc, ok
}
