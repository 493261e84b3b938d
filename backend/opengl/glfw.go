package opengl

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/guiplatform"
	"github.com/go-theft-auto/guiplatform/internal/x11"
)

// PlatformName is reported as the platform backend name.
const PlatformName = "guiplatform_glfw"

// Platform implements guiplatform.Platform with GLFW. All methods must be
// called from the thread that initialized GLFW.
type Platform struct {
	main       *glfw.Window
	mainHandle guiplatform.WindowHandle

	windows    map[guiplatform.WindowHandle]*glfw.Window
	handles    map[*glfw.Window]guiplatform.WindowHandle
	nextHandle guiplatform.WindowHandle

	cursors    map[guiplatform.CursorHandle]*glfw.Cursor
	nextCursor guiplatform.CursorHandle
	standard   map[glfw.StandardCursor]*glfw.Cursor

	events []guiplatform.Event

	onDestroy  func(w *glfw.Window)
	onMonitors func()

	monitorSource string
	x11           *x11.Connection
	logger        *slog.Logger
}

// PlatformOption configures a Platform.
type PlatformOption func(*Platform)

// WithMonitorSource selects guiplatform.MonitorSourceGLFW or
// guiplatform.MonitorSourceX11. The X11 source falls back to GLFW when no X
// server is reachable.
func WithMonitorSource(source string) PlatformOption {
	return func(p *Platform) { p.monitorSource = source }
}

var (
	_ guiplatform.Platform          = (*Platform)(nil)
	_ guiplatform.FocusController   = (*Platform)(nil)
	_ guiplatform.MinimizedQuerier  = (*Platform)(nil)
	_ guiplatform.ClipboardProvider = (*Platform)(nil)
	_ guiplatform.MonitorNotifier   = (*Platform)(nil)
)

// NewPlatform wraps the application's main window. Secondary windows share
// its GL context objects.
func NewPlatform(main *glfw.Window, opts ...PlatformOption) (*Platform, error) {
	if main == nil {
		return nil, fmt.Errorf("main window: %w", guiplatform.ErrNotInitialized)
	}
	p := &Platform{
		main:          main,
		windows:       make(map[guiplatform.WindowHandle]*glfw.Window),
		handles:       make(map[*glfw.Window]guiplatform.WindowHandle),
		cursors:       make(map[guiplatform.CursorHandle]*glfw.Cursor),
		standard:      make(map[glfw.StandardCursor]*glfw.Cursor),
		monitorSource: guiplatform.MonitorSourceGLFW,
		logger:        guiplatform.NewLogger("glfw"),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.monitorSource == guiplatform.MonitorSourceX11 {
		conn, err := x11.NewConnection()
		if err != nil {
			p.logger.Warn("x11 monitor source unavailable, using glfw", "error", err)
		} else {
			p.x11 = conn
		}
	}

	p.mainHandle = p.register(main)
	glfw.SetMonitorCallback(func(*glfw.Monitor, glfw.PeripheralEvent) {
		if p.onMonitors != nil {
			p.onMonitors()
		}
	})
	return p, nil
}

// Name implements guiplatform.Named.
func (p *Platform) Name() string { return PlatformName }

// MainWindow returns the handle of the main window.
func (p *Platform) MainWindow() guiplatform.WindowHandle { return p.mainHandle }

// Window returns the GLFW window for h, or nil.
func (p *Platform) Window(h guiplatform.WindowHandle) *glfw.Window {
	return p.windows[h]
}

// OnWindowDestroy registers fn to run with the window's context current
// just before a secondary window is destroyed.
func (p *Platform) OnWindowDestroy(fn func(w *glfw.Window)) {
	p.onDestroy = fn
}

// OnMonitorsChanged implements guiplatform.MonitorNotifier.
func (p *Platform) OnMonitorsChanged(fn func()) {
	p.onMonitors = fn
}

// PollEvents processes pending GLFW events and returns them translated.
// The returned slice is valid until the next call.
func (p *Platform) PollEvents() []guiplatform.Event {
	p.events = p.events[:0]
	glfw.PollEvents()
	return p.events
}

func (p *Platform) register(w *glfw.Window) guiplatform.WindowHandle {
	p.nextHandle++
	h := p.nextHandle
	p.windows[h] = w
	p.handles[w] = h
	p.installCallbacks(w)
	return h
}

func (p *Platform) push(w *glfw.Window, ev guiplatform.Event) {
	ev.Source = p.handles[w]
	p.events = append(p.events, ev)
}

func (p *Platform) installCallbacks(w *glfw.Window) {
	w.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		p.push(w, guiplatform.Event{Type: guiplatform.EventMouseAxes, X: float32(x), Y: float32(y)})
	})
	w.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		x, y := w.GetCursorPos()
		p.push(w, guiplatform.Event{
			Type: guiplatform.EventMouseAxes,
			X:    float32(x), Y: float32(y),
			DZ: float32(yoff), DW: float32(xoff),
		})
	})
	w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		typ := guiplatform.EventMouseButtonDown
		if action == glfw.Release {
			typ = guiplatform.EventMouseButtonUp
		}
		p.push(w, guiplatform.Event{Type: typ, Button: int(button) + 1})
	})
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyUnknown {
			return
		}
		typ := guiplatform.EventKeyDown
		if action == glfw.Release {
			typ = guiplatform.EventKeyUp
		}
		p.push(w, guiplatform.Event{Type: typ, Keycode: int(key)})
	})
	w.SetCharCallback(func(w *glfw.Window, char rune) {
		p.push(w, guiplatform.Event{Type: guiplatform.EventKeyChar, Char: char})
	})
	w.SetFocusCallback(func(w *glfw.Window, focused bool) {
		typ := guiplatform.EventDisplaySwitchIn
		if !focused {
			typ = guiplatform.EventDisplaySwitchOut
		}
		p.push(w, guiplatform.Event{Type: typ})
	})
	w.SetCursorEnterCallback(func(w *glfw.Window, entered bool) {
		if !entered {
			p.push(w, guiplatform.Event{Type: guiplatform.EventMouseLeave})
		}
	})
	w.SetSizeCallback(func(w *glfw.Window, width, height int) {
		p.push(w, guiplatform.Event{Type: guiplatform.EventDisplayResize, X: float32(width), Y: float32(height)})
	})
	w.SetCloseCallback(func(w *glfw.Window) {
		p.push(w, guiplatform.Event{Type: guiplatform.EventDisplayClose})
	})
}

// CreateWindow creates a hidden window sharing the main window's context
// objects. The current context is left unchanged.
func (p *Platform) CreateWindow(opts guiplatform.WindowOptions) (guiplatform.WindowHandle, error) {
	prev := glfw.GetCurrentContext()

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Focused, glfw.False)
	glfw.WindowHint(glfw.FocusOnShow, glfw.False)
	glfw.WindowHint(glfw.Decorated, glfwBool(opts.Decorated))
	glfw.WindowHint(glfw.Floating, glfwBool(opts.TopMost))

	w, err := glfw.CreateWindow(int(opts.Size.X), int(opts.Size.Y), opts.Title, nil, p.main)
	if err != nil {
		return 0, fmt.Errorf("glfw create window: %w", err)
	}
	w.SetPos(int(opts.Pos.X), int(opts.Pos.Y))

	w.MakeContextCurrent()
	glfw.SwapInterval(0)
	if prev != nil {
		prev.MakeContextCurrent()
	}

	h := p.register(w)
	p.logger.Debug("window created", "handle", h, "size", opts.Size, "decorated", opts.Decorated)
	return h, nil
}

// DestroyWindow destroys a secondary window. The main window is never
// destroyed here.
func (p *Platform) DestroyWindow(h guiplatform.WindowHandle) {
	w := p.windows[h]
	if w == nil || w == p.main {
		return
	}

	if p.onDestroy != nil {
		prev := glfw.GetCurrentContext()
		w.MakeContextCurrent()
		p.onDestroy(w)
		if prev != nil && prev != w {
			prev.MakeContextCurrent()
		} else {
			p.main.MakeContextCurrent()
		}
	}

	delete(p.windows, h)
	delete(p.handles, w)
	w.Destroy()
	p.logger.Debug("window destroyed", "handle", h)
}

// ShowWindow shows the window, focusing it only when focus is set.
func (p *Platform) ShowWindow(h guiplatform.WindowHandle, focus bool) {
	w := p.windows[h]
	if w == nil {
		return
	}
	w.SetAttrib(glfw.FocusOnShow, glfwBool(focus))
	w.Show()
}

func (p *Platform) WindowPos(h guiplatform.WindowHandle) guiplatform.Vec2 {
	w := p.windows[h]
	if w == nil {
		return guiplatform.Vec2{}
	}
	x, y := w.GetPos()
	return guiplatform.Vec2{X: float32(x), Y: float32(y)}
}

func (p *Platform) SetWindowPos(h guiplatform.WindowHandle, pos guiplatform.Vec2) {
	if w := p.windows[h]; w != nil {
		w.SetPos(int(pos.X), int(pos.Y))
	}
}

func (p *Platform) WindowSize(h guiplatform.WindowHandle) guiplatform.Vec2 {
	w := p.windows[h]
	if w == nil {
		return guiplatform.Vec2{}
	}
	width, height := w.GetSize()
	return guiplatform.Vec2{X: float32(width), Y: float32(height)}
}

func (p *Platform) SetWindowSize(h guiplatform.WindowHandle, size guiplatform.Vec2) {
	if w := p.windows[h]; w != nil {
		w.SetSize(int(size.X), int(size.Y))
	}
}

func (p *Platform) SetWindowTitle(h guiplatform.WindowHandle, title string) {
	if w := p.windows[h]; w != nil {
		w.SetTitle(title)
	}
}

func (p *Platform) FramebufferSize(h guiplatform.WindowHandle) guiplatform.Vec2 {
	w := p.windows[h]
	if w == nil {
		return guiplatform.Vec2{}
	}
	width, height := w.GetFramebufferSize()
	return guiplatform.Vec2{X: float32(width), Y: float32(height)}
}

// BindBackbuffer makes the window's context current and sets the GL
// viewport to its framebuffer.
func (p *Platform) BindBackbuffer(h guiplatform.WindowHandle) {
	w := p.windows[h]
	if w == nil {
		return
	}
	w.MakeContextCurrent()
	width, height := w.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (p *Platform) SwapBuffers(h guiplatform.WindowHandle) {
	if w := p.windows[h]; w != nil {
		w.SwapBuffers()
	}
}

// FocusWindow implements guiplatform.FocusController.
func (p *Platform) FocusWindow(h guiplatform.WindowHandle) {
	if w := p.windows[h]; w != nil {
		w.Focus()
	}
}

// WindowFocused implements guiplatform.FocusController.
func (p *Platform) WindowFocused(h guiplatform.WindowHandle) bool {
	w := p.windows[h]
	return w != nil && w.GetAttrib(glfw.Focused) == glfw.True
}

// WindowMinimized implements guiplatform.MinimizedQuerier.
func (p *Platform) WindowMinimized(h guiplatform.WindowHandle) bool {
	w := p.windows[h]
	return w != nil && w.GetAttrib(glfw.Iconified) == glfw.True
}

// Monitors returns the connected monitors, primary first.
func (p *Platform) Monitors() []guiplatform.Monitor {
	if p.x11 != nil {
		mons, err := p.x11.Monitors()
		if err == nil && len(mons) > 0 {
			return x11Monitors(mons)
		}
		p.logger.Warn("x11 monitor query failed, using glfw", "error", err)
	}

	var out []guiplatform.Monitor
	for _, m := range glfw.GetMonitors() {
		mode := m.GetVideoMode()
		if mode == nil {
			continue
		}
		x, y := m.GetPos()
		wx, wy, ww, wh := m.GetWorkarea()
		scale, _ := m.GetContentScale()
		mon := guiplatform.Monitor{
			MainPos:  guiplatform.Vec2{X: float32(x), Y: float32(y)},
			MainSize: guiplatform.Vec2{X: float32(mode.Width), Y: float32(mode.Height)},
			WorkPos:  guiplatform.Vec2{X: float32(wx), Y: float32(wy)},
			WorkSize: guiplatform.Vec2{X: float32(ww), Y: float32(wh)},
			DpiScale: scale,
		}
		if ww <= 0 || wh <= 0 {
			mon.WorkPos, mon.WorkSize = mon.MainPos, mon.MainSize
		}
		out = append(out, mon)
	}
	return out
}

func x11Monitors(mons []x11.Monitor) []guiplatform.Monitor {
	out := make([]guiplatform.Monitor, 0, len(mons))
	for _, m := range mons {
		out = append(out, guiplatform.Monitor{
			MainPos:  guiplatform.Vec2{X: float32(m.Main.X), Y: float32(m.Main.Y)},
			MainSize: guiplatform.Vec2{X: float32(m.Main.Width), Y: float32(m.Main.Height)},
			WorkPos:  guiplatform.Vec2{X: float32(m.Work.X), Y: float32(m.Work.Y)},
			WorkSize: guiplatform.Vec2{X: float32(m.Work.Width), Y: float32(m.Work.Height)},
			DpiScale: 1,
		})
	}
	return out
}

// Modifiers samples modifier keys on the main window.
func (p *Platform) Modifiers() guiplatform.Modifiers {
	w := p.main
	return guiplatform.Modifiers{
		Ctrl: w.GetKey(glfw.KeyLeftControl) == glfw.Press ||
			w.GetKey(glfw.KeyRightControl) == glfw.Press,
		Shift: w.GetKey(glfw.KeyLeftShift) == glfw.Press ||
			w.GetKey(glfw.KeyRightShift) == glfw.Press,
		Alt: w.GetKey(glfw.KeyLeftAlt) == glfw.Press ||
			w.GetKey(glfw.KeyRightAlt) == glfw.Press,
		Super: w.GetKey(glfw.KeyLeftSuper) == glfw.Press ||
			w.GetKey(glfw.KeyRightSuper) == glfw.Press,
	}
}

// KeyMap returns the GLFW key codes for the GUI keys.
func (p *Platform) KeyMap() map[guiplatform.Key]int {
	return map[guiplatform.Key]int{
		guiplatform.KeyTab:        int(glfw.KeyTab),
		guiplatform.KeyLeftArrow:  int(glfw.KeyLeft),
		guiplatform.KeyRightArrow: int(glfw.KeyRight),
		guiplatform.KeyUpArrow:    int(glfw.KeyUp),
		guiplatform.KeyDownArrow:  int(glfw.KeyDown),
		guiplatform.KeyPageUp:     int(glfw.KeyPageUp),
		guiplatform.KeyPageDown:   int(glfw.KeyPageDown),
		guiplatform.KeyHome:       int(glfw.KeyHome),
		guiplatform.KeyEnd:        int(glfw.KeyEnd),
		guiplatform.KeyInsert:     int(glfw.KeyInsert),
		guiplatform.KeyDelete:     int(glfw.KeyDelete),
		guiplatform.KeyBackspace:  int(glfw.KeyBackspace),
		guiplatform.KeySpace:      int(glfw.KeySpace),
		guiplatform.KeyEnter:      int(glfw.KeyEnter),
		guiplatform.KeyEscape:     int(glfw.KeyEscape),
		guiplatform.KeyPadEnter:   int(glfw.KeyKPEnter),
		guiplatform.KeyA:          int(glfw.KeyA),
		guiplatform.KeyC:          int(glfw.KeyC),
		guiplatform.KeyV:          int(glfw.KeyV),
		guiplatform.KeyX:          int(glfw.KeyX),
		guiplatform.KeyY:          int(glfw.KeyY),
		guiplatform.KeyZ:          int(glfw.KeyZ),
	}
}

// Time returns seconds since GLFW initialization.
func (p *Platform) Time() float64 {
	return glfw.GetTime()
}

// CreateCursor creates a custom cursor from img.
func (p *Platform) CreateCursor(img image.Image, hotX, hotY int) (guiplatform.CursorHandle, error) {
	c := glfw.CreateCursor(img, hotX, hotY)
	if c == nil {
		return 0, errors.New("glfw create cursor failed")
	}
	p.nextCursor++
	p.cursors[p.nextCursor] = c
	return p.nextCursor, nil
}

func (p *Platform) DestroyCursor(c guiplatform.CursorHandle) {
	if cur := p.cursors[c]; cur != nil {
		cur.Destroy()
		delete(p.cursors, c)
	}
}

// SetCursor sets a custom cursor; zero restores the default arrow.
func (p *Platform) SetCursor(h guiplatform.WindowHandle, c guiplatform.CursorHandle) {
	if w := p.windows[h]; w != nil {
		w.SetCursor(p.cursors[c])
	}
}

// SetSystemCursor sets a standard cursor. Shapes GLFW 3.3 lacks use the
// arrow.
func (p *Platform) SetSystemCursor(h guiplatform.WindowHandle, shape guiplatform.MouseCursor) {
	w := p.windows[h]
	if w == nil {
		return
	}
	std := standardCursor(shape)
	cur, ok := p.standard[std]
	if !ok {
		cur = glfw.CreateStandardCursor(std)
		p.standard[std] = cur
	}
	w.SetCursor(cur)
}

func standardCursor(shape guiplatform.MouseCursor) glfw.StandardCursor {
	switch shape {
	case guiplatform.CursorTextInput:
		return glfw.IBeamCursor
	case guiplatform.CursorResizeNS:
		return glfw.VResizeCursor
	case guiplatform.CursorResizeEW:
		return glfw.HResizeCursor
	case guiplatform.CursorHand:
		return glfw.HandCursor
	default:
		return glfw.ArrowCursor
	}
}

// GetText implements guiplatform.ClipboardProvider.
func (p *Platform) GetText() string {
	return glfw.GetClipboardString()
}

// SetText implements guiplatform.ClipboardProvider.
func (p *Platform) SetText(text string) {
	glfw.SetClipboardString(text)
}

// Close destroys every secondary window and cursor and releases the X11
// connection. The main window is left to the application.
func (p *Platform) Close() {
	for h := range p.windows {
		p.DestroyWindow(h)
	}
	for c := range p.cursors {
		p.DestroyCursor(c)
	}
	for _, cur := range p.standard {
		cur.Destroy()
	}
	clear(p.standard)
	if p.x11 != nil {
		p.x11.Close()
		p.x11 = nil
	}
	glfw.SetMonitorCallback(nil)
}

func glfwBool(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}
