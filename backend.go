package guiplatform

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotInitialized is returned when the backend is used without a platform
// or device, or after Shutdown.
var ErrNotInitialized = errors.New("guiplatform: backend not initialized")

// Backend bridges the GUI library to one platform and one device. It owns
// the IO state, the viewport registry and the device objects.
type Backend struct {
	platform Platform
	device   Device

	io         *IO
	platformIO *PlatformIO
	renderer   *Renderer
	viewports  *ViewportManager
	clipboard  *clipboardBridge

	mainWindow   WindowHandle
	mainViewport *Viewport

	time            float64 // timestamp of the last NewFrame, 0 before the first
	fontTexture     TextureID
	invisibleCursor CursorHandle
	monitorsDirty   bool
	closed          bool

	// Options
	maxViewports int
	focusPolicy  FocusPolicy
	indexedDraw  bool
	clipProvider ClipboardProvider
	metrics      *Metrics
	logger       *slog.Logger
	platformName string
	rendererName string
}

// Named is implemented by platforms and devices that report a name for the
// backend name fields in IO.
type Named interface {
	Name() string
}

// New creates a backend for the application's main window.
func New(platform Platform, device Device, mainWindow WindowHandle, opts ...Option) (*Backend, error) {
	if platform == nil || device == nil {
		return nil, ErrNotInitialized
	}
	if mainWindow == 0 {
		return nil, fmt.Errorf("main window: %w", ErrNotInitialized)
	}

	b := &Backend{
		platform:     platform,
		device:       device,
		platformIO:   &PlatformIO{},
		mainWindow:   mainWindow,
		focusPolicy:  FocusPolicyCache,
		logger:       backendLogger,
		platformName: "guiplatform",
		rendererName: "guiplatform",
	}
	if n, ok := platform.(Named); ok {
		b.platformName = n.Name()
	}
	if n, ok := device.(Named); ok {
		b.rendererName = n.Name()
	}

	for _, opt := range opts {
		opt(b)
	}
	if b.io == nil {
		b.io = NewIO()
	}

	io := b.io
	io.BackendPlatformName = b.platformName
	io.BackendRendererName = b.rendererName
	io.BackendFlags |= BackendHasMouseCursors
	if io.ConfigFlags&ConfigViewportsEnable != 0 {
		io.BackendFlags |= BackendPlatformHasViewports | BackendRendererHasViewports
	}
	for k, code := range platform.KeyMap() {
		if k >= 0 && k < KeyCount {
			io.KeyMap[k] = code
		}
	}
	io.ClearMousePos()

	if b.clipProvider == nil {
		if cp, ok := platform.(ClipboardProvider); ok {
			b.clipProvider = cp
		} else {
			b.clipProvider = SystemClipboard{}
		}
	}
	b.clipboard = newClipboardBridge(b.clipProvider)
	io.GetClipboardText = b.clipboard.Text
	io.SetClipboardText = b.clipboard.SetText

	b.renderer = NewRenderer(device)
	b.renderer.metrics = b.metrics
	if b.indexedDraw && !b.renderer.UseIndexedDraw(true) {
		b.logger.Info("device has no indexed draw, using unindexed path", "renderer", b.rendererName)
	}

	b.viewports = NewViewportManager(platform, b.platformIO, b.maxViewports)
	b.viewports.metrics = b.metrics
	b.viewports.logger = b.logger.With("component", "viewport")
	b.viewports.SetFocusPolicy(b.focusPolicy)

	b.mainViewport = &Viewport{Size: platform.WindowSize(mainWindow), Pos: platform.WindowPos(mainWindow)}
	if err := b.viewports.RegisterMainViewport(b.mainViewport, mainWindow); err != nil {
		return nil, err
	}
	if io.ConfigFlags&ConfigViewportsEnable != 0 {
		b.platformIO.Platform = b.viewports
		b.viewports.UpdateMonitors()
	}
	b.monitorsDirty = false
	if mc, ok := platform.(MonitorNotifier); ok {
		mc.OnMonitorsChanged(b.InvalidateMonitors)
	}

	b.logger.Debug("backend initialized",
		"platform", b.platformName,
		"renderer", b.rendererName,
		"viewports", io.ConfigFlags&ConfigViewportsEnable != 0)
	return b, nil
}

// IO returns the shared IO state.
func (b *Backend) IO() *IO { return b.io }

// PlatformIO returns the monitor list and platform interface.
func (b *Backend) PlatformIO() *PlatformIO { return b.platformIO }

// Viewports returns the viewport manager.
func (b *Backend) Viewports() *ViewportManager { return b.viewports }

// MainViewport returns the viewport attached to the main window.
func (b *Backend) MainViewport() *Viewport { return b.mainViewport }

// Renderer returns the draw translator.
func (b *Backend) Renderer() *Renderer { return b.renderer }

// RenderDrawData draws dd to the currently bound surface.
func (b *Backend) RenderDrawData(dd *DrawData) {
	if b.closed {
		return
	}
	b.renderer.RenderDrawData(dd)
}

// RenderPlatformWindows renders and presents every secondary viewport.
// drawFor runs with the viewport's backbuffer bound and returns the draw
// data the GUI library produced for it, or nil to draw nothing. Minimized
// windows are skipped.
func (b *Backend) RenderPlatformWindows(drawFor func(vp *Viewport) *DrawData) {
	if b.closed || b.platformIO.Platform == nil {
		return
	}
	for _, vp := range b.viewports.Viewports() {
		if vp == b.mainViewport || b.viewports.WindowMinimized(vp) {
			continue
		}
		b.viewports.RenderWindow(vp)
		if dd := drawFor(vp); dd != nil {
			b.renderer.RenderDrawData(dd)
		}
		b.viewports.SwapBuffers(vp)
	}
	b.platform.BindBackbuffer(b.mainWindow)
}

// Shutdown destroys device objects and secondary windows and detaches the
// backend from IO. The main window is left to the application.
func (b *Backend) Shutdown() {
	if b.closed {
		return
	}
	b.InvalidateDeviceObjects()
	b.viewports.Shutdown()
	b.clipboard.release()

	b.io.BackendPlatformName = ""
	b.io.BackendRendererName = ""
	b.io.BackendFlags &^= BackendHasMouseCursors | BackendPlatformHasViewports | BackendRendererHasViewports
	b.io.GetClipboardText = nil
	b.io.SetClipboardText = nil
	b.closed = true
	b.logger.Debug("backend shut down")
}
