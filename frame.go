package guiplatform

// defaultDeltaTime is reported on the first frame.
const defaultDeltaTime = float32(1.0 / 60.0)

// NewFrame updates IO for a new frame: display size, framebuffer scale,
// delta time, modifier keys and the OS cursor. Device objects are created
// on the first call.
func (b *Backend) NewFrame() error {
	if b.closed {
		return ErrNotInitialized
	}
	// A failed upload still lets the platform state sync; the error is
	// reported once IO reflects this frame.
	var objErr error
	if b.fontTexture == 0 {
		objErr = b.CreateDeviceObjects()
	}

	io := b.io
	size := b.platform.WindowSize(b.mainWindow)
	io.DisplaySize = size
	if size.Positive() {
		fb := b.platform.FramebufferSize(b.mainWindow)
		io.DisplayFramebufferScale = Vec2{X: fb.X / size.X, Y: fb.Y / size.Y}
	}

	now := b.platform.Time()
	if b.time > 0 {
		io.DeltaTime = float32(now - b.time)
	} else {
		io.DeltaTime = defaultDeltaTime
	}
	b.time = now

	mods := b.platform.Modifiers()
	io.KeyCtrl = mods.Ctrl
	io.KeyShift = mods.Shift
	io.KeyAlt = mods.Alt
	io.KeySuper = mods.Super

	if b.monitorsDirty && b.platformIO.Platform != nil {
		b.viewports.UpdateMonitors()
		b.monitorsDirty = false
	}

	b.updateMouseCursor()
	if objErr != nil {
		return objErr
	}
	b.metrics.frameStarted()
	return nil
}

// InvalidateMonitors makes the next NewFrame republish the monitor list.
func (b *Backend) InvalidateMonitors() {
	b.monitorsDirty = true
}

func (b *Backend) updateMouseCursor() {
	io := b.io
	if io.ConfigFlags&ConfigNoMouseCursorChange != 0 {
		return
	}
	cursor := io.MouseCursor
	if io.MouseDrawCursor || cursor == CursorNone {
		// The OS cursor is hidden with a transparent image; hiding it
		// outright breaks relative input on some platforms.
		b.platform.SetCursor(b.mainWindow, b.invisibleCursor)
		return
	}
	b.platform.SetSystemCursor(b.mainWindow, cursor)
}
