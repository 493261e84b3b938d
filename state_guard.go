package guiplatform

// renderStateGuard holds exclusive use of a device's global draw state for
// one render pass. Release puts back exactly what acquireRenderState saw.
type renderStateGuard struct {
	dev      Device
	saved    RenderState
	released bool
}

// acquireRenderState snapshots the device state. Pair every call with a
// deferred Release so callbacks that panic still leave the state intact.
func acquireRenderState(dev Device) *renderStateGuard {
	if ns, ok := dev.(NativeStater); ok {
		ns.SaveNativeState()
	}
	return &renderStateGuard{dev: dev, saved: dev.RenderState()}
}

// Saved returns the snapshot taken at acquisition.
func (g *renderStateGuard) Saved() RenderState {
	return g.saved
}

// Release restores the snapshot. Calling it more than once is a no-op.
func (g *renderStateGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.dev.SetBlender(g.saved.Blend)
	g.dev.SetClipRect(g.saved.Clip)
	g.dev.SetTransform(g.saved.Transform)
	g.dev.SetProjection(g.saved.Projection)
	if ns, ok := g.dev.(NativeStater); ok {
		ns.RestoreNativeState()
	}
}
