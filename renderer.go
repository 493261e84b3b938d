package guiplatform

import "github.com/go-gl/mathgl/mgl32"

// RenderStats counts the work done by the last RenderDrawData call.
type RenderStats struct {
	Lists     int
	DrawCalls int
	Vertices  int // device vertices produced
	Callbacks int
	Resets    int
}

// Renderer translates DrawData into Device calls.
//
// The default path unindexes every list into a dense vertex stream, which
// every Device can draw. When indexed drawing is enabled and the device
// implements IndexedDevice, vertices are converted one-to-one and the 16-bit
// indices are widened to 32 bits instead.
type Renderer struct {
	dev     Device
	indexed IndexedDevice

	// Scratch buffers, grown on demand and never shrunk.
	vertices []DeviceVertex
	indices  []uint32

	stats   RenderStats
	metrics *Metrics
}

// NewRenderer creates a renderer drawing through dev.
func NewRenderer(dev Device) *Renderer {
	return &Renderer{dev: dev}
}

// UseIndexedDraw toggles the indexed path. It returns false, leaving the
// unindexed path active, when the device cannot draw indexed lists.
func (r *Renderer) UseIndexedDraw(enable bool) bool {
	if !enable {
		r.indexed = nil
		return false
	}
	idev, ok := r.dev.(IndexedDevice)
	if !ok {
		r.indexed = nil
		return false
	}
	r.indexed = idev
	return true
}

// Stats returns counters for the last RenderDrawData call.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// SetupRenderState installs the blender, an identity transform and an
// orthographic projection covering DisplayPos..DisplayPos+DisplaySize.
func (r *Renderer) SetupRenderState(dd *DrawData) {
	r.dev.SetBlender(AlphaBlender)
	if fs, ok := r.dev.(FramebufferScaler); ok {
		scale := dd.FramebufferScale
		if !scale.Positive() {
			scale = Vec2{X: 1, Y: 1}
		}
		fs.SetFramebufferScale(scale)
	}

	left := dd.DisplayPos.X
	right := dd.DisplayPos.X + dd.DisplaySize.X
	top := dd.DisplayPos.Y
	bottom := dd.DisplayPos.Y + dd.DisplaySize.Y
	r.dev.SetTransform(mgl32.Ident4())
	r.dev.SetProjection(mgl32.Ortho(left, right, bottom, top, -1, 1))
}

// RenderDrawData draws a frame. Nothing is submitted when the display size
// is not positive, e.g. for a minimized window. Device state observed before
// the call is restored afterwards, including when a callback panics.
func (r *Renderer) RenderDrawData(dd *DrawData) {
	r.stats = RenderStats{}
	if dd == nil || !dd.DisplaySize.Positive() {
		return
	}

	guard := acquireRenderState(r.dev)
	defer guard.Release()
	defer r.metrics.observeRender(&r.stats)

	r.SetupRenderState(dd)

	for _, dl := range dd.CmdLists {
		if dl == nil {
			continue
		}
		r.stats.Lists++
		r.renderList(dd, dl)
	}
}

func (r *Renderer) renderList(dd *DrawData, dl *DrawList) {
	vtx := r.prepareList(dl)

	clipOff := dd.DisplayPos
	idxOffset := 0
	for i := range dl.CmdBuffer {
		cmd := &dl.CmdBuffer[i]
		switch cmd.Kind {
		case CmdResetState:
			r.stats.Resets++
			r.SetupRenderState(dd)
		case CmdCallback:
			r.stats.Callbacks++
			if cmd.Callback != nil {
				cmd.Callback(dl, cmd)
			}
		default:
			if cmd.ElemCount == 0 {
				break
			}
			end := idxOffset + int(cmd.ElemCount)
			r.dev.SetClipRect(cmd.ClipRect.Sub(clipOff))
			if r.indexed != nil {
				r.indexed.DrawIndexedTriangles(vtx, r.indices, cmd.TextureID, idxOffset, end)
			} else {
				r.dev.DrawTriangles(vtx, cmd.TextureID, idxOffset, end)
			}
			r.stats.DrawCalls++
		}
		idxOffset += int(cmd.ElemCount)
	}
}

// prepareList converts one list into the scratch buffers and returns the
// vertex slice to draw from. Each geometry command rebases its own index
// range by VtxOffset, so the device always sees absolute vertex positions.
func (r *Renderer) prepareList(dl *DrawList) []DeviceVertex {
	n := len(dl.IdxBuffer)
	if r.indexed != nil {
		r.vertices = NormalizeVertices(r.vertices, dl.VtxBuffer)
		r.indices = growIndices(r.indices, n)
	} else {
		r.vertices = growDeviceVertices(r.vertices, n)
	}

	idxOffset := 0
	for i := range dl.CmdBuffer {
		cmd := &dl.CmdBuffer[i]
		end := idxOffset + int(cmd.ElemCount)
		if end > n {
			break
		}
		idx := dl.IdxBuffer[idxOffset:end]
		if r.indexed != nil {
			widenInto(r.indices[idxOffset:end], idx, cmd.VtxOffset)
		} else {
			unindexInto(r.vertices[idxOffset:end], dl.VtxBuffer, idx, cmd.VtxOffset)
		}
		idxOffset = end
	}
	r.stats.Vertices += len(r.vertices)
	return r.vertices
}
