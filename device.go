package guiplatform

import "github.com/go-gl/mathgl/mgl32"

// BlendOp is the blend equation.
type BlendOp int

const (
	BlendAdd BlendOp = iota
	BlendSubtract
	BlendReverseSubtract
)

// BlendFactor is a source or destination blend factor.
type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendAlpha
	BlendInverseAlpha
	BlendSrcColor
	BlendDstColor
)

// Blender is the blend-function triple.
type Blender struct {
	Op  BlendOp
	Src BlendFactor
	Dst BlendFactor
}

// AlphaBlender is straight alpha blending, the mode GUI geometry expects.
var AlphaBlender = Blender{Op: BlendAdd, Src: BlendAlpha, Dst: BlendInverseAlpha}

// RenderState is the device global state a render pass may touch.
// Values are comparable so a snapshot can be checked for exact equality.
type RenderState struct {
	Transform  mgl32.Mat4
	Projection mgl32.Mat4
	Clip       ClipRect
	Blend      Blender
}

// Device is the drawing side of a backend.
type Device interface {
	// RenderState returns the current global draw state.
	RenderState() RenderState

	SetTransform(m mgl32.Mat4)
	SetProjection(m mgl32.Mat4)
	// SetClipRect sets the clip rectangle in target coordinates.
	SetClipRect(clip ClipRect)
	SetBlender(b Blender)

	// DrawTriangles draws vtx[start:end] as a non-indexed triangle list.
	DrawTriangles(vtx []DeviceVertex, tex TextureID, start, end int)

	// CreateTexture uploads tightly packed RGBA8 pixels.
	CreateTexture(pixels []byte, width, height int) (TextureID, error)
	DestroyTexture(tex TextureID)
}

// IndexedDevice is implemented by devices that can draw indexed triangle
// lists with 32-bit indices.
type IndexedDevice interface {
	Device
	// DrawIndexedTriangles draws idx[start:end] against vtx.
	DrawIndexedTriangles(vtx []DeviceVertex, idx []uint32, tex TextureID, start, end int)
}

// NativeStater is implemented by devices with native state outside
// RenderState (bound program, depth test, culling). The render-state guard
// saves it on acquisition and restores it on release.
type NativeStater interface {
	SaveNativeState()
	RestoreNativeState()
}

// FramebufferScaler is implemented by devices that clip in framebuffer
// pixels rather than display units.
type FramebufferScaler interface {
	SetFramebufferScale(scale Vec2)
}
