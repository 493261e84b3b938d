package guiplatform

import (
	"math"
	"sync"
)

// CmdKind tags the variant carried by a DrawCmd.
type CmdKind uint8

const (
	// CmdGeometry draws ElemCount indices with ClipRect and TextureID.
	CmdGeometry CmdKind = iota
	// CmdResetState asks the renderer to re-establish its render state.
	CmdResetState
	// CmdCallback invokes Callback instead of drawing.
	CmdCallback
)

// String returns the kind name.
func (k CmdKind) String() string {
	switch k {
	case CmdGeometry:
		return "geometry"
	case CmdResetState:
		return "reset-state"
	case CmdCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// DrawCallback is a user hook embedded in a draw list. It runs during
// RenderDrawData with the device render state active and may change it.
type DrawCallback func(dl *DrawList, cmd *DrawCmd)

// DrawCmd represents a single draw command.
type DrawCmd struct {
	Kind      CmdKind
	ClipRect  ClipRect     // Clip rectangle (x1, y1, x2, y2), absolute coordinates
	TextureID TextureID    // Device texture (0 = no texture)
	ElemCount uint32       // Number of indices consumed by this command
	VtxOffset uint32       // First vertex addressed by this command's indices
	Callback  DrawCallback // Set only for CmdCallback
	UserData  any
}

// maxCmdVertices is the number of vertices one command can address.
const maxCmdVertices = math.MaxUint16 + 1

// drawListPool provides efficient reuse of DrawList buffers.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]DrawIdx, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
			clipStack: make([]ClipRect, 0, 8),
		}
	},
}

// AcquireDrawList gets a DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawList is an ordered run of commands sharing one vertex/index range.
// Indices are relative to the owning command's VtxOffset, so a list may hold
// more vertices than DrawIdx can address. Commands consume IdxBuffer
// sequentially, so the index offset of a command is the sum of ElemCount of
// every command before it.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []DrawIdx

	clipStack    []ClipRect
	currentClip  ClipRect
	textureID    TextureID
	idxCmdOffset uint32 // Index offset for current command
	vtxCmdOffset uint32 // Vertex offset for current command
}

// NewDrawList returns an empty, unpooled draw list.
func NewDrawList() *DrawList {
	dl := &DrawList{}
	dl.Clear()
	return dl
}

// Clear resets the DrawList for a new frame.
// Retains allocated capacity to avoid reallocations.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = ClipRect{-1e9, -1e9, 1e9, 1e9}
	dl.textureID = 0
	dl.idxCmdOffset = 0
	dl.vtxCmdOffset = 0
}

// PushClipRect pushes a new clip rectangle onto the stack.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	dl.currentClip = ClipRect{x1, y1, x2, y2}
	dl.splitDraw()
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.splitDraw()
	}
}

// SetTexture sets the current texture for subsequent primitives.
func (dl *DrawList) SetTexture(textureID TextureID) {
	if dl.textureID != textureID {
		dl.textureID = textureID
		dl.splitDraw()
	}
}

// AddCallback appends a user callback command.
func (dl *DrawList) AddCallback(cb DrawCallback, userData any) {
	dl.closeCommand()
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		Kind:     CmdCallback,
		ClipRect: dl.currentClip,
		Callback: cb,
		UserData: userData,
	})
	dl.splitDraw()
}

// AddResetRenderState appends a command asking the renderer to restore its
// own render state, typically after a callback changed it.
func (dl *DrawList) AddResetRenderState() {
	dl.closeCommand()
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{Kind: CmdResetState, ClipRect: dl.currentClip})
	dl.splitDraw()
}

// closeCommand finalizes the element count of the trailing geometry command.
func (dl *DrawList) closeCommand() {
	if n := len(dl.CmdBuffer); n > 0 && dl.CmdBuffer[n-1].Kind == CmdGeometry {
		dl.CmdBuffer[n-1].ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
}

// splitDraw finalizes the current command and starts a new one.
func (dl *DrawList) splitDraw() {
	dl.closeCommand()
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		Kind:      CmdGeometry,
		ClipRect:  dl.currentClip,
		TextureID: dl.textureID,
		VtxOffset: uint32(len(dl.VtxBuffer)),
	})
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
	dl.vtxCmdOffset = uint32(len(dl.VtxBuffer))
}

// ensureCommand ensures there's an active geometry command.
func (dl *DrawList) ensureCommand() {
	if n := len(dl.CmdBuffer); n == 0 || dl.CmdBuffer[n-1].Kind != CmdGeometry {
		dl.splitDraw()
	}
}

// addVertices adds vertices and returns the command-relative index of the
// first one. A primitive that would not fit in DrawIdx starts a new command
// with the same clip and texture.
func (dl *DrawList) addVertices(verts ...Vertex) DrawIdx {
	dl.ensureCommand()
	if len(dl.VtxBuffer)-int(dl.vtxCmdOffset)+len(verts) > maxCmdVertices {
		dl.splitDraw()
	}
	startIdx := DrawIdx(uint32(len(dl.VtxBuffer)) - dl.vtxCmdOffset)
	dl.VtxBuffer = append(dl.VtxBuffer, verts...)
	return startIdx
}

func (dl *DrawList) addIndices(indices ...DrawIdx) {
	dl.IdxBuffer = append(dl.IdxBuffer, indices...)
}

// AddRect draws a filled rectangle.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 { // Skip fully transparent
		return
	}

	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y + h}, Color: color},
		Vertex{Pos: [2]float32{x, y + h}, Color: color},
	)

	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddRectOutline draws a rectangle outline.
func (dl *DrawList) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.AddRect(x, y, w, thickness, color)
	dl.AddRect(x, y+h-thickness, w, thickness, color)
	dl.AddRect(x, y+thickness, thickness, h-2*thickness, color)
	dl.AddRect(x+w-thickness, y+thickness, thickness, h-2*thickness, color)
}

// AddLine draws a line segment as a quad of the given thickness.
func (dl *DrawList) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dx, dy := x2-x1, y2-y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length == 0 {
		return
	}
	// Half-thickness normal
	nx := -dy / length * thickness * 0.5
	ny := dx / length * thickness * 0.5

	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x1 + nx, y1 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 + nx, y2 + ny}, Color: color},
		Vertex{Pos: [2]float32{x2 - nx, y2 - ny}, Color: color},
		Vertex{Pos: [2]float32{x1 - nx, y1 - ny}, Color: color},
	)
	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddTriangle draws a filled triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}

	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x1, y1}, Color: color},
		Vertex{Pos: [2]float32{x2, y2}, Color: color},
		Vertex{Pos: [2]float32{x3, y3}, Color: color},
	)

	dl.addIndices(idx, idx+1, idx+2)
}

// GlyphQuad is one textured character quad.
type GlyphQuad struct {
	X0, Y0 float32 // Screen coordinates (top-left)
	X1, Y1 float32 // Screen coordinates (bottom-right)
	U0, V0 float32 // Texture coordinates (top-left)
	U1, V1 float32 // Texture coordinates (bottom-right)
}

// AddGlyphQuads draws textured quads with the specified color using the
// current texture.
func (dl *DrawList) AddGlyphQuads(quads []GlyphQuad, color uint32) {
	if color&0xFF000000 == 0 || len(quads) == 0 {
		return
	}

	for _, q := range quads {
		vtxIdx := dl.addVertices(
			Vertex{Pos: [2]float32{q.X0, q.Y0}, TexCoord: [2]float32{q.U0, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y0}, TexCoord: [2]float32{q.U1, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y1}, TexCoord: [2]float32{q.U1, q.V1}, Color: color},
			Vertex{Pos: [2]float32{q.X0, q.Y1}, TexCoord: [2]float32{q.U0, q.V1}, Color: color},
		)
		dl.addIndices(vtxIdx, vtxIdx+1, vtxIdx+2, vtxIdx, vtxIdx+2, vtxIdx+3)
	}
}

// Finalize closes the trailing command and drops empty geometry commands.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	dl.closeCommand()

	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.Kind != CmdGeometry || cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}

// DrawData is everything needed to render one frame of one viewport.
// The renderer only borrows it for the duration of RenderDrawData.
type DrawData struct {
	CmdLists         []*DrawList
	DisplayPos       Vec2 // Top-left of the visible GUI space
	DisplaySize      Vec2 // Size of the visible GUI space
	FramebufferScale Vec2
}

// TotalVtxCount returns the number of vertices across all lists.
func (dd *DrawData) TotalVtxCount() int {
	n := 0
	for _, dl := range dd.CmdLists {
		if dl == nil {
			continue
		}
		n += len(dl.VtxBuffer)
	}
	return n
}

// TotalIdxCount returns the number of indices across all lists.
func (dd *DrawData) TotalIdxCount() int {
	n := 0
	for _, dl := range dd.CmdLists {
		if dl == nil {
			continue
		}
		n += len(dl.IdxBuffer)
	}
	return n
}
