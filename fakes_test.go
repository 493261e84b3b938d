package guiplatform

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// drawCall is one recorded DrawTriangles or DrawIndexedTriangles call.
type drawCall struct {
	Tex        TextureID
	Start, End int
	Clip       ClipRect
	Vertices   []DeviceVertex // the drawn span
	Indexed    bool
}

// fakeDevice records every call and keeps RenderState like a real device.
type fakeDevice struct {
	state    RenderState
	draws    []drawCall
	calls    []string
	textures map[TextureID][]byte
	nextTex  TextureID

	createErr     error
	returnZeroTex bool
	destroyed     []TextureID
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		state: RenderState{
			Transform:  mgl32.Translate3D(3, 4, 0),
			Projection: mgl32.Scale3D(2, 2, 1),
			Clip:       ClipRect{1, 2, 3, 4},
			Blend:      Blender{Op: BlendAdd, Src: BlendOne, Dst: BlendZero},
		},
		textures: make(map[TextureID][]byte),
	}
}

func (d *fakeDevice) RenderState() RenderState { return d.state }

func (d *fakeDevice) SetTransform(m mgl32.Mat4) {
	d.calls = append(d.calls, "transform")
	d.state.Transform = m
}

func (d *fakeDevice) SetProjection(m mgl32.Mat4) {
	d.calls = append(d.calls, "projection")
	d.state.Projection = m
}

func (d *fakeDevice) SetClipRect(clip ClipRect) {
	d.calls = append(d.calls, "clip")
	d.state.Clip = clip
}

func (d *fakeDevice) SetBlender(b Blender) {
	d.calls = append(d.calls, "blend")
	d.state.Blend = b
}

func (d *fakeDevice) DrawTriangles(vtx []DeviceVertex, tex TextureID, start, end int) {
	d.calls = append(d.calls, "draw")
	span := append([]DeviceVertex(nil), vtx[start:end]...)
	d.draws = append(d.draws, drawCall{Tex: tex, Start: start, End: end, Clip: d.state.Clip, Vertices: span})
}

func (d *fakeDevice) CreateTexture(pixels []byte, w, h int) (TextureID, error) {
	if d.createErr != nil {
		return 0, d.createErr
	}
	if d.returnZeroTex {
		return 0, nil
	}
	d.nextTex++
	d.textures[d.nextTex] = append([]byte(nil), pixels[:w*h*4]...)
	return d.nextTex, nil
}

func (d *fakeDevice) DestroyTexture(tex TextureID) {
	d.destroyed = append(d.destroyed, tex)
	delete(d.textures, tex)
}

// fakeIndexedDevice adds indexed drawing to fakeDevice.
type fakeIndexedDevice struct {
	*fakeDevice
}

func (d fakeIndexedDevice) DrawIndexedTriangles(vtx []DeviceVertex, idx []uint32, tex TextureID, start, end int) {
	d.calls = append(d.calls, "draw-indexed")
	span := make([]DeviceVertex, 0, end-start)
	for _, ix := range idx[start:end] {
		span = append(span, vtx[ix])
	}
	d.draws = append(d.draws, drawCall{Tex: tex, Start: start, End: end, Clip: d.state.Clip, Vertices: span, Indexed: true})
}

// fakeWindow is the state of one fake native window.
type fakeWindow struct {
	opts        WindowOptions
	pos, size   Vec2
	fbSize      Vec2
	title       string
	shown       bool
	focusOnShow bool
	cursor      CursorHandle
	system      MouseCursor
}

var errCreateWindow = errors.New("fake: window creation failed")

// fakePlatform is an in-memory Platform.
type fakePlatform struct {
	windows    map[WindowHandle]*fakeWindow
	nextHandle WindowHandle
	createErr  error
	created    []WindowHandle
	destroyed  []WindowHandle
	bound      []WindowHandle
	swapped    []WindowHandle

	monitors []Monitor
	mods     Modifiers
	keys     map[Key]int
	now      float64

	cursors       map[CursorHandle]image.Image
	nextCursor    CursorHandle
	cursorErr     error
	destroyedCurs []CursorHandle
}

func newFakePlatform() *fakePlatform {
	p := &fakePlatform{
		windows: make(map[WindowHandle]*fakeWindow),
		cursors: make(map[CursorHandle]image.Image),
		keys:    map[Key]int{KeyTab: 258, KeyEnter: 257, KeyPadEnter: 335, KeyA: 65},
		monitors: []Monitor{
			{MainSize: Vec2{X: 1920, Y: 1080}, WorkPos: Vec2{Y: 32}, WorkSize: Vec2{X: 1920, Y: 1048}, DpiScale: 1},
		},
	}
	return p
}

// addMainWindow registers an application-owned window.
func (p *fakePlatform) addMainWindow(size Vec2) WindowHandle {
	p.nextHandle++
	p.windows[p.nextHandle] = &fakeWindow{size: size, fbSize: size, shown: true}
	return p.nextHandle
}

func (p *fakePlatform) CreateWindow(opts WindowOptions) (WindowHandle, error) {
	if p.createErr != nil {
		return 0, p.createErr
	}
	p.nextHandle++
	h := p.nextHandle
	p.windows[h] = &fakeWindow{opts: opts, pos: opts.Pos, size: opts.Size, fbSize: opts.Size, title: opts.Title}
	p.created = append(p.created, h)
	return h, nil
}

func (p *fakePlatform) DestroyWindow(h WindowHandle) {
	p.destroyed = append(p.destroyed, h)
	delete(p.windows, h)
}

func (p *fakePlatform) ShowWindow(h WindowHandle, focus bool) {
	if w := p.windows[h]; w != nil {
		w.shown = true
		w.focusOnShow = focus
	}
}

func (p *fakePlatform) WindowPos(h WindowHandle) Vec2 {
	if w := p.windows[h]; w != nil {
		return w.pos
	}
	return Vec2{}
}

func (p *fakePlatform) SetWindowPos(h WindowHandle, pos Vec2) {
	if w := p.windows[h]; w != nil {
		w.pos = pos
	}
}

func (p *fakePlatform) WindowSize(h WindowHandle) Vec2 {
	if w := p.windows[h]; w != nil {
		return w.size
	}
	return Vec2{}
}

func (p *fakePlatform) SetWindowSize(h WindowHandle, size Vec2) {
	if w := p.windows[h]; w != nil {
		w.size = size
	}
}

func (p *fakePlatform) SetWindowTitle(h WindowHandle, title string) {
	if w := p.windows[h]; w != nil {
		w.title = title
	}
}

func (p *fakePlatform) FramebufferSize(h WindowHandle) Vec2 {
	if w := p.windows[h]; w != nil {
		return w.fbSize
	}
	return Vec2{}
}

func (p *fakePlatform) BindBackbuffer(h WindowHandle) { p.bound = append(p.bound, h) }
func (p *fakePlatform) SwapBuffers(h WindowHandle)    { p.swapped = append(p.swapped, h) }
func (p *fakePlatform) Monitors() []Monitor           { return p.monitors }
func (p *fakePlatform) Modifiers() Modifiers          { return p.mods }
func (p *fakePlatform) KeyMap() map[Key]int           { return p.keys }
func (p *fakePlatform) Time() float64                 { return p.now }

func (p *fakePlatform) CreateCursor(img image.Image, hotX, hotY int) (CursorHandle, error) {
	if p.cursorErr != nil {
		return 0, p.cursorErr
	}
	p.nextCursor++
	p.cursors[p.nextCursor] = img
	return p.nextCursor, nil
}

func (p *fakePlatform) DestroyCursor(c CursorHandle) {
	p.destroyedCurs = append(p.destroyedCurs, c)
	delete(p.cursors, c)
}

func (p *fakePlatform) SetCursor(h WindowHandle, c CursorHandle) {
	if w := p.windows[h]; w != nil {
		w.cursor = c
		w.system = CursorNone
	}
}

func (p *fakePlatform) SetSystemCursor(h WindowHandle, shape MouseCursor) {
	if w := p.windows[h]; w != nil {
		w.cursor = 0
		w.system = shape
	}
}

// fakeOSPlatform adds OS focus and minimized queries.
type fakeOSPlatform struct {
	*fakePlatform
	osFocus   WindowHandle
	minimized map[WindowHandle]bool
}

func newFakeOSPlatform() *fakeOSPlatform {
	return &fakeOSPlatform{fakePlatform: newFakePlatform(), minimized: make(map[WindowHandle]bool)}
}

func (p *fakeOSPlatform) FocusWindow(h WindowHandle)          { p.osFocus = h }
func (p *fakeOSPlatform) WindowFocused(h WindowHandle) bool   { return p.osFocus == h }
func (p *fakeOSPlatform) WindowMinimized(h WindowHandle) bool { return p.minimized[h] }

// fakeAtlas is a FontAtlas with a fixed pixel buffer.
type fakeAtlas struct {
	pixels []byte
	w, h   int
	texID  TextureID
	setIDs []TextureID
}

func newFakeAtlas(w, h int) *fakeAtlas {
	pixels := make([]byte, w*h*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	return &fakeAtlas{pixels: pixels, w: w, h: h}
}

func (a *fakeAtlas) TexDataAsRGBA32() ([]byte, int, int) { return a.pixels, a.w, a.h }

func (a *fakeAtlas) SetTexID(id TextureID) {
	a.texID = id
	a.setIDs = append(a.setIDs, id)
}

// fakeClipboard is an in-memory ClipboardProvider.
type fakeClipboard struct {
	text  string
	reads int
}

func (c *fakeClipboard) GetText() string {
	c.reads++
	return c.text
}

func (c *fakeClipboard) SetText(text string) { c.text = text }

// quadList returns a list with one 4-vertex, 6-index quad in one command.
func quadList(clip ClipRect, tex TextureID) *DrawList {
	return &DrawList{
		VtxBuffer: []Vertex{
			{Pos: [2]float32{0, 0}, Color: ColorWhite},
			{Pos: [2]float32{10, 0}, Color: ColorRed},
			{Pos: [2]float32{10, 10}, Color: ColorGreen},
			{Pos: [2]float32{0, 10}, Color: ColorBlue},
		},
		IdxBuffer: []DrawIdx{0, 1, 2, 0, 2, 3},
		CmdBuffer: []DrawCmd{{Kind: CmdGeometry, ClipRect: clip, TextureID: tex, ElemCount: 6}},
	}
}
