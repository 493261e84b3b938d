package guiplatform

import "math"

// MouseButtonCount is the number of mouse buttons tracked in IO.
const MouseButtonCount = 5

// KeysDownCount bounds native key codes stored in IO.KeysDown.
const KeysDownCount = 512

// Key names a GUI-level key whose native code is published in IO.KeyMap.
type Key int

const (
	KeyTab Key = iota
	KeyLeftArrow
	KeyRightArrow
	KeyUpArrow
	KeyDownArrow
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyPadEnter
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyCount
)

// ConfigFlags are set by the application.
type ConfigFlags uint32

const (
	ConfigNoMouseCursorChange ConfigFlags = 1 << iota
	ConfigViewportsEnable
)

// BackendFlags are set by the backend to advertise capabilities.
type BackendFlags uint32

const (
	BackendHasMouseCursors BackendFlags = 1 << iota
	BackendPlatformHasViewports
	BackendRendererHasViewports
)

// MouseCursor is the cursor shape requested by the GUI library.
type MouseCursor int

const (
	CursorNone MouseCursor = iota - 1
	CursorArrow
	CursorTextInput
	CursorResizeAll
	CursorResizeNS
	CursorResizeEW
	CursorResizeNESW
	CursorResizeNWSE
	CursorHand
	CursorCount
)

// FontAtlas is the GUI library's font atlas record.
type FontAtlas interface {
	// TexDataAsRGBA32 returns the rasterised atlas as tightly packed RGBA8.
	TexDataAsRGBA32() (pixels []byte, width, height int)
	// SetTexID stores the device texture the atlas was uploaded to.
	SetTexID(id TextureID)
}

// IO is the state shared between the GUI library and the backend. The
// backend writes display, timing and input fields; the GUI library reads
// them and writes the cursor request and capture flags.
type IO struct {
	ConfigFlags         ConfigFlags
	BackendFlags        BackendFlags
	BackendPlatformName string
	BackendRendererName string

	DisplaySize             Vec2
	DisplayFramebufferScale Vec2
	DeltaTime               float32

	MousePos    Vec2
	MouseDown   [MouseButtonCount]bool
	MouseWheel  float32
	MouseWheelH float32

	KeysDown [KeysDownCount]bool
	KeyMap   [KeyCount]int
	KeyCtrl  bool
	KeyShift bool
	KeyAlt   bool
	KeySuper bool

	// InputQueueCharacters holds characters typed since the GUI library
	// last drained it.
	InputQueueCharacters []rune

	MouseCursor     MouseCursor
	MouseDrawCursor bool

	WantCaptureMouse    bool
	WantCaptureKeyboard bool

	Fonts FontAtlas

	GetClipboardText func() string
	SetClipboardText func(text string)
}

// NewIO creates IO with the mouse parked off-screen.
func NewIO() *IO {
	io := &IO{
		DisplayFramebufferScale: Vec2{X: 1, Y: 1},
		InputQueueCharacters:    make([]rune, 0, 16),
	}
	io.ClearMousePos()
	for i := range io.KeyMap {
		io.KeyMap[i] = -1
	}
	return io
}

// ClearMousePos marks the mouse as unavailable.
func (io *IO) ClearMousePos() {
	io.MousePos = Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32}
}

// MouseAvailable reports whether MousePos holds a real position.
func (io *IO) MouseAvailable() bool {
	return io.MousePos.X > -math.MaxFloat32 && io.MousePos.Y > -math.MaxFloat32
}

// AddInputCharacter queues a typed character.
func (io *IO) AddInputCharacter(ch rune) {
	if ch == 0 {
		return
	}
	io.InputQueueCharacters = append(io.InputQueueCharacters, ch)
}

// SetKeyDown records a native key transition. Out-of-range codes are ignored.
func (io *IO) SetKeyDown(code int, down bool) {
	if code < 0 || code >= KeysDownCount {
		return
	}
	io.KeysDown[code] = down
}

// KeyDown reports whether the native key mapped to k is held.
func (io *IO) KeyDown(k Key) bool {
	if k < 0 || k >= KeyCount {
		return false
	}
	code := io.KeyMap[k]
	if code < 0 || code >= KeysDownCount {
		return false
	}
	return io.KeysDown[code]
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyTab:        "Tab",
		KeyLeftArrow:  "Left",
		KeyRightArrow: "Right",
		KeyUpArrow:    "Up",
		KeyDownArrow:  "Down",
		KeyPageUp:     "PgUp",
		KeyPageDown:   "PgDn",
		KeyHome:       "Home",
		KeyEnd:        "End",
		KeyInsert:     "Ins",
		KeyDelete:     "Del",
		KeyBackspace:  "Backspace",
		KeySpace:      "Space",
		KeyEnter:      "Enter",
		KeyEscape:     "Esc",
		KeyPadEnter:   "KeypadEnter",
		KeyA:          "A",
		KeyC:          "C",
		KeyV:          "V",
		KeyX:          "X",
		KeyY:          "Y",
		KeyZ:          "Z",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "?"
}
