package guiplatform

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Positive reports whether both components are strictly greater than zero.
func (v Vec2) Positive() bool {
	return v.X > 0 && v.Y > 0
}

// ClipRect is a clip rectangle stored as (x1, y1, x2, y2).
type ClipRect [4]float32

// Sub translates the rectangle by -off.
func (c ClipRect) Sub(off Vec2) ClipRect {
	return ClipRect{c[0] - off.X, c[1] - off.Y, c[2] - off.X, c[3] - off.Y}
}

// Width returns x2 - x1.
func (c ClipRect) Width() float32 { return c[2] - c[0] }

// Height returns y2 - y1.
func (c ClipRect) Height() float32 { return c[3] - c[1] }

// TextureID is an opaque device texture handle. Zero means "no texture".
type TextureID uint32

// DrawIdx is the index type emitted by draw lists.
type DrawIdx = uint16

// Vertex is the GUI-side vertex with a packed colour.
type Vertex struct {
	Pos      [2]float32 // Position (x, y)
	TexCoord [2]float32 // Texture coordinates (u, v)
	Color    uint32     // RGBA packed color
}

// DeviceVertex is the vertex layout consumed by a Device: colour channels
// are unpacked to normalised floats.
type DeviceVertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    [4]float32
}

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorRed         uint32 = 0xFF0000FF
	ColorGreen       uint32 = 0xFF00FF00
	ColorBlue        uint32 = 0xFFFF0000
	ColorGray        uint32 = 0xFF808080
	ColorDarkGray    uint32 = 0xFF404040
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}
