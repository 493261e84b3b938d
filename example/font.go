package main

import "github.com/go-theft-auto/guiplatform"

const (
	glyphSize   = 8
	atlasCols   = 16
	atlasWidth  = atlasCols * glyphSize // 128
	atlasHeight = 6 * glyphSize         // 48, ASCII 32-127
)

// bitmapAtlas is an 8x8 bitmap font rasterised to RGBA. White glyphs on a
// transparent background, tinted by vertex colour.
type bitmapAtlas struct {
	pixels []byte
	texID  guiplatform.TextureID
}

var _ guiplatform.FontAtlas = (*bitmapAtlas)(nil)

func newBitmapAtlas() *bitmapAtlas {
	a := &bitmapAtlas{pixels: make([]byte, atlasWidth*atlasHeight*4)}
	for ch, pattern := range glyphs {
		idx := int(ch - 32)
		col := idx % atlasCols
		row := idx / atlasCols
		for y := 0; y < glyphSize; y++ {
			for x := 0; x < glyphSize; x++ {
				if pattern[y]&(0x80>>x) == 0 {
					continue
				}
				off := ((row*glyphSize+y)*atlasWidth + col*glyphSize + x) * 4
				copy(a.pixels[off:off+4], []byte{255, 255, 255, 255})
			}
		}
	}
	return a
}

func (a *bitmapAtlas) TexDataAsRGBA32() ([]byte, int, int) {
	return a.pixels, atlasWidth, atlasHeight
}

func (a *bitmapAtlas) SetTexID(id guiplatform.TextureID) { a.texID = id }

// addText appends one glyph quad per printable character at scale.
func (a *bitmapAtlas) addText(dl *guiplatform.DrawList, x, y, scale float32, color uint32, text string) {
	quads := make([]guiplatform.GlyphQuad, 0, len(text))
	step := glyphSize * scale
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch < 32 || ch > 127 {
			continue
		}
		idx := int(ch - 32)
		u0 := float32(idx%atlasCols*glyphSize) / atlasWidth
		v0 := float32(idx/atlasCols*glyphSize) / atlasHeight
		quads = append(quads, guiplatform.GlyphQuad{
			X0: x + float32(i)*step, Y0: y,
			X1: x + float32(i+1)*step, Y1: y + step,
			U0: u0, V0: v0,
			U1: u0 + glyphSize/float32(atlasWidth), V1: v0 + glyphSize/float32(atlasHeight),
		})
	}
	dl.SetTexture(a.texID)
	dl.AddGlyphQuads(quads, color)
	dl.SetTexture(0)
}

var glyphs = map[byte][]byte{
	'0': {0x3C, 0x66, 0x6E, 0x76, 0x66, 0x66, 0x3C, 0x00},
	'1': {0x18, 0x38, 0x18, 0x18, 0x18, 0x18, 0x7E, 0x00},
	'2': {0x3C, 0x66, 0x06, 0x1C, 0x30, 0x60, 0x7E, 0x00},
	'3': {0x3C, 0x66, 0x06, 0x1C, 0x06, 0x66, 0x3C, 0x00},
	'4': {0x0C, 0x1C, 0x3C, 0x6C, 0x7E, 0x0C, 0x0C, 0x00},
	'5': {0x7E, 0x60, 0x7C, 0x06, 0x06, 0x66, 0x3C, 0x00},
	'6': {0x1C, 0x30, 0x60, 0x7C, 0x66, 0x66, 0x3C, 0x00},
	'7': {0x7E, 0x06, 0x0C, 0x18, 0x30, 0x30, 0x30, 0x00},
	'8': {0x3C, 0x66, 0x66, 0x3C, 0x66, 0x66, 0x3C, 0x00},
	'9': {0x3C, 0x66, 0x66, 0x3E, 0x06, 0x0C, 0x38, 0x00},
	'A': {0x18, 0x3C, 0x66, 0x66, 0x7E, 0x66, 0x66, 0x00},
	'C': {0x3C, 0x66, 0x60, 0x60, 0x60, 0x66, 0x3C, 0x00},
	'D': {0x78, 0x6C, 0x66, 0x66, 0x66, 0x6C, 0x78, 0x00},
	'E': {0x7E, 0x60, 0x60, 0x7C, 0x60, 0x60, 0x7E, 0x00},
	'F': {0x7E, 0x60, 0x60, 0x7C, 0x60, 0x60, 0x60, 0x00},
	'M': {0x63, 0x77, 0x7F, 0x6B, 0x63, 0x63, 0x63, 0x00},
	'P': {0x7C, 0x66, 0x66, 0x7C, 0x60, 0x60, 0x60, 0x00},
	'S': {0x3C, 0x66, 0x60, 0x3C, 0x06, 0x66, 0x3C, 0x00},
	'V': {0x66, 0x66, 0x66, 0x66, 0x66, 0x3C, 0x18, 0x00},
	'a': {0x00, 0x00, 0x3C, 0x06, 0x3E, 0x66, 0x3E, 0x00},
	'c': {0x00, 0x00, 0x3C, 0x66, 0x60, 0x66, 0x3C, 0x00},
	'd': {0x06, 0x06, 0x3E, 0x66, 0x66, 0x66, 0x3E, 0x00},
	'e': {0x00, 0x00, 0x3C, 0x66, 0x7E, 0x60, 0x3C, 0x00},
	'i': {0x18, 0x00, 0x38, 0x18, 0x18, 0x18, 0x3C, 0x00},
	'l': {0x38, 0x18, 0x18, 0x18, 0x18, 0x18, 0x3C, 0x00},
	'm': {0x00, 0x00, 0x76, 0x7F, 0x6B, 0x6B, 0x63, 0x00},
	'n': {0x00, 0x00, 0x7C, 0x66, 0x66, 0x66, 0x66, 0x00},
	'o': {0x00, 0x00, 0x3C, 0x66, 0x66, 0x66, 0x3C, 0x00},
	'p': {0x00, 0x00, 0x7C, 0x66, 0x66, 0x7C, 0x60, 0x60},
	'r': {0x00, 0x00, 0x6C, 0x76, 0x60, 0x60, 0x60, 0x00},
	's': {0x00, 0x00, 0x3E, 0x60, 0x3C, 0x06, 0x7C, 0x00},
	't': {0x30, 0x30, 0x7C, 0x30, 0x30, 0x30, 0x1C, 0x00},
	'u': {0x00, 0x00, 0x66, 0x66, 0x66, 0x66, 0x3E, 0x00},
	'w': {0x00, 0x00, 0x63, 0x6B, 0x6B, 0x7F, 0x36, 0x00},
	'y': {0x00, 0x00, 0x66, 0x66, 0x66, 0x3E, 0x06, 0x3C},
	' ': {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	'.': {0x00, 0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x00},
	':': {0x00, 0x00, 0x18, 0x18, 0x00, 0x18, 0x18, 0x00},
	'(': {0x0C, 0x18, 0x30, 0x30, 0x30, 0x18, 0x0C, 0x00},
	')': {0x30, 0x18, 0x0C, 0x0C, 0x0C, 0x18, 0x30, 0x00},
}
