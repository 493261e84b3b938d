package guiplatform

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoTexture is returned when the device reports success but hands back
// no texture.
var ErrNoTexture = errors.New("guiplatform: device returned no texture")

// invisibleCursorSize is the edge of the transparent cursor image.
const invisibleCursorSize = 8

// CreateDeviceObjects uploads the font atlas and creates the invisible
// cursor. On failure nothing is left installed.
func (b *Backend) CreateDeviceObjects() error {
	if b.closed {
		return ErrNotInitialized
	}
	fonts := b.io.Fonts
	if fonts == nil {
		return fmt.Errorf("font atlas: %w", ErrNotInitialized)
	}

	pixels, w, h := fonts.TexDataAsRGBA32()
	if w <= 0 || h <= 0 || len(pixels) < w*h*4 {
		b.metrics.deviceObjectsFailed()
		return fmt.Errorf("font atlas: invalid %dx%d RGBA buffer of %d bytes", w, h, len(pixels))
	}

	tex, err := b.device.CreateTexture(pixels, w, h)
	if err != nil {
		b.metrics.deviceObjectsFailed()
		b.logger.Warn("font texture upload failed", "width", w, "height", h, "error", err)
		return fmt.Errorf("create font texture: %w", err)
	}
	if tex == 0 {
		b.metrics.deviceObjectsFailed()
		return fmt.Errorf("create font texture: %w", ErrNoTexture)
	}

	img := image.NewRGBA(image.Rect(0, 0, invisibleCursorSize, invisibleCursorSize))
	cursor, err := b.platform.CreateCursor(img, 0, 0)
	if err != nil {
		b.device.DestroyTexture(tex)
		b.metrics.deviceObjectsFailed()
		b.logger.Warn("invisible cursor creation failed", "error", err)
		return fmt.Errorf("create invisible cursor: %w", err)
	}

	fonts.SetTexID(tex)
	b.fontTexture = tex
	b.invisibleCursor = cursor
	b.logger.Debug("device objects created", "texture", tex, "width", w, "height", h)
	return nil
}

// InvalidateDeviceObjects destroys the font texture and the invisible
// cursor. The next NewFrame recreates them.
func (b *Backend) InvalidateDeviceObjects() {
	if b.fontTexture != 0 {
		b.device.DestroyTexture(b.fontTexture)
		if b.io.Fonts != nil {
			b.io.Fonts.SetTexID(0)
		}
		b.fontTexture = 0
	}
	if b.invisibleCursor != 0 {
		b.platform.SetCursor(b.mainWindow, 0)
		b.platform.DestroyCursor(b.invisibleCursor)
		b.invisibleCursor = 0
	}
}

// FontTexture returns the uploaded font texture, zero when absent.
func (b *Backend) FontTexture() TextureID {
	return b.fontTexture
}
