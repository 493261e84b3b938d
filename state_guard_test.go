package guiplatform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRenderStateGuardRestoresEveryField(t *testing.T) {
	dev := newFakeDevice()
	before := dev.RenderState()

	guard := acquireRenderState(dev)
	dev.SetTransform(mgl32.Ident4())
	dev.SetProjection(mgl32.Ortho(0, 10, 10, 0, -1, 1))
	dev.SetClipRect(ClipRect{9, 9, 9, 9})
	dev.SetBlender(AlphaBlender)
	guard.Release()

	assert.Equal(t, before, dev.RenderState())
	assert.Equal(t, before, guard.Saved())
}

func TestRenderStateGuardReleaseIsIdempotent(t *testing.T) {
	dev := newFakeDevice()
	guard := acquireRenderState(dev)
	guard.Release()

	dev.SetClipRect(ClipRect{5, 5, 6, 6})
	guard.Release()

	assert.Equal(t, ClipRect{5, 5, 6, 6}, dev.RenderState().Clip)
}

type nativeStateDevice struct {
	*fakeDevice
	saves, restores int
}

func (d *nativeStateDevice) SaveNativeState()    { d.saves++ }
func (d *nativeStateDevice) RestoreNativeState() { d.restores++ }

func TestRenderStateGuardSavesNativeState(t *testing.T) {
	dev := &nativeStateDevice{fakeDevice: newFakeDevice()}

	guard := acquireRenderState(dev)
	assert.Equal(t, 1, dev.saves)
	assert.Equal(t, 0, dev.restores)

	guard.Release()
	guard.Release()
	assert.Equal(t, 1, dev.restores)
}
