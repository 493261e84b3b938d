package guiplatform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVertexUnpacksChannels(t *testing.T) {
	v := Vertex{
		Pos:      [2]float32{5, 6},
		TexCoord: [2]float32{0.25, 0.75},
		Color:    RGBA(255, 51, 0, 102),
	}

	dv := NormalizeVertex(v)

	assert.Equal(t, v.Pos, dv.Pos)
	assert.Equal(t, v.TexCoord, dv.TexCoord)
	assert.InDelta(t, 1.0, dv.Color[0], 1e-6)
	assert.InDelta(t, 0.2, dv.Color[1], 1e-6)
	assert.InDelta(t, 0.0, dv.Color[2], 1e-6)
	assert.InDelta(t, 0.4, dv.Color[3], 1e-6)
}

func TestUnindexFollowsIndexOrder(t *testing.T) {
	dl := quadList(ClipRect{0, 0, 100, 100}, 0)

	out := Unindex(nil, dl.VtxBuffer, dl.IdxBuffer, 0)

	require.Len(t, out, len(dl.IdxBuffer))
	for i, ix := range dl.IdxBuffer {
		assert.Equal(t, NormalizeVertex(dl.VtxBuffer[ix]), out[i], "entry %d", i)
	}
	// Shared corners of the two triangles are duplicated.
	assert.Equal(t, out[0], out[3])
	assert.Equal(t, out[2], out[4])
}

func TestUnindexReusesScratch(t *testing.T) {
	dl := quadList(ClipRect{}, 0)
	scratch := make([]DeviceVertex, 0, 64)

	out := Unindex(scratch, dl.VtxBuffer, dl.IdxBuffer, 0)
	require.Len(t, out, 6)
	assert.Equal(t, 64, cap(out))
	assert.Same(t, &scratch[:1][0], &out[0])

	// A smaller list keeps the grown buffer.
	out = Unindex(out, dl.VtxBuffer, dl.IdxBuffer[:3], 0)
	assert.Len(t, out, 3)
	assert.Equal(t, 64, cap(out))
}

func TestUnindexGrowsShortScratch(t *testing.T) {
	dl := quadList(ClipRect{}, 0)
	out := Unindex(make([]DeviceVertex, 2), dl.VtxBuffer, dl.IdxBuffer, 0)
	assert.Len(t, out, 6)
}

func TestUnindexAppliesVertexOffset(t *testing.T) {
	vtx := []Vertex{
		{Pos: [2]float32{0, 0}, Color: ColorWhite},
		{Pos: [2]float32{1, 0}, Color: ColorWhite},
		{Pos: [2]float32{2, 0}, Color: ColorRed},
		{Pos: [2]float32{3, 0}, Color: ColorRed},
	}

	out := Unindex(nil, vtx, []DrawIdx{1, 0}, 2)

	require.Len(t, out, 2)
	assert.Equal(t, NormalizeVertex(vtx[3]), out[0])
	assert.Equal(t, NormalizeVertex(vtx[2]), out[1])
}

func TestNormalizeVerticesIsOneToOne(t *testing.T) {
	dl := quadList(ClipRect{}, 0)
	out := NormalizeVertices(nil, dl.VtxBuffer)
	require.Len(t, out, len(dl.VtxBuffer))
	for i := range dl.VtxBuffer {
		assert.Equal(t, NormalizeVertex(dl.VtxBuffer[i]), out[i])
	}
}

func TestWidenIndices(t *testing.T) {
	idx := []DrawIdx{0, 1, 65535, 2}
	out := WidenIndices(nil, idx, 0)
	assert.Equal(t, []uint32{0, 1, 65535, 2}, out)

	scratch := make([]uint32, 0, 16)
	out = WidenIndices(scratch, idx[:2], 0)
	assert.Equal(t, []uint32{0, 1}, out)
	assert.Equal(t, 16, cap(out))
}

func TestWidenIndicesAppliesVertexOffset(t *testing.T) {
	out := WidenIndices(nil, []DrawIdx{0, 3, 65535}, 65536)
	assert.Equal(t, []uint32{65536, 65539, 131071}, out)
}
