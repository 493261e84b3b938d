package guiplatform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawListCallbackAndResetCommands(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, ColorWhite)
	dl.AddCallback(func(*DrawList, *DrawCmd) {}, 42)
	dl.AddResetRenderState()
	dl.AddRect(0, 0, 5, 5, ColorWhite)
	dl.Finalize()

	kinds := make([]CmdKind, 0, len(dl.CmdBuffer))
	for _, cmd := range dl.CmdBuffer {
		kinds = append(kinds, cmd.Kind)
	}
	assert.Equal(t, []CmdKind{CmdGeometry, CmdCallback, CmdResetState, CmdGeometry}, kinds)
	assert.Equal(t, uint32(6), dl.CmdBuffer[0].ElemCount)
	assert.Equal(t, 42, dl.CmdBuffer[1].UserData)
	assert.Equal(t, uint32(0), dl.CmdBuffer[1].ElemCount)
	assert.Equal(t, uint32(6), dl.CmdBuffer[3].ElemCount)
	// Indices are relative to the command's first vertex.
	assert.Equal(t, uint32(4), dl.CmdBuffer[3].VtxOffset)
	assert.Equal(t, []DrawIdx{0, 1, 2, 0, 2, 3}, dl.IdxBuffer[6:])
}

func TestDrawListSplitsPastIndexRange(t *testing.T) {
	dl := NewDrawList()
	dl.PushClipRect(0, 0, 400, 300)
	dl.SetTexture(5)
	for i := 0; i < 16384; i++ {
		dl.AddRect(0, 0, 1, 1, ColorWhite)
	}
	dl.AddRect(100, 200, 10, 10, ColorRed)
	dl.Finalize()

	require.Len(t, dl.VtxBuffer, 65540)
	require.Len(t, dl.CmdBuffer, 2)
	first, second := dl.CmdBuffer[0], dl.CmdBuffer[1]
	assert.Equal(t, uint32(0), first.VtxOffset)
	assert.Equal(t, uint32(16384*6), first.ElemCount)
	assert.Equal(t, uint32(65536), second.VtxOffset)
	assert.Equal(t, uint32(6), second.ElemCount)
	assert.Equal(t, first.ClipRect, second.ClipRect)
	assert.Equal(t, TextureID(5), second.TextureID)
	assert.Equal(t, []DrawIdx{0, 1, 2, 0, 2, 3}, dl.IdxBuffer[len(dl.IdxBuffer)-6:])
}

func TestDrawListClearResetsVertexOffset(t *testing.T) {
	dl := NewDrawList()
	dl.AddRect(0, 0, 1, 1, ColorWhite)
	dl.AddCallback(func(*DrawList, *DrawCmd) {}, nil)
	dl.AddRect(0, 0, 1, 1, ColorWhite)
	dl.Clear()

	dl.AddRect(0, 0, 1, 1, ColorWhite)
	dl.Finalize()
	require.Len(t, dl.CmdBuffer, 1)
	assert.Equal(t, uint32(0), dl.CmdBuffer[0].VtxOffset)
	assert.Equal(t, []DrawIdx{0, 1, 2, 0, 2, 3}, dl.IdxBuffer)
}

func TestDrawListSkipsTransparentShapes(t *testing.T) {
	dl := NewDrawList()
	dl.AddRect(0, 0, 10, 10, ColorTransparent)
	dl.AddTriangle(0, 0, 1, 0, 0, 1, ColorTransparent)
	dl.Finalize()

	assert.Empty(t, dl.VtxBuffer)
	assert.Empty(t, dl.CmdBuffer)
}

func TestDrawListTotals(t *testing.T) {
	dd := &DrawData{CmdLists: []*DrawList{quadList(ClipRect{}, 0), quadList(ClipRect{}, 0)}}
	assert.Equal(t, 8, dd.TotalVtxCount())
	assert.Equal(t, 12, dd.TotalIdxCount())
}

func TestDrawListTotalsSkipNilLists(t *testing.T) {
	dd := &DrawData{CmdLists: []*DrawList{nil}}
	assert.Zero(t, dd.TotalVtxCount())
	assert.Zero(t, dd.TotalIdxCount())

	dd.CmdLists = append(dd.CmdLists, quadList(ClipRect{}, 0), nil)
	assert.Equal(t, 4, dd.TotalVtxCount())
	assert.Equal(t, 6, dd.TotalIdxCount())
}

func TestAcquireDrawListIsCleared(t *testing.T) {
	dl := AcquireDrawList()
	dl.AddRect(0, 0, 1, 1, ColorWhite)
	dl.SetTexture(9)
	ReleaseDrawList(dl)

	dl = AcquireDrawList()
	defer ReleaseDrawList(dl)
	require.Empty(t, dl.VtxBuffer)
	dl.AddRect(0, 0, 1, 1, ColorWhite)
	dl.Finalize()
	require.Len(t, dl.CmdBuffer, 1)
	assert.Equal(t, TextureID(0), dl.CmdBuffer[0].TextureID)
}

func TestCmdKindString(t *testing.T) {
	assert.Equal(t, "geometry", CmdGeometry.String())
	assert.Equal(t, "reset-state", CmdResetState.String())
	assert.Equal(t, "callback", CmdCallback.String())
	assert.Equal(t, "unknown", CmdKind(99).String())
}

func TestDrawListAddLine(t *testing.T) {
	dl := NewDrawList()
	dl.AddLine(0, 0, 10, 0, ColorWhite, 2)
	dl.AddLine(5, 5, 5, 5, ColorWhite, 2)
	dl.Finalize()

	require.Len(t, dl.VtxBuffer, 4, "zero-length lines are skipped")
	assert.Equal(t, [2]float32{0, 1}, dl.VtxBuffer[0].Pos)
	assert.Equal(t, [2]float32{10, 1}, dl.VtxBuffer[1].Pos)
	assert.Equal(t, [2]float32{10, -1}, dl.VtxBuffer[2].Pos)
	assert.Equal(t, [2]float32{0, -1}, dl.VtxBuffer[3].Pos)
	assert.Equal(t, uint32(6), dl.CmdBuffer[0].ElemCount)
}
