package guiplatform

// colorScale converts an 8-bit channel to [0,1].
const colorScale = 1.0 / 255.0

// NormalizeVertex converts a GUI vertex into the device layout.
func NormalizeVertex(v Vertex) DeviceVertex {
	r, g, b, a := UnpackRGBA(v.Color)
	return DeviceVertex{
		Pos:      v.Pos,
		TexCoord: v.TexCoord,
		Color: [4]float32{
			float32(r) * colorScale,
			float32(g) * colorScale,
			float32(b) * colorScale,
			float32(a) * colorScale,
		},
	}
}

// Unindex flattens an indexed triangle list: entry i of the result is the
// normalised vertex at vtx[vtxOffset+idx[i]]. dst is reused when it has enough
// capacity, so callers can keep a grow-only scratch buffer.
func Unindex(dst []DeviceVertex, vtx []Vertex, idx []DrawIdx, vtxOffset uint32) []DeviceVertex {
	dst = growDeviceVertices(dst, len(idx))
	unindexInto(dst, vtx, idx, vtxOffset)
	return dst
}

// unindexInto is Unindex writing into a dst of exactly len(idx).
func unindexInto(dst []DeviceVertex, vtx []Vertex, idx []DrawIdx, vtxOffset uint32) {
	for i, ix := range idx {
		dst[i] = NormalizeVertex(vtx[vtxOffset+uint32(ix)])
	}
}

// NormalizeVertices converts vtx one-to-one into dst.
func NormalizeVertices(dst []DeviceVertex, vtx []Vertex) []DeviceVertex {
	dst = growDeviceVertices(dst, len(vtx))
	for i := range vtx {
		dst[i] = NormalizeVertex(vtx[i])
	}
	return dst
}

// WidenIndices rebases 16-bit command-relative indices by vtxOffset into a
// 32-bit buffer, reusing dst.
func WidenIndices(dst []uint32, idx []DrawIdx, vtxOffset uint32) []uint32 {
	dst = growIndices(dst, len(idx))
	widenInto(dst, idx, vtxOffset)
	return dst
}

func widenInto(dst []uint32, idx []DrawIdx, vtxOffset uint32) {
	for i, ix := range idx {
		dst[i] = vtxOffset + uint32(ix)
	}
}

func growIndices(dst []uint32, n int) []uint32 {
	if cap(dst) < n {
		dst = make([]uint32, n)
	}
	return dst[:n]
}

func growDeviceVertices(dst []DeviceVertex, n int) []DeviceVertex {
	if cap(dst) < n {
		dst = make([]DeviceVertex, n)
	}
	return dst[:n]
}
