// Package opengl provides a GLFW + OpenGL 4.1 backend for guiplatform.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/guiplatform"
)

// DeviceName is reported as the renderer backend name.
const DeviceName = "guiplatform_opengl4"

// Device implements guiplatform.IndexedDevice with OpenGL 4.1.
//
// Vertex array objects are not shared between contexts, so one is created
// lazily for each context the device draws in. Buffers, textures and the
// shader program live in the shared object namespace.
type Device struct {
	shader     uint32
	vbo, ebo   uint32
	vaos       map[*glfw.Window]uint32
	projLoc    int32
	xformLoc   int32
	texLoc     int32
	useTexLoc  int32
	textures   map[guiplatform.TextureID]bool
	state      guiplatform.RenderState
	fbScale    guiplatform.Vec2
	savedState nativeState
}

// nativeState is GL state outside guiplatform.RenderState.
type nativeState struct {
	program                      int32
	vao                          int32
	texture                      int32
	blendSrcRGB, blendDstRGB     int32
	blendSrcAlpha, blendDstAlpha int32
	blendEqRGB, blendEqAlpha     int32
	scissorBox                   [4]int32
	blend, depth, cull, scissor  bool
}

var _ guiplatform.IndexedDevice = (*Device)(nil)
var _ guiplatform.NativeStater = (*Device)(nil)
var _ guiplatform.FramebufferScaler = (*Device)(nil)

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;
uniform mat4 transform;

void main() {
    gl_Position = projection * transform * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D tex;
uniform bool useTexture;

void main() {
    if (useTexture) {
        FragColor = texture(tex, TexCoord) * Color;
    } else {
        FragColor = Color;
    }
}
` + "\x00"

// NewDevice creates the device. The GL context that will be used for drawing
// must be current and gl.Init must have been called.
func NewDevice() (*Device, error) {
	d := &Device{
		vaos:     make(map[*glfw.Window]uint32),
		textures: make(map[guiplatform.TextureID]bool),
		fbScale:  guiplatform.Vec2{X: 1, Y: 1},
		state: guiplatform.RenderState{
			Transform:  mgl32.Ident4(),
			Projection: mgl32.Ident4(),
			Blend:      guiplatform.AlphaBlender,
		},
	}

	var err error
	d.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	d.projLoc = gl.GetUniformLocation(d.shader, gl.Str("projection\x00"))
	d.xformLoc = gl.GetUniformLocation(d.shader, gl.Str("transform\x00"))
	d.texLoc = gl.GetUniformLocation(d.shader, gl.Str("tex\x00"))
	d.useTexLoc = gl.GetUniformLocation(d.shader, gl.Str("useTexture\x00"))

	gl.GenBuffers(1, &d.vbo)
	gl.GenBuffers(1, &d.ebo)
	return d, nil
}

// Name implements guiplatform.Named.
func (d *Device) Name() string { return DeviceName }

// RenderState returns the state last set through the device.
func (d *Device) RenderState() guiplatform.RenderState {
	return d.state
}

// SetTransform sets the model transform applied before the projection.
func (d *Device) SetTransform(m mgl32.Mat4) {
	d.state.Transform = m
}

// SetProjection sets the projection matrix.
func (d *Device) SetProjection(m mgl32.Mat4) {
	d.state.Projection = m
}

// SetFramebufferScale sets the display-to-pixel scale used for clipping.
func (d *Device) SetFramebufferScale(scale guiplatform.Vec2) {
	d.fbScale = scale
}

// SetClipRect enables the scissor test for clip. A zero rectangle disables
// clipping.
func (d *Device) SetClipRect(clip guiplatform.ClipRect) {
	d.state.Clip = clip
	if clip == (guiplatform.ClipRect{}) {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}

	// Scissor boxes are bottom-up in framebuffer pixels.
	var viewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &viewport[0])
	fbHeight := float32(viewport[3])

	x := clip[0] * d.fbScale.X
	y := fbHeight - clip[3]*d.fbScale.Y
	w := clip.Width() * d.fbScale.X
	h := clip.Height() * d.fbScale.Y
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
}

// SetBlender applies the blend equation and factors.
func (d *Device) SetBlender(b guiplatform.Blender) {
	d.state.Blend = b
	gl.Enable(gl.BLEND)
	gl.BlendEquation(glBlendOp(b.Op))
	gl.BlendFunc(glBlendFactor(b.Src), glBlendFactor(b.Dst))
}

// DrawTriangles draws vtx[start:end] as a triangle list.
func (d *Device) DrawTriangles(vtx []guiplatform.DeviceVertex, tex guiplatform.TextureID, start, end int) {
	if start < 0 || end > len(vtx) || end <= start {
		return
	}
	d.bind(tex)

	span := vtx[start:end]
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(span)*int(unsafe.Sizeof(guiplatform.DeviceVertex{})),
		gl.Ptr(span), gl.STREAM_DRAW)

	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(span)))
}

// DrawIndexedTriangles draws idx[start:end] against vtx.
func (d *Device) DrawIndexedTriangles(vtx []guiplatform.DeviceVertex, idx []uint32, tex guiplatform.TextureID, start, end int) {
	if len(vtx) == 0 || start < 0 || end > len(idx) || end <= start {
		return
	}
	d.bind(tex)

	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vtx)*int(unsafe.Sizeof(guiplatform.DeviceVertex{})),
		gl.Ptr(vtx), gl.STREAM_DRAW)

	span := idx[start:end]
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(span)*4, gl.Ptr(span), gl.STREAM_DRAW)

	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(span)), gl.UNSIGNED_INT, 0)
}

// bind prepares program, uniforms, texture and vertex array for a draw.
func (d *Device) bind(tex guiplatform.TextureID) {
	gl.UseProgram(d.shader)
	gl.UniformMatrix4fv(d.projLoc, 1, false, &d.state.Projection[0])
	gl.UniformMatrix4fv(d.xformLoc, 1, false, &d.state.Transform[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(d.texLoc, 0)
	if tex != 0 && d.textures[tex] {
		gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
		gl.Uniform1i(d.useTexLoc, 1)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.Uniform1i(d.useTexLoc, 0)
	}

	gl.BindVertexArray(d.vertexArray())
}

// vertexArray returns the VAO of the current context, creating it on first
// use.
func (d *Device) vertexArray() uint32 {
	ctx := glfw.GetCurrentContext()
	if vao, ok := d.vaos[ctx]; ok {
		return vao
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)

	// Vertex layout: Pos (2 floats) + TexCoord (2 floats) + Color (4 floats)
	stride := int32(unsafe.Sizeof(guiplatform.DeviceVertex{}))

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(guiplatform.DeviceVertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, unsafe.Offsetof(guiplatform.DeviceVertex{}.Color))
	gl.EnableVertexAttribArray(2)

	d.vaos[ctx] = vao
	return vao
}

// ReleaseContext deletes the vertex array created for w's context. The
// context must be current. Call it before destroying a window the device
// has drawn into.
func (d *Device) ReleaseContext(w *glfw.Window) {
	vao, ok := d.vaos[w]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &vao)
	delete(d.vaos, w)
}

// CreateTexture uploads RGBA8 pixels into a linear-filtered texture.
func (d *Device) CreateTexture(pixels []byte, width, height int) (guiplatform.TextureID, error) {
	if width <= 0 || height <= 0 || len(pixels) < width*height*4 {
		return 0, fmt.Errorf("texture %dx%d: need %d bytes, got %d", width, height, width*height*4, len(pixels))
	}

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, guiplatform.ErrNoTexture
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("texture upload: GL error 0x%x", code)
	}

	id := guiplatform.TextureID(tex)
	d.textures[id] = true
	return id, nil
}

// DestroyTexture deletes a texture created by CreateTexture.
func (d *Device) DestroyTexture(tex guiplatform.TextureID) {
	if !d.textures[tex] {
		return
	}
	t := uint32(tex)
	gl.DeleteTextures(1, &t)
	delete(d.textures, tex)
}

// SaveNativeState records GL state the device changes while drawing and
// disables depth testing and culling.
func (d *Device) SaveNativeState() {
	s := &d.savedState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vao)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &s.texture)
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &s.blendSrcRGB)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &s.blendDstRGB)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDstAlpha)
	gl.GetIntegerv(gl.BLEND_EQUATION_RGB, &s.blendEqRGB)
	gl.GetIntegerv(gl.BLEND_EQUATION_ALPHA, &s.blendEqAlpha)
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissorBox[0])
	s.blend = gl.IsEnabled(gl.BLEND)
	s.depth = gl.IsEnabled(gl.DEPTH_TEST)
	s.cull = gl.IsEnabled(gl.CULL_FACE)
	s.scissor = gl.IsEnabled(gl.SCISSOR_TEST)

	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
}

// RestoreNativeState puts back the state recorded by SaveNativeState.
func (d *Device) RestoreNativeState() {
	s := &d.savedState
	gl.UseProgram(uint32(s.program))
	gl.BindVertexArray(uint32(s.vao))
	gl.BindTexture(gl.TEXTURE_2D, uint32(s.texture))
	gl.BlendEquationSeparate(uint32(s.blendEqRGB), uint32(s.blendEqAlpha))
	gl.BlendFuncSeparate(uint32(s.blendSrcRGB), uint32(s.blendDstRGB), uint32(s.blendSrcAlpha), uint32(s.blendDstAlpha))
	setEnabled(gl.BLEND, s.blend)
	setEnabled(gl.DEPTH_TEST, s.depth)
	setEnabled(gl.CULL_FACE, s.cull)
	setEnabled(gl.SCISSOR_TEST, s.scissor)
	gl.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
}

// Delete releases OpenGL resources. Vertex arrays of other contexts must
// have been released with ReleaseContext.
func (d *Device) Delete() {
	for tex := range d.textures {
		d.DestroyTexture(tex)
	}
	d.ReleaseContext(glfw.GetCurrentContext())
	if d.ebo != 0 {
		gl.DeleteBuffers(1, &d.ebo)
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
	}
	if d.shader != 0 {
		gl.DeleteProgram(d.shader)
	}
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func glBlendOp(op guiplatform.BlendOp) uint32 {
	switch op {
	case guiplatform.BlendSubtract:
		return gl.FUNC_SUBTRACT
	case guiplatform.BlendReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	default:
		return gl.FUNC_ADD
	}
}

func glBlendFactor(f guiplatform.BlendFactor) uint32 {
	switch f {
	case guiplatform.BlendZero:
		return gl.ZERO
	case guiplatform.BlendAlpha:
		return gl.SRC_ALPHA
	case guiplatform.BlendInverseAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case guiplatform.BlendSrcColor:
		return gl.SRC_COLOR
	case guiplatform.BlendDstColor:
		return gl.DST_COLOR
	default:
		return gl.ONE
	}
}

// shaderError reports a shader compile or link failure with the driver log.
type shaderError struct {
	stage string
	log   string
}

func (e *shaderError) Error() string {
	return e.stage + " shader: " + e.log
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, "vertex", vertexSource)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, "fragment", fragmentSource)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, &shaderError{stage: "link", log: string(log)}
	}
	return program, nil
}

func compileShader(kind uint32, stage, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, &shaderError{stage: stage, log: string(log)}
	}
	return shader, nil
}
