// Command gen renders reference scenes through the draw translator with the
// OpenGL device, reads the framebuffer back and saves JPEG images to
// doc/imgs/. Each scene is rendered on both the unindexed and the indexed
// path so the two can be compared side by side.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/guiplatform"
	"github.com/go-theft-auto/guiplatform/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// scene defines a single capture.
type scene struct {
	name   string // filename without extension
	width  int
	height int
	build  func(dl *guiplatform.DrawList, checker guiplatform.TextureID)
	offset guiplatform.Vec2 // DisplayPos of the draw data
}

// whiteAtlas is a 1x1 opaque atlas; the scenes draw no text.
type whiteAtlas struct{ id guiplatform.TextureID }

func (a *whiteAtlas) TexDataAsRGBA32() ([]byte, int, int) {
	return []byte{0xFF, 0xFF, 0xFF, 0xFF}, 1, 1
}

func (a *whiteAtlas) SetTexID(id guiplatform.TextureID) { a.id = id }

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	device, err := opengl.NewDevice()
	if err != nil {
		return fmt.Errorf("gl device: %w", err)
	}
	defer device.Delete()

	platform, err := opengl.NewPlatform(window)
	if err != nil {
		return fmt.Errorf("glfw platform: %w", err)
	}
	defer platform.Close()

	io := guiplatform.NewIO()
	io.Fonts = &whiteAtlas{}
	backend, err := guiplatform.New(platform, device, platform.MainWindow(),
		guiplatform.WithIO(io),
		guiplatform.WithNoMouseCursorChange(true),
		guiplatform.WithClipboard(platform))
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	defer backend.Shutdown()
	if err := backend.NewFrame(); err != nil {
		return fmt.Errorf("new frame: %w", err)
	}

	checker, err := device.CreateTexture(checkerPixels(8), 8, 8)
	if err != nil {
		return fmt.Errorf("checker texture: %w", err)
	}
	defer device.DestroyTexture(checker)

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScenes()
	for _, s := range shots {
		for _, indexed := range []bool{false, true} {
			backend.Renderer().UseIndexedDraw(indexed)
			name := s.name
			if indexed {
				name += "_indexed"
			}
			if err := capture(backend, s, checker, filepath.Join(outDir, name+".jpg")); err != nil {
				return fmt.Errorf("capture %s: %w", name, err)
			}
			stats := backend.Renderer().Stats()
			fmt.Printf("  %s.jpg (%dx%d, %d draws, %d vertices)\n", name, s.width, s.height, stats.DrawCalls, stats.Vertices)
		}
	}

	fmt.Printf("\nGenerated %d images in %s/\n", 2*len(shots), outDir)
	return nil
}

func capture(backend *guiplatform.Backend, s scene, checker guiplatform.TextureID, path string) error {
	// The hidden window stays at 800x600, larger than every scene, so only
	// the GL viewport changes between captures.
	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	dl := guiplatform.AcquireDrawList()
	defer guiplatform.ReleaseDrawList(dl)
	s.build(dl, checker)
	dl.Finalize()

	backend.RenderDrawData(&guiplatform.DrawData{
		CmdLists:         []*guiplatform.DrawList{dl},
		DisplayPos:       s.offset,
		DisplaySize:      guiplatform.Vec2{X: float32(s.width), Y: float32(s.height)},
		FramebufferScale: guiplatform.Vec2{X: 1, Y: 1},
	})

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// checkerPixels returns an n x n RGBA checkerboard.
func checkerPixels(n int) []byte {
	pixels := make([]byte, n*n*4)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := byte(0x40)
			if (x+y)%2 == 0 {
				v = 0xE0
			}
			i := (y*n + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = v, v, v, 0xFF
		}
	}
	return pixels
}

func buildScenes() []scene {
	return []scene{
		{
			name: "primitives", width: 300, height: 200,
			build: func(dl *guiplatform.DrawList, _ guiplatform.TextureID) {
				dl.AddRect(20, 20, 120, 80, guiplatform.ColorRed)
				dl.AddRectOutline(160, 20, 120, 80, guiplatform.ColorGray, 3)
				dl.AddTriangle(20, 180, 80, 110, 140, 180, guiplatform.ColorGreen)
				dl.AddRect(160, 110, 120, 70, guiplatform.RGBA(0x30, 0x60, 0xFF, 0x80))
			},
		},
		{
			name: "clip", width: 300, height: 200,
			build: func(dl *guiplatform.DrawList, _ guiplatform.TextureID) {
				dl.PushClipRect(40, 40, 260, 160)
				dl.AddRect(0, 0, 300, 200, guiplatform.ColorDarkGray)
				dl.PushClipRect(100, 80, 200, 120)
				dl.AddRect(0, 0, 300, 200, guiplatform.ColorBlue)
				dl.PopClipRect()
				dl.AddTriangle(40, 160, 150, 40, 260, 160, guiplatform.RGBA(0xFF, 0xFF, 0x00, 0x60))
				dl.PopClipRect()
			},
		},
		{
			name: "texture", width: 300, height: 200,
			build: func(dl *guiplatform.DrawList, checker guiplatform.TextureID) {
				dl.SetTexture(checker)
				dl.AddGlyphQuads([]guiplatform.GlyphQuad{
					{X0: 20, Y0: 20, X1: 140, Y1: 140, U0: 0, V0: 0, U1: 1, V1: 1},
					{X0: 160, Y0: 20, X1: 280, Y1: 140, U0: 0, V0: 0, U1: 4, V1: 4},
				}, guiplatform.ColorWhite)
				dl.SetTexture(0)
				dl.AddRect(20, 160, 260, 20, guiplatform.ColorGray)
			},
		},
		{
			name: "callback_reset", width: 300, height: 200,
			build: func(dl *guiplatform.DrawList, _ guiplatform.TextureID) {
				dl.AddRect(20, 20, 260, 160, guiplatform.ColorDarkGray)
				// Additive blending inside the callback; the reset restores
				// alpha blending for the second rectangle.
				dl.AddCallback(func(*guiplatform.DrawList, *guiplatform.DrawCmd) {
					gl.BlendFunc(gl.ONE, gl.ONE)
				}, nil)
				dl.AddRect(40, 40, 100, 120, guiplatform.RGBA(0xFF, 0x40, 0x40, 0x80))
				dl.AddResetRenderState()
				dl.AddRect(160, 40, 100, 120, guiplatform.RGBA(0xFF, 0x40, 0x40, 0x80))
			},
		},
		{
			name: "display_pos", width: 300, height: 200,
			offset: guiplatform.Vec2{X: 1000, Y: 500},
			build: func(dl *guiplatform.DrawList, _ guiplatform.TextureID) {
				dl.PushClipRect(1020, 520, 1280, 680)
				dl.AddRect(1000, 500, 300, 200, guiplatform.ColorGray)
				dl.AddTriangle(1020, 680, 1150, 520, 1280, 680, guiplatform.ColorRed)
				dl.PopClipRect()
			},
		},
	}
}
