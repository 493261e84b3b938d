// Example opens a GLFW window driven by guiplatform, draws a small scene
// through the draw translator and opens a secondary viewport window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//	go run ./example/ -config example/config.yaml -metrics :9090
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-theft-auto/guiplatform"
	"github.com/go-theft-auto/guiplatform/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "guiplatform example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if err := run(*configPath, *metricsAddr, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, metricsAddr string, verbose bool) error {
	cfg := guiplatform.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = guiplatform.LoadConfig(configPath); err != nil {
			return err
		}
	}
	cfg.Verbose = cfg.Verbose || verbose

	reg := prometheus.NewRegistry()
	metrics := guiplatform.NewMetrics(reg)
	if metricsAddr != "" {
		go serveMetrics(metricsAddr, reg)
	}

	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	device, err := opengl.NewDevice()
	if err != nil {
		return fmt.Errorf("gl device: %w", err)
	}
	defer device.Delete()

	platform, err := opengl.NewPlatform(window, opengl.WithMonitorSource(cfg.MonitorSource))
	if err != nil {
		return fmt.Errorf("glfw platform: %w", err)
	}
	defer platform.Close()
	platform.OnWindowDestroy(device.ReleaseContext)

	io := guiplatform.NewIO()
	atlas := newBitmapAtlas()
	io.Fonts = atlas

	opts := append([]guiplatform.Option{guiplatform.WithIO(io), guiplatform.WithMetrics(metrics)}, cfg.Options()...)
	backend, err := guiplatform.New(platform, device, platform.MainWindow(), opts...)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	defer backend.Shutdown()

	// A secondary viewport, created the way the GUI library would when a
	// window is dragged outside the main one.
	var tool *guiplatform.Viewport
	if pio := backend.PlatformIO(); pio.Platform != nil {
		tool = &guiplatform.Viewport{ID: 1, Pos: guiplatform.Vec2{X: 100, Y: 100}, Size: guiplatform.Vec2{X: 320, Y: 200}}
		if err := pio.Platform.CreateWindow(tool); err != nil {
			slog.Warn("secondary viewport unavailable", "error", err)
			tool = nil
		} else {
			pio.Platform.SetWindowTitle(tool, "Tool")
			pio.Platform.ShowWindow(tool)
		}
	}

	clicks := 0
	for !window.ShouldClose() {
		for _, ev := range platform.PollEvents() {
			if ev.Type == guiplatform.EventDisplayClose && tool != nil && ev.Source == tool.PlatformHandle {
				backend.PlatformIO().Platform.DestroyWindow(tool)
				tool = nil
				continue
			}
			backend.ProcessEvent(ev)
		}
		if io.MouseDown[0] {
			clicks++
		}

		if err := backend.NewFrame(); err != nil {
			return fmt.Errorf("new frame: %w", err)
		}
		io.MouseCursor = guiplatform.CursorArrow

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		dd, dl := mainDrawData(io, atlas, clicks)
		backend.RenderDrawData(dd)
		guiplatform.ReleaseDrawList(dl)

		var toolList *guiplatform.DrawList
		backend.RenderPlatformWindows(func(vp *guiplatform.Viewport) *guiplatform.DrawData {
			if vp != tool {
				return nil
			}
			toolList = guiplatform.AcquireDrawList()
			gl.ClearColor(0.2, 0.1, 0.1, 1.0)
			gl.Clear(gl.COLOR_BUFFER_BIT)
			toolList.AddRect(10, 10, vp.Size.X-20, 40, guiplatform.ColorRed)
			atlas.addText(toolList, 20, 22, 2, guiplatform.ColorWhite, "Tool")
			toolList.Finalize()
			size := backend.Viewports().WindowSize(vp)
			return &guiplatform.DrawData{
				CmdLists:         []*guiplatform.DrawList{toolList},
				DisplaySize:      size,
				FramebufferScale: guiplatform.Vec2{X: 1, Y: 1},
			}
		})
		if toolList != nil {
			guiplatform.ReleaseDrawList(toolList)
		}

		window.SwapBuffers()
	}

	return nil
}

func mainDrawData(io *guiplatform.IO, atlas *bitmapAtlas, clicks int) (*guiplatform.DrawData, *guiplatform.DrawList) {
	dl := guiplatform.AcquireDrawList()
	dl.AddRect(20, 20, 300, 160, guiplatform.ColorDarkGray)
	dl.AddRectOutline(20, 20, 300, 160, guiplatform.ColorGray, 2)
	atlas.addText(dl, 32, 32, 2, guiplatform.ColorWhite, "guiplatform")

	dl.PushClipRect(20, 60, 320, 180)
	dl.AddTriangle(40, 170, 90, 70, 140, 170, guiplatform.ColorRed)
	atlas.addText(dl, 160, 100, 1, guiplatform.ColorWhite, fmt.Sprintf("Frames pressed: %d", clicks))
	dl.PopClipRect()

	// The callback draws with raw GL; the reset restores the translator's state.
	dl.AddCallback(func(*guiplatform.DrawList, *guiplatform.DrawCmd) {
		gl.BlendFunc(gl.ONE, gl.ZERO)
	}, nil)
	dl.AddResetRenderState()
	dl.Finalize()

	return &guiplatform.DrawData{
		CmdLists:         []*guiplatform.DrawList{dl},
		DisplaySize:      io.DisplaySize,
		FramebufferScale: io.DisplayFramebufferScale,
	}, dl
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("metrics server stopped", "error", err)
	}
}
