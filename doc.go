/*
Package guiplatform bridges an immediate-mode GUI library to a windowing
platform and a drawing device.

# Overview

The GUI library produces DrawData every frame and reads input from IO. This
package fills IO from native events and per-frame platform queries, draws
DrawData through a Device, and manages the native windows behind secondary
viewports. The core only depends on the Device and Platform interfaces; the
backend/opengl package provides a GLFW + OpenGL 4.1 implementation of both.

# Quick Start

	platform, _ := opengl.NewPlatform(window)
	device, _ := opengl.NewDevice()
	b, _ := guiplatform.New(platform, device, platform.MainWindow(),
	    guiplatform.WithIO(io), guiplatform.WithViewports(true))
	defer b.Shutdown()

	for !window.ShouldClose() {
	    for _, ev := range platform.PollEvents() {
	        b.ProcessEvent(ev)
	    }
	    b.NewFrame()

	    dd := buildUI() // GUI library logic

	    b.RenderDrawData(dd)
	    b.RenderPlatformWindows(drawFor)
	    window.SwapBuffers()
	}

# Draw Translation

RenderDrawData walks every command of every list. Geometry commands set the
clip rectangle (translated by DisplayPos) and submit one triangle-list draw.
Reset commands re-run SetupRenderState. Callback commands call user code.
Device state observed before the call is restored afterwards.

Devices that only draw non-indexed triangle lists get a dense vertex stream;
the indices are expanded on the CPU into a scratch buffer that is reused
across frames. Devices implementing IndexedDevice can opt into indexed
drawing with WithIndexedDraw, which widens indices to 32 bits instead.

# Viewports

ViewportManager implements PlatformInterface. Windows it creates are owned
and destroyed by it; the application's main window is registered but never
destroyed. Focus is mutually exclusive across registered viewports.

# Logging

Debug logs are off by default. Enable them with SetVerbose(true).
*/
package guiplatform
