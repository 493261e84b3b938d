package guiplatform

import "github.com/prometheus/client_golang/prometheus"

// Metrics exports backend counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	frames          prometheus.Counter
	drawCalls       prometheus.Counter
	vertices        prometheus.Counter
	callbacks       prometheus.Counter
	viewports       prometheus.Gauge
	createFailures  *prometheus.CounterVec
	deviceObjErrors prometheus.Counter
}

// NewMetrics creates the backend collectors and registers them with reg.
// A nil reg leaves them unregistered, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guiplatform",
			Name:      "frames_total",
			Help:      "Frames started with NewFrame.",
		}),
		drawCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guiplatform",
			Name:      "draw_calls_total",
			Help:      "Triangle-list draws submitted to the device.",
		}),
		vertices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guiplatform",
			Name:      "device_vertices_total",
			Help:      "Device vertices produced by the draw translator.",
		}),
		callbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guiplatform",
			Name:      "draw_callbacks_total",
			Help:      "User draw callbacks invoked.",
		}),
		viewports: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "guiplatform",
			Name:      "viewports",
			Help:      "Viewports currently registered, main included.",
		}),
		createFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guiplatform",
			Name:      "viewport_create_failures_total",
			Help:      "Viewport windows that could not be created.",
		}, []string{"reason"}),
		deviceObjErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guiplatform",
			Name:      "device_object_errors_total",
			Help:      "Failed attempts to create device objects.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.frames, m.drawCalls, m.vertices, m.callbacks,
			m.viewports, m.createFailures, m.deviceObjErrors)
	}
	return m
}

func (m *Metrics) frameStarted() {
	if m != nil {
		m.frames.Inc()
	}
}

func (m *Metrics) observeRender(s *RenderStats) {
	if m == nil {
		return
	}
	m.drawCalls.Add(float64(s.DrawCalls))
	m.vertices.Add(float64(s.Vertices))
	m.callbacks.Add(float64(s.Callbacks))
}

func (m *Metrics) setViewports(n int) {
	if m != nil {
		m.viewports.Set(float64(n))
	}
}

func (m *Metrics) viewportCreateFailed(reason string) {
	if m != nil {
		m.createFailures.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) deviceObjectsFailed() {
	if m != nil {
		m.deviceObjErrors.Inc()
	}
}
