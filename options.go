package guiplatform

import "log/slog"

// Option configures a Backend.
type Option func(*Backend)

// WithIO uses io instead of a fresh IO. Config flags already set on io are
// honoured.
func WithIO(io *IO) Option {
	return func(b *Backend) { b.io = io }
}

// WithViewports enables or disables multi-viewport support.
func WithViewports(enable bool) Option {
	return func(b *Backend) {
		if b.io == nil {
			b.io = NewIO()
		}
		if enable {
			b.io.ConfigFlags |= ConfigViewportsEnable
		} else {
			b.io.ConfigFlags &^= ConfigViewportsEnable
		}
	}
}

// WithNoMouseCursorChange stops the backend from changing the OS cursor.
func WithNoMouseCursorChange(v bool) Option {
	return func(b *Backend) {
		if b.io == nil {
			b.io = NewIO()
		}
		if v {
			b.io.ConfigFlags |= ConfigNoMouseCursorChange
		} else {
			b.io.ConfigFlags &^= ConfigNoMouseCursorChange
		}
	}
}

// WithMaxViewports caps the viewport registry, main viewport included.
// Zero means unbounded.
func WithMaxViewports(n int) Option {
	return func(b *Backend) { b.maxViewports = n }
}

// WithFocusPolicy selects how viewport focus is tracked.
func WithFocusPolicy(p FocusPolicy) Option {
	return func(b *Backend) { b.focusPolicy = p }
}

// WithIndexedDraw uses indexed drawing when the device supports it.
func WithIndexedDraw(v bool) Option {
	return func(b *Backend) { b.indexedDraw = v }
}

// WithClipboard sets the clipboard provider. By default the platform is used
// when it provides a clipboard, SystemClipboard otherwise.
func WithClipboard(cp ClipboardProvider) Option {
	return func(b *Backend) { b.clipProvider = cp }
}

// WithMetrics records backend counters to m.
func WithMetrics(m *Metrics) Option {
	return func(b *Backend) { b.metrics = m }
}

// WithLogger replaces the backend logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithVerbose sets the package log level to debug (true) or info (false)
// when the backend is created.
func WithVerbose(v bool) Option {
	return func(*Backend) { SetVerbose(v) }
}

// WithBackendNames overrides the names reported in IO.
func WithBackendNames(platform, renderer string) Option {
	return func(b *Backend) {
		if platform != "" {
			b.platformName = platform
		}
		if renderer != "" {
			b.rendererName = renderer
		}
	}
}
