package guiplatform

import (
	"sync"

	"github.com/atotto/clipboard"
)

// ClipboardProvider abstracts system clipboard access.
// The GLFW platform implements it with the window's clipboard string.
type ClipboardProvider interface {
	// GetText retrieves text from the system clipboard.
	// Returns empty string if clipboard is empty or contains non-text data.
	GetText() string

	// SetText copies text to the system clipboard.
	SetText(text string)
}

// SystemClipboard is a ClipboardProvider using the OS clipboard tools
// directly. It works without a window, e.g. for headless tools.
type SystemClipboard struct{}

// GetText returns the clipboard text, or "" when it cannot be read.
func (SystemClipboard) GetText() string {
	text, err := clipboard.ReadAll()
	if err != nil {
		backendLogger.Debug("clipboard read failed", "error", err)
		return ""
	}
	return text
}

// SetText replaces the clipboard text.
func (SystemClipboard) SetText(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		backendLogger.Debug("clipboard write failed", "error", err)
	}
}

// clipboardBridge holds the single most recent clipboard fetch. The string
// returned by Text stays valid until the next call to Text.
type clipboardBridge struct {
	mu       sync.Mutex
	provider ClipboardProvider
	last     *string
}

func newClipboardBridge(p ClipboardProvider) *clipboardBridge {
	return &clipboardBridge{provider: p}
}

// Text releases the previous fetch and returns the current clipboard text.
func (c *clipboardBridge) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = nil
	if c.provider == nil {
		return ""
	}
	text := c.provider.GetText()
	c.last = &text
	return text
}

// SetText writes text to the clipboard.
func (c *clipboardBridge) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.provider != nil {
		c.provider.SetText(text)
	}
}

// held reports whether a fetched buffer is currently retained.
func (c *clipboardBridge) held() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last != nil
}

// release drops the retained buffer.
func (c *clipboardBridge) release() {
	c.mu.Lock()
	c.last = nil
	c.mu.Unlock()
}
