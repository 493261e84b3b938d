package guiplatform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClipboardBridgeText(t *testing.T) {
	cp := &fakeClipboard{text: "first"}
	cb := newClipboardBridge(cp)
	assert.False(t, cb.held())

	assert.Equal(t, "first", cb.Text())
	assert.True(t, cb.held())

	cp.text = "second"
	assert.Equal(t, "second", cb.Text())
	assert.Equal(t, 2, cp.reads)

	cb.release()
	assert.False(t, cb.held())
}

func TestClipboardBridgeSetText(t *testing.T) {
	cp := &fakeClipboard{}
	cb := newClipboardBridge(cp)

	cb.SetText("hello")
	assert.Equal(t, "hello", cp.text)
	assert.Zero(t, cp.reads)
}

func TestClipboardBridgeWithoutProvider(t *testing.T) {
	cb := newClipboardBridge(nil)

	assert.NotPanics(t, func() { cb.SetText("x") })
	assert.Empty(t, cb.Text())
	assert.False(t, cb.held())
}

func TestClipboardBridgeEmptyClipboard(t *testing.T) {
	cb := newClipboardBridge(&fakeClipboard{})
	assert.Empty(t, cb.Text())
	assert.True(t, cb.held(), "an empty fetch is still retained")
}
