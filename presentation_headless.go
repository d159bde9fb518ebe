// presentation_headless.go - No-op presentation backend for headless runs
//
// Always built alongside presentation_ebiten.go: the backend is chosen at
// runtime via main.go's -headless flag, not at compile time, so both
// constructors must link into every build.

package main

import "sync/atomic"

// HeadlessPresenter counts presented frames but never opens a window.
// Useful for running the core under test harnesses or CI with no
// display available.
type HeadlessPresenter struct {
	frameCount uint64
}

// NewHeadlessPresenter returns a presenter that discards every frame.
func NewHeadlessPresenter() *HeadlessPresenter {
	return &HeadlessPresenter{}
}

func (h *HeadlessPresenter) PresentFrame(vram []byte) {
	atomic.AddUint64(&h.frameCount, 1)
}

func (h *HeadlessPresenter) PollInput() []KeyEvent { return nil }

func (h *HeadlessPresenter) Close() error { return nil }

// FrameCount reports how many frames have been presented, for tests and
// diagnostics.
func (h *HeadlessPresenter) FrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}
