// presentation_ebiten.go - Windowed presentation backend built on ebiten
//
// Always built alongside presentation_headless.go: the backend is chosen
// at runtime via main.go's -headless flag, not at compile time.

package main

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenPresenter implements PresentationOutput by blitting VRAM into an
// ebiten.Image once per frame and forwarding inpututil-polled key edges.
// The CPU-driving goroutine calls PresentFrame/PollInput/Close; ebiten's
// own goroutine calls Update/Draw/Layout. frameMu guards the handoff.
type EbitenPresenter struct {
	frameMu  sync.Mutex
	rgba     []byte
	image    *ebiten.Image
	hasFrame bool

	inputMu sync.Mutex
	events  []KeyEvent

	closeOnce sync.Once
	closed    chan struct{}
}

// NewEbitenPresenter opens a window sized to the GPU's native resolution
// and starts the ebiten run loop on its own goroutine, mirroring the
// teacher backend's Start()-spawns-RunGame shape.
func NewEbitenPresenter(title string) (*EbitenPresenter, error) {
	p := &EbitenPresenter{
		image:  ebiten.NewImage(vramWidth, vramHeight),
		closed: make(chan struct{}),
	}

	ebiten.SetWindowSize(vramWidth, vramHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		defer close(p.closed)
		_ = ebiten.RunGame(p)
	}()

	return p, nil
}

// PresentFrame stores the latest RGBA pixels for the next Draw call.
func (p *EbitenPresenter) PresentFrame(vram []byte) {
	rgba := decodeVRAMFrame(vram, vramWidth, vramHeight)

	p.frameMu.Lock()
	p.rgba = rgba
	p.hasFrame = true
	p.frameMu.Unlock()
}

// PollInput drains the key-edge queue accumulated since the last call.
func (p *EbitenPresenter) PollInput() []KeyEvent {
	p.inputMu.Lock()
	defer p.inputMu.Unlock()
	events := p.events
	p.events = nil
	return events
}

// Close turns off running while the window is unfocused. It does not stop
// the ebiten run loop and does not wait for it; the loop ends when the
// window is closed.
func (p *EbitenPresenter) Close() error {
	p.closeOnce.Do(func() {
		ebiten.SetRunnableOnUnfocused(false)
	})
	return nil
}

// Update is ebiten's per-tick callback: it records key transitions for
// PollInput to pick up and terminates the loop once the window closes.
func (p *EbitenPresenter) Update() error {
	select {
	case <-p.closed:
		return ebiten.Termination
	default:
	}
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	pressed := inpututil.AppendJustPressedKeys(nil)
	released := inpututil.AppendJustReleasedKeys(nil)
	if len(pressed) == 0 && len(released) == 0 {
		return nil
	}

	p.inputMu.Lock()
	for _, k := range pressed {
		p.events = append(p.events, KeyEvent{Key: k.String(), Pressed: true})
	}
	for _, k := range released {
		p.events = append(p.events, KeyEvent{Key: k.String(), Pressed: false})
	}
	p.inputMu.Unlock()
	return nil
}

// Draw blits the most recently presented frame into the window.
func (p *EbitenPresenter) Draw(screen *ebiten.Image) {
	p.frameMu.Lock()
	if p.hasFrame {
		p.image.WritePixels(p.rgba)
	}
	p.frameMu.Unlock()

	opts := &ebiten.DrawImageOptions{}
	screen.DrawImage(p.image, opts)
}

// Layout keeps the logical screen at VRAM's native resolution; ebiten
// scales it to fit the (resizable) window.
func (p *EbitenPresenter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return vramWidth, vramHeight
}
