// gpu.go - GP0 command dispatcher, VRAM store, and frame pacing

package main

// VRAM geometry.
const (
	vramWidth  = 1024
	vramHeight = 512
	vramBytes  = vramWidth * vramHeight * 2

	framePacingCycles = 564480
)

// gp0State identifies which phase of the GP0 protocol is active.
type gp0State int

const (
	gp0WaitingForCommand gp0State = iota
	gp0ReceivingParameters
	gp0ReceivingData
)

// gp0ParamCount gives, for each of the eight command classes (top 3 bits
// of the command word), the index in params of the last word collected
// before the command runs. A rectangle keeps its command word at
// params[0] and so collects one word; the other classes start at
// params[0], so a CPU->VRAM blit (1) collects two words. Classes left at
// 0 (misc/polygon/line/environment) are accepted as single-word stubs;
// VRAM-VRAM (4) and VRAM-CPU (6) blits collect their words and are then
// dropped. Only rectangle (3) and CPU->VRAM blit (5) are dispatched.
var gp0ParamCount = [8]int{0, 0, 0, 1, 2, 1, 1, 0}

// vramCopy describes an in-flight CPU->VRAM blit.
type vramCopy struct {
	x, y          uint32
	width, height uint32
	col, row      uint32
}

// GPU models the GP0 command port: a small state machine that consumes
// one 32-bit word per step, a 1 MiB RGB555 VRAM store, and the frame
// pacing counter the presentation collaborator polls.
type GPU struct {
	state      gp0State
	pendingCmd uint32
	paramIdx   int
	params     [16]uint32

	copy vramCopy

	vram [vramBytes]byte

	frameCycles uint64
	frameReady  bool
}

// NewGPU returns a GPU with VRAM zeroed and the state machine idle.
func NewGPU() *GPU {
	return &GPU{}
}

// WriteGP0 feeds one command/parameter/data word into the state machine.
func (g *GPU) WriteGP0(word uint32) {
	switch g.state {
	case gp0WaitingForCommand:
		g.dispatchCommand(word)
	case gp0ReceivingParameters:
		g.params[g.paramIdx] = word
		g.paramIdx++
		limit := gp0ParamCount[g.pendingCmd>>29]
		if g.paramIdx > limit {
			g.runCommand()
		}
	case gp0ReceivingData:
		g.writeDataWord(word)
	}
}

// dispatchCommand begins a new command from the idle state.
func (g *GPU) dispatchCommand(word uint32) {
	class := word >> 29
	g.pendingCmd = word
	limit := gp0ParamCount[class]

	if limit == 0 {
		// Single-word command: nothing to collect, dispatch immediately.
		g.params[0] = word
		g.paramIdx = 1
		g.runCommand()
		return
	}

	// Rectangle commands fold the command word itself into params[0], so
	// parameter collection resumes at idx=1; other multi-word classes
	// start collecting at idx=0.
	if class == 3 {
		g.params[0] = word
		g.paramIdx = 1
	} else {
		g.paramIdx = 0
	}
	g.state = gp0ReceivingParameters
}

// runCommand dispatches a fully-collected command.
func (g *GPU) runCommand() {
	class := g.pendingCmd >> 29
	switch class {
	case 3: // rectangle primitive: paint one pixel
		x := g.params[1] & 0x3FF
		y := (g.params[1] >> 16) & 0x1FF
		r := uint8(g.pendingCmd) >> 3
		gr := uint8(g.pendingCmd>>8) >> 3
		b := uint8(g.pendingCmd>>16) >> 3
		g.writePixel(x, y, packRGB555(r, gr, b))
		g.state = gp0WaitingForCommand
	case 5: // CPU -> VRAM blit: transition to data-receiving
		x := g.params[0] & 0x3FF
		y := (g.params[0] >> 16) & 0x1FF
		w := g.params[1] & 0x3FF
		h := (g.params[1] >> 16) & 0x1FF
		if w == 0 {
			w = vramWidth
		}
		if h == 0 {
			h = vramHeight
		}
		g.copy = vramCopy{x: x, y: y, width: w, height: h}
		g.state = gp0ReceivingData
	default:
		g.state = gp0WaitingForCommand
	}
}

// writeDataWord consumes one data word of an active CPU->VRAM blit: two
// little-endian 16-bit pixels, written row-major with modular wrap.
func (g *GPU) writeDataWord(word uint32) {
	lo := uint16(word)
	hi := uint16(word >> 16)

	g.writeCopyPixel(lo)
	g.writeCopyPixel(hi)

	if g.copy.row >= g.copy.height {
		g.state = gp0WaitingForCommand
	}
}

// writeCopyPixel places one pixel of the active blit and advances the
// col/row cursor, wrapping at the destination rectangle's width/height
// and at the VRAM boundary.
func (g *GPU) writeCopyPixel(pixel uint16) {
	if g.copy.row >= g.copy.height {
		return
	}

	x := (g.copy.x + g.copy.col) % vramWidth
	y := (g.copy.y + g.copy.row) % vramHeight
	g.writePixel(x, y, pixel)

	g.copy.col++
	if g.copy.col >= g.copy.width {
		g.copy.col = 0
		g.copy.row++
	}
}

// writePixel stores a little-endian RGB555 pixel at (x, y).
func (g *GPU) writePixel(x, y uint32, pixel uint16) {
	off := (y*vramWidth + x) * 2
	g.vram[off] = byte(pixel)
	g.vram[off+1] = byte(pixel >> 8)
}

// packRGB555 assembles a pixel from 5-bit channels (no alpha/mask bit).
func packRGB555(r, g_, b uint8) uint16 {
	return uint16(r&0x1F) | uint16(g_&0x1F)<<5 | uint16(b&0x1F)<<10
}

// VRAMByte returns one byte of the VRAM store, for the presentation
// collaborator and for tests.
func (g *GPU) VRAMByte(off uint32) byte { return g.vram[off%vramBytes] }

// VRAM returns the full backing store, for the presentation collaborator
// to copy out once frame_ready is observed.
func (g *GPU) VRAM() []byte { return g.vram[:] }

// GPUREAD returns the value read from 0x1F801810 when no VRAM->CPU blit
// is in flight (never implemented by this core).
func (g *GPU) GPUREAD() uint32 { return 0x14000000 }

// GPUSTAT assembles the status word read from 0x1F801814. Only the two
// "ready" bits required by section 4.5 are meaningful; the rest mirror a
// GPU sitting idle with no pending command.
func (g *GPU) GPUSTAT() uint32 {
	const (
		readyToReceiveCmd = 1 << 26
		readyToSendVRAM   = 1 << 27
		readyToReceiveDMA = 1 << 28
	)
	return readyToReceiveCmd | readyToSendVRAM | readyToReceiveDMA
}

// WriteGP1 accepts a GP1 command. Command 0x00 (reset) returns the GP0
// state machine to WaitingForCommand; every other GP1 command is ignored.
func (g *GPU) WriteGP1(word uint32) {
	if word>>24 == 0x00 {
		g.state = gp0WaitingForCommand
		g.paramIdx = 0
	}
}

// Tick advances the frame-pacing counter by n cycles, setting frameReady
// on crossing the NTSC field boundary. frameReady is never cleared here:
// the presentation collaborator clears it after consuming a frame.
func (g *GPU) Tick(n uint64) {
	g.frameCycles += n
	if g.frameCycles >= framePacingCycles {
		g.frameCycles -= framePacingCycles
		g.frameReady = true
	}
}

// FrameReady reports whether a full field has elapsed since the last clear.
func (g *GPU) FrameReady() bool { return g.frameReady }

// ClearFrameReady is called by the presentation collaborator after it has
// copied the framebuffer.
func (g *GPU) ClearFrameReady() { g.frameReady = false }
