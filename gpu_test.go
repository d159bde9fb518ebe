package main

import "testing"

func TestGPUCPUToVRAMBlit2x1(t *testing.T) {
	g := NewGPU()

	g.WriteGP0(0xA0000000) // CPU->VRAM blit, class 5
	g.WriteGP0(0x00000000) // x=0, y=0
	g.WriteGP0(0x00010002) // w=2, h=1
	g.WriteGP0(0xBBBBAAAA) // one data word: two pixels

	want := []byte{0xAA, 0xAA, 0xBB, 0xBB}
	for i, b := range want {
		if got := g.VRAMByte(uint32(i)); got != b {
			t.Fatalf("vram[%d] = %#02x, want %#02x", i, got, b)
		}
	}
	if g.state != gp0WaitingForCommand {
		t.Fatalf("state = %v, want WaitingForCommand after blit completes", g.state)
	}
}

func TestGPURectangleDrawsOnePixel(t *testing.T) {
	g := NewGPU()

	// Command word: class 3, color bits low 24 -> R=0xF8 G=0x00 B=0x00 (>>3 = 0x1F,0,0)
	g.WriteGP0(0x600000F8)
	g.WriteGP0(0x00000005) // x=5, y=0

	lo := g.VRAMByte(5 * 2)
	hi := g.VRAMByte(5*2 + 1)
	pixel := uint16(lo) | uint16(hi)<<8
	if pixel&0x1F != 0x1F {
		t.Fatalf("red channel = %#x, want 0x1F", pixel&0x1F)
	}
	if g.state != gp0WaitingForCommand {
		t.Fatalf("state = %v, want WaitingForCommand after rectangle dispatch", g.state)
	}
}

func TestGPUFramePacingSetsReadyWithoutAutoClear(t *testing.T) {
	g := NewGPU()
	g.Tick(framePacingCycles)
	if !g.FrameReady() {
		t.Fatalf("expected frame_ready after crossing the pacing boundary")
	}
	g.Tick(1)
	if !g.FrameReady() {
		t.Fatalf("frame_ready must not be auto-cleared by Tick")
	}
	g.ClearFrameReady()
	if g.FrameReady() {
		t.Fatalf("ClearFrameReady did not clear the flag")
	}
}

func TestGPUREADIdleConstant(t *testing.T) {
	g := NewGPU()
	if g.GPUREAD() != 0x14000000 {
		t.Fatalf("GPUREAD = %#x, want 0x14000000", g.GPUREAD())
	}
}
