// loader.go - BIOS ROM and PS-EXE sideload parsing

package main

import (
	"encoding/binary"
	"fmt"
)

// psExeMagic is the fixed 8-byte signature at the start of a PS-EXE header.
const psExeMagic = "PS-X EXE"

// psExeHeaderSize is the total header size; everything past the fields
// this loader reads is padding reserved by the original format.
const psExeHeaderSize = 0x800

// PSExeHeader holds the fields of a parsed PS-EXE header relevant to
// sideloading an executable into a running machine.
type PSExeHeader struct {
	InitialPC   uint32
	InitialGP   uint32
	LoadAddress uint32
	FileSize    uint32
	InitialSP   uint32
	SPOffset    uint32
}

// ParsePSExeHeader validates the magic and decodes the fields this core
// needs to sideload an executable, per section 6.
func ParsePSExeHeader(data []byte) (PSExeHeader, error) {
	if len(data) < psExeHeaderSize {
		return PSExeHeader{}, fmt.Errorf("loader: PS-EXE header truncated: got %d bytes, want at least %d", len(data), psExeHeaderSize)
	}
	if string(data[0:8]) != psExeMagic {
		return PSExeHeader{}, fmt.Errorf("loader: bad PS-EXE magic %q", data[0:8])
	}

	h := PSExeHeader{
		InitialPC:   binary.LittleEndian.Uint32(data[0x10:0x14]),
		InitialGP:   binary.LittleEndian.Uint32(data[0x14:0x18]),
		LoadAddress: binary.LittleEndian.Uint32(data[0x18:0x1C]),
		FileSize:    binary.LittleEndian.Uint32(data[0x1C:0x20]),
		InitialSP:   binary.LittleEndian.Uint32(data[0x30:0x34]),
		SPOffset:    binary.LittleEndian.Uint32(data[0x34:0x38]),
	}
	return h, nil
}

// LoadPSExe copies a PS-EXE's text segment into the machine's RAM and
// points PC/GP/SP at the values its header specifies, per section 6.
// R29 (SP) and R28 (GP) are set directly since no instruction has run
// yet to do so.
func LoadPSExe(cpu *CPU, data []byte) error {
	h, err := ParsePSExeHeader(data)
	if err != nil {
		return err
	}
	text := data[psExeHeaderSize:]
	if uint32(len(text)) < h.FileSize {
		return fmt.Errorf("loader: PS-EXE text segment truncated: got %d bytes, want %d", len(text), h.FileSize)
	}
	text = text[:h.FileSize]

	for i, b := range text {
		if exc := cpu.Bus.WriteByte(h.LoadAddress+uint32(i), b); exc.Kind != ExcNone {
			return fmt.Errorf("loader: writing text segment at %#08x: %v", h.LoadAddress+uint32(i), exc)
		}
	}

	cpu.Regs.SetPC(h.InitialPC)
	cpu.Regs.Write(28, h.InitialGP)
	sp := h.InitialSP
	if h.SPOffset != 0 {
		sp += h.SPOffset
	}
	if sp != 0 {
		cpu.Regs.Write(29, sp)
	}
	return nil
}

// LoadBIOS fills the bus's BIOS ROM region from a raw image. A short
// image (anything less than the full 512 KiB used portion) is accepted;
// the remainder of the region stays zeroed.
func LoadBIOS(bus *Bus, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("loader: empty BIOS image")
	}
	if len(data) > biosROMSize {
		return fmt.Errorf("loader: BIOS image too large: got %d bytes, max %d", len(data), biosROMSize)
	}
	bus.LoadBIOS(data)
	return nil
}
