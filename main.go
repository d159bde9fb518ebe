// main.go - Command-line entry point wiring bus, CPU, loader and presentation

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	biosPath := flag.String("bios", "", "path to a BIOS ROM image (required)")
	exePath := flag.String("exe", "", "path to a PS-EXE sideload to run instead of booting the BIOS")
	headless := flag.Bool("headless", false, "run without opening a window, for scripted or CI use")
	debug := flag.Bool("debug", false, "drop into the debug console instead of free-running")
	flag.Parse()

	if *biosPath == "" {
		fmt.Fprintln(os.Stderr, "usage: psxcore -bios <path> [-exe <path>] [-headless] [-debug]")
		os.Exit(1)
	}

	bus := NewBus()

	biosImage, err := os.ReadFile(*biosPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading BIOS image: %v\n", err)
		os.Exit(1)
	}
	if err := LoadBIOS(bus, biosImage); err != nil {
		fmt.Fprintf(os.Stderr, "loading BIOS image: %v\n", err)
		os.Exit(1)
	}

	cpu := NewCPU(bus)

	if *exePath != "" {
		exeImage, err := os.ReadFile(*exePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading PS-EXE: %v\n", err)
			os.Exit(1)
		}
		if err := LoadPSExe(cpu, exeImage); err != nil {
			fmt.Fprintf(os.Stderr, "loading PS-EXE: %v\n", err)
			os.Exit(1)
		}
	}

	if *debug {
		NewDebugConsole(cpu).Run()
		return
	}

	var presenter PresentationOutput
	if *headless {
		presenter = NewHeadlessPresenter()
	} else {
		p, err := NewEbitenPresenter("psxcore")
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening presentation window: %v\n", err)
			os.Exit(1)
		}
		presenter = p
	}
	defer presenter.Close()

	runMachine(cpu, presenter)
}

// runMachine drives the CPU forever; cpu.Step already charges the bus two
// cycles per instruction (section 5), so the bus and CPU stay in lockstep
// without any extra ticking here. Completed frames are handed to
// presenter as they become ready. It loops forever and does not return,
// not even when the presenter's window is closed.
func runMachine(cpu *CPU, presenter PresentationOutput) {
	for {
		cpu.Step()

		if cpu.Bus.GPU().FrameReady() {
			frame := make([]byte, len(cpu.Bus.GPU().VRAM()))
			copy(frame, cpu.Bus.GPU().VRAM())
			presenter.PresentFrame(frame)
			cpu.Bus.GPU().ClearFrameReady()
		}

		presenter.PollInput()
	}
}
