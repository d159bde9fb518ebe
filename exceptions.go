// exceptions.go - CPU exception taxonomy shared by the fetch/execute loop and COP0

package main

import "fmt"

// ExceptionKind identifies the architectural exception raised by an
// instruction or by the fetch/decode loop itself. Exceptions are never Go
// errors: instruction handlers return an ExceptionType value (or the zero
// value for success) which the CPU's step loop converts into the exception
// prologue described in cpu.go.
type ExceptionKind int

const (
	// ExcNone means the instruction retired normally.
	ExcNone ExceptionKind = iota
	ExcInterrupt
	ExcAddressErrorLoad
	ExcAddressErrorStore
	ExcBusErrorLoad
	ExcBusErrorStore
	ExcSyscall
	ExcBreak
	ExcReserved
	ExcCoprocessorUnusable
	ExcArithmeticOverflow
)

// exceptionCode maps each kind onto the 5-bit Cause.ExcCode field per the
// MIPS I encoding used by this core (spec section 4.3).
var exceptionCode = map[ExceptionKind]uint32{
	ExcInterrupt:           0,
	ExcAddressErrorLoad:    4,
	ExcAddressErrorStore:   5,
	ExcBusErrorLoad:        7,
	ExcBusErrorStore:       7, // spec defines only BusErrorLoad=7; store shares it, unspecified otherwise
	ExcSyscall:             8,
	ExcBreak:               9,
	ExcReserved:            0xA,
	ExcCoprocessorUnusable: 0xB,
	ExcArithmeticOverflow:  0xC,
}

// ExceptionType is the value instruction handlers return. Addr carries the
// faulting virtual address for the two address-error kinds; it is ignored
// otherwise.
type ExceptionType struct {
	Kind ExceptionKind
	Addr uint32
}

// noException is the canonical "instruction succeeded" result.
var noException = ExceptionType{Kind: ExcNone}

func addressErrorLoad(addr uint32) ExceptionType {
	return ExceptionType{Kind: ExcAddressErrorLoad, Addr: addr}
}

func addressErrorStore(addr uint32) ExceptionType {
	return ExceptionType{Kind: ExcAddressErrorStore, Addr: addr}
}

func (e ExceptionType) String() string {
	switch e.Kind {
	case ExcNone:
		return "none"
	case ExcInterrupt:
		return "interrupt"
	case ExcAddressErrorLoad:
		return fmt.Sprintf("address error (load) at %#08x", e.Addr)
	case ExcAddressErrorStore:
		return fmt.Sprintf("address error (store) at %#08x", e.Addr)
	case ExcBusErrorLoad:
		return "bus error (load)"
	case ExcBusErrorStore:
		return "bus error (store)"
	case ExcSyscall:
		return "syscall"
	case ExcBreak:
		return "break"
	case ExcReserved:
		return "reserved instruction"
	case ExcCoprocessorUnusable:
		return "coprocessor unusable"
	case ExcArithmeticOverflow:
		return "arithmetic overflow"
	default:
		return "unknown exception"
	}
}
