package chip8

import "errors"

var (
	// ErrStackUnderflow is returned when a subroutine returns without a matching call.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrStackOverflow is returned when subroutine calls nest deeper than StackSize.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrAddressOutOfRange is returned when an instruction accesses memory
	// outside of the 4KB address space or a key outside of the keypad.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrProgramTooLarge is returned when a program image does not fit into memory.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrInvalidKey is returned for keypad keys outside of 0x0-0xF.
	ErrInvalidKey = errors.New("invalid key")
)
