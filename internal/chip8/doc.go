// Package chip8 implements a CHIP-8 virtual machine core.
//
// # Machine State
//
// A Machine owns the complete state of the emulated system:
//   - 4KB of memory (0x000-MaxAddress), the built-in hex digit glyphs live at 0x000-0x04F
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as carry/borrow/collision flag
//   - the 16-bit index register I and the program counter
//   - a 16 frame call stack
//   - a 64×32 monochrome display buffer
//   - the delay and sound timers and the state of the 16 keypad keys
//
// Programs are loaded at ProgramStart (0x200).
//
// # Execution Model
//
// The core is purely reactive. The host calls Tick to execute exactly one
// instruction and TickTimers to decrement both timers by one, conventionally
// at 60 Hz. Pacing, rendering, audio output and input polling are left to the
// host, which reads the display with Display and reports key transitions with
// Keypress.
//
// Unknown opcodes are ignored. Malformed programs that return without a call,
// nest calls too deep or address memory outside of the 4KB range make Tick
// return an error wrapping ErrStackUnderflow, ErrStackOverflow or
// ErrAddressOutOfRange. The machine state is left untouched in that case with
// the program counter pointing at the faulting instruction.
//
// # Usage Example
//
//	m := chip8.New(chip8.WithRandom(chip8.NewRandomSource(1)))
//	if err := m.Load(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := m.Tick(); err != nil {
//			return fmt.Errorf("executing program: %w", err)
//		}
//	}
//
// A Machine is not safe for concurrent use, hosts that drive input, timers and
// execution from different goroutines have to serialize access.
package chip8
