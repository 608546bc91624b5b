package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Hex digit glyphs (16 sprites of 5 bytes)
//	0x050-0x1FF: Reserved interpreter area
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = MemorySize - 1

	// ProgramStart is the memory address where CHIP-8 programs are loaded
	// and begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart
)

// Machine constants.
const (
	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	flagRegister = 0xF
	opcodeSize   = 2
)

// Machine is a CHIP-8 virtual machine.
type Machine struct {
	pc     uint16
	index  uint16
	memory [MemorySize]byte
	v      [RegisterCount]uint8

	stack [StackSize]uint16
	sp    int

	display Display
	keys    [KeyCount]bool

	delayTimer uint8
	soundTimer uint8

	random RandomSource
	logger *log.Logger
}

// Option configures optional collaborators of a Machine.
type Option func(*Machine)

// WithRandom sets the source of the random bytes used by the RND instruction.
func WithRandom(source RandomSource) Option {
	return func(m *Machine) {
		m.random = source
	}
}

// WithLogger enables the instruction trace which is logged at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// New returns a new machine with cleared state and the hex digit glyphs
// installed in the reserved memory area.
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	if m.random == nil {
		m.random = NewRandomSource(0)
	}
	m.Reset()
	return m
}

// Reset restores the state of a newly created machine. The loaded program is
// discarded, configured options are kept.
func (m *Machine) Reset() {
	m.pc = ProgramStart
	m.index = 0
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontAddress:], fontSet[:])
	m.v = [RegisterCount]uint8{}
	m.stack = [StackSize]uint16{}
	m.sp = 0
	m.display.Clear()
	m.keys = [KeyCount]bool{}
	m.delayTimer = 0
	m.soundTimer = 0
}

// Load copies the program image into memory starting at ProgramStart.
func (m *Machine) Load(data []byte) error {
	if len(data) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(data), MaxProgramSize)
	}
	copy(m.memory[ProgramStart:], data)
	return nil
}

// TickTimers decrements the delay and sound timers by one unless they are
// already zero. The sound stops with the tick that brings the sound timer
// to zero.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// Keypress sets the pressed state of the given keypad key.
func (m *Machine) Keypress(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	m.keys[key] = pressed
	return nil
}

// Display returns a snapshot of the display buffer.
func (m *Machine) Display() Display {
	return m.display
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// Register returns the value of the general-purpose register Vx.
// It panics if x is not in the range 0x0-0xF.
func (m *Machine) Register(x int) uint8 {
	return m.v[x]
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// SoundActive returns whether the host should currently output a tone.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}

// StackDepth returns the number of return addresses on the call stack.
func (m *Machine) StackDepth() int {
	return m.sp
}

// Key returns whether the given keypad key is pressed, out of range keys
// are reported as released.
func (m *Machine) Key(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return m.keys[key]
}

// Memory returns the byte stored at the given address.
func (m *Machine) Memory(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("%w: $%04X", ErrAddressOutOfRange, address)
	}
	return m.memory[address], nil
}

func (m *Machine) push(address uint16) error {
	if m.sp == StackSize {
		return ErrStackOverflow
	}
	m.stack[m.sp] = address
	m.sp++
	return nil
}

func (m *Machine) pop() (uint16, error) {
	if m.sp == 0 {
		return 0, ErrStackUnderflow
	}
	m.sp--
	return m.stack[m.sp], nil
}

// checkRange verifies that size bytes starting at address are inside memory.
func checkRange(address uint16, size int) error {
	if int(address)+size > MemorySize {
		return fmt.Errorf("%w: $%04X+%d", ErrAddressOutOfRange, address, size)
	}
	return nil
}
