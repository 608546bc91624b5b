package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTick_FetchAdvancesProgramCounter(t *testing.T) {
	opcodes := []uint16{
		0x00E0, // CLS
		0x6001, // LD V0, $01
		0x8014, // ADD V0, V1
		0xA300, // LD I, $300
		0xF007, // LD V0, DT
		0x5120, // SE V1, V2 (no skip, V1 != V2 after setup below)
		0xFFFF, // unknown
		0x0123, // SYS, ignored
	}
	m := newTestMachine(t, opcodes...)
	m.v[1] = 1

	for i := range opcodes {
		assert.NoError(t, m.Tick())
		assert.Equal(t, uint16(ProgramStart+(i+1)*opcodeSize), m.PC())
	}
}

func TestTick_UnknownOpcodesAreIgnored(t *testing.T) {
	unknown := []uint16{0x0000, 0x5121, 0x8128, 0x912F, 0xE1FF, 0xF1FF}

	for _, opcode := range unknown {
		m := newTestMachine(t, opcode)
		before := *m

		assert.NoError(t, m.Tick())
		assert.Equal(t, uint16(ProgramStart+opcodeSize), m.PC())
		assert.Equal(t, before.v, m.v)
		assert.Equal(t, before.memory, m.memory)
		assert.Equal(t, before.index, m.index)
		assert.Equal(t, before.display, m.display)
	}
}

func TestTick_FetchOutOfRange(t *testing.T) {
	m := newTestMachine(t, 0x1FFF) // JP $FFF
	run(t, m, 1)

	err := m.Tick()
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	assert.Equal(t, uint16(0xFFF), m.PC())
}

func TestJumpAndCall(t *testing.T) {
	t.Run("jump", func(t *testing.T) {
		m := newTestMachine(t, 0x1345)
		run(t, m, 1)
		assert.Equal(t, uint16(0x345), m.PC())
	})

	t.Run("jump with offset", func(t *testing.T) {
		m := newTestMachine(t, 0xB300)
		m.v[0] = 0x10
		run(t, m, 1)
		assert.Equal(t, uint16(0x310), m.PC())
	})

	t.Run("call and return", func(t *testing.T) {
		m := newTestMachine(t,
			0x2206, // $200: CALL $206
			0x6001, // $202: LD V0, $01
			0x1202, // $204: JP $202
			0x6102, // $206: LD V1, $02
			0x00EE, // $208: RET
		)
		run(t, m, 1)
		assert.Equal(t, uint16(0x206), m.PC())
		assert.Equal(t, 1, m.StackDepth())

		run(t, m, 2)
		assert.Equal(t, uint16(0x202), m.PC())
		assert.Equal(t, 0, m.StackDepth())
		assert.Equal(t, uint8(2), m.Register(1))
	})

	t.Run("return with empty stack", func(t *testing.T) {
		m := newTestMachine(t, 0x00EE)

		err := m.Tick()
		assert.True(t, errors.Is(err, ErrStackUnderflow))
		assert.Equal(t, uint16(ProgramStart), m.PC())
		assert.Equal(t, 0, m.StackDepth())
	})

	t.Run("call nesting too deep", func(t *testing.T) {
		m := newTestMachine(t, 0x2200) // CALL $200 recursively
		run(t, m, StackSize)
		assert.Equal(t, StackSize, m.StackDepth())

		err := m.Tick()
		assert.True(t, errors.Is(err, ErrStackOverflow))
		assert.Equal(t, uint16(ProgramStart), m.PC())
		assert.Equal(t, StackSize, m.StackDepth())
	})
}

func TestSkipInstructions(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		skip   bool
	}{
		{"SE byte equal", 0x3142, 0x42, 0, true},
		{"SE byte not equal", 0x3142, 0x41, 0, false},
		{"SNE byte equal", 0x4142, 0x42, 0, false},
		{"SNE byte not equal", 0x4142, 0x41, 0, true},
		{"SE registers equal", 0x5120, 7, 7, true},
		{"SE registers not equal", 0x5120, 7, 8, false},
		{"SNE registers equal", 0x9120, 7, 7, false},
		{"SNE registers not equal", 0x9120, 7, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.opcode)
			m.v[1] = tt.vx
			m.v[2] = tt.vy
			run(t, m, 1)

			want := uint16(ProgramStart + opcodeSize)
			if tt.skip {
				want += opcodeSize
			}
			assert.Equal(t, want, m.PC())
		})
	}
}

func TestLoadAndAddImmediate(t *testing.T) {
	m := newTestMachine(t,
		0x63F0, // LD V3, $F0
		0x7320, // ADD V3, $20
	)
	m.v[flagRegister] = 0x55
	run(t, m, 2)

	assert.Equal(t, uint8(0x10), m.Register(3))
	assert.Equal(t, uint8(0x55), m.Register(flagRegister))
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		result uint8
		flag   uint8
	}{
		{"LD", 0x8120, 0x11, 0x22, 0x22, 0xAA},
		{"OR", 0x8121, 0xF0, 0x0F, 0xFF, 0xAA},
		{"AND", 0x8122, 0xF3, 0x3F, 0x33, 0xAA},
		{"XOR", 0x8123, 0xFF, 0x0F, 0xF0, 0xAA},
		{"ADD without carry", 0x8124, 0x10, 0x20, 0x30, 0},
		{"ADD with carry", 0x8124, 0xF0, 0x20, 0x10, 1},
		{"ADD exactly 255", 0x8124, 0xF0, 0x0F, 0xFF, 0},
		{"SUB without borrow", 0x8125, 0x30, 0x10, 0x20, 1},
		{"SUB equal", 0x8125, 0x30, 0x30, 0x00, 1},
		{"SUB with borrow", 0x8125, 0x10, 0x30, 0xE0, 0},
		{"SHR odd", 0x8126, 0x05, 0, 0x02, 1},
		{"SHR even", 0x8126, 0x04, 0, 0x02, 0},
		{"SUBN without borrow", 0x8127, 0x10, 0x30, 0x20, 0},
		{"SUBN with borrow", 0x8127, 0x30, 0x10, 0xE0, 1},
		{"SHL high bit", 0x812E, 0x81, 0, 0x02, 1},
		{"SHL no high bit", 0x812E, 0x41, 0, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.opcode)
			m.v[1] = tt.vx
			m.v[2] = tt.vy
			m.v[flagRegister] = 0xAA
			run(t, m, 1)

			assert.Equal(t, tt.result, m.Register(1))
			assert.Equal(t, tt.flag, m.Register(flagRegister))
		})
	}
}

func TestArithmetic_AllOperands(t *testing.T) {
	add := New()
	sub := New()

	for a := range 256 {
		for b := range 256 {
			add.Reset()
			assert.NoError(t, add.Load([]byte{0x81, 0x24}))
			add.v[1], add.v[2] = uint8(a), uint8(b)
			assert.NoError(t, add.Tick())
			assert.Equal(t, uint8((a+b)%256), add.v[1])
			assert.Equal(t, boolToFlag(a+b > 255), add.v[flagRegister])

			sub.Reset()
			assert.NoError(t, sub.Load([]byte{0x81, 0x25}))
			sub.v[1], sub.v[2] = uint8(a), uint8(b)
			assert.NoError(t, sub.Tick())
			assert.Equal(t, uint8((a-b+256)%256), sub.v[1])
			assert.Equal(t, boolToFlag(a >= b), sub.v[flagRegister])
		}
	}
}

func TestArithmetic_FlagRegisterAsOperand(t *testing.T) {
	m := newTestMachine(t, 0x8F14) // ADD VF, V1
	m.v[flagRegister] = 0xFF
	m.v[1] = 0x02
	run(t, m, 1)

	assert.Equal(t, uint8(1), m.Register(flagRegister))
}

func TestIndexInstructions(t *testing.T) {
	t.Run("load index", func(t *testing.T) {
		m := newTestMachine(t, 0xA2F0)
		run(t, m, 1)
		assert.Equal(t, uint16(0x2F0), m.Index())
	})

	t.Run("add to index", func(t *testing.T) {
		m := newTestMachine(t, 0xAFFF, 0xF11E)
		m.v[1] = 0x10
		run(t, m, 2)
		assert.Equal(t, uint16(0x100F), m.Index())
	})

	t.Run("add to index wraps", func(t *testing.T) {
		m := newTestMachine(t, 0xF11E)
		m.index = 0xFFFF
		m.v[1] = 0x02
		run(t, m, 1)
		assert.Equal(t, uint16(0x0001), m.Index())
	})

	t.Run("glyph address", func(t *testing.T) {
		m := newTestMachine(t, 0xF129)
		m.v[1] = 0xA
		run(t, m, 1)
		assert.Equal(t, uint16(FontAddress+0xA*glyphSize), m.Index())
	})
}

func TestRandom(t *testing.T) {
	m := New(WithRandom(fixedRandom(0xA5)))
	assert.NoError(t, m.Load([]byte{0xC3, 0x0F}))
	run(t, m, 1)
	assert.Equal(t, uint8(0x05), m.Register(3))
}

func TestDraw(t *testing.T) {
	t.Run("draw glyph", func(t *testing.T) {
		m := newTestMachine(t,
			0xF029, // LD F, V0
			0xD125, // DRW V1, V2, 5
		)
		m.v[0] = 0x0
		m.v[1] = 10
		m.v[2] = 4
		run(t, m, 2)

		d := m.Display()
		// glyph 0 is F0 90 90 90 F0
		for column := range 4 {
			assert.True(t, d.Pixel(10+column, 4))
			assert.True(t, d.Pixel(10+column, 8))
		}
		assert.True(t, d.Pixel(10, 5))
		assert.False(t, d.Pixel(11, 5))
		assert.True(t, d.Pixel(13, 5))
		assert.Equal(t, 14, d.Lit())
		assert.Equal(t, uint8(0), m.Register(flagRegister))
	})

	t.Run("drawing twice restores the display", func(t *testing.T) {
		m := newTestMachine(t,
			0xA20A, // LD I, $20A
			0xD013, // DRW V0, V1, 3
			0xD013, // DRW V0, V1, 3
			0x0000,
			0x0000,
			0xFF81, 0x3C00, // sprite data at $20A
		)
		m.v[0] = 5
		m.v[1] = 5
		run(t, m, 2)

		first := m.Display()
		assert.Equal(t, 8+2+4, first.Lit())
		assert.Equal(t, uint8(0), m.Register(flagRegister))

		run(t, m, 1)
		second := m.Display()
		assert.Equal(t, 0, second.Lit())
		assert.Equal(t, uint8(1), m.Register(flagRegister))
	})

	t.Run("sprites wrap around the edges", func(t *testing.T) {
		m := newTestMachine(t,
			0xA206, // LD I, $206
			0xD011, // DRW V0, V1, 1
			0x1204, // JP $204
			0xC000, // sprite data at $206
		)
		m.v[0] = 63
		m.v[1] = 31
		run(t, m, 2)

		d := m.Display()
		assert.True(t, d.Pixel(63, 31))
		assert.True(t, d.Pixel(0, 31))
		assert.Equal(t, 2, d.Lit())
	})

	t.Run("coordinates beyond the display wrap", func(t *testing.T) {
		m := newTestMachine(t, 0xD011)
		m.index = FontAddress + 1*glyphSize // glyph 1, first row 0x20
		m.v[0] = 64 + 2
		m.v[1] = 32 + 3
		run(t, m, 1)

		d := m.Display()
		assert.True(t, d.Pixel(4, 3))
		assert.Equal(t, 1, d.Lit())
	})

	t.Run("sprite data out of range", func(t *testing.T) {
		m := newTestMachine(t, 0xD015)
		m.index = MaxAddress - 2
		m.v[flagRegister] = 0x33

		err := m.Tick()
		assert.True(t, errors.Is(err, ErrAddressOutOfRange))
		assert.Equal(t, uint16(ProgramStart), m.PC())
		assert.Equal(t, uint8(0x33), m.Register(flagRegister))
	})

	t.Run("clear screen", func(t *testing.T) {
		m := newTestMachine(t, 0xD015, 0x00E0)
		run(t, m, 1)
		first := m.Display()
		assert.True(t, first.Lit() > 0)

		run(t, m, 1)
		d := m.Display()
		for i := range d {
			assert.False(t, d[i])
		}
	})
}

func TestKeyInstructions(t *testing.T) {
	t.Run("skip if pressed", func(t *testing.T) {
		m := newTestMachine(t, 0xE19E, 0x0000, 0xE19E)
		m.v[1] = 0xB
		run(t, m, 1)
		assert.Equal(t, uint16(0x202), m.PC())

		assert.NoError(t, m.Keypress(0xB, true))
		m.pc = ProgramStart
		run(t, m, 1)
		assert.Equal(t, uint16(0x204), m.PC())
	})

	t.Run("skip if not pressed", func(t *testing.T) {
		m := newTestMachine(t, 0xE1A1)
		m.v[1] = 0x3
		run(t, m, 1)
		assert.Equal(t, uint16(0x204), m.PC())

		assert.NoError(t, m.Keypress(0x3, true))
		m.pc = ProgramStart
		run(t, m, 1)
		assert.Equal(t, uint16(0x202), m.PC())
	})

	t.Run("key register out of range", func(t *testing.T) {
		m := newTestMachine(t, 0xE19E)
		m.v[1] = 0x10
		err := m.Tick()
		assert.True(t, errors.Is(err, ErrAddressOutOfRange))
		assert.Equal(t, uint16(ProgramStart), m.PC())
	})

	t.Run("wait for key", func(t *testing.T) {
		m := newTestMachine(t, 0xF50A)

		run(t, m, 3)
		assert.Equal(t, uint16(ProgramStart), m.PC())

		assert.NoError(t, m.Keypress(0xC, true))
		assert.NoError(t, m.Keypress(0x7, true))
		run(t, m, 1)
		assert.Equal(t, uint16(ProgramStart+opcodeSize), m.PC())
		assert.Equal(t, uint8(0x7), m.Register(5))
	})
}

func TestTimerInstructions(t *testing.T) {
	m := newTestMachine(t,
		0xF115, // LD DT, V1
		0xF218, // LD ST, V2
		0xF307, // LD V3, DT
	)
	m.v[1] = 30
	m.v[2] = 5
	run(t, m, 2)
	m.TickTimers()
	run(t, m, 1)

	assert.Equal(t, uint8(29), m.Register(3))
	assert.Equal(t, uint8(4), m.SoundTimer())
}

func TestMemoryInstructions(t *testing.T) {
	t.Run("binary coded decimal", func(t *testing.T) {
		tests := []struct {
			value  uint8
			digits [3]byte
		}{
			{234, [3]byte{2, 3, 4}},
			{7, [3]byte{0, 0, 7}},
			{100, [3]byte{1, 0, 0}},
			{255, [3]byte{2, 5, 5}},
		}
		for _, tt := range tests {
			m := newTestMachine(t, 0xA300, 0xF633)
			m.v[6] = tt.value
			run(t, m, 2)

			for i, digit := range tt.digits {
				b, err := m.Memory(uint16(0x300 + i))
				assert.NoError(t, err)
				assert.Equal(t, digit, b)
			}
		}
	})

	t.Run("binary coded decimal out of range", func(t *testing.T) {
		m := newTestMachine(t, 0xF633)
		m.index = MaxAddress - 1
		err := m.Tick()
		assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	})

	t.Run("store and load registers", func(t *testing.T) {
		m := newTestMachine(t,
			0xA400, // LD I, $400
			0xF355, // LD [I], V3
			0xF365, // LD V3, [I]
		)
		for x := range RegisterCount {
			m.v[x] = uint8(x + 1)
		}
		run(t, m, 2)

		for x := range 4 {
			b, err := m.Memory(uint16(0x400 + x))
			assert.NoError(t, err)
			assert.Equal(t, uint8(x+1), b)
		}
		b, err := m.Memory(0x404)
		assert.NoError(t, err)
		assert.Equal(t, byte(0), b)

		m.v = [RegisterCount]uint8{}
		m.v[4] = 0x99
		run(t, m, 1)
		for x := range 4 {
			assert.Equal(t, uint8(x+1), m.Register(x))
		}
		assert.Equal(t, uint8(0x99), m.Register(4))
		assert.Equal(t, uint16(0x400), m.Index())
	})

	t.Run("store registers out of range", func(t *testing.T) {
		m := newTestMachine(t, 0xFF55)
		m.index = MemorySize - 8
		err := m.Tick()
		assert.True(t, errors.Is(err, ErrAddressOutOfRange))

		b, err := m.Memory(MaxAddress)
		assert.NoError(t, err)
		assert.Equal(t, byte(0), b)
	})
}
