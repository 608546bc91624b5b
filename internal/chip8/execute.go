package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Tick executes a single fetch-decode-execute cycle. The program counter is
// advanced past the fetched opcode before the instruction is executed.
// Unknown opcodes are ignored.
func (m *Machine) Tick() error {
	address := m.pc
	opcode, err := m.fetch()
	if err != nil {
		return fmt.Errorf("fetching opcode at $%04X: %w", address, err)
	}

	if m.logger != nil {
		m.trace(address, opcode)
	}

	if err := m.execute(opcode); err != nil {
		m.pc = address
		return fmt.Errorf("executing opcode %04X at $%04X: %w", opcode, address, err)
	}
	return nil
}

// fetch reads the big-endian opcode at the program counter and advances it.
func (m *Machine) fetch() (uint16, error) {
	if err := checkRange(m.pc, opcodeSize); err != nil {
		return 0, err
	}
	opcode := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += opcodeSize
	return opcode, nil
}

func (m *Machine) trace(address, opcode uint16) {
	name := mnemonic(opcode)
	if name == "" {
		m.logger.Debug("Ignoring unknown opcode",
			log.Hex("address", address),
			log.Hex("opcode", opcode))
		return
	}
	m.logger.Debug("Executing instruction",
		log.Hex("address", address),
		log.Hex("opcode", opcode),
		log.String("instruction", name))
}

// execute dispatches the opcode on its leading nibble, instructions that share
// a leading nibble are told apart by their trailing nibble or low byte.
func (m *Machine) execute(opcode uint16) error {
	x := int(opcode&0x0F00) >> 8
	y := int(opcode&0x00F0) >> 4
	n := int(opcode & 0x000F)
	kk := uint8(opcode & 0x00FF)
	nnn := opcode & 0x0FFF

	switch opcode >> 12 {
	case 0x0:
		return m.executeSystem(opcode)

	case 0x1: // JP addr
		m.pc = nnn

	case 0x2: // CALL addr
		if err := m.push(m.pc); err != nil {
			return err
		}
		m.pc = nnn

	case 0x3: // SE Vx, byte
		m.skipIf(m.v[x] == kk)

	case 0x4: // SNE Vx, byte
		m.skipIf(m.v[x] != kk)

	case 0x5: // SE Vx, Vy
		if n == 0 {
			m.skipIf(m.v[x] == m.v[y])
		}

	case 0x6: // LD Vx, byte
		m.v[x] = kk

	case 0x7: // ADD Vx, byte
		m.v[x] += kk

	case 0x8:
		m.executeArithmetic(x, y, n)

	case 0x9: // SNE Vx, Vy
		if n == 0 {
			m.skipIf(m.v[x] != m.v[y])
		}

	case 0xA: // LD I, addr
		m.index = nnn

	case 0xB: // JP V0, addr
		m.pc = uint16(m.v[0]) + nnn

	case 0xC: // RND Vx, byte
		m.v[x] = m.random.Byte() & kk

	case 0xD: // DRW Vx, Vy, nibble
		return m.draw(x, y, n)

	case 0xE:
		return m.executeKey(x, kk)

	case 0xF:
		return m.executeMisc(x, kk)
	}
	return nil
}

func (m *Machine) executeSystem(opcode uint16) error {
	switch opcode {
	case 0x00E0: // CLS
		m.display.Clear()

	case 0x00EE: // RET
		address, err := m.pop()
		if err != nil {
			return err
		}
		m.pc = address
	}
	return nil
}

func (m *Machine) executeArithmetic(x, y, n int) {
	switch n {
	case 0x0: // LD Vx, Vy
		m.v[x] = m.v[y]

	case 0x1: // OR Vx, Vy
		m.v[x] |= m.v[y]

	case 0x2: // AND Vx, Vy
		m.v[x] &= m.v[y]

	case 0x3: // XOR Vx, Vy
		m.v[x] ^= m.v[y]

	case 0x4: // ADD Vx, Vy
		sum := uint16(m.v[x]) + uint16(m.v[y])
		m.v[x] = uint8(sum)
		m.v[flagRegister] = boolToFlag(sum > 0xFF)

	case 0x5: // SUB Vx, Vy
		borrow := m.v[x] < m.v[y]
		m.v[x] -= m.v[y]
		m.v[flagRegister] = boolToFlag(!borrow)

	case 0x6: // SHR Vx
		m.v[flagRegister] = m.v[x] & 0x01
		m.v[x] >>= 1

	case 0x7: // SUBN Vx, Vy
		borrow := m.v[y] < m.v[x]
		m.v[x] = m.v[y] - m.v[x]
		m.v[flagRegister] = boolToFlag(borrow)

	case 0xE: // SHL Vx
		m.v[flagRegister] = m.v[x] >> 7
		m.v[x] <<= 1
	}
}

// draw XORs an n byte sprite read from the index register onto the display.
// Sprites wrap around the display edges, VF is set when a lit pixel was
// turned off.
func (m *Machine) draw(x, y, n int) error {
	if err := checkRange(m.index, n); err != nil {
		return err
	}

	startX := int(m.v[x])
	startY := int(m.v[y])
	collision := false

	for row := range n {
		pixels := m.memory[int(m.index)+row]
		for column := range 8 {
			if pixels&(0x80>>column) == 0 {
				continue
			}
			if m.display.toggle(startX+column, startY+row) {
				collision = true
			}
		}
	}

	m.v[flagRegister] = boolToFlag(collision)
	return nil
}

func (m *Machine) executeKey(x int, kk uint8) error {
	var wantPressed bool
	switch kk {
	case 0x9E: // SKP Vx
		wantPressed = true
	case 0xA1: // SKNP Vx
		wantPressed = false
	default:
		return nil
	}

	key := int(m.v[x])
	if key >= KeyCount {
		return fmt.Errorf("%w: key %d", ErrAddressOutOfRange, key)
	}
	m.skipIf(m.keys[key] == wantPressed)
	return nil
}

func (m *Machine) executeMisc(x int, kk uint8) error {
	switch kk {
	case 0x07: // LD Vx, DT
		m.v[x] = m.delayTimer

	case 0x0A: // LD Vx, K
		m.waitForKey(x)

	case 0x15: // LD DT, Vx
		m.delayTimer = m.v[x]

	case 0x18: // LD ST, Vx
		m.soundTimer = m.v[x]

	case 0x1E: // ADD I, Vx
		m.index += uint16(m.v[x])

	case 0x29: // LD F, Vx
		m.index = FontAddress + uint16(m.v[x])*glyphSize

	case 0x33: // LD B, Vx
		if err := checkRange(m.index, 3); err != nil {
			return err
		}
		value := m.v[x]
		m.memory[m.index] = value / 100
		m.memory[m.index+1] = value / 10 % 10
		m.memory[m.index+2] = value % 10

	case 0x55: // LD [I], Vx
		if err := checkRange(m.index, x+1); err != nil {
			return err
		}
		copy(m.memory[m.index:], m.v[:x+1])

	case 0x65: // LD Vx, [I]
		if err := checkRange(m.index, x+1); err != nil {
			return err
		}
		copy(m.v[:x+1], m.memory[m.index:])
	}
	return nil
}

// waitForKey stores the lowest pressed key in Vx. Without a pressed key the
// program counter is rewound so that the instruction executes again.
func (m *Machine) waitForKey(x int) {
	for key, pressed := range m.keys {
		if pressed {
			m.v[x] = uint8(key)
			return
		}
	}
	m.pc -= opcodeSize
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
