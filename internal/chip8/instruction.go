package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// mnemonic returns the instruction name of the opcode as listed in the
// CHIP-8 opcode table, or an empty string for unknown opcodes.
func mnemonic(opcode uint16) string {
	ins := lookupInstruction(opcode)
	if ins == nil {
		return ""
	}
	return ins.Name
}

func lookupInstruction(opcode uint16) *chip8cpu.Instruction {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8cpu.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}
