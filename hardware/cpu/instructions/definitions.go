// This file is part of Cyclecore.
//
// Cyclecore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cyclecore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Cyclecore.  If not, see <https://www.gnu.org/licenses/>.

package instructions

import (
	"fmt"

	"github.com/jetsetilly/cyclecore/hardware/cpu/registers"
	"github.com/jetsetilly/cyclecore/hardware/memory/cpubus"
)

// Definition defines each instruction in the instruction set.
//
// The cycle figures are for the complete instruction including the bus
// transfers it performs. Bus transfers include the instruction words that are
// fetched to refill the prefetch queue. The Cycles field must always equal
// Internal plus Bus multiplied by cpubus.BusCycles. For branch instructions the
// Taken fields give the figures for when the branch is taken and the plain
// fields the figures for when it is not.
//
// Instructions that always cause an exception (ILLEGAL, TRAP, Line-A, Line-F)
// have zero cycles. The cost of those instructions is the cost of the
// exception.
type Definition struct {
	Pattern uint16
	Mask    uint16

	Mnemonic string
	Operator Operator
	Size     registers.Size
	Cond     Condition

	// number of 16bit words in the instruction, including the opcode
	Words int

	Bus      int
	Internal int
	Cycles   int

	TakenBus      int
	TakenInternal int
	TakenCycles   int

	Privileged bool
	Effect     Category
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undefined instruction"
	}
	return fmt.Sprintf("%04x/%04x %s +%dwords (%d cycles) [effect=%s privileged=%v]",
		defn.Pattern, defn.Mask, defn.Mnemonic, defn.Words, defn.Cycles, defn.Effect, defn.Privileged)
}

// IsBranch returns true if instruction is a branch instruction.
func (defn Definition) IsBranch() bool {
	return defn.Operator == Bcc
}

// Match returns true if the opcode matches the definition's bit pattern.
func (defn Definition) Match(opcode uint16) bool {
	return opcode&defn.Mask == defn.Pattern
}

// consistent checks the cycle figures of the definition agree with each other.
func (defn Definition) consistent() error {
	if defn.Cycles != defn.Internal+defn.Bus*cpubus.BusCycles {
		return fmt.Errorf("%s: %d cycles but %d internal and %d bus transfers", defn.Mnemonic, defn.Cycles, defn.Internal, defn.Bus)
	}
	if defn.IsBranch() {
		if defn.TakenCycles != defn.TakenInternal+defn.TakenBus*cpubus.BusCycles {
			return fmt.Errorf("%s: %d cycles when taken but %d internal and %d bus transfers", defn.Mnemonic, defn.TakenCycles, defn.TakenInternal, defn.TakenBus)
		}
	} else if defn.TakenCycles != 0 || defn.TakenBus != 0 || defn.TakenInternal != 0 {
		return fmt.Errorf("%s: taken cycles for an instruction that is not a branch", defn.Mnemonic)
	}
	if defn.Words < 1 || defn.Words > 3 {
		return fmt.Errorf("%s: unsupported instruction length of %d words", defn.Mnemonic, defn.Words)
	}
	return nil
}

// the filler definitions claim every opcode not claimed by the definitions
// list
var (
	illegalDefn = Definition{Mnemonic: "ILLEGAL", Operator: Illegal, Words: 1, Effect: Interrupt}
	lineADefn   = Definition{Pattern: 0xa000, Mask: 0xf000, Mnemonic: "LINEA", Operator: LineA, Words: 1, Effect: Interrupt}
	lineFDefn   = Definition{Pattern: 0xf000, Mask: 0xf000, Mnemonic: "LINEF", Operator: LineF, Words: 1, Effect: Interrupt}
)

// definitions returns the ordered list of instruction definitions. Where
// patterns overlap the earlier definition takes precedence.
func definitions() []Definition {
	defs := []Definition{
		{Pattern: 0x4e71, Mask: 0xffff, Mnemonic: "NOP", Operator: NOP, Words: 1, Bus: 1, Cycles: 4, Effect: Read},
		{Pattern: 0x4afc, Mask: 0xffff, Mnemonic: "ILLEGAL", Operator: Illegal, Words: 1, Effect: Interrupt},

		{Pattern: 0x7000, Mask: 0xf100, Mnemonic: "MOVEQ", Operator: MOVEQ, Size: registers.Long, Words: 1, Bus: 1, Cycles: 4, Effect: Read},
		{Pattern: 0x203c, Mask: 0xf1ff, Mnemonic: "MOVE.L #imm,Dn", Operator: MOVEImm, Size: registers.Long, Words: 3, Bus: 3, Cycles: 12, Effect: Read},
		{Pattern: 0x2000, Mask: 0xf1f8, Mnemonic: "MOVE.L Dy,Dx", Operator: MOVE, Size: registers.Long, Words: 1, Bus: 1, Cycles: 4, Effect: Read},
		{Pattern: 0x2040, Mask: 0xf1f8, Mnemonic: "MOVEA.L Dy,Ax", Operator: MOVEA, Size: registers.Long, Words: 1, Bus: 1, Cycles: 4, Effect: Read},

		{Pattern: 0x1080, Mask: 0xf1f8, Mnemonic: "MOVE.B Dy,(Ax)", Operator: MOVEToMem, Size: registers.Byte, Words: 1, Bus: 2, Cycles: 8, Effect: Write},
		{Pattern: 0x3080, Mask: 0xf1f8, Mnemonic: "MOVE.W Dy,(Ax)", Operator: MOVEToMem, Size: registers.Word, Words: 1, Bus: 2, Cycles: 8, Effect: Write},
		{Pattern: 0x2080, Mask: 0xf1f8, Mnemonic: "MOVE.L Dy,(Ax)", Operator: MOVEToMem, Size: registers.Long, Words: 1, Bus: 3, Cycles: 12, Effect: Write},
		{Pattern: 0x1010, Mask: 0xf1f8, Mnemonic: "MOVE.B (Ay),Dx", Operator: MOVEFromMem, Size: registers.Byte, Words: 1, Bus: 2, Cycles: 8, Effect: Read},
		{Pattern: 0x3010, Mask: 0xf1f8, Mnemonic: "MOVE.W (Ay),Dx", Operator: MOVEFromMem, Size: registers.Word, Words: 1, Bus: 2, Cycles: 8, Effect: Read},
		{Pattern: 0x2010, Mask: 0xf1f8, Mnemonic: "MOVE.L (Ay),Dx", Operator: MOVEFromMem, Size: registers.Long, Words: 1, Bus: 3, Cycles: 12, Effect: Read},

		{Pattern: 0x41f9, Mask: 0xf1ff, Mnemonic: "LEA abs.L,Ax", Operator: LEA, Size: registers.Long, Words: 3, Bus: 3, Cycles: 12, Effect: Read},

		{Pattern: 0xd080, Mask: 0xf1f8, Mnemonic: "ADD.L Dy,Dx", Operator: ADD, Size: registers.Long, Words: 1, Bus: 1, Internal: 4, Cycles: 8, Effect: Modify},
		{Pattern: 0x9080, Mask: 0xf1f8, Mnemonic: "SUB.L Dy,Dx", Operator: SUB, Size: registers.Long, Words: 1, Bus: 1, Internal: 4, Cycles: 8, Effect: Modify},
		{Pattern: 0xb080, Mask: 0xf1f8, Mnemonic: "CMP.L Dy,Dx", Operator: CMP, Size: registers.Long, Words: 1, Bus: 1, Internal: 2, Cycles: 6, Effect: Read},
		{Pattern: 0xc080, Mask: 0xf1f8, Mnemonic: "AND.L Dy,Dx", Operator: AND, Size: registers.Long, Words: 1, Bus: 1, Internal: 4, Cycles: 8, Effect: Modify},
		{Pattern: 0x8080, Mask: 0xf1f8, Mnemonic: "OR.L Dy,Dx", Operator: OR, Size: registers.Long, Words: 1, Bus: 1, Internal: 4, Cycles: 8, Effect: Modify},
		{Pattern: 0xb180, Mask: 0xf1f8, Mnemonic: "EOR.L Dx,Dy", Operator: EOR, Size: registers.Long, Words: 1, Bus: 1, Internal: 4, Cycles: 8, Effect: Modify},
		{Pattern: 0x5080, Mask: 0xf1f8, Mnemonic: "ADDQ.L #q,Dy", Operator: ADDQ, Size: registers.Long, Words: 1, Bus: 1, Internal: 4, Cycles: 8, Effect: Modify},
		{Pattern: 0x5180, Mask: 0xf1f8, Mnemonic: "SUBQ.L #q,Dy", Operator: SUBQ, Size: registers.Long, Words: 1, Bus: 1, Internal: 4, Cycles: 8, Effect: Modify},
		{Pattern: 0xd1c0, Mask: 0xf1f8, Mnemonic: "ADDA.L Dy,Ax", Operator: ADDA, Size: registers.Long, Words: 1, Bus: 1, Internal: 4, Cycles: 8, Effect: Modify},
		{Pattern: 0x4280, Mask: 0xfff8, Mnemonic: "CLR.L Dy", Operator: CLR, Size: registers.Long, Words: 1, Bus: 1, Internal: 2, Cycles: 6, Effect: Modify},
		{Pattern: 0x4480, Mask: 0xfff8, Mnemonic: "NEG.L Dy", Operator: NEG, Size: registers.Long, Words: 1, Bus: 1, Internal: 2, Cycles: 6, Effect: Modify},
		{Pattern: 0x4680, Mask: 0xfff8, Mnemonic: "NOT.L Dy", Operator: NOT, Size: registers.Long, Words: 1, Bus: 1, Internal: 2, Cycles: 6, Effect: Modify},
		{Pattern: 0x4a80, Mask: 0xfff8, Mnemonic: "TST.L Dy", Operator: TST, Size: registers.Long, Words: 1, Bus: 1, Cycles: 4, Effect: Read},
		{Pattern: 0x4840, Mask: 0xfff8, Mnemonic: "SWAP Dy", Operator: SWAP, Size: registers.Long, Words: 1, Bus: 1, Cycles: 4, Effect: Modify},
		{Pattern: 0x80c0, Mask: 0xf1f8, Mnemonic: "DIVU.W Dy,Dx", Operator: DIVU, Size: registers.Word, Words: 1, Bus: 1, Internal: 136, Cycles: 140, Effect: Modify},

		{Pattern: 0x6100, Mask: 0xffff, Mnemonic: "BSR.W", Operator: BSR, Words: 2, Bus: 4, Internal: 2, Cycles: 18, Effect: Subroutine},
		{Pattern: 0x6100, Mask: 0xff00, Mnemonic: "BSR.B", Operator: BSR, Words: 1, Bus: 4, Internal: 2, Cycles: 18, Effect: Subroutine},
		{Pattern: 0x4ed0, Mask: 0xfff8, Mnemonic: "JMP (Ay)", Operator: JMPInd, Words: 1, Bus: 2, Cycles: 8, Effect: Flow},
		{Pattern: 0x4ef9, Mask: 0xffff, Mnemonic: "JMP abs.L", Operator: JMPAbs, Words: 3, Bus: 3, Cycles: 12, Effect: Flow},
		{Pattern: 0x4e90, Mask: 0xfff8, Mnemonic: "JSR (Ay)", Operator: JSRInd, Words: 1, Bus: 4, Cycles: 16, Effect: Subroutine},
		{Pattern: 0x4eb9, Mask: 0xffff, Mnemonic: "JSR abs.L", Operator: JSRAbs, Words: 3, Bus: 5, Cycles: 20, Effect: Subroutine},
		{Pattern: 0x4e75, Mask: 0xffff, Mnemonic: "RTS", Operator: RTS, Words: 1, Bus: 4, Cycles: 16, Effect: Subroutine},
		{Pattern: 0x4e73, Mask: 0xffff, Mnemonic: "RTE", Operator: RTE, Words: 1, Bus: 5, Cycles: 20, Privileged: true, Effect: Interrupt},
		{Pattern: 0x4e40, Mask: 0xfff0, Mnemonic: "TRAP", Operator: TRAP, Words: 1, Effect: Interrupt},

		{Pattern: 0x4e72, Mask: 0xffff, Mnemonic: "STOP", Operator: STOP, Words: 2, Internal: 4, Cycles: 4, Privileged: true, Effect: Control},
		{Pattern: 0x4e70, Mask: 0xffff, Mnemonic: "RESET", Operator: RESET, Words: 1, Bus: 1, Internal: 128, Cycles: 132, Privileged: true, Effect: Control},
		{Pattern: 0x46c0, Mask: 0xfff8, Mnemonic: "MOVE Dy,SR", Operator: MOVEToSR, Size: registers.Word, Words: 1, Bus: 1, Internal: 8, Cycles: 12, Privileged: true, Effect: Control},
		{Pattern: 0x40c0, Mask: 0xfff8, Mnemonic: "MOVE SR,Dy", Operator: MOVEFromSR, Size: registers.Word, Words: 1, Bus: 1, Internal: 2, Cycles: 6, Effect: Read},
		{Pattern: 0x44c0, Mask: 0xfff8, Mnemonic: "MOVE Dy,CCR", Operator: MOVEToCCR, Size: registers.Word, Words: 1, Bus: 1, Internal: 8, Cycles: 12, Effect: Control},
		{Pattern: 0x007c, Mask: 0xffff, Mnemonic: "ORI #imm,SR", Operator: ORIToSR, Size: registers.Word, Words: 2, Bus: 2, Internal: 12, Cycles: 20, Privileged: true, Effect: Control},
		{Pattern: 0x027c, Mask: 0xffff, Mnemonic: "ANDI #imm,SR", Operator: ANDIToSR, Size: registers.Word, Words: 2, Bus: 2, Internal: 12, Cycles: 20, Privileged: true, Effect: Control},
		{Pattern: 0x4e60, Mask: 0xfff8, Mnemonic: "MOVE Ay,USP", Operator: MOVEToUSP, Size: registers.Long, Words: 1, Bus: 1, Cycles: 4, Privileged: true, Effect: Control},
		{Pattern: 0x4e68, Mask: 0xfff8, Mnemonic: "MOVE USP,Ay", Operator: MOVEFromUSP, Size: registers.Long, Words: 1, Bus: 1, Cycles: 4, Privileged: true, Effect: Control},
	}

	// conditional branches. condition zero is BRA, which is always taken.
	// condition one is the encoding used by BSR, which is in the list above
	for c := CondT; c <= CondLE; c++ {
		if c == CondF {
			continue
		}

		name := "B" + c.String()
		if c == CondT {
			name = "BRA"
		}

		word := Definition{
			Pattern: 0x6000 | uint16(c)<<8, Mask: 0xffff,
			Mnemonic: name + ".W", Operator: Bcc, Cond: c, Words: 2,
			Bus: 2, Internal: 4, Cycles: 12,
			TakenBus: 2, TakenInternal: 2, TakenCycles: 10,
			Effect: Flow,
		}
		short := Definition{
			Pattern: 0x6000 | uint16(c)<<8, Mask: 0xff00,
			Mnemonic: name + ".B", Operator: Bcc, Cond: c, Words: 1,
			Bus: 1, Internal: 4, Cycles: 8,
			TakenBus: 2, TakenInternal: 2, TakenCycles: 10,
			Effect: Flow,
		}

		// BRA is never "not taken". the normal figures are the same as the
		// taken figures
		if c == CondT {
			word.Bus, word.Internal, word.Cycles = word.TakenBus, word.TakenInternal, word.TakenCycles
			short.Bus, short.Internal, short.Cycles = short.TakenBus, short.TakenInternal, short.TakenCycles
		}

		// the word form must precede the byte form because the byte form's
		// pattern also matches a zero displacement
		defs = append(defs, word, short)
	}

	return defs
}
