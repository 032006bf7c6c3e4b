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

package cpu

import (
	"fmt"

	"github.com/jetsetilly/cyclecore/hardware/cpu/exceptions"
	"github.com/jetsetilly/cyclecore/hardware/cpu/instructions"
	"github.com/jetsetilly/cyclecore/hardware/cpu/registers"
)

// execute the next instruction, followed by any trap or trace exception
// that results from it
func (c *CPU) execute() error {
	start := c.Reg.PC.Address()
	trace := c.Reg.SR.Trace

	c.executing = true
	c.supervisor = c.Reg.SR.Supervisor()

	err := c.dispatch(start)
	c.executing = false
	if err != nil {
		if f, ok := asFault(err); ok {
			c.LastResult.Aborted = true
			c.ctrl.Tick()
			return c.groupZero(f)
		}
		return err
	}

	// the instruction itself entered an exception. the boundary still counts
	// for deferred traps but waiting traps are serviced at the next one
	if c.LastResult.Exception != nil {
		c.ctrl.Tick()
		return nil
	}

	if vector, ok := c.ctrl.Boundary(); ok {
		if trace {
			c.tracePending = true
		}
		return c.exception(vector, c.Reg.PC.Address())
	}

	if trace {
		return c.exception(exceptions.Trace, c.Reg.PC.Address())
	}

	return nil
}

func (c *CPU) dispatch(start uint32) error {
	opcode, err := c.nextWord()
	if err != nil {
		return err
	}

	e := c.table[opcode]
	defn := e.Defn
	rx := int(e.Rx)
	ry := int(e.Ry)

	c.ir = opcode
	c.LastResult.Opcode = opcode
	c.LastResult.Defn = defn

	if defn.Privileged && !c.Reg.SR.Supervisor() {
		c.LastResult.Aborted = true
		return c.exception(exceptions.PrivilegeViolation, start)
	}

	switch defn.Operator {
	case instructions.Illegal:
		return c.exception(exceptions.IllegalInstruction, start)

	case instructions.LineA:
		return c.exception(exceptions.LineA, start)

	case instructions.LineF:
		return c.exception(exceptions.LineF, start)

	case instructions.NOP:

	case instructions.MOVEQ:
		c.Reg.SetD(rx, e.Data)
		c.logicFlags(e.Data, registers.Long)

	case instructions.MOVE:
		v := c.Reg.D(ry)
		c.Reg.SetD(rx, v)
		c.logicFlags(v, registers.Long)

	case instructions.MOVEImm:
		v, err := c.nextLong()
		if err != nil {
			return err
		}
		c.Reg.SetD(rx, v)
		c.logicFlags(v, registers.Long)

	case instructions.MOVEToMem:
		v := c.Reg.D(ry)
		address := c.Reg.A(rx)
		switch defn.Size {
		case registers.Byte:
			err = c.write8(address, uint8(v))
		case registers.Word:
			err = c.write16(address, uint16(v))
		default:
			err = c.write32(address, v)
		}
		if err != nil {
			return err
		}
		c.logicFlags(v, defn.Size)

	case instructions.MOVEFromMem:
		address := c.Reg.A(ry)
		var v uint32
		switch defn.Size {
		case registers.Byte:
			var b uint8
			b, err = c.read8(address)
			v = uint32(b)
		case registers.Word:
			var w uint16
			w, err = c.read16(address)
			v = uint32(w)
		default:
			v, err = c.read32(address)
		}
		if err != nil {
			return err
		}
		c.Reg.SetDSized(rx, v, defn.Size)
		c.logicFlags(v, defn.Size)

	case instructions.MOVEA:
		c.Reg.SetA(rx, c.Reg.D(ry))

	case instructions.LEA:
		v, err := c.nextLong()
		if err != nil {
			return err
		}
		c.Reg.SetA(rx, v)

	case instructions.ADD:
		r, carry, overflow := registers.Add(c.Reg.D(rx), c.Reg.D(ry), registers.Long, false)
		c.Reg.SetD(rx, r)
		c.arithmeticFlags(r, carry, overflow, registers.Long)

	case instructions.SUB:
		r, borrow, overflow := registers.Sub(c.Reg.D(rx), c.Reg.D(ry), registers.Long, false)
		c.Reg.SetD(rx, r)
		c.arithmeticFlags(r, borrow, overflow, registers.Long)

	case instructions.CMP:
		r, borrow, overflow := registers.Sub(c.Reg.D(rx), c.Reg.D(ry), registers.Long, false)
		c.Reg.SR.SetNZ(r, registers.Long)
		c.Reg.SR.Overflow = overflow
		c.Reg.SR.Carry = borrow

	case instructions.AND:
		r := c.Reg.D(rx) & c.Reg.D(ry)
		c.Reg.SetD(rx, r)
		c.logicFlags(r, registers.Long)

	case instructions.OR:
		r := c.Reg.D(rx) | c.Reg.D(ry)
		c.Reg.SetD(rx, r)
		c.logicFlags(r, registers.Long)

	case instructions.EOR:
		r := c.Reg.D(ry) ^ c.Reg.D(rx)
		c.Reg.SetD(ry, r)
		c.logicFlags(r, registers.Long)

	case instructions.ADDQ:
		r, carry, overflow := registers.Add(c.Reg.D(ry), e.Data, registers.Long, false)
		c.Reg.SetD(ry, r)
		c.arithmeticFlags(r, carry, overflow, registers.Long)

	case instructions.SUBQ:
		r, borrow, overflow := registers.Sub(c.Reg.D(ry), e.Data, registers.Long, false)
		c.Reg.SetD(ry, r)
		c.arithmeticFlags(r, borrow, overflow, registers.Long)

	case instructions.ADDA:
		c.Reg.SetA(rx, c.Reg.A(rx)+c.Reg.D(ry))

	case instructions.CLR:
		c.Reg.SetD(ry, 0)
		c.logicFlags(0, registers.Long)

	case instructions.NEG:
		r, borrow, overflow := registers.Sub(0, c.Reg.D(ry), registers.Long, false)
		c.Reg.SetD(ry, r)
		c.arithmeticFlags(r, borrow, overflow, registers.Long)

	case instructions.NOT:
		r := ^c.Reg.D(ry)
		c.Reg.SetD(ry, r)
		c.logicFlags(r, registers.Long)

	case instructions.TST:
		c.logicFlags(c.Reg.D(ry), registers.Long)

	case instructions.SWAP:
		v := c.Reg.D(ry)
		r := v<<16 | v>>16
		c.Reg.SetD(ry, r)
		c.logicFlags(r, registers.Long)

	case instructions.DIVU:
		divisor := c.Reg.D(ry) & 0xffff
		if divisor == 0 {
			c.LastResult.Aborted = true
			return c.exception(exceptions.DivideByZero, c.Reg.PC.Address())
		}
		dividend := c.Reg.D(rx)
		quotient := dividend / divisor
		if quotient > 0xffff {
			// the register is unchanged on overflow
			c.Reg.SR.Overflow = true
			c.Reg.SR.Carry = false
		} else {
			c.Reg.SetD(rx, (dividend%divisor)<<16|quotient)
			c.logicFlags(quotient, registers.Word)
		}

	case instructions.Bcc:
		return c.branch(e, start)

	case instructions.BSR:
		disp, err := c.displacement(e)
		if err != nil {
			return err
		}
		if err := c.push32(c.Reg.PC.Address()); err != nil {
			return err
		}
		c.cycle(defn.Internal)
		return c.jump(start + 2 + disp)

	case instructions.JMPInd:
		c.cycle(defn.Internal)
		return c.jump(c.Reg.A(ry))

	case instructions.JMPAbs:
		target, err := c.nextLong()
		if err != nil {
			return err
		}
		c.cycle(defn.Internal)
		return c.jump(target)

	case instructions.JSRInd:
		target := c.Reg.A(ry)
		if err := c.push32(c.Reg.PC.Address()); err != nil {
			return err
		}
		c.cycle(defn.Internal)
		return c.jump(target)

	case instructions.JSRAbs:
		target, err := c.nextLong()
		if err != nil {
			return err
		}
		if err := c.push32(c.Reg.PC.Address()); err != nil {
			return err
		}
		c.cycle(defn.Internal)
		return c.jump(target)

	case instructions.RTS:
		pc, err := c.pop32()
		if err != nil {
			return err
		}
		c.cycle(defn.Internal)
		return c.jump(pc)

	case instructions.RTE:
		sr, err := c.pop16()
		if err != nil {
			return err
		}
		pc, err := c.pop32()
		if err != nil {
			return err
		}
		c.Reg.LoadSR(sr)
		c.cycle(defn.Internal)
		return c.jump(pc)

	case instructions.TRAP:
		return c.exception(exceptions.TrapBase+uint8(e.Data), c.Reg.PC.Address())

	case instructions.STOP:
		imm, err := c.nextWord()
		if err != nil {
			return err
		}
		c.Reg.LoadSR(imm)
		c.state = Stopped
		c.cycle(defn.Internal)

		// the prefetch queue is not refilled
		return nil

	case instructions.RESET:
		if c.resetter != nil {
			c.resetter.ResetDevices()
		}

	case instructions.MOVEToSR:
		c.Reg.LoadSR(uint16(c.Reg.D(ry)))

	case instructions.MOVEFromSR:
		c.Reg.SetDSized(ry, uint32(c.Reg.SR.Value()), registers.Word)

	case instructions.MOVEToCCR:
		c.Reg.SR.LoadCCR(uint8(c.Reg.D(ry)))

	case instructions.ORIToSR:
		imm, err := c.nextWord()
		if err != nil {
			return err
		}
		c.Reg.LoadSR(c.Reg.SR.Value() | imm)

	case instructions.ANDIToSR:
		imm, err := c.nextWord()
		if err != nil {
			return err
		}
		c.Reg.LoadSR(c.Reg.SR.Value() & imm)

	case instructions.MOVEToUSP:
		c.Reg.SetUSP(c.Reg.A(ry))

	case instructions.MOVEFromUSP:
		c.Reg.SetA(ry, c.Reg.USP())

	default:
		return fmt.Errorf("cpu: no implementation for %s (opcode %#04x)", defn.Operator, opcode)
	}

	return c.sequential(defn)
}

// sequential completes an instruction that does not change the flow of
// execution by charging its internal cycles and refilling the prefetch queue
func (c *CPU) sequential(defn *instructions.Definition) error {
	c.cycle(defn.Internal)
	return c.queue.Fill(c.fetch)
}

// displacement of a branch instruction. the word form takes the displacement
// from the extension word
func (c *CPU) displacement(e instructions.Entry) (uint32, error) {
	if e.Defn.Words == 1 {
		return e.Data, nil
	}
	w, err := c.nextWord()
	if err != nil {
		return 0, err
	}
	return uint32(int32(int16(w))), nil
}

func (c *CPU) branch(e instructions.Entry, start uint32) error {
	disp, err := c.displacement(e)
	if err != nil {
		return err
	}

	if !e.Defn.Cond.Test(c.Reg.SR) {
		return c.sequential(e.Defn)
	}

	c.LastResult.BranchTaken = true
	c.cycle(e.Defn.TakenInternal)

	// the displacement is relative to the address following the opcode
	return c.jump(start + 2 + disp)
}

func (c *CPU) logicFlags(result uint32, sz registers.Size) {
	c.Reg.SR.SetNZ(result, sz)
	c.Reg.SR.Overflow = false
	c.Reg.SR.Carry = false
}

func (c *CPU) arithmeticFlags(result uint32, carry bool, overflow bool, sz registers.Size) {
	c.Reg.SR.SetNZ(result, sz)
	c.Reg.SR.Overflow = overflow
	c.Reg.SR.Carry = carry
	c.Reg.SR.Extend = carry
}
