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

package execution

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/cyclecore/hardware/cpu/exceptions"
	"github.com/jetsetilly/cyclecore/hardware/cpu/instructions"
)

// Result records the state/result of the last CPU step.
type Result struct {
	// address of the opcode
	Address uint32

	// the opcode and its definition. Defn is nil if the step did not execute
	// an instruction. for example, the step was an interrupt entry or the
	// CPU was stopped
	Opcode uint16
	Defn   *instructions.Definition

	// number of instruction words consumed, including the opcode
	Words int

	// total number of cycles consumed by the step
	Cycles int

	// whether the condition of a branch instruction was met
	BranchTaken bool

	// the instruction did not complete because an exception was raised
	// during it. the cycles of the instruction are not checked by IsValid()
	Aborted bool

	// the exception entered during this step, if any
	Exception    *exceptions.Descriptor
	EntryCycles  int
	DoubleFault  bool
	StaleFetches int

	// whether the result is complete
	Final bool
}

// Reset the result for a new step.
func (r *Result) Reset() {
	*r = Result{}
}

func (r Result) String() string {
	s := strings.Builder{}
	if r.Defn != nil {
		s.WriteString(fmt.Sprintf("%#06x %04x %s", r.Address, r.Opcode, r.Defn.Mnemonic))
		if r.Defn.IsBranch() {
			if r.BranchTaken {
				s.WriteString(" (taken)")
			} else {
				s.WriteString(" (not taken)")
			}
		}
	}
	if r.Exception != nil {
		if s.Len() > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("=> %s", r.Exception))
	}
	if r.DoubleFault {
		s.WriteString(" [double fault]")
	}
	if s.Len() == 0 {
		s.WriteString("idle")
	}
	s.WriteString(fmt.Sprintf(" [%d cycles]", r.Cycles))
	return s.String()
}

// InstructionCycles returns the number of cycles that belong to the
// instruction and not to any exception entered after it.
func (r Result) InstructionCycles() int {
	return r.Cycles - r.EntryCycles
}

// IsValid checks whether the instance of Result is consistent with the
// definition of the instruction and the exception taken.
func (r Result) IsValid() error {
	if !r.Final {
		return fmt.Errorf("cpu: execution not finalised")
	}

	if r.Exception != nil && !r.DoubleFault {
		if r.EntryCycles != r.Exception.Cycles {
			return fmt.Errorf("cpu: number of cycles wrong for %s (%d instead of %d)",
				r.Exception, r.EntryCycles, r.Exception.Cycles)
		}
	}

	if r.Defn == nil || r.Aborted || r.DoubleFault {
		return nil
	}

	if r.Words != r.Defn.Words {
		return fmt.Errorf("cpu: unexpected number of words read during decode (%d instead of %d)", r.Words, r.Defn.Words)
	}

	cycles := r.InstructionCycles()
	expected := r.Defn.Cycles
	if r.Defn.IsBranch() && r.BranchTaken {
		expected = r.Defn.TakenCycles
	}

	if cycles != expected {
		return fmt.Errorf("cpu: number of cycles wrong for opcode %#04x [%s] (%d instead of %d)",
			r.Opcode, r.Defn.Mnemonic, cycles, expected)
	}

	return nil
}
