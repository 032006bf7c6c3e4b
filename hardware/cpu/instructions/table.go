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
	"sync"
)

// Entry is the decoded form of a single opcode.
type Entry struct {
	Defn *Definition

	// register fields. Rx is taken from bits 9 to 11 of the opcode and Ry
	// from bits 0 to 2. not every instruction uses both fields
	Rx uint8
	Ry uint8

	// immediate data encoded in the opcode. for MOVEQ and the short form of
	// the branch instructions this is the sign extended byte. for ADDQ and
	// SUBQ it is the quick value. for TRAP it is the trap number
	Data uint32
}

// NumOpcodes is the number of entries in the table.
const NumOpcodes = 65536

// Table maps every opcode to its decoded Entry.
type Table [NumOpcodes]Entry

var (
	table     Table
	tableErr  error
	tableOnce sync.Once
)

// GetTable returns the instruction table, building it the first time it is
// called. The table must not be modified. An error indicates a defect in the
// definitions list and the CPU cannot be used.
func GetTable() (*Table, error) {
	tableOnce.Do(func() {
		defs := definitions()
		for i := range defs {
			if err := defs[i].consistent(); err != nil {
				tableErr = fmt.Errorf("instructions: %w", err)
				return
			}
		}
		table.build(defs)
		tableErr = table.Validate()
	})
	return &table, tableErr
}

func (t *Table) build(defs []Definition) {
	for op := 0; op < NumOpcodes; op++ {
		opcode := uint16(op)

		var defn *Definition
		for i := range defs {
			if defs[i].Match(opcode) {
				defn = &defs[i]
				break
			}
		}

		if defn == nil {
			switch {
			case lineADefn.Match(opcode):
				defn = &lineADefn
			case lineFDefn.Match(opcode):
				defn = &lineFDefn
			default:
				defn = &illegalDefn
			}
		}

		t[op] = decode(opcode, defn)
	}
}

func decode(opcode uint16, defn *Definition) Entry {
	e := Entry{
		Defn: defn,
		Rx:   uint8(opcode>>9) & 0x07,
		Ry:   uint8(opcode) & 0x07,
	}

	switch defn.Operator {
	case MOVEQ:
		e.Data = uint32(int32(int8(opcode)))
	case ADDQ, SUBQ:
		e.Data = uint32(e.Rx)
		if e.Data == 0 {
			e.Data = 8
		}
	case TRAP:
		e.Data = uint32(opcode & 0x0f)
	case Bcc, BSR:
		if defn.Words == 1 {
			e.Data = uint32(int32(int8(opcode)))
		}
	}

	return e
}

// Validate the table. Every entry must refer to a definition and the cycle
// figures of every definition must be self consistent.
func (t *Table) Validate() error {
	checked := make(map[*Definition]bool)
	for op := range t {
		defn := t[op].Defn
		if defn == nil {
			return fmt.Errorf("instructions: no definition for opcode %#04x", op)
		}
		if !defn.Match(uint16(op)) {
			return fmt.Errorf("instructions: opcode %#04x does not match definition %s", op, defn.Mnemonic)
		}
		if checked[defn] {
			continue
		}
		if err := defn.consistent(); err != nil {
			return fmt.Errorf("instructions: %w", err)
		}
		checked[defn] = true
	}
	return nil
}

// Lookup returns the entry for the opcode.
func (t *Table) Lookup(opcode uint16) Entry {
	return t[opcode]
}

// Definitions returns every distinct definition referenced by the table.
// Useful for tests and documentation that need to visit each instruction
// once.
func (t *Table) Definitions() []*Definition {
	var defs []*Definition
	seen := make(map[*Definition]bool)
	for op := range t {
		d := t[op].Defn
		if d != nil && !seen[d] {
			seen[d] = true
			defs = append(defs, d)
		}
	}
	return defs
}

// Find returns the first opcode that decodes to the definition. Returns false
// if no opcode uses the definition.
func (t *Table) Find(defn *Definition) (uint16, bool) {
	for op := range t {
		if t[op].Defn == defn {
			return uint16(op), true
		}
	}
	return 0, false
}
