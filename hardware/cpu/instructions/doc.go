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

// Package instructions defines the instruction set of the CPU. Each
// instruction is described by a Definition and the complete opcode space is
// mapped to those definitions by the Table type.
//
// The table is built once, the first time GetTable() is called, from an
// ordered list of definitions. Each definition names a bit pattern and a mask.
// The first definition to match an opcode claims it. Any opcode that is not
// claimed by the list is assigned to one of the filler definitions: Line-A
// and Line-F encodings have their own exception vectors, everything else is
// an illegal instruction.
//
// Opcode fields that would otherwise need to be extracted every time the
// instruction is executed (register numbers, quick data, branch
// displacements) are decoded when the table is built and stored in the Entry.
// The CPU never interprets the bits of the opcode itself.
package instructions
