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

// Operator identifies the operation performed by an instruction. Opcodes that
// share an operator are executed by the same code in the CPU. The CPU selects
// that code with a switch on the Operator and never by inspecting the opcode.
type Operator int

// List of operators.
const (
	Illegal Operator = iota
	LineA
	LineF

	NOP
	MOVEQ
	MOVE
	MOVEImm
	MOVEToMem
	MOVEFromMem
	MOVEA
	LEA

	ADD
	SUB
	CMP
	AND
	OR
	EOR
	ADDQ
	SUBQ
	ADDA
	CLR
	NEG
	NOT
	TST
	SWAP
	DIVU

	Bcc
	BSR
	JMPInd
	JMPAbs
	JSRInd
	JSRAbs
	RTS
	RTE
	TRAP

	STOP
	RESET
	MOVEToSR
	MOVEFromSR
	MOVEToCCR
	ORIToSR
	ANDIToSR
	MOVEToUSP
	MOVEFromUSP

	numOperators
)

var operatorNames = [numOperators]string{
	Illegal:     "ILLEGAL",
	LineA:       "LINEA",
	LineF:       "LINEF",
	NOP:         "NOP",
	MOVEQ:       "MOVEQ",
	MOVE:        "MOVE",
	MOVEImm:     "MOVE",
	MOVEToMem:   "MOVE",
	MOVEFromMem: "MOVE",
	MOVEA:       "MOVEA",
	LEA:         "LEA",
	ADD:         "ADD",
	SUB:         "SUB",
	CMP:         "CMP",
	AND:         "AND",
	OR:          "OR",
	EOR:         "EOR",
	ADDQ:        "ADDQ",
	SUBQ:        "SUBQ",
	ADDA:        "ADDA",
	CLR:         "CLR",
	NEG:         "NEG",
	NOT:         "NOT",
	TST:         "TST",
	SWAP:        "SWAP",
	DIVU:        "DIVU",
	Bcc:         "Bcc",
	BSR:         "BSR",
	JMPInd:      "JMP",
	JMPAbs:      "JMP",
	JSRInd:      "JSR",
	JSRAbs:      "JSR",
	RTS:         "RTS",
	RTE:         "RTE",
	TRAP:        "TRAP",
	STOP:        "STOP",
	RESET:       "RESET",
	MOVEToSR:    "MOVE",
	MOVEFromSR:  "MOVE",
	MOVEToCCR:   "MOVE",
	ORIToSR:     "ORI",
	ANDIToSR:    "ANDI",
	MOVEToUSP:   "MOVE",
	MOVEFromUSP: "MOVE",
}

func (o Operator) String() string {
	if o < 0 || o >= numOperators {
		return "unknown operator"
	}
	return operatorNames[o]
}
