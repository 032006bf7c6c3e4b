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
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/cyclecore/hardware/cpu/exceptions"
)

// SnapshotVersion is the version of the Snapshot type created by this version
// of the CPU. Restore() will not accept any other version.
const SnapshotVersion uint16 = 2

// first bytes of a marshalled snapshot
var snapshotMagic = [4]byte{'C', 'C', 'P', 'U'}

// Snapshot is a point-in-time copy of the CPU state.
type Snapshot struct {
	Version uint16

	D   [8]uint32
	A   [7]uint32
	USP uint32
	SSP uint32
	PC  uint32
	SR  uint16

	Clock    uint64
	State    RunState
	HaltLine bool

	// pending interrupt levels as a bitmask, bit n for level n
	Pending uint8

	// trap requests waiting to be serviced, oldest first
	Traps []exceptions.TrapRequest

	TracePending bool

	IR uint16

	// the contents of the prefetch queue at the time of the snapshot. for
	// information only. Restore() fetches the queue again from memory
	Prefetch []uint16
}

// Validate checks that the snapshot can be restored by this version of the
// CPU.
func (s Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Version)
	}
	if s.State < 0 || s.State >= numRunStates {
		return fmt.Errorf("cpu: restore: invalid run state (%d)", s.State)
	}
	if len(s.Traps) > exceptions.MaxTraps {
		return fmt.Errorf("cpu: restore: too many trap requests (%d)", len(s.Traps))
	}
	return nil
}

// Serialize returns a snapshot of the current CPU state.
func (c *CPU) Serialize() Snapshot {
	s := Snapshot{
		Version:      SnapshotVersion,
		USP:          c.Reg.USP(),
		SSP:          c.Reg.SSP(),
		PC:           c.Reg.PC.Address(),
		SR:           c.Reg.SR.Value(),
		Clock:        c.clock,
		State:        c.state,
		HaltLine:     c.haltLine,
		Pending:      c.ctrl.Pending(),
		Traps:        c.ctrl.Traps(),
		TracePending: c.tracePending,
		IR:           c.ir,
		Prefetch:     c.queue.Contents(),
	}

	for i := range s.D {
		s.D[i] = c.Reg.D(i)
	}
	for i := range s.A {
		s.A[i] = c.Reg.A(i)
	}

	return s
}

// Restore the CPU state from the snapshot. The snapshot is checked before
// anything is changed and the CPU is untouched if an error is returned.
//
// The prefetch queue is filled again by peeking at the memory system at the
// restored program counter. The memory system may be different to the one in
// use when the snapshot was taken (a different ROM bank for example) and
// the queue must reflect the memory as it is now.
func (c *CPU) Restore(s Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}

	c.Reg.Reset()
	c.Reg.LoadSR(s.SR)
	for i, v := range s.D {
		c.Reg.SetD(i, v)
	}
	for i, v := range s.A {
		c.Reg.SetA(i, v)
	}
	c.Reg.SetUSP(s.USP)
	c.Reg.SetSSP(s.SSP)
	c.Reg.PC.Load(s.PC)

	c.clock = s.Clock
	c.state = s.State
	c.haltLine = s.HaltLine
	c.tracePending = s.TracePending
	c.ir = s.IR

	c.ctrl.Clear()
	c.ctrl.SetPending(s.Pending)
	c.ctrl.SetTraps(s.Traps)

	c.LastResult.Reset()
	c.prime()

	return nil
}

// the fixed part of the marshalled snapshot, in the order it is written
type snapshotFixed struct {
	D            [8]uint32
	A            [7]uint32
	USP          uint32
	SSP          uint32
	PC           uint32
	SR           uint16
	Clock        uint64
	State        uint8
	HaltLine     bool
	Pending      uint8
	TracePending bool
	IR           uint16
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. Values
// are big-endian.
func (s Snapshot) MarshalBinary() ([]byte, error) {
	if len(s.Prefetch) > 255 {
		return nil, fmt.Errorf("cpu: snapshot: prefetch contents too long")
	}
	if len(s.Traps) > exceptions.MaxTraps {
		return nil, fmt.Errorf("cpu: snapshot: too many trap requests")
	}

	b := &bytes.Buffer{}
	b.Write(snapshotMagic[:])
	_ = binary.Write(b, binary.BigEndian, s.Version)

	f := snapshotFixed{
		D: s.D, A: s.A, USP: s.USP, SSP: s.SSP, PC: s.PC, SR: s.SR,
		Clock: s.Clock, State: uint8(s.State), HaltLine: s.HaltLine,
		Pending: s.Pending, TracePending: s.TracePending, IR: s.IR,
	}
	if err := binary.Write(b, binary.BigEndian, f); err != nil {
		return nil, fmt.Errorf("cpu: snapshot: %w", err)
	}

	b.WriteByte(uint8(len(s.Traps)))
	if err := binary.Write(b, binary.BigEndian, s.Traps); err != nil {
		return nil, fmt.Errorf("cpu: snapshot: %w", err)
	}

	b.WriteByte(uint8(len(s.Prefetch)))
	if err := binary.Write(b, binary.BigEndian, s.Prefetch); err != nil {
		return nil, fmt.Errorf("cpu: snapshot: %w", err)
	}

	return b.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. The
// snapshot is not changed if an error is returned.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	if len(data) < len(snapshotMagic)+2 {
		return ErrSnapshotTruncated
	}
	if !bytes.Equal(data[:len(snapshotMagic)], snapshotMagic[:]) {
		return ErrSnapshotFormat
	}

	version := binary.BigEndian.Uint16(data[len(snapshotMagic):])
	if version != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, version)
	}

	r := bytes.NewReader(data[len(snapshotMagic)+2:])

	var f snapshotFixed
	if err := binary.Read(r, binary.BigEndian, &f); err != nil {
		return ErrSnapshotTruncated
	}

	n, err := r.ReadByte()
	if err != nil {
		return ErrSnapshotTruncated
	}
	if int(n) > exceptions.MaxTraps {
		return ErrSnapshotFormat
	}
	var traps []exceptions.TrapRequest
	if n > 0 {
		traps = make([]exceptions.TrapRequest, n)
		if err := binary.Read(r, binary.BigEndian, traps); err != nil {
			return ErrSnapshotTruncated
		}
	}

	n, err = r.ReadByte()
	if err != nil {
		return ErrSnapshotTruncated
	}
	prefetch := make([]uint16, n)
	if err := binary.Read(r, binary.BigEndian, prefetch); err != nil {
		return ErrSnapshotTruncated
	}

	if r.Len() != 0 {
		return ErrSnapshotFormat
	}

	*s = Snapshot{
		Version: version,
		D:       f.D, A: f.A, USP: f.USP, SSP: f.SSP, PC: f.PC, SR: f.SR,
		Clock: f.Clock, State: RunState(f.State), HaltLine: f.HaltLine,
		Pending: f.Pending, Traps: traps,
		TracePending: f.TracePending, IR: f.IR,
		Prefetch: prefetch,
	}

	return nil
}
