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

// Package digest is used to create fingerprints of an emulation. The
// fingerprint of a correctly working emulation will be the same every time
// the same program is run for the same number of steps. Fingerprints are
// chained so that the hash represents the entire history of execution and not
// just the final state.
//
// The digest is not intended for security and the use of SHA-1 is not
// a cryptographic task.
package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/cyclecore/hardware"
)

// Digest implementations produce a hash of the emulation.
type Digest interface {
	Hash() string
	ResetDigest()
}

// Machine produces a digest of the CPU state after every step and,
// optionally, of the contents of RAM.
type Machine struct {
	m      *hardware.Machine
	digest [sha1.Size]byte
	buf    []byte
}

// NewMachine is the preferred method of initialisation for the Machine type.
func NewMachine(m *hardware.Machine) *Machine {
	return &Machine{m: m}
}

// Hash implements digest.Digest interface
func (dig *Machine) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface
func (dig *Machine) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// chain the data with the previous digest
func (dig *Machine) chain(data []byte) {
	dig.buf = append(dig.buf[:0], dig.digest[:]...)
	dig.buf = append(dig.buf, data...)
	dig.digest = sha1.Sum(dig.buf)
}

// Step adds the current state of the CPU to the digest. Should be called
// after every step of the machine.
func (dig *Machine) Step() error {
	s := dig.m.CPU.Serialize()

	// the contents of the prefetch queue can differ between a machine that
	// has been running and a machine with a restored snapshot
	s.Prefetch = nil

	data, err := s.MarshalBinary()
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	dig.chain(data)
	return nil
}

// Memory adds the contents of RAM to the digest.
func (dig *Machine) Memory() error {
	ram := dig.m.Mem.RAM
	data := make([]byte, ram.Size())
	for i := range data {
		v, err := ram.Peek(uint32(i))
		if err != nil {
			return fmt.Errorf("digest: %w", err)
		}
		data[i] = v
	}
	dig.chain(data)
	return nil
}
