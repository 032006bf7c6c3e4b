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

package prefetch_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/cyclecore/hardware/cpu/prefetch"
	"github.com/jetsetilly/cyclecore/test"
)

type words struct {
	mem     map[uint32]uint16
	fetches int
}

func (w *words) fetch(address uint32) (uint16, error) {
	w.fetches++
	v, ok := w.mem[address]
	if !ok {
		return 0, errors.New("no memory")
	}
	return v, nil
}

func TestNextAndFill(t *testing.T) {
	w := &words{mem: map[uint32]uint16{0x100: 0x4e71, 0x102: 0x7001, 0x104: 0x7202}}

	var q prefetch.Queue
	q.Invalidate(0x100)
	test.ExpectEquality(t, q.Len(), 0)

	test.DemandSuccess(t, q.Fill(w.fetch))
	test.ExpectEquality(t, w.fetches, 2)
	test.ExpectEquality(t, q.Len(), 2)
	test.ExpectEquality(t, q.String(), "0x0100: 4e71 7001")

	v, err := q.Next(w.fetch)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, 0x4e71)
	test.ExpectEquality(t, q.Address(), 0x102)
	test.ExpectEquality(t, w.fetches, 2)

	v, _ = q.Next(w.fetch)
	test.ExpectEquality(t, v, 0x7001)

	// underflow fetches immediately
	v, err = q.Next(w.fetch)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, 0x7202)
	test.ExpectEquality(t, w.fetches, 3)
	test.ExpectEquality(t, q.Address(), 0x106)

	// fetch errors are passed through and the queue is unchanged
	test.ExpectFailure(t, q.Fill(w.fetch))
	test.ExpectEquality(t, q.Len(), 0)
	test.ExpectEquality(t, q.Address(), 0x106)
}

func TestStaleWrite(t *testing.T) {
	w := &words{mem: map[uint32]uint16{0x200: 0x1111, 0x202: 0x2222, 0x204: 0x3333}}

	// the outcome of a write into the queue must be the same every time
	for i := 0; i < 4; i++ {
		var q prefetch.Queue
		q.Invalidate(0x200)
		test.DemandSuccess(t, q.Fill(w.fetch))

		w.mem[0x202] = 0xbeef
		test.ExpectSuccess(t, q.Written(0x203, 1), i)
		test.ExpectFailure(t, q.Written(0x204, 2), i)
		test.ExpectFailure(t, q.Written(0x1fe, 2), i)
		test.ExpectSuccess(t, q.Written(0x1fe, 4), i)
		test.ExpectEquality(t, q.StaleHits(), 2, i)

		q.Next(w.fetch)
		v, _ := q.Next(w.fetch)
		test.ExpectEquality(t, v, 0x2222, i)

		w.mem[0x202] = 0x2222
	}
}

func TestContents(t *testing.T) {
	w := &words{mem: map[uint32]uint16{0x10: 1, 0x12: 2}}
	var q prefetch.Queue
	q.Invalidate(0x10)
	test.DemandSuccess(t, q.Fill(w.fetch))

	c := q.Contents()
	test.DemandEquality(t, len(c), 2)
	test.ExpectEquality(t, c[0], 1)
	test.ExpectEquality(t, c[1], 2)

	// the copy is independent of the queue
	c[0] = 99
	v, _ := q.Next(w.fetch)
	test.ExpectEquality(t, v, 1)

	q.Invalidate(0x40)
	test.ExpectEquality(t, len(q.Contents()), 0)
	test.ExpectFailure(t, q.Written(0x40, 2))
}
