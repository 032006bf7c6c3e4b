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

// Package prefetch models the instruction prefetch queue of the CPU.
//
// The queue holds up to Depth instruction words. The word at the front of the
// queue is always at the address given by Address(), which is the value of
// the program counter as the CPU sees it.
//
// A write to memory that is currently held in the queue does not change the
// queued word. The CPU will execute the word as it was when it was fetched.
// This is how the 68000 behaves and programs that modify the instruction
// immediately following the write rely on it. Such writes are counted but
// otherwise ignored. Any change to the flow of execution invalidates the
// queue and the new instructions are fetched fresh.
package prefetch

import "fmt"

// Depth of the queue in words.
const Depth = 2

// Fetcher reads a single instruction word from memory. The fetcher is
// responsible for charging the cost of the fetch.
type Fetcher func(address uint32) (uint16, error)

// Queue is the prefetch queue.
type Queue struct {
	words [Depth]uint16
	count int

	// address of words[0]
	address uint32

	staleHits int
}

func (q Queue) String() string {
	s := fmt.Sprintf("%#06x:", q.address)
	for i := 0; i < q.count; i++ {
		s = fmt.Sprintf("%s %04x", s, q.words[i])
	}
	return s
}

// Address of the word at the front of the queue.
func (q *Queue) Address() uint32 {
	return q.address
}

// Len returns the number of words in the queue.
func (q *Queue) Len() int {
	return q.count
}

// Contents returns a copy of the words currently in the queue, front first.
func (q *Queue) Contents() []uint16 {
	c := make([]uint16, q.count)
	copy(c, q.words[:q.count])
	return c
}

// Next removes the word at the front of the queue and returns it. If the
// queue is empty the word is fetched immediately.
func (q *Queue) Next(fetch Fetcher) (uint16, error) {
	if q.count == 0 {
		w, err := fetch(q.address)
		if err != nil {
			return 0, err
		}
		q.address += 2
		return w, nil
	}

	w := q.words[0]
	copy(q.words[:], q.words[1:q.count])
	q.count--
	q.address += 2
	return w, nil
}

// Fill the queue to its full depth.
func (q *Queue) Fill(fetch Fetcher) error {
	for q.count < Depth {
		w, err := fetch(q.address + uint32(q.count)*2)
		if err != nil {
			return err
		}
		q.words[q.count] = w
		q.count++
	}
	return nil
}

// Invalidate empties the queue and positions it at the new address. Nothing
// is fetched until Next() or Fill() is called.
func (q *Queue) Invalidate(address uint32) {
	q.count = 0
	q.address = address
}

// Written should be called for every memory write with the address and the
// number of bytes written. Returns true if the write landed on a word that is
// currently queued. The queued word is not changed.
func (q *Queue) Written(address uint32, bytes int) bool {
	if q.count == 0 {
		return false
	}

	start := q.address
	end := q.address + uint32(q.count)*2
	if address+uint32(bytes) <= start || address >= end {
		return false
	}

	q.staleHits++
	return true
}

// StaleHits returns the number of writes that have landed on a queued word
// since the queue was created or the counter was last reset.
func (q *Queue) StaleHits() int {
	return q.staleHits
}

// ResetStaleHits sets the stale hit counter to zero.
func (q *Queue) ResetStaleHits() {
	q.staleHits = 0
}
