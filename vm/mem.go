// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "slices"

// denseSlack is how far past the end of the dense part of memory a write may
// land and still grow the slice. Farther writes go to the sparse map.
const denseSlack = 4096

// Memory is the address space of an Instance. It behaves like an infinite tape
// of Cells initialized to 0.
//
// The program and nearby cells are kept in a contiguous slice, cells written
// far away from it (typically through relative addressing) are kept in a map.
// The zero value is an empty, ready to use Memory.
type Memory struct {
	dense  []Cell
	sparse map[int]Cell
	low    int // lowest sparse address, valid when sparse is not empty
	size   int
}

// NewMemory returns a Memory holding a copy of the given cells at addresses
// 0..len(cells)-1.
func NewMemory(cells []Cell) Memory {
	d := make([]Cell, len(cells))
	copy(d, cells)
	return Memory{dense: d, size: len(d)}
}

// Load returns the value at address addr. Addresses that were never written
// read as 0. Load panics with an *AddressError if addr is negative.
func (m *Memory) Load(addr int) Cell {
	if addr < 0 {
		panic(&AddressError{Addr: addr})
	}
	if addr < len(m.dense) {
		return m.dense[addr]
	}
	return m.sparse[addr]
}

// Store writes v at address addr, growing the memory as needed. Store panics
// with an *AddressError if addr is negative.
func (m *Memory) Store(addr int, v Cell) {
	switch {
	case addr < 0:
		panic(&AddressError{Addr: addr})
	case addr < len(m.dense):
		m.dense[addr] = v
	case addr < len(m.dense)+denseSlack:
		m.grow(addr + 1)
		m.dense[addr] = v
	default:
		if m.sparse == nil {
			m.sparse = make(map[int]Cell)
		}
		if len(m.sparse) == 0 || addr < m.low {
			m.low = addr
		}
		m.sparse[addr] = v
	}
	if addr >= m.size {
		m.size = addr + 1
	}
}

// grow extends the dense part to n cells, migrating any sparse cells that
// now fall into it.
func (m *Memory) grow(n int) {
	if n <= cap(m.dense) {
		m.dense = m.dense[:n]
	} else {
		c := 2 * cap(m.dense)
		if c < n {
			c = n
		}
		t := make([]Cell, n, c)
		copy(t, m.dense)
		m.dense = t
	}
	if len(m.sparse) == 0 || m.low >= n {
		return
	}
	low := -1
	for a, v := range m.sparse {
		if a < n {
			m.dense[a] = v
			delete(m.sparse, a)
		} else if low < 0 || a < low {
			low = a
		}
	}
	m.low = low
}

// Len returns one past the highest address ever written, or the initial
// program length.
func (m *Memory) Len() int {
	return m.size
}

// Cells returns a copy of the dense part of the memory, starting at address 0.
// Cells stored far from it are not included, see Sparse.
func (m *Memory) Cells() []Cell {
	c := make([]Cell, len(m.dense))
	copy(c, m.dense)
	return c
}

// Sparse returns the addresses of the cells not included in Cells, in
// ascending order.
func (m *Memory) Sparse() []int {
	if len(m.sparse) == 0 {
		return nil
	}
	as := make([]int, 0, len(m.sparse))
	for a := range m.sparse {
		as = append(as, a)
	}
	slices.Sort(as)
	return as
}

// Clone returns a deep copy of m.
func (m *Memory) Clone() Memory {
	c := Memory{size: m.size, low: m.low}
	if m.dense != nil {
		c.dense = make([]Cell, len(m.dense), cap(m.dense))
		copy(c.dense, m.dense)
	}
	if len(m.sparse) > 0 {
		c.sparse = make(map[int]Cell, len(m.sparse))
		for a, v := range m.sparse {
			c.sparse[a] = v
		}
	}
	return c
}
