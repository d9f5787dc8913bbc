/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package grid builds the uniform grid (hashed cell table) over a loaded
// point store: one sort, two scans, and a bucket-chained hash table. The
// result is an immutable Index — read-only for the rest of the run, so it
// can be handed to every worker goroutine without synchronization.
package grid

import (
	"fmt"

	"github.com/carli2/hybridsort"

	"github.com/launix-de/groupfinder/points"
	"github.com/launix-de/groupfinder/tier"
)

// Cell is a run of points sharing one cell coordinate: [Start, Start+Count)
// indexes the sorted point array. Next chains into the hash bucket list; 0
// means end-of-chain, and stored values are cellIndex+1 (see HashTable).
type Cell struct {
	CX, CZ int32
	Start  uint32
	Count  uint32
	Next   uint32
}

// Index is the immutable grid built over a point store. Nothing in Index
// is mutated after Build returns; concurrent readers need no locks.
type Index struct {
	Store     *points.Store
	Cells     []Cell
	HashTable []uint32
	tableMask uint64
}

// Build sorts the store into cell-major order, run-length-encodes it into
// cells, and chains the cells into a power-of-two hash table. It is always
// single-threaded, as later stages depend on every cell being final before
// any worker starts.
func Build(store *points.Store, tierClass tier.Class) (*Index, error) {
	n := store.Len()
	if n == 0 {
		size := tier.HashTableSizeFor(tierClass, 0)
		return &Index{Store: store, Cells: nil, HashTable: make([]uint32, size), tableMask: size - 1}, nil
	}

	// Step 2 (step 1 — filling (cx,cz) — happens inline in Store.Append for
	// the Rich layout; Bare recomputes on every comparison, per spec §4.4).
	hybridsort.Sort(store)

	// Step 3: count distinct cells.
	distinct := uint32(1)
	prevCX, prevCZ := store.CellAt(0)
	for i := 1; i < n; i++ {
		cx, cz := store.CellAt(i)
		if cx != prevCX || cz != prevCZ {
			distinct++
			prevCX, prevCZ = cx, cz
		}
	}

	// Step 4: fill the cell array from maximal runs of equal (cx,cz).
	cells := make([]Cell, 0, distinct)
	runStart := 0
	prevCX, prevCZ = store.CellAt(0)
	for i := 1; i <= n; i++ {
		var cx, cz int32
		atEnd := i == n
		if !atEnd {
			cx, cz = store.CellAt(i)
		}
		if atEnd || cx != prevCX || cz != prevCZ {
			cells = append(cells, Cell{
				CX:    prevCX,
				CZ:    prevCZ,
				Start: uint32(runStart),
				Count: uint32(i - runStart),
			})
			runStart = i
			if !atEnd {
				prevCX, prevCZ = cx, cz
			}
		}
	}
	if uint32(len(cells)) != distinct {
		return nil, fmt.Errorf("grid: internal inconsistency, counted %d cells but built %d", distinct, len(cells))
	}

	// Step 5: allocate the hash table and chain every cell into its bucket.
	tableSize := tier.HashTableSizeFor(tierClass, uint64(len(cells)))
	table := make([]uint32, tableSize)
	mask := tableSize - 1
	for i := range cells {
		h := cellHash(cells[i].CX, cells[i].CZ) & mask
		cells[i].Next = table[h]
		table[h] = uint32(i) + 1
	}

	return &Index{Store: store, Cells: cells, HashTable: table, tableMask: mask}, nil
}

// FindCell looks up the cell at (cx, cz), walking its hash bucket chain.
func (idx *Index) FindCell(cx, cz int32) (cellIndex int, ok bool) {
	if len(idx.HashTable) == 0 {
		return 0, false
	}
	h := cellHash(cx, cz) & idx.tableMask
	for head := idx.HashTable[h]; head != 0; {
		ci := int(head - 1)
		c := idx.Cells[ci]
		if c.CX == cx && c.CZ == cz {
			return ci, true
		}
		head = c.Next
	}
	return 0, false
}
