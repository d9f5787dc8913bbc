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

// Package enumerate is the hot path: for every base point, gather neighbor
// candidates within the diameter bound and test every 3- and 4-subset
// against the centroid predicate, under the n > base ordering that
// guarantees each group is emitted exactly once.
package enumerate

import (
	"github.com/launix-de/groupfinder/grid"
)

// maxCandidates is the stack-array cap on the per-base candidate list
// (spec.md §4.5 step 3).
const maxCandidates = 4096

// Params are the radius-derived constants shared by every cell.
type Params struct {
	R2         float64 // r*r in double precision, for the centroid predicate
	FourR2     int64   // 4*r*r, the diameter prune bound, in integer squared-distance units
	Multiplier int     // cell size multiplier (1,2,4,8,16)
}

// RingWidth is w = floor((multiplier+1)/2) + 1 from spec.md §4.5: the
// neighbor-gather search radius in cells, guaranteeing every candidate
// within 2r of the base is visited.
func (p Params) RingWidth() int {
	return (p.Multiplier+1)/2 + 1
}

// Scratch holds one worker's reusable buffers: a neighbor-gather buffer
// (tier-sized) and a fixed 4096-slot candidate array. These are allocated
// once per worker and never grown in the hot loop.
type Scratch struct {
	Neighbors  []int // len 0, cap == tier neighbor buffer size
	Candidates [maxCandidates]int
	Truncated  bool // set when either buffer was capped this run
}

// NewScratch allocates a Scratch with the given neighbor-buffer capacity.
func NewScratch(neighborBufferSize int) *Scratch {
	return &Scratch{Neighbors: make([]int, 0, neighborBufferSize)}
}

// Group is one emitted 3- or 4-subset, base first, then candidates in
// ascending index order — the within-thread emission order of spec.md §5.
type Group struct {
	Indices []int
}

// Emit receives one valid group. ProcessCell passes a freshly allocated
// Group.Indices slice on every call, so implementations may retain it.
type Emit func(Group)

// ProcessCell runs the full per-cell algorithm of spec.md §4.5 over one
// grid cell, emitting every valid group it finds, and returns the number of
// 3- and 4-groups emitted from this cell.
func ProcessCell(idx *grid.Index, cellIndex int, p Params, scratch *Scratch, emit Emit) (groups3, groups4 int) {
	cell := idx.Cells[cellIndex]
	store := idx.Store
	w := p.RingWidth()

	// 1. Neighbor gather: concatenate point indices from every cell within
	// w rings, capped at the scratch buffer's capacity (soft cap).
	scratch.Neighbors = scratch.Neighbors[:0]
	bufCap := cap(scratch.Neighbors)
gather:
	for dx := -w; dx <= w; dx++ {
		for dz := -w; dz <= w; dz++ {
			ci, ok := idx.FindCell(cell.CX+int32(dx), cell.CZ+int32(dz))
			if !ok {
				continue
			}
			nc := idx.Cells[ci]
			for i := uint32(0); i < nc.Count; i++ {
				if len(scratch.Neighbors) >= bufCap {
					scratch.Truncated = true
					break gather
				}
				scratch.Neighbors = append(scratch.Neighbors, int(nc.Start+i))
			}
		}
	}

	var group3, group4 [4]int // reused indices buffers: [0]=base always

	for ci := uint32(0); ci < cell.Count; ci++ {
		base := int(cell.Start + ci)

		// 3. Candidate filter: neighbors strictly greater than base and
		// within the diameter bound, capped at 4096.
		nCand := 0
		for _, n := range scratch.Neighbors {
			if n <= base {
				continue
			}
			if distSquared(store, base, n) > p.FourR2 {
				continue
			}
			if nCand >= maxCandidates {
				scratch.Truncated = true
				break
			}
			scratch.Candidates[nCand] = n
			nCand++
		}
		cands := scratch.Candidates[:nCand]

		// 4. Enumerate 4-subsets.
		for i := 0; i < nCand; i++ {
			ci4 := cands[i]
			if distSquared(store, base, ci4) > p.FourR2 {
				continue
			}
			for j := i + 1; j < nCand; j++ {
				cj4 := cands[j]
				if distSquared(store, ci4, cj4) > p.FourR2 {
					continue
				}
				for k := j + 1; k < nCand; k++ {
					ck4 := cands[k]
					if distSquared(store, ci4, ck4) > p.FourR2 {
						continue
					}
					if distSquared(store, cj4, ck4) > p.FourR2 {
						continue
					}
					group4[0], group4[1], group4[2], group4[3] = base, ci4, cj4, ck4
					if _, ok := CentroidContains(store, group4[:], p.R2); ok {
						emit(Group{Indices: append([]int(nil), group4[:]...)})
						groups4++
					}
				}
			}
		}

		// 5. Enumerate 3-subsets.
		for i := 0; i < nCand; i++ {
			ci3 := cands[i]
			for j := i + 1; j < nCand; j++ {
				cj3 := cands[j]
				if distSquared(store, ci3, cj3) > p.FourR2 {
					continue
				}
				group3[0], group3[1], group3[2] = base, ci3, cj3
				if _, ok := CentroidContains(store, group3[:3], p.R2); ok {
					emit(Group{Indices: append([]int(nil), group3[:3]...)})
					groups3++
				}
			}
		}
	}

	return groups3, groups4
}
