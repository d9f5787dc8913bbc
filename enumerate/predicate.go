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

package enumerate

import "github.com/launix-de/groupfinder/points"

// distSquared returns the squared distance between two points as an int64.
// Coordinates fit in int32, so their difference and its square always fit
// in int64 — no overflow hazard.
func distSquared(store *points.Store, a, b int) int64 {
	pa, pb := store.At(a), store.At(b)
	dx := int64(pa.X) - int64(pb.X)
	dz := int64(pa.Z) - int64(pb.Z)
	return dx*dx + dz*dz
}

// Centroid is the double-precision arithmetic mean of a group's points.
type Centroid struct {
	X, Z float64
}

// computeCentroid returns the double-precision mean of the given indices.
func computeCentroid(store *points.Store, indices []int) Centroid {
	var sx, sz float64
	for _, i := range indices {
		p := store.At(i)
		sx += float64(p.X)
		sz += float64(p.Z)
	}
	k := float64(len(indices))
	return Centroid{X: sx / k, Z: sz / k}
}

// containsAll reports whether every point's squared distance from c is
// <= r2 in double precision. Rounding exactly at the boundary is
// deterministic (floating-point comparison is deterministic for fixed
// inputs) but not otherwise specified, per spec.
func (c Centroid) containsAll(store *points.Store, indices []int, r2 float64) bool {
	for _, i := range indices {
		p := store.At(i)
		dx := float64(p.X) - c.X
		dz := float64(p.Z) - c.Z
		if dx*dx+dz*dz > r2 {
			return false
		}
	}
	return true
}

// CentroidContains is the group-validity predicate of spec.md §4.6: compute
// the centroid in double precision, then test every member's squared
// distance from it against r2 (also double precision).
func CentroidContains(store *points.Store, indices []int, r2 float64) (Centroid, bool) {
	c := computeCentroid(store, indices)
	return c, c.containsAll(store, indices, r2)
}
