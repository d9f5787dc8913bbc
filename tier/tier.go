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

// Package tier picks the memory-configuration class a run uses before any
// point is loaded: record layout width, grid cell size multiplier, hash
// table cap, and per-worker neighbor buffer size. The choice is made once,
// from the estimated point count and the host's physical RAM, and is
// process-global for the run.
package tier

import (
	"fmt"
	"runtime"

	units "github.com/docker/go-units"
)

// Class is the memory-configuration class selected at startup.
type Class int

const (
	HIGH Class = iota
	BALANCED
	LOW
)

func (c Class) String() string {
	switch c {
	case HIGH:
		return "HIGH"
	case BALANCED:
		return "BALANCED"
	case LOW:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// averageBytesPerLine approximates the "-> (x,z)" input line, used to turn a
// raw file size into an estimated point count before any parsing happens.
const averageBytesPerLine = 35

// budgetFraction is the share of physical RAM a projected footprint must fit
// within for a tier to be selected.
const budgetFraction = 0.8

// recordBytes is the point-store element width for a tier: 24 bytes for
// HIGH/BALANCED (x, z, cx, cz precomputed), 8 bytes for LOW (x, z only).
func recordBytes(c Class) uint64 {
	if c == LOW {
		return 8
	}
	return 24
}

// cellBytes is the size of one grid-cell record: (cx, cz, start, count, next).
const cellBytes = 20

// neighborBufferSlots is the tier's per-worker neighbor-gather buffer
// capacity, in point indices.
func neighborBufferSlots(c Class) uint64 {
	switch c {
	case HIGH:
		return 262144
	case BALANCED:
		return 131072
	default:
		return 65536
	}
}

// hashTableCap is the maximum hash table size (power of two) for a tier.
func hashTableCap(c Class) uint64 {
	switch c {
	case HIGH:
		return 1 << 27
	case BALANCED:
		return 1 << 26
	default:
		return 1 << 24
	}
}

const hashTableFloor = 1 << 20

// fallbackRAM is assumed when the host's physical RAM cannot be queried.
const fallbackRAM = 8 << 30 // 8 GiB

// Config is the process-global memory-tier decision.
type Config struct {
	Class              Class
	CellMultiplier     int // cell size = CellMultiplier * radius
	RecordBytes        uint64
	NeighborBufferSize uint64
	HashTableSize      uint64 // chosen table size (power of two), not the cap
	EstimatedPoints    uint64
	PhysicalRAM        uint64
	Budget             uint64 // PhysicalRAM * budgetFraction
}

// EstimatePointCount derives N̂ from the raw input file size.
func EstimatePointCount(fileSizeBytes int64) uint64 {
	if fileSizeBytes <= 0 {
		return 0
	}
	return uint64(fileSizeBytes) / averageBytesPerLine
}

// HashTableSizeFor returns the smallest power of two >= 2*M, clamped to
// [hashTableFloor, hashTableCap(tier)].
func HashTableSizeFor(c Class, distinctCells uint64) uint64 {
	want := distinctCells * 2
	size := uint64(hashTableFloor)
	for size < want {
		size <<= 1
	}
	if cap := hashTableCap(c); size > cap {
		size = cap
	}
	if size < hashTableFloor {
		size = hashTableFloor
	}
	return size
}

// projectedFootprint estimates worst-case resident bytes for a tier at a
// given point count, cell multiplier, and worker fan-out: point store +
// cell array + hash table at its cap + one neighbor buffer and one
// 4096-slot candidate array per worker. The cell array estimate shrinks
// with the square of the multiplier, not linearly: a cell spans
// `multiplier` radii on each of the 2 axes, so its footprint (and thus the
// distinct-cell count for a roughly uniform point density) scales with
// multiplier², matching the original C implementation's
// `estimated_structures / (multiplier*multiplier)` cell estimate
// (groupfinder.c). Doubling the multiplier without this term would leave
// the projection unchanged and make the LOW-tier "double until it fits"
// loop in Choose a no-op.
func projectedFootprint(c Class, n uint64, multiplier uint64, workers uint64) uint64 {
	points := n * recordBytes(c)
	cellCount := n / (multiplier * multiplier)
	if cellCount == 0 && n > 0 {
		cellCount = 1
	}
	cells := cellCount * cellBytes
	hashTable := hashTableCap(c) * 4
	perWorker := neighborBufferSlots(c)*4 + 4096*8
	return points + cells + hashTable + perWorker*workers
}

// workerAllowance is the worst-case worker count assumed during tiering:
// Choose does not take the worker count the user entered, and assumes one
// worker per CPU instead. Capped at the documented maximum of 256.
func workerAllowance() uint64 {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}
	return uint64(n)
}

// Choose selects the highest tier whose projected footprint fits the
// physical-RAM budget; otherwise LOW, doubling the cell multiplier until it
// fits or the multiplier reaches 16 (after which it proceeds regardless).
func Choose(estimatedPoints uint64, physicalRAM uint64) Config {
	budget := uint64(float64(physicalRAM) * budgetFraction)
	workers := workerAllowance()

	for _, c := range []Class{HIGH, BALANCED} {
		m := uint64(multiplierFor(c, 0))
		if projectedFootprint(c, estimatedPoints, m, workers) <= budget {
			return Config{
				Class:              c,
				CellMultiplier:     int(m),
				RecordBytes:        recordBytes(c),
				NeighborBufferSize: neighborBufferSlots(c),
				EstimatedPoints:    estimatedPoints,
				PhysicalRAM:        physicalRAM,
				Budget:             budget,
			}
		}
	}

	multiplier := uint64(4)
	for multiplier < 16 && projectedFootprint(LOW, estimatedPoints, multiplier, workers) > budget {
		multiplier *= 2
	}
	return Config{
		Class:              LOW,
		CellMultiplier:     int(multiplier),
		RecordBytes:        recordBytes(LOW),
		NeighborBufferSize: neighborBufferSlots(LOW),
		EstimatedPoints:    estimatedPoints,
		PhysicalRAM:        physicalRAM,
		Budget:             budget,
	}
}

func multiplierFor(c Class, low int) int {
	switch c {
	case HIGH:
		return 1
	case BALANCED:
		return 2
	default:
		return low
	}
}

// Summary renders the interactive configuration printout from spec.md §6
// item 2: detected RAM, budget, chosen tier, multiplier, record size.
func (cfg Config) Summary() string {
	return fmt.Sprintf(
		"Detected RAM: %s\nBudget (80%%): %s\nTier: %s\nCell multiplier: %d\nRecord size: %d bytes\nEstimated points: %d",
		units.BytesSize(float64(cfg.PhysicalRAM)),
		units.BytesSize(float64(cfg.Budget)),
		cfg.Class,
		cfg.CellMultiplier,
		cfg.RecordBytes,
		cfg.EstimatedPoints,
	)
}
