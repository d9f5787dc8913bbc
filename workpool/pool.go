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

// Package workpool runs the indexed grid's cells through enumerate.ProcessCell
// across T worker goroutines, stride-partitioned by cell index modulo T, per
// spec.md §4.7. Each worker owns one enumerate.Scratch, allocated once before
// its loop starts; nothing in the hot loop allocates.
package workpool

import (
	"context"
	"sync"

	"github.com/jtolds/gls"

	"github.com/launix-de/groupfinder/enumerate"
	"github.com/launix-de/groupfinder/grid"
)

// Result is the merged outcome of a run: total group counts and whether any
// worker had to truncate a neighbor or candidate buffer.
type Result struct {
	Groups3   int
	Groups4   int
	Truncated bool
}

// Counter is the shared processed-cell counter the progress reporter polls
// (spec.md §5: "progress counter and its mutex: incremented once per cell
// processed"). It is intentionally a plain mutex-guarded integer, not an
// atomic, because the progress thread's 500ms poll interval makes lock
// contention irrelevant next to the enumeration hot loop.
type Counter struct {
	mu   sync.Mutex
	done int
}

func (c *Counter) add(n int) {
	c.mu.Lock()
	c.done += n
	c.mu.Unlock()
}

// Done returns the number of cells processed so far.
func (c *Counter) Done() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// EmitFunc receives one valid group from whichever worker goroutine found
// it and may fail (e.g. a serialized output-file write). Run serializes
// calls to it itself, so implementations need no locking of their own.
type EmitFunc func(enumerate.Group) error

// Run partitions idx.Cells across T workers by cellIndex % T, runs
// enumerate.ProcessCell over each worker's stride, and merges the results.
// When total cells <= workers, the stride clamp below effectively gives
// each worker exactly one cell — the same "one goroutine per unit of work"
// shape the storage engine this tool grew out of uses for its own small
// fan-outs, reached here without a separate code path. A group emit
// failure (e.g. output sink write error) cancels ctx so every worker
// observes it at its next cell boundary and returns early instead of
// grinding through doomed output; Run then returns the first such error.
func Run(ctx context.Context, idx *grid.Index, params enumerate.Params, neighborBufferSize int, workers int, counter *Counter, stats *Stats, emit EmitFunc) (Result, error) {
	if workers < 1 {
		workers = 1
	}
	total := len(idx.Cells)
	if workers > total && total > 0 {
		workers = total
	}
	if total == 0 {
		return Result{}, nil
	}

	innerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	results := make([]Result, workers)
	var emitMu sync.Mutex
	var errOnce sync.Once
	var firstErr error

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		gls.Go(func(w int) func() {
			return func() {
				defer wg.Done()
				scratch := enumerate.NewScratch(neighborBufferSize)
				r := &results[w]
				processedSinceReport := 0
				for ci := w; ci < total; ci += workers {
					select {
					case <-innerCtx.Done():
						return
					default:
					}
					g3, g4 := enumerate.ProcessCell(idx, ci, params, scratch, func(g enumerate.Group) {
						emitMu.Lock()
						err := emit(g)
						emitMu.Unlock()
						if err != nil {
							errOnce.Do(func() {
								firstErr = err
								cancel()
							})
						}
					})
					r.Groups3 += g3
					r.Groups4 += g4
					counter.add(1)
					processedSinceReport++
					if processedSinceReport >= 256 {
						if stats != nil {
							stats.Report(w, r.Groups3, r.Groups4, processedSinceReport)
						}
						processedSinceReport = 0
					}
				}
				if scratch.Truncated {
					r.Truncated = true
				}
				if stats != nil && processedSinceReport > 0 {
					stats.Report(w, r.Groups3, r.Groups4, processedSinceReport)
				}
			}
		}(w))
	}
	wg.Wait()

	var total3, total4 int
	var truncated bool
	for _, r := range results {
		total3 += r.Groups3
		total4 += r.Groups4
		truncated = truncated || r.Truncated
	}
	return Result{Groups3: total3, Groups4: total4, Truncated: truncated}, firstErr
}
