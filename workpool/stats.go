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

package workpool

import (
	"github.com/launix-de/NonLockingReadMap"
)

// WorkerStat is one worker's last-reported snapshot, read lock-free by the
// optional progress websocket (the stderr status line reads Counter). It is a
// convenience view for reporters only — the authoritative processed-cell
// count for completion tracking is Counter, guarded by its own mutex.
type WorkerStat struct {
	WorkerID  int
	CellsDone int
	Groups3   int
	Groups4   int
}

// GetKey satisfies NonLockingReadMap.KeyGetter[int].
func (w WorkerStat) GetKey() int { return w.WorkerID }

// ComputeSize satisfies NonLockingReadMap.Sizable; the registry is tiny
// (one record per worker, capped at 256) so an approximate constant is fine.
func (w WorkerStat) ComputeSize() uint { return 32 }

// Stats is the lock-free registry of per-worker snapshots. Writes happen
// every ~256 cells from the owning worker goroutine only; reads happen
// concurrently from any reporter goroutine without blocking a worker.
type Stats struct {
	m NonLockingReadMap.NonLockingReadMap[WorkerStat, int]
}

// NewStats allocates an empty registry.
func NewStats() *Stats {
	s := &Stats{m: NonLockingReadMap.New[WorkerStat, int]()}
	return s
}

// Report publishes worker w's cumulative counts after processing n more
// cells since its last report.
func (s *Stats) Report(worker, groups3, groups4, cellsDoneDelta int) {
	prev := s.m.Get(worker)
	cellsDone := cellsDoneDelta
	if prev != nil {
		cellsDone += prev.CellsDone
	}
	stat := WorkerStat{WorkerID: worker, CellsDone: cellsDone, Groups3: groups3, Groups4: groups4}
	s.m.Set(&stat)
}

// Snapshot returns every worker's last-reported stat, in no particular
// order stability guarantee beyond what NonLockingReadMap provides (sorted
// by key, i.e. worker ID, ascending).
func (s *Stats) Snapshot() []WorkerStat {
	all := s.m.GetAll()
	out := make([]WorkerStat, len(all))
	for i, p := range all {
		out[i] = *p
	}
	return out
}
