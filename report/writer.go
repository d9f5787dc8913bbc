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

package report

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/launix-de/groupfinder/points"
)

// Writer formats and serializes the spec.md §6 report: a header, one block
// per emitted group, and a summary footer written after every worker joins.
// WriteGroup and WriteSummary are safe for concurrent use — it is the "output_lock" critical
// section from spec.md §5, guarding the one shared file handle.
type Writer struct {
	mu    sync.Mutex
	out   io.Writer
	store *points.Store
}

// NewWriter wraps out (already opened via a Sink) and writes the spec.md §6
// header immediately.
func NewWriter(out io.Writer, store *points.Store, inputPath string, radius int64, n int64) (*Writer, error) {
	w := &Writer{out: out, store: store}
	_, err := fmt.Fprintf(out, "Structure groups within %d block radius\nInput: %s\nStructures: %d\n\n", radius, inputPath, n)
	return w, err
}

// round1 formats f rounded to one decimal using decimal.NewFromFloat so the
// displayed value is deterministically and correctly rounded, rather than
// relying on %.1f's binary-float rounding (SPEC_FULL.md §4.6). StringFixed
// keeps exactly one digit after the point even when it is zero, matching
// the "1 decimal" display convention of spec.md §6.
func round1(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(1)
}

// WriteGroup formats and emits one group of 3 or 4 point indices. Callers
// must serialize through a single Writer — this method itself is safe for
// concurrent calls from multiple worker goroutines.
func (w *Writer) WriteGroup(indices []int) error {
	var sx, sz float64
	for _, i := range indices {
		p := w.store.At(i)
		sx += float64(p.X)
		sz += float64(p.Z)
	}
	k := float64(len(indices))
	cx, cz := sx/k, sz/k

	var maxDist float64
	for _, i := range indices {
		p := w.store.At(i)
		dx := float64(p.X) - cx
		dz := float64(p.Z) - cz
		if d := math.Sqrt(dx*dx + dz*dz); d > maxDist {
			maxDist = d
		}
	}
	originDist := math.Sqrt(cx*cx + cz*cz)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintf(w.out, "Group of %d:\n", len(indices)); err != nil {
		return err
	}
	for _, i := range indices {
		p := w.store.At(i)
		if _, err := fmt.Fprintf(w.out, "  (%d, %d)\n", p.X, p.Z); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w.out, "  Center: (%s, %s)\n", round1(cx), round1(cz)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.out, "  Max distance from center: %s blocks\n", round1(maxDist)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.out, "  Distance from spawn: %s blocks\n\n", round1(originDist)); err != nil {
		return err
	}
	return nil
}

// WriteSummary writes the footer after all workers join.
func (w *Writer) WriteSummary(groups3, groups4 int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintf(w.out, "\n=== Summary ===\nGroups of 3: %d\nGroups of 4: %d\n", groups3, groups4)
	return err
}
