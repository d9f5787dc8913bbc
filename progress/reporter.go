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

// Package progress polls the workpool's shared processed-cell counter every
// 500ms and redraws a single-line stderr status (spec.md §4.7), and
// optionally exposes a websocket endpoint publishing the same progress as
// JSON for remote monitoring of long runs.
package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// pollInterval is the progress thread's redraw cadence (spec.md §4.7).
const pollInterval = 500 * time.Millisecond

// Counter is the minimal interface the reporter needs from the shared
// processed-cell counter (workpool.Counter satisfies it).
type Counter interface {
	Done() int
}

// Run polls counter every pollInterval and redraws a single-line status to
// out until ctx is canceled (by the run finishing or by an errgroup sibling
// failing). total is the number of cells the run will process, for a
// percentage; it may be zero (unknown grid size isn't fatal, just omits the
// percentage).
func Run(ctx context.Context, out io.Writer, counter Counter, total int) {
	p := message.NewPrinter(language.English)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	redraw := func() {
		done := counter.Done()
		if total > 0 {
			pct := float64(done) / float64(total) * 100
			p.Fprintf(out, "\rprocessed %d/%d cells (%.1f%%)", done, total, pct)
		} else {
			p.Fprintf(out, "\rprocessed %d cells", done)
		}
	}

	for {
		select {
		case <-ctx.Done():
			redraw()
			fmt.Fprintln(out)
			return
		case <-ticker.C:
			redraw()
		}
	}
}
