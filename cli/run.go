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

package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dc0d/onexit"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/launix-de/groupfinder/enumerate"
	"github.com/launix-de/groupfinder/grid"
	"github.com/launix-de/groupfinder/ingest"
	"github.com/launix-de/groupfinder/points"
	"github.com/launix-de/groupfinder/report"
	"github.com/launix-de/groupfinder/progress"
	"github.com/launix-de/groupfinder/tier"
	"github.com/launix-de/groupfinder/workpool"
)

// Main runs the full Configure → Load → Index → Enumerate → Report pipeline
// and returns the process exit code (0 success, 1 fatal error — spec.md
// §6/§7). stdin/stdout/stderr are the wizard's and progress reporter's
// terminal; args is the flag argument list (os.Args[1:]).
func Main(args []string) int {
	flags, err := ParseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder:", err)
		return 1
	}

	runID := newRunID()
	fmt.Fprintln(os.Stderr, "Run:", runID)

	answers, err := RunWizard()
	if err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder:", err)
		return 1
	}

	if flags.InputWait {
		if err := ingest.WaitForStableInput(answers.InputPath); err != nil {
			fmt.Fprintln(os.Stderr, "groupfinder: waiting for stable input:", err)
			return 1
		}
	}

	fi, err := os.Stat(answers.InputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder: input file unreadable:", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Fprintln(os.Stderr, "groupfinder: input file is empty")
		return 1
	}

	estimated := tier.EstimatePointCount(fi.Size())
	ram := tier.DetectPhysicalRAM()
	cfg := tier.Choose(estimated, ram)
	printConfigSummary(os.Stderr, cfg.Summary())

	layout := points.Rich
	if cfg.Class == tier.LOW {
		layout = points.Bare
	}
	cellSize := int32(cfg.CellMultiplier) * int32(answers.Radius)
	if cellSize <= 0 {
		cellSize = 1
	}
	store := points.NewStore(layout, cellSize, cfg.EstimatedPoints)

	if _, err := loadPoints(flags, answers.InputPath, store); err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder: loading points:", err)
		return 1
	}

	idx, err := grid.Build(store, cfg.Class)
	if err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder: building index:", err)
		return 1
	}

	sink := flags.Sink()
	reportName := fmt.Sprintf("groups_%d.txt", answers.Radius)
	rawOut, err := sink.Create(reportName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder: creating output:", err)
		return 1
	}
	out, err := report.WrapCompressor(rawOut, flags.Compression())
	if err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder: wrapping output compressor:", err)
		rawOut.Close()
		return 1
	}

	var closeOnce sync.Once
	closeOutput := func() { closeOnce.Do(func() { out.Close() }) }
	onexit.Register(closeOutput)
	defer closeOutput()

	writer, err := report.NewWriter(out, store, answers.InputPath, answers.Radius, int64(store.Len()))
	if err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder: writing report header:", err)
		return 1
	}

	var sorted *report.SortedEmitter
	if flags.SortedOut {
		sorted = report.NewSortedEmitter()
	}

	params := enumerate.Params{
		R2:         float64(answers.Radius) * float64(answers.Radius),
		FourR2:     4 * answers.Radius * answers.Radius,
		Multiplier: cfg.CellMultiplier,
	}
	counter := &workpool.Counter{}
	stats := workpool.NewStats()
	onexit.Register(func() { _ = stats.Snapshot() })

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		progress.Run(gctx, os.Stderr, counter, len(idx.Cells))
		return nil
	})

	if flags.ProgressWS != "" {
		g.Go(func() error {
			return progress.Serve(gctx, flags.ProgressWS, func() any { return stats.Snapshot() })
		})
	}

	var result workpool.Result
	g.Go(func() error {
		defer cancelRun()
		emit := workpool.EmitFunc(func(grp enumerate.Group) error {
			if sorted != nil {
				sorted.Add(grp.Indices)
				return nil
			}
			return writer.WriteGroup(grp.Indices)
		})
		r, err := workpool.Run(gctx, idx, params, int(cfg.NeighborBufferSize), answers.Workers, counter, stats, emit)
		result = r
		return err
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder: enumeration failed:", err)
		return 1
	}

	if sorted != nil {
		if err := sorted.Flush(writer); err != nil {
			fmt.Fprintln(os.Stderr, "groupfinder: flushing sorted output:", err)
			return 1
		}
	}
	if err := writer.WriteSummary(result.Groups3, result.Groups4); err != nil {
		fmt.Fprintln(os.Stderr, "groupfinder: writing summary:", err)
		return 1
	}
	closeOutput()

	if result.Truncated {
		fmt.Fprintln(os.Stderr, "groupfinder: warning: a neighbor or candidate buffer was truncated; some groups may be missing")
	}
	return 0
}

// loadPoints dispatches to the selected ingest source, feeding every point
// into store.Append. The tier estimate (byte-size based) only applies to
// the text source; database sources proceed with whatever capacity Store
// was already given, growing past it via normal append semantics.
func loadPoints(flags Flags, path string, store *points.Store) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 24*time.Hour)
	defer cancel()

	switch flags.Source {
	case "mysql":
		return ingest.LoadMySQL(ctx, flags.DSN, flags.Table, store.Append)
	case "postgres":
		return ingest.LoadPostgres(ctx, flags.DSN, flags.Table, store.Append)
	default:
		f, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		return ingest.LoadText(f, store.Append)
	}
}

// newRunID generates the run-correlation UUID that Main prints to stderr at
// startup — this tool runs once per process, not per row, so
// google/uuid's cryptographically seeded NewRandom() is cheap enough to use
// directly rather than the engine's own low-entropy-avoiding fast_uuid trick.
func newRunID() uuid.UUID {
	id, err := uuid.NewRandom()
	if err != nil {
		// Extremely unlikely (crypto/rand failure); retry once through
		// uuid.New, which panics if crypto/rand fails again.
		return uuid.New()
	}
	return id
}
