package grid

import (
	"testing"

	"github.com/launix-de/groupfinder/points"
	"github.com/launix-de/groupfinder/tier"
)

func buildStore(t *testing.T, cellSize int32, pts [][2]int32) *points.Store {
	t.Helper()
	s := points.NewStore(points.Rich, cellSize, uint64(len(pts)))
	for _, p := range pts {
		s.Append(p[0], p[1])
	}
	return s
}

func TestBuildEmptyStore(t *testing.T) {
	s := points.NewStore(points.Rich, 2, 0)
	idx, err := Build(s, tier.HIGH)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Cells) != 0 {
		t.Fatalf("expected no cells for empty store, got %d", len(idx.Cells))
	}
}

func TestBuildProducesOneCellPerDistinctCoordinate(t *testing.T) {
	s := buildStore(t, 2, [][2]int32{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {100, 100}})
	// cellSize 2: (0,0)&(1,0) -> cell (0,0); (2,0)&(3,0) -> cell (1,0); (100,100) -> cell (50,50)
	idx, err := Build(s, tier.HIGH)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Cells) != 3 {
		t.Fatalf("expected 3 distinct cells, got %d", len(idx.Cells))
	}
	total := uint32(0)
	for _, c := range idx.Cells {
		total += c.Count
	}
	if total != 5 {
		t.Fatalf("expected cell counts to sum to 5, got %d", total)
	}
}

func TestFindCellRoundTrips(t *testing.T) {
	s := buildStore(t, 1, [][2]int32{{-1, 0}, {0, 0}, {-1, -1}})
	idx, err := Build(s, tier.HIGH)
	if err != nil {
		t.Fatal(err)
	}
	ci, ok := idx.FindCell(-1, 0)
	if !ok {
		t.Fatal("expected to find cell (-1,0)")
	}
	if idx.Cells[ci].CX != -1 || idx.Cells[ci].CZ != 0 {
		t.Fatalf("found wrong cell: %+v", idx.Cells[ci])
	}
	if _, ok := idx.FindCell(99, 99); ok {
		t.Fatal("expected absent cell to report not found")
	}
}

func TestCellsCoverContiguousRanges(t *testing.T) {
	s := buildStore(t, 5, [][2]int32{{0, 0}, {1, 1}, {10, 10}, {11, 11}, {0, 1}})
	idx, err := Build(s, tier.HIGH)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range idx.Cells {
		for i := c.Start; i < c.Start+c.Count; i++ {
			cx, cz := s.CellAt(int(i))
			if cx != c.CX || cz != c.CZ {
				t.Fatalf("point %d at (cx=%d,cz=%d) not in expected cell (%d,%d)", i, cx, cz, c.CX, c.CZ)
			}
		}
	}
}
