package workpool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/launix-de/groupfinder/enumerate"
	"github.com/launix-de/groupfinder/grid"
	"github.com/launix-de/groupfinder/points"
	"github.com/launix-de/groupfinder/tier"
)

func buildIndex(t *testing.T, cellSize int32, pts [][2]int32) *grid.Index {
	t.Helper()
	s := points.NewStore(points.Rich, cellSize, uint64(len(pts)))
	for _, p := range pts {
		s.Append(p[0], p[1])
	}
	idx, err := grid.Build(s, tier.HIGH)
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func runAndCollect(t *testing.T, idx *grid.Index, r int64, workers int) (int, int, []string) {
	t.Helper()
	params := enumerate.Params{R2: float64(r * r), FourR2: 4 * r * r, Multiplier: 1}
	var groups []string
	res, err := Run(context.Background(), idx, params, 4096, workers, &Counter{}, nil, func(g enumerate.Group) error {
		groups = append(groups, fmt.Sprint(g.Indices))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(groups)
	return res.Groups3, res.Groups4, groups
}

func TestSquareOfFourScenario(t *testing.T) {
	idx := buildIndex(t, 1, [][2]int32{{0, 0}, {2, 0}, {0, 2}, {2, 2}})
	g3, g4, _ := runAndCollect(t, idx, 2, 1)
	if g4 != 1 {
		t.Fatalf("expected 1 group of 4, got %d", g4)
	}
	if g3 != 4 {
		t.Fatalf("expected 4 groups of 3, got %d", g3)
	}
}

func TestDeterminismAcrossThreadCounts(t *testing.T) {
	pts := [][2]int32{}
	for i := int32(0); i < 30; i++ {
		pts = append(pts, [2]int32{i % 6, i / 6})
	}
	idx := buildIndex(t, 1, pts)

	_, _, groupsT1 := runAndCollect(t, idx, 2, 1)
	_, _, groupsT8 := runAndCollect(t, idx, 2, 8)

	if len(groupsT1) != len(groupsT8) {
		t.Fatalf("group count differs across thread counts: %d vs %d", len(groupsT1), len(groupsT8))
	}
	for i := range groupsT1 {
		if groupsT1[i] != groupsT8[i] {
			t.Fatalf("group sets differ at %d: %s vs %s", i, groupsT1[i], groupsT8[i])
		}
	}
}

func TestEmitFailureCancelsRemainingWork(t *testing.T) {
	pts := [][2]int32{}
	for i := int32(0); i < 20; i++ {
		pts = append(pts, [2]int32{i, 0})
	}
	idx := buildIndex(t, 1, pts)
	params := enumerate.Params{R2: 4, FourR2: 16, Multiplier: 1}

	boom := errors.New("write failed")
	_, err := Run(context.Background(), idx, params, 4096, 4, &Counter{}, nil, func(g enumerate.Group) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected emit error to propagate, got %v", err)
	}
}

func TestEmptyIndexProducesNoGroups(t *testing.T) {
	idx := buildIndex(t, 1, nil)
	g3, g4, _ := runAndCollect(t, idx, 2, 4)
	if g3 != 0 || g4 != 0 {
		t.Fatalf("expected no groups for empty index, got %d/%d", g3, g4)
	}
}
