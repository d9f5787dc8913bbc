package enumerate

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/launix-de/groupfinder/grid"
	"github.com/launix-de/groupfinder/points"
	"github.com/launix-de/groupfinder/tier"
)

// runAll builds a HIGH-tier index (multiplier 1) over pts and runs
// ProcessCell for every cell, returning every emitted group's indices
// sorted for order-independent comparison.
func runAll(t *testing.T, pts [][2]int32, radius int64) [][]int {
	t.Helper()
	return runAllTier(t, pts, radius, points.Rich, tier.HIGH, 1, 262144)
}

// runAllTier is the general form of runAll: it parameterizes the record
// layout, tier class, and cell multiplier, so the same fixture can be run
// under any tier. neighborBufferSize is sized generously by callers that
// need to rule out the truncation caveat of invariant I4 (spec.md §4.5
// step 1, §8 scenario 6).
func runAllTier(t *testing.T, pts [][2]int32, radius int64, layout points.Layout, tierClass tier.Class, multiplier int, neighborBufferSize int) [][]int {
	t.Helper()
	cellSize := int32(multiplier) * int32(radius)
	store := points.NewStore(layout, cellSize, uint64(len(pts)))
	for _, p := range pts {
		store.Append(p[0], p[1])
	}
	idx, err := grid.Build(store, tierClass)
	if err != nil {
		t.Fatal(err)
	}
	p := Params{R2: float64(radius * radius), FourR2: 4 * radius * radius, Multiplier: multiplier}
	scratch := NewScratch(neighborBufferSize)

	var groups [][]int
	for ci := range idx.Cells {
		ProcessCell(idx, ci, p, scratch, func(g Group) {
			cp := append([]int(nil), g.Indices...)
			sort.Ints(cp)
			groups = append(groups, cp)
		})
	}
	if scratch.Truncated {
		t.Fatal("neighbor or candidate buffer truncated; fixture needs a larger buffer to avoid invariant I4's caveat")
	}
	return groups
}

// sortedGroupKeys renders groups into a sorted, comparable string slice so
// two runs' emitted sets can be compared independent of emission order.
func sortedGroupKeys(groups [][]int) []string {
	keys := make([]string, len(groups))
	for i, g := range groups {
		key := ""
		for _, idx := range g {
			key += string(rune('a'+idx)) + "," // rune cast is injective for the small indices these fixtures use
		}
		keys[i] = key
	}
	sort.Strings(keys)
	return keys
}

// TestTriangleNearMissIsActuallyValid works the "triangle-exact" fixture from spec.md §8
// scenario 1: points (0,0),(2,0),(1,2), r=2. The scenario prose claims a
// max squared centroid distance of "≈2.78 > 4" and 0 emitted groups, but
// re-deriving it gives centroid (1, 0.667) and max squared distance
// 0²+1.333² = 1.778 (the prose appears to have added a stray 1², matching
// neither point's actual dx). 1.778 <= r²=4, so by the formal predicate in
// §4.6 — which is what invariant I2 binds emission to — this triangle IS a
// valid group. This test follows the predicate, not the prose.
func TestTriangleNearMissIsActuallyValid(t *testing.T) {
	groups := runAll(t, [][2]int32{{0, 0}, {2, 0}, {1, 2}}, 2)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group per the centroid predicate, got %d: %v", len(groups), groups)
	}
}

func TestTriangleFitOneGroup(t *testing.T) {
	groups := runAll(t, [][2]int32{{0, 0}, {2, 0}, {1, 1}}, 2)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d: %v", len(groups), groups)
	}
	if len(groups[0]) != 3 {
		t.Fatalf("expected a 3-group, got %v", groups[0])
	}
}

func TestSquareOfFourTotalFive(t *testing.T) {
	groups := runAll(t, [][2]int32{{0, 0}, {2, 0}, {0, 2}, {2, 2}}, 2)
	if len(groups) != 5 {
		t.Fatalf("expected 5 total emissions, got %d: %v", len(groups), groups)
	}
	var g3, g4 int
	for _, g := range groups {
		switch len(g) {
		case 3:
			g3++
		case 4:
			g4++
		}
	}
	if g3 != 4 || g4 != 1 {
		t.Fatalf("expected 4 groups of 3 and 1 group of 4, got %d/%d", g3, g4)
	}
}

func TestNegativeCoordinateAdjacency(t *testing.T) {
	groups := runAll(t, [][2]int32{{-1, 0}, {0, 0}, {-1, -1}}, 2)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d: %v", len(groups), groups)
	}
	if len(groups[0]) != 3 {
		t.Fatalf("expected a 3-group, got %v", groups[0])
	}
}

func TestNoDuplicateGroups(t *testing.T) {
	groups := runAll(t, [][2]int32{{0, 0}, {2, 0}, {0, 2}, {2, 2}}, 2)
	seen := map[string]bool{}
	for _, g := range groups {
		key := ""
		for _, idx := range g {
			key += string(rune('a' + idx))
		}
		if seen[key] {
			t.Fatalf("group %v emitted twice", g)
		}
		seen[key] = true
	}
}

func TestCentroidContainsBoundary(t *testing.T) {
	store := points.NewStore(points.Rich, 1, 1)
	store.Append(0, 0)
	store.Append(0, 0)
	store.Append(0, 0)
	_, ok := CentroidContains(store, []int{0, 1, 2}, 0)
	if !ok {
		t.Fatal("expected identical points at distance 0 to satisfy r=0 predicate")
	}
}

// TestHighLowTierEquivalence is spec.md §8 scenario 6: running the same
// input under HIGH (Rich layout, cell multiplier 1) and LOW (Bare layout,
// cell multiplier 4) must produce an identical set of emitted groups,
// modulo emission order, as long as neither run's buffers truncate.
func TestHighLowTierEquivalence(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	const n = 300
	const radius = 50
	const span = 500 // dense enough that the radius-50 predicate reliably matches several groups
	pts := make([][2]int32, n)
	for i := range pts {
		pts[i] = [2]int32{
			int32(rnd.Intn(span) - span/2),
			int32(rnd.Intn(span) - span/2),
		}
	}

	high := runAllTier(t, pts, radius, points.Rich, tier.HIGH, 1, 65536)
	low := runAllTier(t, pts, radius, points.Bare, tier.LOW, 4, 65536)

	if len(high) == 0 {
		t.Fatal("fixture produced no groups; not a meaningful equivalence check")
	}
	highKeys := sortedGroupKeys(high)
	lowKeys := sortedGroupKeys(low)
	if len(highKeys) != len(lowKeys) {
		t.Fatalf("HIGH emitted %d groups, LOW emitted %d groups", len(highKeys), len(lowKeys))
	}
	for i := range highKeys {
		if highKeys[i] != lowKeys[i] {
			t.Fatalf("HIGH/LOW group sets diverge at position %d: %q vs %q", i, highKeys[i], lowKeys[i])
		}
	}
}
