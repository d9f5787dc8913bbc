package points

import "testing"

func TestFloorDivCellNegativeAdjacency(t *testing.T) {
	cx, _ := FloorDivCell(-1, 0, 10)
	if cx != -1 {
		t.Fatalf("expected cell(-1, s=10) == -1, got %d", cx)
	}
	cx, _ = FloorDivCell(0, 0, 10)
	if cx != 0 {
		t.Fatalf("expected cell(0, s=10) == 0, got %d", cx)
	}
	cx, _ = FloorDivCell(-10, 0, 10)
	if cx != -1 {
		t.Fatalf("expected cell(-10, s=10) == -1, got %d", cx)
	}
	cx, _ = FloorDivCell(-11, 0, 10)
	if cx != -2 {
		t.Fatalf("expected cell(-11, s=10) == -2, got %d", cx)
	}
}

func TestAppendGrowsAndPreservesOrder(t *testing.T) {
	s := NewStore(Rich, 2, 2)
	for i := int32(0); i < 100; i++ {
		s.Append(i, -i)
	}
	if s.Len() != 100 {
		t.Fatalf("expected 100 points, got %d", s.Len())
	}
	for i := 0; i < 100; i++ {
		p := s.At(i)
		if p.X != int32(i) || p.Z != -int32(i) {
			t.Fatalf("point %d corrupted: %+v", i, p)
		}
	}
}

func TestRichStorePrecomputesCellCoords(t *testing.T) {
	s := NewStore(Rich, 4, 4)
	s.Append(5, -5)
	cx, cz := s.CellAt(0)
	if cx != 1 || cz != -2 {
		t.Fatalf("expected cell (1,-2), got (%d,%d)", cx, cz)
	}
}

func TestBareStoreRecomputesCellCoords(t *testing.T) {
	s := NewStore(Bare, 4, 4)
	s.Append(5, -5)
	cx, cz := s.CellAt(0)
	if cx != 1 || cz != -2 {
		t.Fatalf("expected cell (1,-2), got (%d,%d)", cx, cz)
	}
}

func TestLessOrdersByCellMajor(t *testing.T) {
	s := NewStore(Rich, 1, 4)
	s.Append(2, 0) // cell (2,0)
	s.Append(0, 5) // cell (0,5)
	s.Append(0, 0) // cell (0,0)
	if !s.Less(2, 0) {
		t.Fatal("expected cell (0,0) to sort before cell (2,0)")
	}
	if !s.Less(2, 1) {
		t.Fatal("expected cell (0,0) to sort before cell (0,5)")
	}
	if s.Less(0, 2) {
		t.Fatal("expected cell (2,0) not to sort before cell (0,0)")
	}
}

func TestSwap(t *testing.T) {
	s := NewStore(Bare, 1, 2)
	s.Append(1, 1)
	s.Append(2, 2)
	s.Swap(0, 1)
	if s.At(0).X != 2 || s.At(1).X != 1 {
		t.Fatal("swap did not exchange points")
	}
}
