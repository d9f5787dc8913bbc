package tier

import "testing"

func TestEstimatePointCount(t *testing.T) {
	if got := EstimatePointCount(350); got != 10 {
		t.Fatalf("expected 10 points, got %d", got)
	}
	if got := EstimatePointCount(0); got != 0 {
		t.Fatalf("expected 0 points for empty file, got %d", got)
	}
}

func TestChooseHighTierOnAbundantRAM(t *testing.T) {
	cfg := Choose(1_000_000, 64<<30)
	if cfg.Class != HIGH {
		t.Fatalf("expected HIGH tier for small N with 64GiB RAM, got %v", cfg.Class)
	}
	if cfg.CellMultiplier != 1 {
		t.Fatalf("expected multiplier 1 for HIGH tier, got %d", cfg.CellMultiplier)
	}
	if cfg.RecordBytes != 24 {
		t.Fatalf("expected 24-byte records for HIGH tier, got %d", cfg.RecordBytes)
	}
}

func TestChooseLowTierOnScarceRAM(t *testing.T) {
	cfg := Choose(5_000_000_000, 4<<30)
	if cfg.Class != LOW {
		t.Fatalf("expected LOW tier for huge N with 4GiB RAM, got %v", cfg.Class)
	}
	if cfg.RecordBytes != 8 {
		t.Fatalf("expected 8-byte records for LOW tier, got %d", cfg.RecordBytes)
	}
	if cfg.CellMultiplier < 4 {
		t.Fatalf("expected multiplier >= 4 for LOW tier, got %d", cfg.CellMultiplier)
	}
}

func TestChooseLowTierMultiplierCapsAtSixteen(t *testing.T) {
	cfg := Choose(500_000_000_000, 1<<20) // absurdly constrained RAM
	if cfg.Class != LOW {
		t.Fatalf("expected LOW tier, got %v", cfg.Class)
	}
	if cfg.CellMultiplier != 16 {
		t.Fatalf("expected multiplier to cap at 16, got %d", cfg.CellMultiplier)
	}
}

func TestHashTableSizeForFloorAndCap(t *testing.T) {
	if got := HashTableSizeFor(HIGH, 10); got != hashTableFloor {
		t.Fatalf("expected hash table to floor at %d, got %d", hashTableFloor, got)
	}
	if got := HashTableSizeFor(LOW, 1<<30); got != hashTableCap(LOW) {
		t.Fatalf("expected hash table to cap at %d for LOW, got %d", hashTableCap(LOW), got)
	}
}

func TestDetectPhysicalRAMIsPositive(t *testing.T) {
	if DetectPhysicalRAM() == 0 {
		t.Fatal("expected a nonzero physical RAM reading or fallback")
	}
}
