package griddetect

import (
	"fmt"
	"testing"
)

func TestDetect_RecoversCellSize(t *testing.T) {
	for _, cell := range []int{20, 40, 80, 120, 150} {
		t.Run(fmt.Sprintf("cell_%d", cell), func(t *testing.T) {
			spec := gridSpec{
				width:      cell * 6,
				height:     cell * 6,
				cell:       cell,
				offsetX:    cell / 4,
				offsetY:    cell / 3,
				background: 210,
				lineDepth:  90,
				noise:      6,
				seed:       int64(cell),
			}
			hyp, err := Detect(synthGrid(spec), DefaultConfig())
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if hyp.CellSize != cell {
				t.Fatalf("CellSize: got %d, want %d (snr %.2f)", hyp.CellSize, cell, hyp.SNR)
			}
			if d := offsetDistance(hyp.XOffset, spec.offsetX, cell); d > 1 {
				t.Errorf("XOffset: got %d, want %d +-1", hyp.XOffset, spec.offsetX)
			}
			if d := offsetDistance(hyp.YOffset, spec.offsetY, cell); d > 1 {
				t.Errorf("YOffset: got %d, want %d +-1", hyp.YOffset, spec.offsetY)
			}
			if !hyp.Confident() {
				t.Errorf("SNR %.2f, want above %.1f", hyp.SNR, ConfidentSNR)
			}
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	img := synthGrid(gridSpec{
		width: 320, height: 320, cell: 40, offsetX: 7, offsetY: 11,
		background: 200, lineDepth: 80, noise: 8, seed: 3,
	})

	first, err := Detect(img, DefaultConfig())
	if err != nil {
		t.Fatalf("first Detect failed: %v", err)
	}
	second, err := Detect(img, DefaultConfig())
	if err != nil {
		t.Fatalf("second Detect failed: %v", err)
	}
	if first != second {
		t.Errorf("detection not deterministic: %+v vs %+v", first, second)
	}
}

func TestDetect_FlatImage(t *testing.T) {
	hyp, err := Detect(synthFlat(300, 200, 180), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if hyp.Found() {
		t.Errorf("flat image produced a grid: %+v", hyp)
	}
	if hyp.XOffset != 0 || hyp.YOffset != 0 || hyp.SNR != 0 {
		t.Errorf("no-grid hypothesis not zeroed: %+v", hyp)
	}
}

func TestDetect_TinyImage(t *testing.T) {
	// Smaller than the differencing stride: expected "no grid", not an error.
	hyp, err := Detect(synthFlat(2, 2, 128), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if hyp.Found() {
		t.Errorf("2x2 image produced a grid: %+v", hyp)
	}
}

func TestDetect_InvalidConfig(t *testing.T) {
	img := synthFlat(50, 50, 128)
	tests := []struct {
		name string
		cfg  Config
	}{
		{"min above max", Config{MinCell: 150, MaxCell: 20, TopK: 10}},
		{"min equal max", Config{MinCell: 40, MaxCell: 40, TopK: 10}},
		{"min below one", Config{MinCell: 0, MaxCell: 150, TopK: 10}},
		{"zero top-k", Config{MinCell: 20, MaxCell: 150, TopK: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Detect(img, tt.cfg); err == nil {
				t.Errorf("Detect accepted invalid config %+v", tt.cfg)
			}
		})
	}
}

// A grid periodic on both axes must beat a stronger decorative texture that
// repeats on only one axis at a third of the cell size.
func TestDetect_PrefersTwoAxisPeriod(t *testing.T) {
	const cell = 90
	img := synthGrid(gridSpec{
		width: 540, height: 540, cell: cell, offsetX: 20, offsetY: 30,
		background: 210, lineDepth: 80, noise: 6, seed: 9,
	})
	// Darken every 30th row on top of the grid: strong horizontal-axis
	// periodicity at cell/3 with no vertical-axis counterpart.
	striped := overlayRowStripes(img, 30, 5, 70)

	hyp, err := Detect(striped, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if hyp.CellSize != cell {
		t.Errorf("CellSize: got %d, want %d (texture period %d)", hyp.CellSize, cell, cell/3)
	}
}

func TestDetect_OffsetsWithinCell(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		img := synthGrid(gridSpec{
			width: 400, height: 300, cell: 50, offsetX: 0, offsetY: 48,
			background: 220, lineDepth: 90, noise: 7, seed: seed,
		})
		hyp, err := Detect(img, DefaultConfig())
		if err != nil {
			t.Fatalf("Detect failed: %v", err)
		}
		if !hyp.Found() {
			t.Fatalf("seed %d: no grid found", seed)
		}
		if hyp.XOffset < 0 || hyp.XOffset >= hyp.CellSize {
			t.Errorf("seed %d: XOffset %d outside [0,%d)", seed, hyp.XOffset, hyp.CellSize)
		}
		if hyp.YOffset < 0 || hyp.YOffset >= hyp.CellSize {
			t.Errorf("seed %d: YOffset %d outside [0,%d)", seed, hyp.YOffset, hyp.CellSize)
		}
	}
}

// Scenario from the field: a large map with a faint grid.
func TestDetect_FaintGridLargeMap(t *testing.T) {
	if testing.Short() {
		t.Skip("large synthetic map")
	}
	img := synthGrid(gridSpec{
		width: 2000, height: 1000, cell: 80, offsetX: 5, offsetY: 5,
		background: 200, lineDepth: 40, noise: 8, seed: 17,
	})
	hyp, err := Detect(img, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if hyp.CellSize != 80 {
		t.Fatalf("CellSize: got %d, want 80 (snr %.2f)", hyp.CellSize, hyp.SNR)
	}
	if d := offsetDistance(hyp.XOffset, 5, 80); d > 1 {
		t.Errorf("XOffset: got %d, want 5 +-1", hyp.XOffset)
	}
	if d := offsetDistance(hyp.YOffset, 5, 80); d > 1 {
		t.Errorf("YOffset: got %d, want 5 +-1", hyp.YOffset)
	}
	if hyp.SNR <= ConfidentSNR {
		t.Errorf("SNR %.2f, want above %.1f", hyp.SNR, ConfidentSNR)
	}
}

// Pure noise must either yield no grid or a hypothesis too weak for
// consumers to accept.
func TestDetect_NoiseOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("large synthetic map")
	}
	hyp, err := Detect(synthNoise(2000, 1000, 20, 23), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if hyp.Found() && hyp.SNR > ConfidentSNR {
		t.Errorf("noise produced a confident grid: %+v", hyp)
	}
}

// Horizontal-only periodicity still yields a hypothesis through the
// single-axis fallback semantics, just not necessarily a confident one.
func TestDetect_SingleAxisStripes(t *testing.T) {
	img := synthStripes(350, 350, 35, 10, 6, 5)
	hyp, err := Detect(img, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if hyp.CellSize != 35 {
		t.Errorf("CellSize: got %d, want 35", hyp.CellSize)
	}
}

func TestDetect_SmoothedInput(t *testing.T) {
	img := synthGrid(gridSpec{
		width: 400, height: 400, cell: 40, offsetX: 12, offsetY: 18,
		background: 210, lineDepth: 100, noise: 10, seed: 29,
	})
	cfg := DefaultConfig()
	cfg.Smooth = true
	hyp, err := Detect(img, cfg)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if hyp.CellSize != 40 {
		t.Errorf("CellSize with smoothing: got %d, want 40", hyp.CellSize)
	}
}
