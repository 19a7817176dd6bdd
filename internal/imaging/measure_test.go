package imaging

import (
	"image/color"
	"testing"
)

func TestMeasureDistance(t *testing.T) {
	img := fillMap(200, 200, color.RGBA{128, 128, 128, 255})

	result, err := MeasureDistance(img, 0, 0, 30, 40, 0)
	if err != nil {
		t.Fatalf("MeasureDistance failed: %v", err)
	}

	if result.DistancePixels != 50 {
		t.Errorf("DistancePixels: got %g, want 50", result.DistancePixels)
	}
	if result.DeltaX != 30 || result.DeltaY != 40 {
		t.Errorf("deltas: got (%d,%d), want (30,40)", result.DeltaX, result.DeltaY)
	}
	if result.AngleDegrees != 53.1 {
		t.Errorf("AngleDegrees: got %g, want 53.1", result.AngleDegrees)
	}
	if result.DistanceCells != 0 || result.CellsChebyshev != 0 {
		t.Errorf("cell fields set without a cell size: %+v", result)
	}
}

func TestMeasureDistance_InCells(t *testing.T) {
	img := fillMap(200, 200, color.RGBA{128, 128, 128, 255})

	result, err := MeasureDistance(img, 10, 10, 40, 50, 10)
	if err != nil {
		t.Fatalf("MeasureDistance failed: %v", err)
	}

	if result.DistanceCells != 5 {
		t.Errorf("DistanceCells: got %g, want 5", result.DistanceCells)
	}
	// Chebyshev movement: max(30, 40) pixels = 4 cells.
	if result.CellsChebyshev != 4 {
		t.Errorf("CellsChebyshev: got %d, want 4", result.CellsChebyshev)
	}
}

func TestMeasureDistance_SamePoint(t *testing.T) {
	img := fillMap(50, 50, color.RGBA{128, 128, 128, 255})

	result, err := MeasureDistance(img, 25, 25, 25, 25, 20)
	if err != nil {
		t.Fatalf("MeasureDistance failed: %v", err)
	}
	if result.DistancePixels != 0 || result.DistanceCells != 0 || result.CellsChebyshev != 0 {
		t.Errorf("same point: %+v", result)
	}
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		name             string
		x, y             int
		wantCol, wantRow int
		wantX1, wantY1   int
	}{
		{"inside cell (1,1)", 30, 30, 1, 1, 25, 25},
		{"on the gridline", 25, 25, 1, 1, 25, 25},
		{"before the offset origin", 2, 2, -1, -1, -15, -15},
		{"origin cell", 5, 5, 0, 0, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CellAt(tt.x, tt.y, 20, 5, 5)
			if got.Col != tt.wantCol || got.Row != tt.wantRow {
				t.Errorf("cell: got (%d,%d), want (%d,%d)", got.Col, got.Row, tt.wantCol, tt.wantRow)
			}
			if got.CellX1 != tt.wantX1 || got.CellY1 != tt.wantY1 {
				t.Errorf("bounds origin: got (%d,%d), want (%d,%d)", got.CellX1, got.CellY1, tt.wantX1, tt.wantY1)
			}
			if got.CellX2-got.CellX1 != 20 || got.CellY2-got.CellY1 != 20 {
				t.Errorf("cell bounds not one cell wide: %+v", got)
			}
		})
	}
}
