package imaging

import (
	"image/color"
	"testing"
)

func TestCrop(t *testing.T) {
	img := fillMap(100, 80, color.RGBA{128, 128, 128, 255})

	result, err := Crop(img, Region{X1: 10, Y1: 20, X2: 60, Y2: 50}, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if result.Width != 50 || result.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 50x30", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	decodeResult(t, result.ImageBase64)
}

func TestCrop_Scaled(t *testing.T) {
	img := fillMap(100, 100, color.RGBA{128, 128, 128, 255})

	result, err := Crop(img, Region{X1: 0, Y1: 0, X2: 40, Y2: 40}, 2.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 80 || result.Height != 80 {
		t.Errorf("scaled dimensions: got %dx%d, want 80x80", result.Width, result.Height)
	}
}

func TestCrop_InvalidRegions(t *testing.T) {
	img := fillMap(50, 50, color.RGBA{128, 128, 128, 255})

	tests := []struct {
		name string
		r    Region
	}{
		{"outside bounds", Region{X1: 0, Y1: 0, X2: 60, Y2: 40}},
		{"negative origin", Region{X1: -5, Y1: 0, X2: 20, Y2: 20}},
		{"empty region", Region{X1: 20, Y1: 20, X2: 20, Y2: 40}},
		{"inverted region", Region{X1: 30, Y1: 30, X2: 10, Y2: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.r, 1.0); err == nil {
				t.Errorf("region %+v accepted", tt.r)
			}
		})
	}
}

func TestCropCell(t *testing.T) {
	img := fillMap(100, 100, color.RGBA{128, 128, 128, 255})

	// Cell (2,2) with a one-cell margin: x from 5+1*20 to 5+4*20.
	result, err := CropCell(img, 2, 2, 20, 5, 5, 1.0)
	if err != nil {
		t.Fatalf("CropCell failed: %v", err)
	}
	if result.Width != 60 || result.Height != 60 {
		t.Errorf("dimensions: got %dx%d, want 60x60", result.Width, result.Height)
	}
}

func TestCropCell_MarginClampedAtOrigin(t *testing.T) {
	img := fillMap(100, 100, color.RGBA{128, 128, 128, 255})

	// Cell (0,0): the margin would start at -15 and is clamped to the map.
	result, err := CropCell(img, 0, 0, 20, 5, 5, 1.0)
	if err != nil {
		t.Fatalf("CropCell failed: %v", err)
	}
	if result.Width != 45 || result.Height != 45 {
		t.Errorf("dimensions: got %dx%d, want 45x45", result.Width, result.Height)
	}
}

func TestCropCell_Errors(t *testing.T) {
	img := fillMap(100, 100, color.RGBA{128, 128, 128, 255})

	if _, err := CropCell(img, 50, 0, 20, 5, 5, 1.0); err == nil {
		t.Error("cell outside the map accepted")
	}
	if _, err := CropCell(img, -1, 0, 20, 5, 5, 1.0); err == nil {
		t.Error("negative cell index accepted")
	}
	if _, err := CropCell(img, 0, 0, 1, 0, 0, 1.0); err == nil {
		t.Error("cell size 1 accepted")
	}
}
