package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within a map.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// CropResult contains a cropped (and optionally scaled) map region.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts a rectangular region from a map, optionally scaling it.
//
// Cropping and scaling together make it practical to eyeball whether gridlines
// land where a detection says they should: crop a few cells and scale up.
//
// Parameters:
//   - img: The source map.
//   - r: The region to extract, in source pixel coordinates.
//   - scale: Scale factor applied to the cropped region. Values other than 1.0
//     resize with Lanczos resampling; zero and negative values mean no scaling.
//
// Returns:
//   - *CropResult: The region as base64 PNG.
//   - error: Non-nil if the region is empty, outside the map, or encoding fails.
func Crop(img image.Image, r Region, scale float64) (*CropResult, error) {
	bounds := img.Bounds()
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside map bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, image.Rect(r.X1, r.Y1, r.X2, r.Y2))

	if scale > 0 && scale != 1.0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped map: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// CropCell extracts a single grid cell plus a one-cell margin around it, given
// the cell's column/row index and the grid geometry. The margin shows the
// neighboring gridlines so alignment errors are visible at the edges.
func CropCell(img image.Image, col, row, cellSize, xOffset, yOffset int, scale float64) (*CropResult, error) {
	if cellSize < 2 {
		return nil, fmt.Errorf("cell size must be at least 2, got %d", cellSize)
	}
	if col < 0 || row < 0 {
		return nil, fmt.Errorf("cell index (%d,%d) must be non-negative", col, row)
	}

	bounds := img.Bounds()
	x1 := xOffset + (col-1)*cellSize
	y1 := yOffset + (row-1)*cellSize
	x2 := xOffset + (col+2)*cellSize
	y2 := yOffset + (row+2)*cellSize

	// Clamp the margin to the map; the target cell itself must be inside.
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if xOffset+col*cellSize >= bounds.Max.X || yOffset+row*cellSize >= bounds.Max.Y {
		return nil, fmt.Errorf("cell (%d,%d) is outside the map", col, row)
	}

	return Crop(img, Region{X1: x1, Y1: y1, X2: x2, Y2: y2}, scale)
}
