package imaging

import (
	"image"
	"math"
)

// DistanceResult contains a point-to-point measurement on a map.
//
// When a grid cell size is supplied, the distance is also reported in grid
// cells, which is the unit tabletop rules actually use.
type DistanceResult struct {
	DistancePixels float64 `json:"distance_pixels"`
	DeltaX         int     `json:"delta_x"`
	DeltaY         int     `json:"delta_y"`
	AngleDegrees   float64 `json:"angle_degrees"`

	// DistanceCells is the straight-line distance divided by the cell size,
	// omitted when no cell size was given.
	DistanceCells float64 `json:"distance_cells,omitempty"`

	// CellsChebyshev counts grid squares under "diagonals cost one" movement,
	// max(|dx|, |dy|) in cells rounded to the nearest square. Omitted when no
	// cell size was given.
	CellsChebyshev int `json:"cells_chebyshev,omitempty"`
}

// MeasureDistance calculates the distance between two points on a map.
//
// The angle is reported in degrees with 0 pointing right and 90 pointing down.
// Pixel distances are rounded to two decimals, cell distances to one.
//
// Parameters:
//   - img: The map being measured. Only used for bounds checking; points may
//     lie anywhere, including outside the map.
//   - x1, y1, x2, y2: The two points.
//   - cellSize: Grid cell size in pixels, or 0 when the map's grid is unknown.
//     When positive, DistanceCells and CellsChebyshev are filled in.
func MeasureDistance(img image.Image, x1, y1, x2, y2, cellSize int) (*DistanceResult, error) {
	deltaX := x2 - x1
	deltaY := y2 - y1

	distance := math.Sqrt(float64(deltaX*deltaX + deltaY*deltaY))
	angle := math.Atan2(float64(deltaY), float64(deltaX)) * 180 / math.Pi

	result := &DistanceResult{
		DistancePixels: math.Round(distance*100) / 100,
		DeltaX:         deltaX,
		DeltaY:         deltaY,
		AngleDegrees:   math.Round(angle*10) / 10,
	}

	if cellSize > 0 {
		result.DistanceCells = math.Round(distance/float64(cellSize)*10) / 10
		cheb := math.Max(math.Abs(float64(deltaX)), math.Abs(float64(deltaY)))
		result.CellsChebyshev = int(math.Round(cheb / float64(cellSize)))
	}

	return result, nil
}

// CellAtResult identifies which grid cell contains a pixel.
type CellAtResult struct {
	Col int `json:"col"`
	Row int `json:"row"`

	// CellX1, CellY1, CellX2, CellY2 are the cell's pixel bounds on the map,
	// top-left inclusive, bottom-right exclusive.
	CellX1 int `json:"cell_x1"`
	CellY1 int `json:"cell_y1"`
	CellX2 int `json:"cell_x2"`
	CellY2 int `json:"cell_y2"`
}

// CellAt maps a pixel coordinate to its grid cell index and pixel bounds.
//
// Cell (0,0) is the cell whose top-left gridline intersection sits at
// (xOffset, yOffset); pixels left of or above that line fall in negative
// cell indices.
func CellAt(x, y, cellSize, xOffset, yOffset int) *CellAtResult {
	col := floorDiv(x-xOffset, cellSize)
	row := floorDiv(y-yOffset, cellSize)

	return &CellAtResult{
		Col:    col,
		Row:    row,
		CellX1: xOffset + col*cellSize,
		CellY1: yOffset + row*cellSize,
		CellX2: xOffset + (col+1)*cellSize,
		CellY2: yOffset + (row+1)*cellSize,
	}
}

// floorDiv divides rounding toward negative infinity, so cells left of the
// offset origin get stable negative indices.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
