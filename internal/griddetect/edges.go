package griddetect

import (
	"image"

	"gonum.org/v1/gonum/floats"
)

// edgeStride is the sampling distance for intensity differencing. Differencing
// two pixels apart averages across thin anti-aliased gridlines instead of
// aliasing on them, which a stride of one would do.
const edgeStride = 2

// EdgeField holds per-pixel edge strength for both axes.
//
// H has shape (height-2, width): H[y][x] is the mean absolute per-channel
// difference between image rows y and y+2 at column x, i.e. the strength of a
// horizontal edge near row y+1. V has shape (height, width-2) and measures
// vertical edges symmetrically.
//
// Both fields are empty when the image is smaller than the differencing
// stride in either dimension.
type EdgeField struct {
	H [][]float64
	V [][]float64
}

// ExtractEdges computes the stride-2 edge fields for an image. Intensities
// are 8-bit channel values, so field cells lie in [0, 255].
func ExtractEdges(img image.Image) *EdgeField {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= edgeStride || height <= edgeStride {
		return &EdgeField{}
	}

	// Pull the three channels into planar form once; both fields read
	// every pixel twice.
	r := make([][]float64, height)
	g := make([][]float64, height)
	b := make([][]float64, height)
	for y := 0; y < height; y++ {
		r[y] = make([]float64, width)
		g[y] = make([]float64, width)
		b[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			pr, pg, pb, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			r[y][x] = float64(pr >> 8)
			g[y][x] = float64(pg >> 8)
			b[y][x] = float64(pb >> 8)
		}
	}

	hField := make([][]float64, height-edgeStride)
	for y := range hField {
		row := make([]float64, width)
		for x := 0; x < width; x++ {
			row[x] = (absDiff(r[y+edgeStride][x], r[y][x]) +
				absDiff(g[y+edgeStride][x], g[y][x]) +
				absDiff(b[y+edgeStride][x], b[y][x])) / 3
		}
		hField[y] = row
	}

	vField := make([][]float64, height)
	for y := 0; y < height; y++ {
		row := make([]float64, width-edgeStride)
		for x := range row {
			row[x] = (absDiff(r[y][x+edgeStride], r[y][x]) +
				absDiff(g[y][x+edgeStride], g[y][x]) +
				absDiff(b[y][x+edgeStride], b[y][x])) / 3
		}
		vField[y] = row
	}

	return &EdgeField{H: hField, V: vField}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// projection reduces the edge fields to the 1-D form the estimators and the
// offset aligner consume. The per-row and per-column sum aggregates let the
// aligner score any candidate cell size in O(height+width) instead of
// re-walking the fields.
type projection struct {
	// DC-removed axis signals: hSignal over hField rows (length height-2),
	// vSignal over vField columns (length width-2).
	hSignal []float64
	vSignal []float64

	// Row aggregates of hField: sum and sum of squares across all columns.
	rowSum   []float64
	rowSumSq []float64
	rowCells int // cells per row of hField (= width)

	// Column aggregates of vField across all rows.
	colSum   []float64
	colSumSq []float64
	colCells int // cells per column of vField (= height)
}

// project builds axis signals and strided aggregates from the edge fields.
func project(ef *EdgeField) *projection {
	p := &projection{}

	if len(ef.H) > 0 {
		p.rowCells = len(ef.H[0])
		p.rowSum = make([]float64, len(ef.H))
		p.rowSumSq = make([]float64, len(ef.H))
		p.hSignal = make([]float64, len(ef.H))
		for y, row := range ef.H {
			var sum, sumSq float64
			for _, v := range row {
				sum += v
				sumSq += v * v
			}
			p.rowSum[y] = sum
			p.rowSumSq[y] = sumSq
			p.hSignal[y] = sum / float64(p.rowCells)
		}
		removeDC(p.hSignal)
	}

	if len(ef.V) > 0 && len(ef.V[0]) > 0 {
		p.colCells = len(ef.V)
		width := len(ef.V[0])
		p.colSum = make([]float64, width)
		p.colSumSq = make([]float64, width)
		for _, row := range ef.V {
			for x, v := range row {
				p.colSum[x] += v
				p.colSumSq[x] += v * v
			}
		}
		p.vSignal = make([]float64, width)
		for x := range p.vSignal {
			p.vSignal[x] = p.colSum[x] / float64(p.colCells)
		}
		removeDC(p.vSignal)
	}

	return p
}

// removeDC subtracts the mean in place so the spectral estimator does not
// waste its strongest bin on the signal's baseline.
func removeDC(signal []float64) {
	if len(signal) == 0 {
		return
	}
	floats.AddConst(-floats.Sum(signal)/float64(len(signal)), signal)
}
