package griddetect

import "math"

// alignment is the best offset pair found for one candidate cell size,
// in edge-field coordinates.
type alignment struct {
	yOffset int
	xOffset int
	snr     float64
	score   float64
}

// alignOffsets finds the (yOffset, xOffset) in [0, g) x [0, g) that best
// explains the edge fields as a regular grid of cell size g.
//
// Rows of the horizontal-edge field are grouped by their index modulo g over
// the full multiples of g (remainder rows are discarded); for each offset the
// mean and variance of edge intensity across every cell of its rows come
// straight from the projection's row aggregates. Columns of the vertical-edge
// field are treated symmetrically. Scoring follows
//
//	snr(y, x)   = combined mean / sqrt(combined variance)   (0 when var is 0)
//	score(y, x) = snr(y, x) * log(nLinesH + nLinesV + 1)
//
// The log term rewards cell sizes with more gridlines, i.e. more statistical
// support, when the detector later compares across candidate sizes. The best
// pair is an argmax over the explicit g x g score surface; ties go to the
// smaller offsets.
//
// A cell size larger than either field dimension yields the zero alignment.
func alignOffsets(p *projection, g int) alignment {
	nRowGroups := len(p.rowSum) / g
	nColGroups := len(p.colSum) / g
	if g < 1 || nRowGroups < 1 || nColGroups < 1 {
		return alignment{}
	}

	meanH, varH := offsetStats(p.rowSum, p.rowSumSq, g, nRowGroups, p.rowCells)
	meanV, varV := offsetStats(p.colSum, p.colSumSq, g, nColGroups, p.colCells)

	lineWeight := math.Log(float64(nRowGroups + nColGroups + 1))

	best := alignment{yOffset: 0, xOffset: 0}
	for y := 0; y < g; y++ {
		for x := 0; x < g; x++ {
			mean := (meanH[y] + meanV[x]) / 2
			variance := (varH[y] + varV[x]) / 2
			var snr float64
			if variance > 0 {
				snr = mean / math.Sqrt(variance)
			}
			score := snr * lineWeight
			if score > best.score {
				best = alignment{yOffset: y, xOffset: x, snr: snr, score: score}
			}
		}
	}
	return best
}

// offsetStats computes, for every offset in [0, g), the mean and variance of
// the edge field restricted to lines {offset, offset+g, offset+2g, ...},
// using the precomputed per-line sum and sum-of-squares aggregates. cells is
// the number of field cells per line.
func offsetStats(sums, sumSqs []float64, g, nGroups, cells int) (means, vars []float64) {
	means = make([]float64, g)
	vars = make([]float64, g)
	count := float64(nGroups * cells)
	for off := 0; off < g; off++ {
		var sum, sumSq float64
		for k := 0; k < nGroups; k++ {
			i := off + k*g
			sum += sums[i]
			sumSq += sumSqs[i]
		}
		mean := sum / count
		variance := sumSq/count - mean*mean
		if variance < 0 {
			// Floating-point cancellation on near-constant data.
			variance = 0
		}
		means[off] = mean
		vars[off] = variance
	}
	return means, vars
}
