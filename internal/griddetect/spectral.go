package griddetect

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
)

// candidate is a hypothesized grid period with a confidence score. Scores are
// comparable within one candidate list, not across lists from different
// estimators.
type candidate struct {
	period   int
	strength float64
}

// spectralPeriods maps each integer period in [minCell, maxCell] to the FFT
// magnitude of the frequency bin nearest that period. Zero-magnitude bins are
// ignored, so a flat signal yields an empty map.
//
// The mapping runs from period to bin, not bin to period: bin spacing in
// period units grows with the square of the period, so on a long signal a
// true period can fall between two bins whose rounded periods both miss it
// (998 samples of an 80 px grid peak at bin 12.475, and neither bin 12 nor 13
// rounds back to 80). Sampling the nearest bin per integer period instead
// gives every period in range a score; neighboring periods that share a bin
// tie, and the exact offset alignment stage separates them.
func spectralPeriods(signal []float64, minCell, maxCell int) map[int]float64 {
	n := len(signal)
	if n < 2 {
		return nil
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, signal)

	scores := make(map[int]float64)
	for period := minCell; period <= maxCell; period++ {
		k := int(math.Round(float64(n) / float64(period)))
		if k < 1 || k >= len(coeff) {
			continue
		}
		mag := cmplx.Abs(coeff[k])
		if mag <= 0 {
			continue
		}
		scores[period] = mag
	}
	return scores
}

// combinePeriods intersects the two axes' period maps and scores each common
// period by the geometric mean of its per-axis scores. A genuine grid is
// periodic in both directions; the geometric mean drives the score of a
// period carried by only one axis (decorative texture, stair rows) toward
// that axis's weaker partner.
func combinePeriods(h, v map[int]float64) []candidate {
	var cands []candidate
	for period, hs := range h {
		vs, ok := v[period]
		if !ok {
			continue
		}
		cands = append(cands, candidate{period: period, strength: math.Sqrt(hs * vs)})
	}
	sortCandidates(cands)
	return cands
}

// sortCandidates orders by strength descending, then by smaller period, so
// every consumer sees candidates in one deterministic order regardless of the
// map iteration that produced them.
func sortCandidates(cands []candidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].strength != cands[j].strength {
			return cands[i].strength > cands[j].strength
		}
		return cands[i].period < cands[j].period
	})
}
