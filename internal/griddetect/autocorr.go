package griddetect

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// autocorrelation computes the normalized linear autocorrelation of a signal
// through the transform-domain identity: the inverse FFT of the squared
// magnitude spectrum of the zero-padded signal. The result is scaled so lag 0
// equals 1. Returns nil for an empty or zero-energy signal.
//
// Compared to reading periods off spectral bins directly, autocorrelation
// lags are exact integers, so this path has no bin-rounding error; the
// detector uses it when the two axes share no spectral candidate.
func autocorrelation(signal []float64) []float64 {
	n := len(signal)
	if n == 0 {
		return nil
	}

	// Zero-pad to twice the length so the circular correlation the FFT
	// computes matches the linear one at every lag below n.
	padded := make([]float64, 2*n)
	copy(padded, signal)

	fft := fourier.NewFFT(len(padded))
	coeff := fft.Coefficients(nil, padded)
	for i, c := range coeff {
		re, im := real(c), imag(c)
		coeff[i] = complex(re*re+im*im, 0)
	}
	ac := fft.Sequence(nil, coeff)

	if ac[0] <= 0 {
		return nil
	}
	floats.Scale(1/ac[0], ac)
	return ac[:n]
}

// autocorrPeriods finds candidate periods as local maxima of the combined
// autocorrelation of the two axis signals within [minCell, maxCell]. A lag is
// a peak when its value exceeds both neighbors. The axes are combined
// geometrically at each lag; if only one axis has energy, its curve is used
// alone so horizontal-only or vertical-only periodicity still surfaces for
// the single-axis fallback.
func autocorrPeriods(hSignal, vSignal []float64, minCell, maxCell int) []candidate {
	hAC := autocorrelation(hSignal)
	vAC := autocorrelation(vSignal)

	combined := combineLags(hAC, vAC)
	if combined == nil {
		return nil
	}

	var cands []candidate
	for lag := minCell; lag <= maxCell && lag < len(combined)-1; lag++ {
		v := combined[lag]
		if v > 0 && v > combined[lag-1] && v > combined[lag+1] {
			cands = append(cands, candidate{period: lag, strength: v})
		}
	}
	sortCandidates(cands)
	return cands
}

// combineLags merges two autocorrelation curves by per-lag geometric mean,
// clamping negative correlation to zero. With one curve absent the other is
// returned unchanged; with both absent it returns nil.
func combineLags(h, v []float64) []float64 {
	switch {
	case h == nil:
		return v
	case v == nil:
		return h
	}
	n := len(h)
	if len(v) < n {
		n = len(v)
	}
	combined := make([]float64, n)
	for i := 0; i < n; i++ {
		hv, vv := h[i], v[i]
		if hv < 0 {
			hv = 0
		}
		if vv < 0 {
			vv = 0
		}
		combined[i] = math.Sqrt(hv * vv)
	}
	return combined
}
