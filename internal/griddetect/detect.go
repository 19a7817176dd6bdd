package griddetect

import (
	"image"
	"sync"

	"github.com/anthonynsimon/bild/blur"
)

// smoothRadius is the Gaussian radius applied when Config.Smooth is set.
// Wide enough to knock down JPEG block noise, narrow enough to keep 1 px
// gridlines alive through the stride-2 differencing.
const smoothRadius = 1.5

// Detect runs grid detection on a decoded map image.
//
// The search is hybrid: the spectral estimator proposes candidate periods
// cheaply, harmonic suppression prunes them, and only the top Config.TopK
// candidates pay for an exact offset alignment; the candidate with the
// highest alignment score wins. When the two axes share no spectral period,
// single-axis spectral candidates and autocorrelation peaks serve as the
// fallback pool. An exhaustive per-size scan would be correct but scales with
// the square of the search range times the pixel count, which is too slow for
// full-size battle maps.
//
// "No grid present" is an expected outcome, not an error: flat images, images
// smaller than the differencing stride, and candidate sets with zero
// alignment score return the zero Hypothesis. The only error is an invalid
// Config, rejected before any pixel work.
func Detect(img image.Image, cfg Config) (Hypothesis, error) {
	if err := cfg.Validate(); err != nil {
		return Hypothesis{}, err
	}

	src := img
	if cfg.Smooth {
		src = blur.Gaussian(img, smoothRadius)
	}

	p := project(ExtractEdges(src))
	return detectProjected(p, cfg), nil
}

// detectProjected is the orchestration core, shared with the test oracle.
func detectProjected(p *projection, cfg Config) Hypothesis {
	if len(p.hSignal) == 0 || len(p.vSignal) == 0 {
		return Hypothesis{}
	}

	hSpec := spectralPeriods(p.hSignal, cfg.MinCell, cfg.MaxCell)
	vSpec := spectralPeriods(p.vSignal, cfg.MinCell, cfg.MaxCell)

	cands := suppressHarmonics(combinePeriods(hSpec, vSpec))
	if len(cands) == 0 {
		cands = suppressHarmonics(fallbackCandidates(p, hSpec, vSpec, cfg))
	}
	if len(cands) == 0 {
		return Hypothesis{}
	}
	if len(cands) > cfg.TopK {
		cands = cands[:cfg.TopK]
	}

	// Exact scoring per candidate is independent work; fan out and reduce
	// by argmax rather than racing on a shared best-so-far.
	aligns := make([]alignment, len(cands))
	var wg sync.WaitGroup
	for i, c := range cands {
		wg.Add(1)
		go func(i, g int) {
			defer wg.Done()
			aligns[i] = alignOffsets(p, g)
		}(i, c.period)
	}
	wg.Wait()

	best := -1
	for i := range aligns {
		if best < 0 || aligns[i].score > aligns[best].score {
			best = i
		}
	}
	if best < 0 || aligns[best].score <= 0 {
		return Hypothesis{}
	}

	g := cands[best].period
	return Hypothesis{
		CellSize: g,
		XOffset:  fieldToImageOffset(aligns[best].xOffset, g),
		YOffset:  fieldToImageOffset(aligns[best].yOffset, g),
		SNR:      aligns[best].snr,
	}
}

// fieldToImageOffset converts an edge-field offset to image coordinates. The
// stride-2 difference at field index i spans image lines i and i+2, so its
// edge response is centered on line i+1.
func fieldToImageOffset(fieldOff, g int) int {
	return (fieldOff + edgeStride/2) % g
}

// fallbackCandidates pools single-axis spectral periods with autocorrelation
// peaks for maps that are periodic on only one axis, or whose spectral bins
// round apart on the two axes. Spectral scores are normalized per axis to
// their maximum so they are comparable with the lag-0-normalized
// autocorrelation values; for a period in several sources the strongest
// normalized score wins.
func fallbackCandidates(p *projection, hSpec, vSpec map[int]float64, cfg Config) []candidate {
	merged := make(map[int]float64)
	mergeNormalized(merged, hSpec)
	mergeNormalized(merged, vSpec)
	for _, c := range autocorrPeriods(p.hSignal, p.vSignal, cfg.MinCell, cfg.MaxCell) {
		if c.strength > merged[c.period] {
			merged[c.period] = c.strength
		}
	}

	cands := make([]candidate, 0, len(merged))
	for period, strength := range merged {
		cands = append(cands, candidate{period: period, strength: strength})
	}
	sortCandidates(cands)
	return cands
}

// mergeNormalized folds a spectral period map into dst with scores scaled to
// the map's maximum.
func mergeNormalized(dst, src map[int]float64) {
	var max float64
	for _, s := range src {
		if s > max {
			max = s
		}
	}
	if max <= 0 {
		return
	}
	for period, s := range src {
		if n := s / max; n > dst[period] {
			dst[period] = n
		}
	}
}
