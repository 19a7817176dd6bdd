package griddetect

// Harmonic suppression parameters. A periodic signal at period P also carries
// energy at P/2, P/3, ... in the spectrum and at 2P, 3P, ... in the
// autocorrelation, so both estimators produce spurious candidates on integer
// multiples and fractions of the true period.
const (
	// harmonicTolerancePx is how far a candidate may sit from exactly
	// half or double another candidate's period and still count as its
	// harmonic. Covers spectral bin rounding.
	harmonicTolerancePx = 2

	// harmonicDominanceRatio is the score fraction below which a
	// candidate is considered dominated by its half- or double-period
	// relative and dropped. Spectral leakage alone can cost a fundamental
	// sitting half a bin off-grid a factor of 0.64 against an on-bin
	// harmonic, so the ratio stays below that: suppression only fires on
	// dominance leakage cannot explain.
	harmonicDominanceRatio = 0.5
)

// suppressHarmonics removes candidates that are dominated by a candidate at
// roughly half or double their period. The same rule applies to spectral and
// autocorrelation candidate lists.
//
// A candidate P survives unless some candidate Q with period within
// harmonicTolerancePx of P/2 or 2P satisfies
// score(P) < harmonicDominanceRatio*score(Q). The rule only fires on clear
// dominance: near-equal harmonic combs (thin gridlines put almost equal
// spectral energy on P and P/2) keep all their teeth and are resolved by
// exact offset scoring, which is the component that can actually tell a
// fundamental from its alias. Dominance is judged against the original list,
// not the surviving one, so the outcome does not depend on removal order.
//
// The input must be sorted (see sortCandidates); the output preserves order.
func suppressHarmonics(cands []candidate) []candidate {
	if len(cands) < 2 {
		return cands
	}

	kept := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if dominatedAt(cands, float64(c.period)/2, c.strength) ||
			dominatedAt(cands, float64(c.period)*2, c.strength) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// dominatedAt reports whether any candidate within harmonicTolerancePx of
// period has a score strong enough to dominate strength.
func dominatedAt(cands []candidate, period, strength float64) bool {
	for _, q := range cands {
		d := float64(q.period) - period
		if d < -harmonicTolerancePx || d > harmonicTolerancePx {
			continue
		}
		if strength < harmonicDominanceRatio*q.strength {
			return true
		}
	}
	return false
}
