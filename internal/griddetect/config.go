package griddetect

import "fmt"

// Default search parameters. Battle-map cells below 20 px are unusable at the
// table and cells above 150 px waste map resolution, so the defaults bracket
// the sizes map makers actually publish.
const (
	DefaultMinCell = 20
	DefaultMaxCell = 150
	DefaultTopK    = 10
)

// ConfidentSNR is the alignment SNR above which consumers should treat a
// hypothesis as a real grid rather than a best-effort guess. Random edge
// noise aligns at an SNR of roughly 1.3, so 2.0 leaves a comfortable margin.
const ConfidentSNR = 2.0

// Config bounds the grid search.
type Config struct {
	// MinCell is the smallest cell size, in pixels, considered a grid.
	MinCell int `json:"min_cell"`

	// MaxCell is the largest cell size, in pixels, considered a grid.
	MaxCell int `json:"max_cell"`

	// TopK is the number of spectral candidates given an exact offset
	// alignment score. Larger values trade time for robustness on maps
	// with several competing periodic structures.
	TopK int `json:"top_k"`

	// Smooth applies a light Gaussian blur before edge extraction.
	// Helps on heavily compressed JPEG scans; unnecessary for clean
	// renders.
	Smooth bool `json:"smooth"`
}

// DefaultConfig returns the search bounds used when the caller has no
// opinion: cells of 20-150 px, ten exactly-scored candidates, no smoothing.
func DefaultConfig() Config {
	return Config{
		MinCell: DefaultMinCell,
		MaxCell: DefaultMaxCell,
		TopK:    DefaultTopK,
	}
}

// Validate reports a misconfigured search range. Invalid configuration is a
// programmer error and is rejected before any pixel work begins.
func (c Config) Validate() error {
	if c.MinCell < 1 {
		return fmt.Errorf("griddetect: min cell %d, must be at least 1", c.MinCell)
	}
	if c.MinCell >= c.MaxCell {
		return fmt.Errorf("griddetect: min cell %d must be below max cell %d", c.MinCell, c.MaxCell)
	}
	if c.TopK < 1 {
		return fmt.Errorf("griddetect: top-k %d, must be at least 1", c.TopK)
	}
	return nil
}

// Hypothesis is the result of grid detection. CellSize 0 means no grid was
// found; in that case both offsets and the SNR are 0.
type Hypothesis struct {
	// CellSize is the pixel spacing of the detected grid, or 0.
	CellSize int `json:"cell_size"`

	// XOffset is the pixel X of the grid intersection nearest the image
	// origin, in [0, CellSize).
	XOffset int `json:"x_offset"`

	// YOffset is the pixel Y of the grid intersection nearest the image
	// origin, in [0, CellSize).
	YOffset int `json:"y_offset"`

	// SNR is the alignment confidence: mean edge intensity on the
	// hypothesized gridlines divided by its standard deviation.
	SNR float64 `json:"snr"`
}

// Found reports whether the hypothesis describes a grid.
func (h Hypothesis) Found() bool { return h.CellSize > 0 }

// Confident reports whether the hypothesis clears the ConfidentSNR bar.
func (h Hypothesis) Confident() bool { return h.Found() && h.SNR > ConfidentSNR }
