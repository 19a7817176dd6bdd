// Package griddetect determines whether a battle-map image carries a regular
// square grid overlay and, if so, recovers the grid's cell size in pixels and
// its sub-cell pixel offset.
//
// Detection is a pure function from a decoded image to a Hypothesis: no I/O,
// no shared state, deterministic for identical input. The pipeline is
//
//  1. Edge extraction: the image is reduced to two 1-D "edge strength"
//     signals, one per axis, by differencing pixel intensities two samples
//     apart and projecting the resulting fields onto each axis.
//  2. Candidate generation: an FFT magnitude spectrum of each signal maps
//     frequency bins to integer pixel periods; periods supported by both
//     axes are combined by geometric mean. A normalized autocorrelation
//     serves as the fallback when the two axes share no spectral candidate.
//  3. Harmonic suppression: candidates dominated by a candidate at half or
//     double their period are discarded.
//  4. Exact scoring: for each surviving candidate the offset aligner finds
//     the (x, y) pixel offset whose hypothesized gridlines best match the
//     observed edge energy, scored by a signal-to-noise measure.
//
// The hypothesis with the highest alignment score wins. A flat image, an
// image smaller than the differencing stride, or a candidate set with zero
// alignment score all yield the "no grid" hypothesis rather than an error.
//
// # Coordinate System
//
// Offsets are 0-based pixel coordinates of the grid intersection nearest the
// image origin, modulo the cell size: 0 <= XOffset < CellSize and
// 0 <= YOffset < CellSize whenever a grid is found.
//
// # Concurrency
//
// Detect is safe for concurrent use; each call is independent. Within a call
// the per-candidate offset scoring runs on its own goroutines. The whole
// computation is CPU-bound and can take noticeable time on large maps, so
// callers embedding it in an interactive system should keep it off the
// responsiveness-critical path.
package griddetect
