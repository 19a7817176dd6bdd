package griddetect

import (
	"image"
	"image/color"
	"math/rand"
)

// gridSpec describes a synthetic battle map: a square grid of darkened
// 1 px lines over a gray background with Gaussian pixel noise.
type gridSpec struct {
	width, height int
	cell          int
	offsetX       int
	offsetY       int
	background    uint8   // background gray level
	lineDepth     int     // how far below background a gridline sits
	noise         float64 // Gaussian sigma, gray levels
	seed          int64
}

// synthGrid renders the spec deterministically for the given seed.
//
// Noise is not optional decoration: a mathematically perfect grid has zero
// variance along its own lines, which the SNR guard maps to zero confidence.
// Real maps always carry texture; the noise stands in for it.
func synthGrid(s gridSpec) image.Image {
	rng := rand.New(rand.NewSource(s.seed))
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			v := float64(s.background)
			if s.noise > 0 {
				v += rng.NormFloat64() * s.noise
			}
			if onLine(x, s.offsetX, s.cell) || onLine(y, s.offsetY, s.cell) {
				v -= float64(s.lineDepth)
			}
			g := clampGray(v)
			img.Set(x, y, color.RGBA{g, g, g, 255})
		}
	}
	return img
}

func onLine(coord, offset, cell int) bool {
	if cell <= 0 {
		return false
	}
	return ((coord-offset)%cell+cell)%cell == 0
}

// synthStripes renders horizontal-only periodicity: darkened rows every
// period pixels, no vertical structure beyond noise.
func synthStripes(width, height, period, offset int, noise float64, seed int64) image.Image {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := 210.0
			if noise > 0 {
				v += rng.NormFloat64() * noise
			}
			if onLine(y, offset, period) {
				v -= 90
			}
			g := clampGray(v)
			img.Set(x, y, color.RGBA{g, g, g, 255})
		}
	}
	return img
}

// overlayRowStripes darkens every period-th row of src by depth gray levels,
// adding horizontal-axis periodicity with no vertical counterpart.
func overlayRowStripes(src image.Image, period, offset, depth int) image.Image {
	bounds := src.Bounds()
	img := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		striped := onLine(y-bounds.Min.Y, offset, period)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			rv, gv, bv := float64(r>>8), float64(g>>8), float64(b>>8)
			if striped {
				rv -= float64(depth)
				gv -= float64(depth)
				bv -= float64(depth)
			}
			img.Set(x, y, color.RGBA{clampGray(rv), clampGray(gv), clampGray(bv), 255})
		}
	}
	return img
}

// synthNoise renders pure Gaussian noise around a mid gray.
func synthNoise(width, height int, sigma float64, seed int64) image.Image {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := clampGray(128 + rng.NormFloat64()*sigma)
			img.Set(x, y, color.RGBA{g, g, g, 255})
		}
	}
	return img
}

// synthFlat renders a single-color image.
func synthFlat(width, height int, gray uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{gray, gray, gray, 255})
		}
	}
	return img
}

func clampGray(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// offsetDistance is the circular distance between two offsets modulo cell.
func offsetDistance(got, want, cell int) int {
	d := ((got-want)%cell + cell) % cell
	if d > cell-d {
		d = cell - d
	}
	return d
}
