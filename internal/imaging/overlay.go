package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"
)

// GridOverlayResult contains a map with a detected or supplied grid drawn on
// top of it, for visual verification of a detection.
type GridOverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	CellSize    int    `json:"cell_size"`
	XOffset     int    `json:"x_offset"`
	YOffset     int    `json:"y_offset"`
}

// GridOverlay draws a square grid over a map at the given cell size and
// sub-cell offsets.
//
// Vertical gridlines are drawn at every x where (x - xOffset) is a multiple of
// cellSize, horizontal gridlines likewise against yOffset, so the overlay
// lands exactly on the lattice a detection reports. If the overlay lines sit
// on the map's own gridlines, the detection is correct.
//
// Parameters:
//   - img: The source map.
//   - cellSize: Grid cell size in pixels. Must be at least 2.
//   - xOffset, yOffset: Offsets of the first gridline from the map's left and
//     top edges. Normalized into [0, cellSize).
//   - showCells: When true, each cell is labeled with its column,row index.
//   - lineColorHex: Gridline color as "#rrggbb". Invalid or empty values fall
//     back to red.
//
// Returns:
//   - *GridOverlayResult: The composited image as base64 PNG.
//   - error: Non-nil if cellSize is invalid or PNG encoding fails.
func GridOverlay(img image.Image, cellSize, xOffset, yOffset int, showCells bool, lineColorHex string) (*GridOverlayResult, error) {
	if cellSize < 2 {
		return nil, fmt.Errorf("cell size must be at least 2, got %d", cellSize)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	xOffset = normalizeOffset(xOffset, cellSize)
	yOffset = normalizeOffset(yOffset, cellSize)

	lineColor := color.RGBA{255, 0, 0, 255}
	if c, err := colorful.Hex(lineColorHex); err == nil {
		r, g, b := c.RGB255()
		lineColor = color.RGBA{r, g, b, 255}
	}

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	for x := xOffset; x < width; x += cellSize {
		for y := 0; y < height; y++ {
			result.Set(x, y, lineColor)
		}
	}
	for y := yOffset; y < height; y += cellSize {
		for x := 0; x < width; x++ {
			result.Set(x, y, lineColor)
		}
	}

	if showCells {
		labelColor := color.RGBA{255, 255, 255, 255}
		bgColor := color.RGBA{0, 0, 0, 180}

		for row := 0; ; row++ {
			cy := yOffset + row*cellSize
			if cy >= height {
				break
			}
			for col := 0; ; col++ {
				cx := xOffset + col*cellSize
				if cx >= width {
					break
				}
				label := fmt.Sprintf("%d,%d", col, row)
				drawLabel(result, cx+2, cy+2, label, labelColor, bgColor)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	return &GridOverlayResult{
		Width:       width,
		Height:      height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		CellSize:    cellSize,
		XOffset:     xOffset,
		YOffset:     yOffset,
	}, nil
}

// normalizeOffset maps any integer offset into [0, cellSize).
func normalizeOffset(off, cellSize int) int {
	off %= cellSize
	if off < 0 {
		off += cellSize
	}
	return off
}

// drawLabel renders a small numeric label using a built-in 3x5 pixel font.
// Only digits and the comma separator are supported; other runes advance the
// cursor without drawing.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
