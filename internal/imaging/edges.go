package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/mapsmith/mapgrid-mcp/internal/griddetect"
)

// EdgePreviewResult contains a grayscale rendering of the edge fields the grid
// detector derives from a map, encoded as base64 PNG.
//
// Bright pixels mark strong brightness transitions; a map with a visible grid
// shows the grid as bright horizontal and vertical line families. The preview
// is the main debugging aid when a detection looks wrong.
type EdgePreviewResult struct {
	// Width of the output image in pixels (same as input).
	Width int `json:"width"`

	// Height of the output image in pixels (same as input).
	Height int `json:"height"`

	// ImageBase64 is the edge preview encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`

	// MaxEdge is the strongest edge response found, before normalization.
	// Zero means the map is perfectly flat.
	MaxEdge float64 `json:"max_edge"`
}

// EdgePreview renders the detector's horizontal and vertical edge fields as a
// single grayscale image.
//
// Each output pixel takes the stronger of the two edge responses covering it,
// scaled so the strongest response maps to white. The edge fields are computed
// from strided brightness differences, so responses sit between the image rows
// or columns that produced them; the preview centers each response on the
// pixels it spans.
//
// A flat map (no edges anywhere) produces an all-black preview with MaxEdge 0.
func EdgePreview(img image.Image) (*EdgePreviewResult, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	ef := griddetect.ExtractEdges(img)

	combined := make([][]float64, height)
	for y := range combined {
		combined[y] = make([]float64, width)
	}

	maxEdge := 0.0
	// H[y][x] compares image rows y and y+2 at column x; center it on row y+1.
	for y, row := range ef.H {
		for x, v := range row {
			if v > combined[y+1][x] {
				combined[y+1][x] = v
			}
			if v > maxEdge {
				maxEdge = v
			}
		}
	}
	// V[y][x] compares image columns x and x+2 at row y; center it on column x+1.
	for y, row := range ef.V {
		for x, v := range row {
			if v > combined[y][x+1] {
				combined[y][x+1] = v
			}
			if v > maxEdge {
				maxEdge = v
			}
		}
	}

	result := image.NewGray(image.Rect(0, 0, width, height))
	if maxEdge > 0 {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				result.Pix[y*result.Stride+x] = uint8(combined[y][x] / maxEdge * 255)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return nil, fmt.Errorf("failed to encode edge preview: %w", err)
	}

	return &EdgePreviewResult{
		Width:       width,
		Height:      height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		MaxEdge:     maxEdge,
	}, nil
}
