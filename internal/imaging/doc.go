// Package imaging provides raster I/O and inspection helpers for battle maps.
//
// This package handles the pixel-level plumbing around grid detection: loading
// and caching map images, rendering verification overlays for a detected grid,
// previewing the edge fields the detector works from, zooming into regions,
// measuring distances in pixels and grid cells, and sampling colors.
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Supported Formats
//
// Maps are decoded with image.Decode; PNG, JPEG, GIF, and WebP decoders are
// registered. The reported format comes from the decoder, not the file
// extension, so a PNG renamed to .jpg is still reported as "png".
//
// # Thread Safety
//
// The MapCache type is safe for concurrent use. Individual operations are
// stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - File I/O errors during map loading
//   - Encoding errors during image output
package imaging
