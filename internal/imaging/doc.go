// Package imaging extracts representative colors from raster images.
//
// Two operations are provided. SamplePixel reads a single pixel and reports it
// as a hex color, which is how a banner's background color is picked from its
// corner. ExtractHighlight downsamples an image, buckets its colors and picks
// the most saturated frequent color, which is how a logo's accent color is
// chosen.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X increasing
// rightward and Y increasing downward.
//
// # Color Representation
//
// Colors are reported as lowercase 6-character hex strings "#rrggbb". Alpha is
// dropped without premultiplication: a fully transparent pixel keeps the RGB
// values stored in the file.
//
// # Results
//
// Both operations return a Result rather than an error. A Result is either
// Ok(hex) or Err(message); the message wording is stable and meant for display,
// while callers that need to branch use Result.OK instead of inspecting text.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. SamplePixel and
// ExtractHighlight hold no state of their own.
package imaging
