package imaging

import (
	"errors"
	"fmt"
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components (0-255).
type RGBColor struct {
	R uint8 // Red component (0-255)
	G uint8 // Green component (0-255)
	B uint8 // Blue component (0-255)
}

// normalized returns c with each component normalized to [0,1].
func (c RGBColor) normalized() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// HexColor formats c as a lowercase "#rrggbb" string.
func HexColor(c RGBColor) string {
	return c.normalized().Hex()
}

// HSV converts c to hue (0-360 degrees), saturation (0-1) and value (0-1).
//
// Saturation is (max-min)/max and value is max, over the normalized channels;
// black has saturation 0.
func HSV(c RGBColor) (h, s, v float64) {
	return c.normalized().Hsv()
}

// Result is the outcome of a color lookup: either Ok with a hex color or Err
// with a human-readable message.
//
// The zero value is an Err with an empty message.
type Result struct {
	hex     string
	message string
	ok      bool
}

// Ok returns a successful Result carrying hex.
func Ok(hex string) Result {
	return Result{hex: hex, ok: true}
}

// Err returns a failed Result carrying message.
func Err(message string) Result {
	return Result{message: message}
}

// OK reports whether r holds a color.
func (r Result) OK() bool { return r.ok }

// Hex returns the color and true, or "" and false for an Err.
func (r Result) Hex() (string, bool) {
	return r.hex, r.ok
}

// Message returns the failure message, or "" for an Ok.
func (r Result) Message() string { return r.message }

// String returns the hex color for an Ok and the message for an Err, which is
// what the report prints in either case.
func (r Result) String() string {
	if r.ok {
		return r.hex
	}
	return r.message
}

// failure converts a load or sampling error for path into an Err Result.
//
//	File not found: <path>
//	Error reading <path>: <details>
func failure(path string, err error) Result {
	if errors.Is(err, ErrNotFound) {
		return Err(fmt.Sprintf("File not found: %s", path))
	}
	return Err(fmt.Sprintf("Error reading %s: %v", path, err))
}

// pixelAt returns the RGB components stored at (x, y), ignoring alpha.
func pixelAt(img *image.NRGBA, x, y int) RGBColor {
	i := img.PixOffset(x, y)
	return RGBColor{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// SampleColor returns the color at (x, y) of an already loaded image.
//
// Returns an error if the coordinates fall outside the image bounds.
func SampleColor(img *image.NRGBA, x, y int) (RGBColor, error) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		b := img.Bounds()
		return RGBColor{}, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, b.Dx(), b.Dy())
	}
	return pixelAt(img, x, y), nil
}

// SamplePixel loads the image at path and returns the color at (x, y) as
// Ok("#rrggbb").
//
// A missing file yields Err("File not found: <path>"). Decode failures and
// out-of-bounds coordinates yield Err("Error reading <path>: <details>").
//
// # Example
//
//	bg := imaging.SamplePixel(cache, "src/assets/banner.png", 0, 0)
//	if hex, ok := bg.Hex(); ok {
//	    fmt.Println(hex)
//	}
func SamplePixel(cache *ImageCache, path string, x, y int) Result {
	img, err := cache.Load(path)
	if err != nil {
		return failure(path, err)
	}

	c, err := SampleColor(img, x, y)
	if err != nil {
		return failure(path, err)
	}
	return Ok(HexColor(c))
}
