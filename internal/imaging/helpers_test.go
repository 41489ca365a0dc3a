package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
)

// createInMemoryImage creates an in-memory image filled with c
func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// saveTestImage writes img as a PNG under t.TempDir and returns its path.
func saveTestImage(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		t.Fatalf("failed to save test image: %v", err)
	}
	return path
}

// createTestImage writes a solid width x height PNG and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	return saveTestImage(t, "solid.png", createInMemoryImage(width, height, c))
}

// createInvalidImage writes a .png file that is not an image.
func createInvalidImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatalf("failed to write invalid image: %v", err)
	}
	return path
}
