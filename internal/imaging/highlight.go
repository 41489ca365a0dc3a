package imaging

import (
	"errors"
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
)

const (
	// DefaultSampleSize is the edge length images are downsampled to before
	// counting colors.
	DefaultSampleSize = 150

	// DefaultTopN is the number of most frequent buckets considered as
	// highlight candidates.
	DefaultTopN = 20

	// QuantizeStep is the bucket width applied to each channel.
	QuantizeStep = 20

	// MinSaturation and MinValue are exclusive lower bounds a bucket must
	// exceed to count as a vivid highlight.
	MinSaturation = 0.3
	MinValue      = 0.3
)

// Quantize rounds c to the nearest multiple of QuantizeStep, clamped to 255.
//
// Exact halves round to the even multiple (10 -> 0, 30 -> 40, 50 -> 40), so
// the result is always within QuantizeStep/2 of c.
func Quantize(c uint8) uint8 {
	q := math.RoundToEven(float64(c)/QuantizeStep) * QuantizeStep
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

// QuantizeColor applies Quantize to each channel of c.
func QuantizeColor(c RGBColor) RGBColor {
	return RGBColor{R: Quantize(c.R), G: Quantize(c.G), B: Quantize(c.B)}
}

// Bucket is a quantized color and the number of pixels that fell into it.
type Bucket struct {
	Color RGBColor
	Count int
}

// BucketCounter counts quantized colors while remembering the order in which
// each bucket was first seen. That order breaks ties in MostCommon, so the
// same image always produces the same ranking.
type BucketCounter struct {
	index   map[RGBColor]int
	buckets []Bucket
}

// NewBucketCounter returns an empty counter.
func NewBucketCounter() *BucketCounter {
	return &BucketCounter{index: make(map[RGBColor]int)}
}

// Add counts one occurrence of c.
func (bc *BucketCounter) Add(c RGBColor) {
	if i, ok := bc.index[c]; ok {
		bc.buckets[i].Count++
		return
	}
	bc.index[c] = len(bc.buckets)
	bc.buckets = append(bc.buckets, Bucket{Color: c, Count: 1})
}

// Len returns the number of distinct buckets.
func (bc *BucketCounter) Len() int { return len(bc.buckets) }

// MostCommon returns up to n buckets ordered by count, highest first.
// Buckets with equal counts keep first-seen order.
func (bc *BucketCounter) MostCommon(n int) []Bucket {
	sorted := make([]Bucket, len(bc.buckets))
	copy(sorted, bc.buckets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// CountBuckets quantizes every pixel of img in row-major order and counts
// the resulting buckets. Alpha is ignored.
func CountBuckets(img *image.NRGBA) *BucketCounter {
	bc := NewBucketCounter()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			bc.Add(QuantizeColor(pixelAt(img, x, y)))
		}
	}
	return bc
}

// Candidate is a frequent bucket with its HSV components.
type Candidate struct {
	Bucket
	Hue        float64
	Saturation float64
	Value      float64
}

// Vivid reports whether the candidate passes the highlight filter.
func (c Candidate) Vivid() bool {
	return c.Saturation > MinSaturation && c.Value > MinValue
}

// HighlightOptions tunes ExtractHighlight. Zero fields use the defaults.
type HighlightOptions struct {
	// SampleSize is the square edge the image is resized to (DefaultSampleSize).
	SampleSize int

	// TopN is the number of frequent buckets considered (DefaultTopN).
	TopN int
}

func (o HighlightOptions) withDefaults() HighlightOptions {
	if o.SampleSize <= 0 {
		o.SampleSize = DefaultSampleSize
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	return o
}

// Highlight is the outcome of ExtractHighlight.
type Highlight struct {
	// Best is the chosen highlight color, or the failure message.
	Best Result

	// Candidates lists hex colors. When at least one frequent bucket is vivid
	// it holds the vivid buckets by descending saturation; otherwise it holds
	// every considered bucket by descending frequency. Empty on failure.
	Candidates []string

	// Fallback is true when no vivid bucket existed and Best is simply the
	// most frequent bucket.
	Fallback bool
}

// ExtractHighlight picks an accent color for the image at path.
//
// # Algorithm
//
//  1. Load the image and resize it to SampleSize x SampleSize (bicubic).
//  2. Quantize every pixel with Quantize and count buckets in row-major order.
//  3. Take the TopN most frequent buckets (ties keep first-seen order).
//  4. Keep the buckets with saturation > 0.3 and value > 0.3, stable-sorted
//     by descending saturation only.
//  5. If any survive, Best is the first of them and Candidates lists them
//     all. Otherwise Best is the most frequent bucket and Candidates lists
//     all TopN buckets in frequency order.
//
// Failures produce an Err Best and an empty Candidates list, using the same
// messages as SamplePixel.
func ExtractHighlight(cache *ImageCache, path string, opts HighlightOptions) Highlight {
	opts = opts.withDefaults()

	img, err := cache.Load(path)
	if err != nil {
		return Highlight{Best: failure(path, err), Candidates: []string{}}
	}

	small := imaging.Resize(img, opts.SampleSize, opts.SampleSize, imaging.CatmullRom)
	top := CountBuckets(small).MostCommon(opts.TopN)
	if len(top) == 0 {
		return Highlight{Best: failure(path, errors.New("image has no pixels")), Candidates: []string{}}
	}

	return selectHighlight(top)
}

// selectHighlight applies the vivid filter and fallback rule to buckets
// already ordered by frequency.
func selectHighlight(top []Bucket) Highlight {
	vivid := make([]Candidate, 0, len(top))
	for _, b := range top {
		c := newCandidate(b)
		if c.Vivid() {
			vivid = append(vivid, c)
		}
	}

	if len(vivid) == 0 {
		hexes := make([]string, len(top))
		for i, b := range top {
			hexes[i] = HexColor(b.Color)
		}
		return Highlight{Best: Ok(hexes[0]), Candidates: hexes, Fallback: true}
	}

	sort.SliceStable(vivid, func(i, j int) bool {
		return vivid[i].Saturation > vivid[j].Saturation
	})

	hexes := make([]string, len(vivid))
	for i, c := range vivid {
		hexes[i] = HexColor(c.Color)
	}
	return Highlight{Best: Ok(hexes[0]), Candidates: hexes}
}

func newCandidate(b Bucket) Candidate {
	h, s, v := HSV(b.Color)
	return Candidate{Bucket: b, Hue: h, Saturation: s, Value: v}
}
