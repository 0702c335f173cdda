// Package raster holds the Image value type (spec §3 and §6.1): a
// zero-initialised pixel buffer the tile scheduler and AA pass write
// into, and which can be serialised to bytes for an external encoder.
package raster

import (
	"github.com/fractalnow-go/fractalnow/internal/ferrors"
)

// Pixel is a single RGB sample whose channels hold values at the image's
// BytesPerComponent depth (0-255 for 1, 0-65535 for 2); ToBytes writes
// them out at that depth.
type Pixel struct {
	R, G, B uint32
}

// Image is the spec §3 Image entity. Workers write disjoint rectangles
// with no synchronisation (spec §5's central lock-free invariant).
type Image struct {
	Width, Height     int
	BytesPerComponent int
	Pixels            []Pixel
}

// Create allocates an all-zero image (spec §6.1's createImage).
func Create(width, height, bytesPerComponent int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ferrors.InvalidConfigf("image dimensions must be positive, got %dx%d", width, height)
	}
	if bytesPerComponent != 1 && bytesPerComponent != 2 {
		return nil, ferrors.InvalidConfigf("bytesPerComponent must be 1 or 2, got %d", bytesPerComponent)
	}
	n := width * height
	if n > (1<<31)/4 {
		return nil, ferrors.Allocf("image %dx%d exceeds implementation limits", width, height)
	}
	return &Image{
		Width:             width,
		Height:            height,
		BytesPerComponent: bytesPerComponent,
		Pixels:            make([]Pixel, n),
	}, nil
}

// At returns a pointer to the pixel slot for (x, y), allowing callers to
// both read and write in place.
func (img *Image) At(x, y int) *Pixel {
	return &img.Pixels[y*img.Width+x]
}

// Set writes (r, g, b) into pixel (x, y).
func (img *Image) Set(x, y int, r, g, b uint32) {
	img.Pixels[y*img.Width+x] = Pixel{R: r, G: g, B: b}
}

// Clone makes an independent copy of the image, used by the adaptive
// AA pass (spec §4.4) to build an immutable neighbour-lookup source so
// that writes to the output never influence the decision on later
// pixels.
func (img *Image) Clone() *Image {
	out := &Image{
		Width:             img.Width,
		Height:            img.Height,
		BytesPerComponent: img.BytesPerComponent,
		Pixels:            make([]Pixel, len(img.Pixels)),
	}
	copy(out.Pixels, img.Pixels)
	return out
}

// ToBytes emits row-major R,G,B bytes, big-endian MSB-first per channel
// for 16-bit depth, per spec §6.2's image-encoder contract.
func (img *Image) ToBytes() []byte {
	if img.BytesPerComponent == 2 {
		out := make([]byte, 0, len(img.Pixels)*6)
		for _, p := range img.Pixels {
			out = append(out, byte(p.R>>8), byte(p.R), byte(p.G>>8), byte(p.G), byte(p.B>>8), byte(p.B))
		}
		return out
	}
	out := make([]byte, 0, len(img.Pixels)*3)
	for _, p := range img.Pixels {
		out = append(out, byte(p.R), byte(p.G), byte(p.B))
	}
	return out
}

// Dissimilarity returns the mean per-channel Manhattan colour distance
// between a and b, normalised to [0,1] for the configured byte depth
// (spec §4.3/§4.4's "dissimilarity" measure).
func (img *Image) Dissimilarity(a, b Pixel) float64 {
	maxVal := float64(255)
	if img.BytesPerComponent == 2 {
		maxVal = 65535
	}
	dr := absDiff(a.R, b.R)
	dg := absDiff(a.G, b.G)
	db := absDiff(a.B, b.B)
	return (float64(dr) + float64(dg) + float64(db)) / (3 * maxVal)
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
