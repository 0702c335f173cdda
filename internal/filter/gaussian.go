// Package filter implements the separable Gaussian filter contract of
// spec §4.5, grounded on FractalNow's
// original_source/lib/include/filter.h: a 1-D kernel built from a
// radius (σ = r/3), applied point-wise with clamp-to-edge sampling, and
// a convenience whole-image blur built on top of the point-wise form.
package filter

import (
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/raster"
)

// Gaussian1D is a normalised 1-D Gaussian kernel of the given radius.
type Gaussian1D[F numeric.Real] struct {
	Radius  int
	Weights []F // length 2*Radius+1, weights[radius] is the centre tap
}

// NewGaussian1D builds a radius-r kernel with σ = r/3 (spec §4.5). r=0
// yields the identity kernel (single tap of weight 1).
func NewGaussian1D[F numeric.Real](radius int) Gaussian1D[F] {
	if radius <= 0 {
		return Gaussian1D[F]{Radius: 0, Weights: []F{1}}
	}
	sigma := F(radius) / 3
	n := 2*radius + 1
	w := make([]F, n)
	var sum F
	for i := 0; i < n; i++ {
		offset := F(i - radius)
		w[i] = numeric.ExpF(-(offset * offset) / (2 * sigma * sigma))
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return Gaussian1D[F]{Radius: radius, Weights: w}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ApplyAt filters one output pixel at (x, y) using the horizontal
// kernel kx and vertical kernel ky, clamp-to-edge at the image
// boundary — the point-wise application the spec requires the core to
// depend on.
func ApplyAt[F numeric.Real](img *raster.Image, x, y int, kx, ky Gaussian1D[F]) raster.Pixel {
	// Horizontal pass into a temporary column, then vertical pass.
	type accum struct{ r, g, b F }
	col := make([]accum, 2*ky.Radius+1)
	for dy := -ky.Radius; dy <= ky.Radius; dy++ {
		sy := clampIndex(y+dy, img.Height)
		var r, g, b F
		for dx := -kx.Radius; dx <= kx.Radius; dx++ {
			sx := clampIndex(x+dx, img.Width)
			p := img.At(sx, sy)
			wgt := kx.Weights[dx+kx.Radius]
			r += F(p.R) * wgt
			g += F(p.G) * wgt
			b += F(p.B) * wgt
		}
		col[dy+ky.Radius] = accum{r, g, b}
	}
	var r, g, b F
	for i, a := range col {
		wgt := ky.Weights[i]
		r += a.r * wgt
		g += a.g * wgt
		b += a.b * wgt
	}
	return raster.Pixel{R: uint32(r), G: uint32(g), B: uint32(b)}
}

// Blur applies the separable Gaussian of the given radius to every
// pixel of img, returning a new image. Offered as a post-processing
// convenience; the adaptive AA pass does not use it and only builds its
// 1-D kernels with NewGaussian1D.
func Blur[F numeric.Real](img *raster.Image, radius int) *raster.Image {
	kx := NewGaussian1D[F](radius)
	ky := NewGaussian1D[F](radius)
	out := &raster.Image{
		Width:             img.Width,
		Height:            img.Height,
		BytesPerComponent: img.BytesPerComponent,
		Pixels:            make([]raster.Pixel, len(img.Pixels)),
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.Set(x, y, 0, 0, 0)
			p := ApplyAt(img, x, y, kx, ky)
			*out.At(x, y) = p
		}
	}
	return out
}
