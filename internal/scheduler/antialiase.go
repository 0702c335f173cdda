package scheduler

import (
	"github.com/fractalnow-go/fractalnow/internal/filter"
	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/kernel"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/raster"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
	"github.com/fractalnow-go/fractalnow/internal/task"
)

// AntiAliaseTask builds the leaf task that refines img in place (spec
// §4.4): size A is the super-sample grid side, threshold is τ_a. A<2 is
// a no-op task.
func AntiAliaseTask[F numeric.Real](img *raster.Image, f *fractal.Fractal[F], r *rendering.Params[F], size int, threshold float64, nbThreads int) *task.Task {
	if size < 2 {
		return task.NewLeaf("antialiase", 1, []any{nil}, func(h *task.Handle, arg any) {}, nil)
	}

	src := img.Clone()
	k := nbThreads
	if max := img.Width * img.Height; k > max {
		k = max
	}
	if k < 1 {
		k = 1
	}
	rects := Partition(img.Width, img.Height, k)
	kern := kernel.Select[F](f.Formula, f.PIsInt, r.ColoringMethod, r.AddendFn, r.InterpolationMethod)

	args := make([]any, len(rects))
	for i, rc := range rects {
		args[i] = rc
	}

	routine := func(h *task.Handle, arg any) {
		antiAliaseRect(h, img, src, f, r, kern, arg.(Rect), size, threshold)
	}
	return task.NewLeaf("antialiase", len(rects), args, routine, nil)
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func antiAliaseRect[F numeric.Real](h *task.Handle, out, src *raster.Image, f *fractal.Fractal[F], r *rendering.Params[F], kern kernel.PixelKernel[F], rc Rect, size int, threshold float64) {
	for y := rc.Y0; y < rc.Y1; y++ {
		for x := rc.X0; x < rc.X1; x++ {
			c0 := *src.At(x, y)
			var delta float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := clampIndex(x+dx, src.Width)
					ny := clampIndex(y+dy, src.Height)
					if d := src.Dissimilarity(c0, *src.At(nx, ny)); d > delta {
						delta = d
					}
				}
			}
			if delta <= threshold {
				continue
			}
			red, green, blue := superSample(f, r, kern, out.Width, out.Height, x, y, size)
			out.Set(x, y, red, green, blue)
		}
		if !h.CheckPoint() {
			return
		}
	}
}

type sampleAccum[F numeric.Real] struct{ r, g, b F }

// superSample evaluates an AxA grid of sub-pixel positions inside pixel
// (x,y) against a world space scaled to (imgW*A, imgH*A), then collapses
// the grid with a separable Gaussian of radius A, taking the centre
// sample of each pass (spec §4.4 step 4's "horizontal then vertical,
// selecting the centre sample of each").
func superSample[F numeric.Real](f *fractal.Fractal[F], r *rendering.Params[F], kern kernel.PixelKernel[F], imgW, imgH, x, y, size int) (uint32, uint32, uint32) {
	grid := make([]raster.Pixel, size*size)
	w := F(imgW * size)
	h := F(imgH * size)
	for k := 0; k < size; k++ {
		for l := 0; l < size; l++ {
			px := F(x*size + l)
			py := F(y*size + k)
			pt := kernel.PixelToWorld(f, px, py, w, h)
			red, green, blue := kernel.Evaluate(f, r, kern, pt)
			grid[k*size+l] = raster.Pixel{R: red, G: green, B: blue}
		}
	}

	gauss := filter.NewGaussian1D[F](size)
	centre := size / 2

	rows := make([]sampleAccum[F], size)
	for k := 0; k < size; k++ {
		var acc sampleAccum[F]
		for tap, wgt := range gauss.Weights {
			l := clampIndex(centre+tap-gauss.Radius, size)
			p := grid[k*size+l]
			acc.r += F(p.R) * wgt
			acc.g += F(p.G) * wgt
			acc.b += F(p.B) * wgt
		}
		rows[k] = acc
	}

	var final sampleAccum[F]
	for tap, wgt := range gauss.Weights {
		k := clampIndex(centre+tap-gauss.Radius, size)
		final.r += rows[k].r * wgt
		final.g += rows[k].g * wgt
		final.b += rows[k].b * wgt
	}
	return uint32(final.r), uint32(final.g), uint32(final.b)
}
