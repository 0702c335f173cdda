package scheduler

import (
	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/kernel"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/raster"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
	"github.com/fractalnow-go/fractalnow/internal/task"
)

// DrawFractalTask builds the leaf task that renders f/r into img (spec
// §4.3). quadSide=1 disables quad interpolation entirely (every pixel
// evaluated directly); quadThreshold is τ_q.
func DrawFractalTask[F numeric.Real](img *raster.Image, f *fractal.Fractal[F], r *rendering.Params[F], quadSide int, quadThreshold float64, nbThreads int) *task.Task {
	if img.Width < 2 || img.Height < 2 {
		return task.NewLeaf("draw fractal", 1, []any{nil}, func(h *task.Handle, arg any) {}, nil)
	}
	if quadSide < 1 {
		quadSide = 1
	}

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
		drawRect(h, img, f, r, kern, arg.(Rect), quadSide, quadThreshold)
	}
	return task.NewLeaf("draw fractal", len(rects), args, routine, nil)
}

func evalPixel[F numeric.Real](img *raster.Image, f *fractal.Fractal[F], r *rendering.Params[F], kern kernel.PixelKernel[F], x, y int) (uint32, uint32, uint32) {
	pt := kernel.PixelToWorld(f, F(x), F(y), F(img.Width), F(img.Height))
	return kernel.Evaluate(f, r, kern, pt)
}

func drawRect[F numeric.Real](h *task.Handle, img *raster.Image, f *fractal.Fractal[F], r *rendering.Params[F], kern kernel.PixelKernel[F], rc Rect, quadSide int, threshold float64) {
	if quadSide == 1 {
		for y := rc.Y0; y < rc.Y1; y++ {
			for x := rc.X0; x < rc.X1; x++ {
				red, green, blue := evalPixel(img, f, r, kern, x, y)
				img.Set(x, y, red, green, blue)
				if !h.CheckPoint() {
					return
				}
			}
		}
		return
	}

	for ty := rc.Y0; ty < rc.Y1; ty += quadSide {
		qy1 := ty + quadSide
		if qy1 > rc.Y1 {
			qy1 = rc.Y1
		}
		for tx := rc.X0; tx < rc.X1; tx += quadSide {
			qx1 := tx + quadSide
			if qx1 > rc.X1 {
				qx1 = rc.X1
			}
			processQuad(img, f, r, kern, tx, ty, qx1, qy1, threshold)
			if !h.CheckPoint() {
				return
			}
		}
	}
}

// processQuad evaluates one sub-rectangle's four corners, decides
// between bilinear fill and exhaustive evaluation by their average
// pairwise dissimilarity, and writes the result (spec §4.3 step 4).
func processQuad[F numeric.Real](img *raster.Image, f *fractal.Fractal[F], r *rendering.Params[F], kern kernel.PixelKernel[F], x0, y0, x1, y1 int, threshold float64) {
	xEnd, yEnd := x1-1, y1-1

	write := func(x, y int) raster.Pixel {
		red, green, blue := evalPixel(img, f, r, kern, x, y)
		img.Set(x, y, red, green, blue)
		return raster.Pixel{R: red, G: green, B: blue}
	}

	c00 := write(x0, y0)
	var c10, c01, c11 raster.Pixel
	if xEnd != x0 {
		c10 = write(xEnd, y0)
	} else {
		c10 = c00
	}
	if yEnd != y0 {
		c01 = write(x0, yEnd)
	} else {
		c01 = c00
	}
	switch {
	case xEnd != x0 && yEnd != y0:
		c11 = write(xEnd, yEnd)
	case xEnd == x0:
		c11 = c01
	default:
		c11 = c10
	}

	d := avgDissimilarity(img, c00, c10, c01, c11)
	if d < threshold {
		fillInterpolated(img, x0, y0, x1, y1, c00, c10, c01, c11)
	} else {
		fillExhaustive(img, f, r, kern, x0, y0, x1, y1)
	}
}

func avgDissimilarity(img *raster.Image, c00, c10, c01, c11 raster.Pixel) float64 {
	pairs := [6][2]raster.Pixel{
		{c00, c10}, {c00, c01}, {c00, c11},
		{c10, c01}, {c10, c11}, {c01, c11},
	}
	var sum float64
	for _, p := range pairs {
		sum += img.Dissimilarity(p[0], p[1])
	}
	return sum / 6
}

func isCorner(x, y, x0, y0, x1, y1 int) bool {
	return (x == x0 || x == x1-1) && (y == y0 || y == y1-1)
}

func fillInterpolated(img *raster.Image, x0, y0, x1, y1 int, c00, c10, c01, c11 raster.Pixel) {
	w := x1 - 1 - x0
	h := y1 - 1 - y0
	for y := y0; y < y1; y++ {
		var ty float64
		if h > 0 {
			ty = float64(y-y0) / float64(h)
		}
		for x := x0; x < x1; x++ {
			if isCorner(x, y, x0, y0, x1, y1) {
				continue
			}
			var tx float64
			if w > 0 {
				tx = float64(x-x0) / float64(w)
			}
			r := bilerp(float64(c00.R), float64(c10.R), float64(c01.R), float64(c11.R), tx, ty)
			g := bilerp(float64(c00.G), float64(c10.G), float64(c01.G), float64(c11.G), tx, ty)
			b := bilerp(float64(c00.B), float64(c10.B), float64(c01.B), float64(c11.B), tx, ty)
			img.Set(x, y, uint32(r), uint32(g), uint32(b))
		}
	}
}

func bilerp(v00, v10, v01, v11, tx, ty float64) float64 {
	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*ty
}

func fillExhaustive[F numeric.Real](img *raster.Image, f *fractal.Fractal[F], r *rendering.Params[F], kern kernel.PixelKernel[F], x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if isCorner(x, y, x0, y0, x1, y1) {
				continue
			}
			red, green, blue := evalPixel(img, f, r, kern, x, y)
			img.Set(x, y, red, green, blue)
		}
	}
}
