package kernel

import (
	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
)

// PixelToWorld maps a (sub-)pixel coordinate in an image of dimensions
// (w, h) to its world-space point, per spec §4.2 component 6: the pixel
// centre is at (x1 + (i+½)·spanX/w, y1 + (j+½)·spanY/h).
func PixelToWorld[F numeric.Real](f *fractal.Fractal[F], i, j, w, h F) numeric.Complex[F] {
	x := f.X1 + (i+0.5)*f.SpanX/w
	y := f.Y1 + (j+0.5)*f.SpanY/h
	return numeric.Complex[F]{Re: x, Im: y}
}

// Evaluate runs a specialised kernel at a world-space point and produces
// a final RGB colour: transfer function, scale/offset by
// (multiplier·gradientSize, offset·gradientSize), gradient lookup with
// wrap-around, or the background colour for points inside the set.
func Evaluate[F numeric.Real](f *fractal.Fractal[F], r *rendering.Params[F], kern PixelKernel[F], pt numeric.Complex[F]) (red, green, blue uint32) {
	v := kern(f, r, pt)
	if v < 0 {
		return uint32(r.SpaceColor.R), uint32(r.SpaceColor.G), uint32(r.SpaceColor.B)
	}

	gradientSize := F(r.Gradient.Len())
	transferred := rendering.Apply(r.TransferFn, v)
	idx := transferred*r.Multiplier*gradientSize + r.Offset*gradientSize
	return r.Gradient.At(int(numeric.Floor(idx)))
}
