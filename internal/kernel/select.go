// Package kernel implements spec §4.2: the per-pixel escape-time
// evaluator, specialised per (formula, p-kind, coloring method, addend
// function, interpolation method).
package kernel

import (
	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
)

// InsideSentinel is the distinguished negative return value meaning "did
// not escape within maxIter iterations" (spec GLOSSARY).
const InsideSentinel = -1.0

// PixelKernel is a fully specialised per-pixel evaluator: pure function
// of (fractal, rendering params, world-space point) to a scalar.
type PixelKernel[F numeric.Real] func(f *fractal.Fractal[F], r *rendering.Params[F], pt numeric.Complex[F]) F

type initFunc[F numeric.Real] func(f *fractal.Fractal[F], pixel numeric.Complex[F]) (z, c numeric.Complex[F])
type stepFunc[F numeric.Real] func(f *fractal.Fractal[F], z, c numeric.Complex[F]) numeric.Complex[F]

func selectInit[F numeric.Real](formula fractal.Formula) initFunc[F] {
	switch formula {
	case fractal.Julia, fractal.JuliaP:
		return func(f *fractal.Fractal[F], pixel numeric.Complex[F]) (numeric.Complex[F], numeric.Complex[F]) {
			return pixel, f.C
		}
	default: // Mandelbrot, MandelbrotP, Rudy: z0=0, c=pixel
		return func(f *fractal.Fractal[F], pixel numeric.Complex[F]) (numeric.Complex[F], numeric.Complex[F]) {
			return numeric.Complex[F]{}, pixel
		}
	}
}

func selectStep[F numeric.Real](formula fractal.Formula, pIsInt bool) stepFunc[F] {
	power := func(f *fractal.Fractal[F], z numeric.Complex[F]) numeric.Complex[F] {
		if pIsInt {
			return numeric.IPow(z, f.PInt)
		}
		return numeric.RealPow(z, f.P)
	}

	switch formula {
	case fractal.Mandelbrot, fractal.Julia:
		return func(f *fractal.Fractal[F], z, c numeric.Complex[F]) numeric.Complex[F] {
			return z.Square().Add(c)
		}
	case fractal.MandelbrotP, fractal.JuliaP:
		return func(f *fractal.Fractal[F], z, c numeric.Complex[F]) numeric.Complex[F] {
			return power(f, z).Add(c)
		}
	case fractal.Rudy:
		return func(f *fractal.Fractal[F], z, c numeric.Complex[F]) numeric.Complex[F] {
			// z <- z^p + d*z + c ; d is fractal.C, c is the pixel (spec §4.2).
			return power(f, z).Add(f.C.Mul(z)).Add(c)
		}
	default:
		return func(f *fractal.Fractal[F], z, c numeric.Complex[F]) numeric.Complex[F] {
			return z.Square().Add(c)
		}
	}
}

// Select returns the specialised kernel for one legal combination of
// (formula, pIsInt, coloringMethod, addendFn, interpolationMethod). The
// switches on formula and coloring method inside selectInit/selectStep/
// here run once, at selection time. The returned closure still branches
// per pixel on the rest: the power step tests pIsInt on every iteration,
// and the addend function, interpolation method and counting function
// are switched on inside orbit.advance, interpolate and countingValue.
func Select[F numeric.Real](formula fractal.Formula, pIsInt bool, coloringMethod rendering.ColoringMethod, addendFn rendering.AddendFunction, interpolationMethod rendering.InterpolationMethod) PixelKernel[F] {
	init := selectInit[F](formula)
	step := selectStep[F](formula, pIsInt)

	if coloringMethod == rendering.IterationCount {
		return func(f *fractal.Fractal[F], r *rendering.Params[F], pt numeric.Complex[F]) F {
			z, c := init(f, pt)
			n := 0
			for n < f.MaxIter && z.Norm2() < f.R2 {
				z = step(f, z, c)
				n++
			}
			if z.Norm2() < f.R2 {
				return InsideSentinel
			}
			logP := numeric.LogF(f.P)
			return countingValue[F](r.CountingFn, n, z.Abs(), f.EscapeRadius, f.RP, f.LogR, logP)
		}
	}

	// Average coloring: always derives d from the smooth iteration count,
	// regardless of the configured counting function (spec §4.2).
	numSums := interpolationMethod.NumSums()
	return func(f *fractal.Fractal[F], r *rendering.Params[F], pt numeric.Complex[F]) F {
		z, c := init(f, pt)
		o := newOrbit(f, addendFn, r.StripeDensity)

		n := 0
		for n < f.MaxIter && z.Norm2() < f.R2 {
			o.advance(z, c)
			z = step(f, z, c)
			n++
		}
		if z.Norm2() < f.R2 {
			return InsideSentinel
		}
		o.advance(z, c) // one extra update for the escaping step

		logP := numeric.LogF(f.P)
		smooth := countingValue[F](rendering.Smooth, n, z.Abs(), f.EscapeRadius, f.RP, f.LogR, logP)
		_, d := numeric.Modf(smooth)
		if d < 0 {
			d += 1
		}

		sums := o.sums(numSums)
		return interpolate(interpolationMethod, d, sums)
	}
}
