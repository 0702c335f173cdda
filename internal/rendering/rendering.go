// Package rendering holds the RenderingParams value type (spec §3): the
// coloring pipeline configuration consumed by the kernel selector.
package rendering

import (
	"github.com/fractalnow-go/fractalnow/internal/ferrors"
	"github.com/fractalnow-go/fractalnow/internal/gradient"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
)

type CountingFunction int

const (
	Discrete CountingFunction = iota
	Continuous
	Smooth
)

type ColoringMethod int

const (
	IterationCount ColoringMethod = iota
	Average
)

type AddendFunction int

const (
	NoAddend AddendFunction = iota
	TriangleInequality
	Curvature
	Stripe
)

type InterpolationMethod int

const (
	NoInterpolation InterpolationMethod = iota
	Linear
	Spline
)

// NumSums returns how many addend sums an interpolation method combines,
// per spec §4.2 ("1 for None, 2 for Linear, 4 for Spline").
func (m InterpolationMethod) NumSums() int {
	switch m {
	case NoInterpolation:
		return 1
	case Linear:
		return 2
	case Spline:
		return 4
	default:
		return 1
	}
}

type TransferFunction int

const (
	TransferLog TransferFunction = iota
	TransferCubeRoot
	TransferSqrt
	TransferIdentity
	TransferSquare
	TransferCube
	TransferExp
)

// Apply evaluates the transfer function at x.
func Apply[F numeric.Real](fn TransferFunction, x F) F {
	switch fn {
	case TransferLog:
		return numeric.LogF(1 + x)
	case TransferCubeRoot:
		if x < 0 {
			return -numeric.PowF(-x, F(1.0/3.0))
		}
		return numeric.PowF(x, F(1.0/3.0))
	case TransferSqrt:
		return numeric.Sqrt(x)
	case TransferIdentity:
		return x
	case TransferSquare:
		return x * x
	case TransferCube:
		return x * x * x
	case TransferExp:
		return numeric.ExpF(x)
	default:
		return x
	}
}

// Params is the spec §3 RenderingParams value type, generic over F to
// match Fractal[F].
type Params[F numeric.Real] struct {
	BytesPerComponent int
	SpaceColor        gradient.Control

	CountingFn          CountingFunction
	ColoringMethod      ColoringMethod
	AddendFn            AddendFunction
	StripeDensity       F
	InterpolationMethod InterpolationMethod
	TransferFn          TransferFunction

	Multiplier F
	Offset     F

	Gradient *gradient.Gradient
}

// New validates and builds a Params value (spec §3 invariants).
func New[F numeric.Real](bytesPerComponent int, spaceColor gradient.Control, countingFn CountingFunction, coloringMethod ColoringMethod, addendFn AddendFunction, stripeDensity F, interpolationMethod InterpolationMethod, transferFn TransferFunction, multiplier, offset F, grad *gradient.Gradient) (Params[F], error) {
	var z Params[F]
	if bytesPerComponent != 1 && bytesPerComponent != 2 {
		return z, ferrors.InvalidConfigf("bytesPerComponent must be 1 or 2, got %d", bytesPerComponent)
	}
	if grad == nil || grad.Len() == 0 {
		return z, ferrors.InvalidConfigf("gradient must have at least one sample")
	}
	if grad.BytesPerComponent() != bytesPerComponent {
		return z, ferrors.InvalidConfigf("gradient byte depth (%d) does not match rendering byte depth (%d)", grad.BytesPerComponent(), bytesPerComponent)
	}
	return Params[F]{
		BytesPerComponent:   bytesPerComponent,
		SpaceColor:          spaceColor,
		CountingFn:          countingFn,
		ColoringMethod:      coloringMethod,
		AddendFn:            addendFn,
		StripeDensity:       stripeDensity,
		InterpolationMethod: interpolationMethod,
		TransferFn:          transferFn,
		Multiplier:          multiplier,
		Offset:              offset,
		Gradient:            grad,
	}, nil
}
