// Package fractal holds the Fractal value type (spec §3) describing which
// escape-time formula to evaluate and over what viewport.
package fractal

import (
	"strings"

	"github.com/fractalnow-go/fractalnow/internal/ferrors"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
)

// Formula identifies the iterated map a Fractal evaluates.
type Formula int

const (
	Mandelbrot Formula = iota
	MandelbrotP
	Julia
	JuliaP
	Rudy
)

func (f Formula) String() string {
	switch f {
	case Mandelbrot:
		return "mandelbrot"
	case MandelbrotP:
		return "mandelbrotp"
	case Julia:
		return "julia"
	case JuliaP:
		return "juliap"
	case Rudy:
		return "rudy"
	default:
		return "unknown"
	}
}

// ParseFormula maps a case-insensitive config-file token to a Formula.
func ParseFormula(s string) (Formula, error) {
	switch strings.ToLower(s) {
	case "mandelbrot":
		return Mandelbrot, nil
	case "mandelbrotp":
		return MandelbrotP, nil
	case "julia":
		return Julia, nil
	case "juliap":
		return JuliaP, nil
	case "rudy":
		return Rudy, nil
	default:
		return 0, ferrors.Parsef("unknown fractal formula %q", s)
	}
}

// Fractal is the immutable value type of spec §3. It is generic in the
// scalar type F so that a batch tool can be built against float32,
// float64, or any other Real without duplicating this package.
type Fractal[F numeric.Real] struct {
	Formula Formula

	P     F
	PIsInt bool
	PInt  int

	C numeric.Complex[F]

	CentreX, CentreY F
	SpanX, SpanY     F
	X1, Y1, X2, Y2   F

	EscapeRadius F
	R2           F
	RP           F
	LogR         F

	MaxIter int
}

// New builds a Fractal from (centre, span, c, p, R, maxIter), deriving
// every field spec §3 lists as derived. It returns InvalidConfiguration
// if any invariant is violated.
func New[F numeric.Real](formula Formula, centreX, centreY, spanX, spanY F, c numeric.Complex[F], p F, escapeRadius F, maxIter int) (Fractal[F], error) {
	var z Fractal[F]
	if spanX <= 0 || spanY <= 0 {
		return z, ferrors.InvalidConfigf("span must be positive, got spanX=%v spanY=%v", spanX, spanY)
	}
	if escapeRadius <= 1 {
		return z, ferrors.InvalidConfigf("escape radius must be > 1, got %v", escapeRadius)
	}
	if maxIter <= 0 {
		return z, ferrors.InvalidConfigf("maxIter must be > 0, got %d", maxIter)
	}
	if p < 0 {
		return z, ferrors.InvalidConfigf("exponent p must be >= 0, got %v", p)
	}

	f := Fractal[F]{
		Formula:      formula,
		P:            p,
		C:            c,
		CentreX:      centreX,
		CentreY:      centreY,
		SpanX:        spanX,
		SpanY:        spanY,
		EscapeRadius: escapeRadius,
		MaxIter:      maxIter,
	}

	switch formula {
	case Mandelbrot, Julia:
		// Fixed exponent: forced p=2 and pIsInt=true regardless of the p
		// passed in, matching spec §3's invariant for the two base formulas.
		f.P = 2
		f.PIsInt = true
		f.PInt = 2
	default:
		intPart, frac := numeric.Modf(p)
		if frac == 0 {
			f.PIsInt = true
			f.PInt = int(intPart)
		}
	}

	f.X1 = centreX - spanX/2
	f.X2 = centreX + spanX/2
	f.Y1 = centreY - spanY/2
	f.Y2 = centreY + spanY/2

	f.R2 = escapeRadius * escapeRadius
	f.RP = numeric.PowF(escapeRadius, f.P)
	f.LogR = numeric.LogF(escapeRadius)

	return f, nil
}
