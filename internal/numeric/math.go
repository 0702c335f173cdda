package numeric

import "math"

// The functions below are the scalar operations spec §4.1 requires on F:
// arithmetic, abs, floor/round, log, exp, sin, fmax, modf, pow. Go's math
// package only operates on float64, so each wrapper converts its argument
// to float64, calls through, and converts the result back to F. For F=float64 this is a
// no-op at the value level; for F=float32 it costs one rounding step, which
// is the price of keeping the core generic rather than duplicating it.

func Abs[F Real](x F) F {
	return F(math.Abs(float64(x)))
}

func Floor[F Real](x F) F {
	return F(math.Floor(float64(x)))
}

func Round[F Real](x F) F {
	return F(math.Round(float64(x)))
}

func Sqrt[F Real](x F) F {
	return F(math.Sqrt(float64(x)))
}

func LogF[F Real](x F) F {
	return F(math.Log(float64(x)))
}

func ExpF[F Real](x F) F {
	return F(math.Exp(float64(x)))
}

func Sin[F Real](x F) F {
	return F(math.Sin(float64(x)))
}

func Cos[F Real](x F) F {
	return F(math.Cos(float64(x)))
}

func Atan2[F Real](y, x F) F {
	return F(math.Atan2(float64(y), float64(x)))
}

func FMax[F Real](a, b F) F {
	return F(math.Max(float64(a), float64(b)))
}

func FMin[F Real](a, b F) F {
	return F(math.Min(float64(a), float64(b)))
}

// PowF is real-valued a^b (including fractional and negative exponents,
// within the domain math.Pow supports).
func PowF[F Real](a, b F) F {
	return F(math.Pow(float64(a), float64(b)))
}

// Modf splits x into integer and fractional parts, both with the sign of x.
func Modf[F Real](x F) (intPart, frac F) {
	i, f := math.Modf(float64(x))
	return F(i), F(f)
}
