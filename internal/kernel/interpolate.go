package kernel

import (
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
)

// interpolate combines the addend sums S using the fractional part d of
// the smooth iteration count, per spec §4.2.
func interpolate[F numeric.Real](method rendering.InterpolationMethod, d F, s []F) F {
	switch method {
	case rendering.Linear:
		return d*s[0] + (1-d)*s[1]
	case rendering.Spline:
		d2 := d * d
		d3 := d2 * d
		return ((-d2+d3)*s[0] + (d+4*d2-3*d3)*s[1] + (2-5*d2+3*d3)*s[2] + (-d+2*d2-d3)*s[3]) / 2
	default: // NoInterpolation
		return s[0]
	}
}
