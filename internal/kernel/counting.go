package kernel

import (
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
)

// countingValue maps the final iteration count n and escape magnitude to
// a real-valued iteration count, per spec §4.2's three counting functions.
// logP must be log(p); callers guarantee p != 1 for Smooth (a caller
// obligation: nothing here guards against it).
func countingValue[F numeric.Real](fn rendering.CountingFunction, n int, absZ, r, rp, logR, logP F) F {
	switch fn {
	case rendering.Continuous:
		return F(n) + (rp-absZ)/(rp-r)
	case rendering.Smooth:
		return F(n) + 1 + numeric.LogF(logR/numeric.LogF(absZ))/logP
	default: // Discrete
		return F(n)
	}
}
