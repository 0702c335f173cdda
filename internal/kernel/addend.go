package kernel

import (
	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
)

// orbit tracks the bookkeeping needed by the Average coloring method's
// addend functions (spec §4.2): the last two iterates (for Curvature),
// and the growing list of per-step contributions from which the S_i
// sums are finally derived.
type orbit[F numeric.Real] struct {
	addend        rendering.AddendFunction
	stripeDensity F
	p             F
	pIsInt        bool
	pInt          int

	n int // number of steps observed so far (n in spec's loop variable)

	prevZ, prevPrevZ numeric.Complex[F]
	haveOne, haveTwo bool

	contributions []F
}

func newOrbit[F numeric.Real](f *fractal.Fractal[F], addend rendering.AddendFunction, stripeDensity F) *orbit[F] {
	return &orbit[F]{
		addend:        addend,
		stripeDensity: stripeDensity,
		p:             f.P,
		pIsInt:        f.PIsInt,
		pInt:          f.PInt,
	}
}

// advance is called once per loop pass, before z is stepped, with the
// current (pre-step) iterate z and the iteration constant c.
func (o *orbit[F]) advance(z, c numeric.Complex[F]) {
	switch o.addend {
	case rendering.TriangleInequality:
		if o.haveOne {
			prevP := o.pow(o.prevZ)
			m := numeric.Abs(prevP.Abs() - c.Abs())
			mm := prevP.Abs() + c.Abs()
			if mm != m {
				r := z.Abs()
				o.contributions = append(o.contributions, (r-m)/(mm-m))
			}
		}
	case rendering.Curvature:
		if o.haveTwo {
			denom := o.prevZ.Sub(o.prevPrevZ)
			if denom.Re != 0 || denom.Im != 0 {
				num := z.Sub(o.prevZ)
				ratio := num.Div(denom)
				o.contributions = append(o.contributions, numeric.Abs(ratio.Arg()))
			}
		}
	case rendering.Stripe:
		if o.n >= 1 {
			o.contributions = append(o.contributions, numeric.Sin(o.stripeDensity*z.Arg())+1)
		}
	}

	o.prevPrevZ, o.haveTwo = o.prevZ, o.haveOne
	o.prevZ, o.haveOne = z, true
	o.n++
}

func (o *orbit[F]) pow(z numeric.Complex[F]) numeric.Complex[F] {
	if o.pIsInt {
		return numeric.IPow(z, o.pInt)
	}
	return numeric.RealPow(z, o.p)
}

// sums derives the s sums S_0..S_{s-1} an interpolation method combines,
// per spec §4.2: S_i is the mean of the last (count-i) contributions
// (nulls already excluded at collection time, per the pinned §9
// zero-denominator resolution), 0 when there are not enough of them.
func (o *orbit[F]) sums(s int) []F {
	out := make([]F, s)
	count := len(o.contributions)
	scale := F(1)
	if o.addend == rendering.Stripe {
		scale = 0.5
	}
	for i := 0; i < s; i++ {
		window := count - i
		if window <= 0 {
			out[i] = 0
			continue
		}
		var sum F
		for _, v := range o.contributions[count-window:] {
			sum += v
		}
		out[i] = scale * sum / F(window)
	}
	return out
}
