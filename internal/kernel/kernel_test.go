package kernel

import (
	"testing"

	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/gradient"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
	"github.com/stretchr/testify/require"
)

func blackWhiteParams(t *testing.T, coloring rendering.ColoringMethod, addend rendering.AddendFunction, interp rendering.InterpolationMethod, counting rendering.CountingFunction) *rendering.Params[float64] {
	t.Helper()
	grad := gradient.Build([]gradient.Control{{R: 0, G: 0, B: 0}, {R: 0xffff, G: 0xffff, B: 0xffff}}, 1, 1024)
	p, err := rendering.New[float64](1, gradient.Control{}, counting, coloring, addend, 5, interp, rendering.TransferIdentity, 0.025, 0, grad)
	require.NoError(t, err)
	return &p
}

func TestMandelbrotScalarSignIsSentinelOrNonNegative(t *testing.T) {
	f, err := fractal.New[float64](fractal.Mandelbrot, -0.7, 0, 3, 3, numeric.C(0.0, 0.0), 2, 1000, 250)
	require.NoError(t, err)
	r := blackWhiteParams(t, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation, rendering.Discrete)
	kern := Select[float64](fractal.Mandelbrot, true, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation)

	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			pt := PixelToWorld(&f, float64(i), float64(j), 8, 8)
			v := kern(&f, r, pt)
			require.True(t, v == InsideSentinel || v >= 0)
		}
	}
}

func TestMandelbrotCentreIsInsideSentinel(t *testing.T) {
	f, err := fractal.New[float64](fractal.Mandelbrot, -0.7, 0, 3, 3, numeric.C(0.0, 0.0), 2, 1000, 250)
	require.NoError(t, err)
	r := blackWhiteParams(t, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation, rendering.Discrete)
	kern := Select[float64](fractal.Mandelbrot, true, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation)

	v := kern(&f, r, numeric.C(-0.7, 0.0))
	require.Equal(t, InsideSentinel, v)
}

// Scenario 1 from spec §8: 2x2 render, all four pixels escape. The
// centre world point being inside the set is checked by
// TestMandelbrotCentreIsInsideSentinel.
func TestScenario1TwoByTwo(t *testing.T) {
	f, err := fractal.New[float64](fractal.Mandelbrot, -0.7, 0, 3, 3, numeric.C(0.0, 0.0), 2, 1000, 250)
	require.NoError(t, err)
	r := blackWhiteParams(t, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation, rendering.Discrete)
	kern := Select[float64](fractal.Mandelbrot, true, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			pt := PixelToWorld(&f, float64(i), float64(j), 2, 2)
			v := kern(&f, r, pt)
			require.NotEqual(t, InsideSentinel, v, "pixel (%d,%d) should escape", i, j)
		}
	}
}

// p=2 specialised Mandelbrot/Julia kernel must match the general
// integer-power MandelbrotP/JuliaP kernel at pInt=2 (spec §8).
func TestPEqualsTwoMatchesGeneralIntegerKernel(t *testing.T) {
	fMandel, err := fractal.New[float64](fractal.Mandelbrot, -0.5, 0, 3, 3, numeric.C(0.0, 0.0), 2, 1000, 100)
	require.NoError(t, err)

	fMandelP, err := fractal.New[float64](fractal.MandelbrotP, -0.5, 0, 3, 3, numeric.C(0.0, 0.0), 2, 1000, 100)
	require.NoError(t, err)
	require.True(t, fMandelP.PIsInt)
	require.Equal(t, 2, fMandelP.PInt)

	r := blackWhiteParams(t, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation, rendering.Discrete)
	kernSpecial := Select[float64](fractal.Mandelbrot, true, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation)
	kernGeneral := Select[float64](fractal.MandelbrotP, true, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation)

	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			pt1 := PixelToWorld(&fMandel, float64(i), float64(j), 16, 16)
			pt2 := PixelToWorld(&fMandelP, float64(i), float64(j), 16, 16)
			require.Equal(t, pt1, pt2)
			v1 := kernSpecial(&fMandel, r, pt1)
			v2 := kernGeneral(&fMandelP, r, pt2)
			require.Equal(t, v1, v2)
		}
	}
}

func TestAverageColoringSplineTriangleInequalityNoNaN(t *testing.T) {
	f, err := fractal.New[float64](fractal.Julia, 0, 0, 3.5, 3.5, numeric.C(-0.7, 0.27015), 2, 4, 500)
	require.NoError(t, err)
	grad := gradient.Build([]gradient.Control{
		{R: 0, G: 0, B: 0xffff},
		{R: 0xffff, G: 0xffff, B: 0xffff},
		{R: 0xffff, G: 0xffff, B: 0},
		{R: 0xffff, G: 0, B: 0},
		{R: 0, G: 0, B: 0xffff},
	}, 1, 256)
	r, err := rendering.New[float64](1, gradient.Control{}, rendering.Smooth, rendering.Average, rendering.TriangleInequality, 0, rendering.Spline, rendering.TransferIdentity, 0.025, 0, grad)
	require.NoError(t, err)
	kern := Select[float64](fractal.Julia, true, rendering.Average, rendering.TriangleInequality, rendering.Spline)

	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			pt := PixelToWorld(&f, float64(i), float64(j), 16, 16)
			v := kern(&f, &r, pt)
			require.False(t, v != v, "NaN at (%d,%d)", i, j) // v != v detects NaN
			red, green, blue := Evaluate(&f, &r, kern, pt)
			require.True(t, red < 256 && green < 256 && blue < 256)
		}
	}
}

func TestMaxIterOneYieldsInsideOrSingleStepEscape(t *testing.T) {
	f, err := fractal.New[float64](fractal.Mandelbrot, 0, 0, 3, 3, numeric.C(0.0, 0.0), 2, 2, 1)
	require.NoError(t, err)
	r := blackWhiteParams(t, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation, rendering.Discrete)
	kern := Select[float64](fractal.Mandelbrot, true, rendering.IterationCount, rendering.NoAddend, rendering.NoInterpolation)

	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			pt := PixelToWorld(&f, float64(i), float64(j), 8, 8)
			v := kern(&f, r, pt)
			require.True(t, v == InsideSentinel || v == 1)
		}
	}
}
