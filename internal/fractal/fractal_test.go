package fractal

import (
	"testing"

	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositiveSpan(t *testing.T) {
	_, err := New[float64](Mandelbrot, 0, 0, 0, 2, numeric.C(0.0, 0.0), 2, 4, 100)
	require.Error(t, err)
}

func TestNewRejectsEscapeRadiusNotAboveOne(t *testing.T) {
	_, err := New[float64](Mandelbrot, 0, 0, 3, 2, numeric.C(0.0, 0.0), 2, 1, 100)
	require.Error(t, err)
}

func TestNewRejectsZeroMaxIter(t *testing.T) {
	_, err := New[float64](Mandelbrot, 0, 0, 3, 2, numeric.C(0.0, 0.0), 2, 4, 0)
	require.Error(t, err)
}

func TestNewForcesPTwoForMandelbrotAndJulia(t *testing.T) {
	f, err := New[float64](Mandelbrot, 0, 0, 3, 2, numeric.C(0.0, 0.0), 7, 4, 100)
	require.NoError(t, err)
	require.Equal(t, 2.0, f.P)
	require.True(t, f.PIsInt)
	require.Equal(t, 2, f.PInt)

	j, err := New[float64](Julia, 0, 0, 3, 2, numeric.C(-0.7, 0.27), 7, 4, 100)
	require.NoError(t, err)
	require.Equal(t, 2.0, j.P)
}

func TestNewDetectsIntegerExponentForMandelbrotP(t *testing.T) {
	f, err := New[float64](MandelbrotP, 0, 0, 3, 2, numeric.C(0.0, 0.0), 3, 4, 100)
	require.NoError(t, err)
	require.True(t, f.PIsInt)
	require.Equal(t, 3, f.PInt)
}

func TestNewDetectsFractionalExponentForMandelbrotP(t *testing.T) {
	f, err := New[float64](MandelbrotP, 0, 0, 3, 2, numeric.C(0.0, 0.0), 3.5, 4, 100)
	require.NoError(t, err)
	require.False(t, f.PIsInt)
}

func TestNewDerivesViewportBounds(t *testing.T) {
	f, err := New[float64](Mandelbrot, -0.5, 0, 4, 2, numeric.C(0.0, 0.0), 2, 4, 100)
	require.NoError(t, err)
	require.InDelta(t, -2.5, f.X1, 1e-9)
	require.InDelta(t, 1.5, f.X2, 1e-9)
	require.InDelta(t, -1.0, f.Y1, 1e-9)
	require.InDelta(t, 1.0, f.Y2, 1e-9)
	require.InDelta(t, 16.0, f.R2, 1e-9)
}

func TestParseFormulaRoundTrip(t *testing.T) {
	cases := map[string]Formula{
		"mandelbrot":  Mandelbrot,
		"mandelbrotp": MandelbrotP,
		"julia":       Julia,
		"juliap":      JuliaP,
		"rudy":        Rudy,
	}
	for s, want := range cases {
		got, err := ParseFormula(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, s, got.String())
	}
}

func TestParseFormulaRejectsUnknown(t *testing.T) {
	_, err := ParseFormula("hexagon")
	require.Error(t, err)
}
