package rendering

import (
	"math"
	"testing"

	"github.com/fractalnow-go/fractalnow/internal/gradient"
	"github.com/stretchr/testify/require"
)

func sampleGradient() *gradient.Gradient {
	return gradient.Build([]gradient.Control{{R: 0, G: 0, B: 0}, {R: 0xffff, G: 0xffff, B: 0xffff}}, 1, 8)
}

func TestNewRejectsBadByteDepth(t *testing.T) {
	_, err := New[float64](3, gradient.Control{}, Smooth, IterationCount, NoAddend, 0, NoInterpolation, TransferLog, 1, 0, sampleGradient())
	require.Error(t, err)
}

func TestNewRejectsNilGradient(t *testing.T) {
	_, err := New[float64](1, gradient.Control{}, Smooth, IterationCount, NoAddend, 0, NoInterpolation, TransferLog, 1, 0, nil)
	require.Error(t, err)
}

func TestNewRejectsMismatchedGradientByteDepth(t *testing.T) {
	grad := gradient.Build([]gradient.Control{{R: 0}, {R: 0xffff}}, 2, 4)
	_, err := New[float64](1, gradient.Control{}, Smooth, IterationCount, NoAddend, 0, NoInterpolation, TransferLog, 1, 0, grad)
	require.Error(t, err)
}

func TestNewAcceptsValidParams(t *testing.T) {
	r, err := New[float64](1, gradient.Control{}, Smooth, IterationCount, NoAddend, 0, NoInterpolation, TransferLog, 1, 0, sampleGradient())
	require.NoError(t, err)
	require.Equal(t, IterationCount, r.ColoringMethod)
}

func TestNumSumsPerInterpolationMethod(t *testing.T) {
	require.Equal(t, 1, NoInterpolation.NumSums())
	require.Equal(t, 2, Linear.NumSums())
	require.Equal(t, 4, Spline.NumSums())
}

func TestApplyTransferFunctions(t *testing.T) {
	require.InDelta(t, math.Log(2), Apply[float64](TransferLog, 1), 1e-9)
	require.InDelta(t, 2.0, Apply[float64](TransferIdentity, 2), 1e-9)
	require.InDelta(t, 4.0, Apply[float64](TransferSquare, 2), 1e-9)
	require.InDelta(t, 8.0, Apply[float64](TransferCube, 2), 1e-9)
	require.InDelta(t, 3.0, Apply[float64](TransferSqrt, 9), 1e-9)
	require.InDelta(t, -2.0, Apply[float64](TransferCubeRoot, -8), 1e-9)
}
