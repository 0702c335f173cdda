package filter

import (
	"testing"

	"github.com/fractalnow-go/fractalnow/internal/raster"
	"github.com/stretchr/testify/require"
)

func TestNewGaussian1DZeroRadiusIsIdentity(t *testing.T) {
	k := NewGaussian1D[float64](0)
	require.Equal(t, 0, k.Radius)
	require.Equal(t, []float64{1}, k.Weights)
}

func TestNewGaussian1DWeightsSumToOne(t *testing.T) {
	k := NewGaussian1D[float64](3)
	require.Len(t, k.Weights, 7)
	var sum float64
	for _, w := range k.Weights {
		sum += w
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestNewGaussian1DIsSymmetric(t *testing.T) {
	k := NewGaussian1D[float64](2)
	n := len(k.Weights)
	for i := 0; i < n; i++ {
		require.InDelta(t, k.Weights[i], k.Weights[n-1-i], 1e-9)
	}
}

func TestApplyAtUniformImageIsUnchanged(t *testing.T) {
	img, err := raster.Create(5, 5, 1)
	require.NoError(t, err)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, 100, 150, 200)
		}
	}
	k := NewGaussian1D[float64](2)
	p := ApplyAt[float64](img, 2, 2, k, k)
	require.Equal(t, raster.Pixel{R: 100, G: 150, B: 200}, p)
}

func TestApplyAtClampsAtEdge(t *testing.T) {
	img, err := raster.Create(3, 3, 1)
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, 10, 10, 10)
		}
	}
	img.Set(0, 0, 250, 250, 250)

	k := NewGaussian1D[float64](1)
	corner := ApplyAt[float64](img, 0, 0, k, k)
	centre := ApplyAt[float64](img, 1, 1, k, k)
	require.Greater(t, corner.R, centre.R)
}

func TestBlurPreservesDimensions(t *testing.T) {
	img, err := raster.Create(4, 6, 1)
	require.NoError(t, err)
	out := Blur[float64](img, 1)
	require.Equal(t, img.Width, out.Width)
	require.Equal(t, img.Height, out.Height)
	require.Len(t, out.Pixels, len(img.Pixels))
}

func TestBlurSmoothsASpike(t *testing.T) {
	img, err := raster.Create(7, 7, 1)
	require.NoError(t, err)
	img.Set(3, 3, 255, 255, 255)

	out := Blur[float64](img, 2)
	require.Less(t, out.At(3, 3).R, uint32(255))
	require.Greater(t, out.At(3, 3).R, uint32(0))
	require.Greater(t, out.At(2, 3).R, uint32(0))
}
