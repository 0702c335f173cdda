package main

import (
	"testing"

	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/raster"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsRequiresFractalFile(t *testing.T) {
	_, err := parseFlags([]string{"-r", "r.cfg", "-o", "out.ppm", "-x", "800"})
	require.Error(t, err)
}

func TestParseFlagsRequiresRenderingFile(t *testing.T) {
	_, err := parseFlags([]string{"-c", "f.cfg", "-o", "out.ppm", "-x", "800"})
	require.Error(t, err)
}

func TestParseFlagsRequiresAtLeastOneDimension(t *testing.T) {
	_, err := parseFlags([]string{"-c", "f.cfg", "-r", "r.cfg", "-o", "out.ppm"})
	require.Error(t, err)
}

func TestParseFlagsQuietAndVerboseAreMutuallyExclusive(t *testing.T) {
	_, err := parseFlags([]string{"-c", "f.cfg", "-r", "r.cfg", "-o", "out.ppm", "-x", "800", "-q", "-v"})
	require.Error(t, err)
}

func TestParseFlagsRejectsUnknownAntiAliasingMode(t *testing.T) {
	_, err := parseFlags([]string{"-c", "f.cfg", "-r", "r.cfg", "-o", "out.ppm", "-x", "800", "-a", "bogus"})
	require.Error(t, err)
}

func TestParseFlagsRejectsAdaptiveThresholdWithoutAdaptiveMode(t *testing.T) {
	_, err := parseFlags([]string{"-c", "f.cfg", "-r", "r.cfg", "-o", "out.ppm", "-x", "800", "-a", "blur", "-p", "0.1"})
	require.Error(t, err)
}

func TestParseFlagsAcceptsMinimalValidInvocation(t *testing.T) {
	o, err := parseFlags([]string{"-c", "f.cfg", "-r", "r.cfg", "-o", "out.ppm", "-x", "800", "-y", "600"})
	require.NoError(t, err)
	require.Equal(t, "f.cfg", o.fractalFile)
	require.Equal(t, "r.cfg", o.renderFile)
	require.Equal(t, "out.ppm", o.outFile)
	require.Equal(t, 800, o.width)
	require.Equal(t, 600, o.height)
}

func TestParseFlagsHelpSkipsOtherValidation(t *testing.T) {
	o, err := parseFlags([]string{"-h"})
	require.NoError(t, err)
	require.True(t, o.help)
}

func TestDeriveDimensionsUsesBothWhenGiven(t *testing.T) {
	f, err := fractal.New[float64](fractal.Mandelbrot, 0, 0, 4, 2, numeric.C(0.0, 0.0), 2, 4, 100)
	require.NoError(t, err)
	w, h := deriveDimensions(&f, 800, 600)
	require.Equal(t, 800, w)
	require.Equal(t, 600, h)
}

func TestDeriveDimensionsDerivesHeightFromWidth(t *testing.T) {
	f, err := fractal.New[float64](fractal.Mandelbrot, 0, 0, 4, 2, numeric.C(0.0, 0.0), 2, 4, 100)
	require.NoError(t, err)
	w, h := deriveDimensions(&f, 800, 0)
	require.Equal(t, 800, w)
	require.Equal(t, 400, h)
}

func TestDeriveDimensionsDerivesWidthFromHeight(t *testing.T) {
	f, err := fractal.New[float64](fractal.Mandelbrot, 0, 0, 4, 2, numeric.C(0.0, 0.0), 2, 4, 100)
	require.NoError(t, err)
	w, h := deriveDimensions(&f, 0, 400)
	require.Equal(t, 800, w)
	require.Equal(t, 400, h)
}

func TestDownsampleAveragesBlocks(t *testing.T) {
	img, err := raster.Create(4, 4, 1)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, 100, 100, 100)
		}
	}
	img.Set(0, 0, 0, 0, 0)

	out := downsample(img, 2, 1)
	require.Equal(t, 2, out.Width)
	require.Equal(t, 2, out.Height)
	require.Equal(t, uint32(75), out.At(0, 0).R)
	require.Equal(t, uint32(100), out.At(1, 0).R)
}

func TestDownsampleNoOpForFactorOne(t *testing.T) {
	img, err := raster.Create(3, 3, 1)
	require.NoError(t, err)
	out := downsample(img, 1, 1)
	require.Same(t, img, out)
}
