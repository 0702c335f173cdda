package ppm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fractalnow-go/fractalnow/internal/raster"
	"github.com/stretchr/testify/require"
)

func TestWriteHeaderAndBody(t *testing.T) {
	img, err := raster.Create(2, 1, 1)
	require.NoError(t, err)
	img.Set(0, 0, 255, 0, 0)
	img.Set(1, 0, 0, 255, 0)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, img))

	want := []byte("P6\n2 1\n255\n")
	want = append(want, 255, 0, 0, 0, 255, 0)
	require.Equal(t, want, buf.Bytes())
}

func TestWrite16Bit(t *testing.T) {
	img, err := raster.Create(1, 1, 2)
	require.NoError(t, err)
	img.Set(0, 0, 0x1234, 0, 0)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, img))
	require.True(t, strings.HasPrefix(buf.String(), "P6\n1 1\n65535\n"))
}
