// Package ppm implements the binary PPM (P6) encoder spec.md lists as
// an out-of-scope external collaborator ("on-disk image encoding (PPM
// and friends)"), grounded on FractalNow's
// original_source/lib/include/ppm.h — the format FractalNow's own
// command-line tool writes by default.
package ppm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fractalnow-go/fractalnow/internal/ferrors"
	"github.com/fractalnow-go/fractalnow/internal/raster"
)

// Write encodes img as a binary PPM (P6) stream: the "P6\nW H\nmaxval\n"
// header followed by raw R,G,B bytes, row-major, matching
// raster.Image.ToBytes's channel order and byte depth.
func Write(w io.Writer, img *raster.Image) error {
	maxVal := 255
	if img.BytesPerComponent == 2 {
		maxVal = 65535
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n%d\n", img.Width, img.Height, maxVal); err != nil {
		return ferrors.IOf("writing PPM header: %v", err)
	}
	if _, err := bw.Write(img.ToBytes()); err != nil {
		return ferrors.IOf("writing PPM pixel data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return ferrors.IOf("flushing PPM stream: %v", err)
	}
	return nil
}
