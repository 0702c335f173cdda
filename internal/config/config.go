// Package config reads the textual descriptor files spec.md lists as an
// out-of-scope external collaborator ("textual configuration file
// readers... specified only through the interfaces the core consumes").
// It is a line-oriented key = value reader, grounded on FractalNow's
// original_source/lib/include/file_parsing.h and fractal_config.h
// two-file convention (one file describes the fractal, one describes
// the rendering parameters), producing the fractal.Fractal/
// rendering.Params values the core consumes by reference.
//
// Descriptor files are always parsed at float64 precision: the file
// format carries no type-parameter information, and float64 is the
// natural default for anything read from disk rather than generated
// in-process.
package config

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/fractalnow-go/fractalnow/internal/ferrors"
	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/gradient"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
)

// readKV parses "key = value" lines, skipping blanks and '#' comments.
func readKV(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		idx := strings.Index(text, "=")
		if idx < 0 {
			return nil, ferrors.Parsef("line %d: expected \"key = value\", got %q", line, text)
		}
		key := strings.TrimSpace(text[:idx])
		val := strings.TrimSpace(text[idx+1:])
		out[key] = val
	}
	if err := sc.Err(); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrIO, "reading descriptor", err)
	}
	return out, nil
}

func getFloat(kv map[string]string, key string) (float64, error) {
	v, ok := kv[key]
	if !ok {
		return 0, ferrors.Parsef("missing key %q", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, ferrors.Wrap(ferrors.ErrParse, "key "+key, err)
	}
	return f, nil
}

func getInt(kv map[string]string, key string) (int, error) {
	v, ok := kv[key]
	if !ok {
		return 0, ferrors.Parsef("missing key %q", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ferrors.Wrap(ferrors.ErrParse, "key "+key, err)
	}
	return n, nil
}

func getString(kv map[string]string, key, def string) string {
	if v, ok := kv[key]; ok {
		return v
	}
	return def
}

// ParseFractal reads a fractal descriptor file: formula, centreX,
// centreY, spanX, spanY, p, cRe, cIm, escapeRadius, maxIter.
func ParseFractal(r io.Reader) (fractal.Fractal[float64], error) {
	var zero fractal.Fractal[float64]
	kv, err := readKV(r)
	if err != nil {
		return zero, err
	}
	formula, err := fractal.ParseFormula(getString(kv, "formula", "mandelbrot"))
	if err != nil {
		return zero, err
	}
	centreX, err := getFloat(kv, "centreX")
	if err != nil {
		return zero, err
	}
	centreY, err := getFloat(kv, "centreY")
	if err != nil {
		return zero, err
	}
	spanX, err := getFloat(kv, "spanX")
	if err != nil {
		return zero, err
	}
	spanY, err := getFloat(kv, "spanY")
	if err != nil {
		return zero, err
	}
	p, err := getFloat(kv, "p")
	if err != nil {
		p = 2
	}
	cRe, _ := getFloat(kv, "cRe")
	cIm, _ := getFloat(kv, "cIm")
	escapeRadius, err := getFloat(kv, "escapeRadius")
	if err != nil {
		escapeRadius = 4
	}
	maxIter, err := getInt(kv, "maxIter")
	if err != nil {
		return zero, err
	}

	return fractal.New[float64](formula, centreX, centreY, spanX, spanY, numeric.C(cRe, cIm), p, escapeRadius, maxIter)
}

var transferNames = map[string]rendering.TransferFunction{
	"log":      rendering.TransferLog,
	"cuberoot": rendering.TransferCubeRoot,
	"sqrt":     rendering.TransferSqrt,
	"identity": rendering.TransferIdentity,
	"square":   rendering.TransferSquare,
	"cube":     rendering.TransferCube,
	"exp":      rendering.TransferExp,
}

var countingNames = map[string]rendering.CountingFunction{
	"discrete":   rendering.Discrete,
	"continuous": rendering.Continuous,
	"smooth":     rendering.Smooth,
}

var coloringNames = map[string]rendering.ColoringMethod{
	"iterationcount": rendering.IterationCount,
	"average":        rendering.Average,
}

var addendNames = map[string]rendering.AddendFunction{
	"none":               rendering.NoAddend,
	"triangleinequality": rendering.TriangleInequality,
	"curvature":          rendering.Curvature,
	"stripe":             rendering.Stripe,
}

var interpolationNames = map[string]rendering.InterpolationMethod{
	"none":   rendering.NoInterpolation,
	"linear": rendering.Linear,
	"spline": rendering.Spline,
}

// ParseRendering reads a rendering descriptor file: bytesPerComponent,
// countingFunction, coloringMethod, addendFunction, stripeDensity,
// interpolationMethod, transferFunction, multiplier, offset, and a
// single "gradient = R G B; R G B; ..." line listing the gradient's
// control colours (black to white when the key is absent).
func ParseRendering(r io.Reader) (rendering.Params[float64], error) {
	var zero rendering.Params[float64]
	kv, err := readKV(r)
	if err != nil {
		return zero, err
	}

	bpc, err := getInt(kv, "bytesPerComponent")
	if err != nil {
		bpc = 1
	}
	countingFn, ok := countingNames[strings.ToLower(getString(kv, "countingFunction", "discrete"))]
	if !ok {
		return zero, ferrors.Parsef("unknown countingFunction %q", kv["countingFunction"])
	}
	coloringMethod, ok := coloringNames[strings.ToLower(getString(kv, "coloringMethod", "iterationcount"))]
	if !ok {
		return zero, ferrors.Parsef("unknown coloringMethod %q", kv["coloringMethod"])
	}
	addendFn, ok := addendNames[strings.ToLower(getString(kv, "addendFunction", "none"))]
	if !ok {
		return zero, ferrors.Parsef("unknown addendFunction %q", kv["addendFunction"])
	}
	interpolationMethod, ok := interpolationNames[strings.ToLower(getString(kv, "interpolationMethod", "none"))]
	if !ok {
		return zero, ferrors.Parsef("unknown interpolationMethod %q", kv["interpolationMethod"])
	}
	transferFn, ok := transferNames[strings.ToLower(getString(kv, "transferFunction", "identity"))]
	if !ok {
		return zero, ferrors.Parsef("unknown transferFunction %q", kv["transferFunction"])
	}
	stripeDensity, _ := getFloat(kv, "stripeDensity")
	multiplier, err := getFloat(kv, "multiplier")
	if err != nil {
		multiplier = 1
	}
	offset, _ := getFloat(kv, "offset")

	controls, bytesPerComponent, transitions, err := parseGradientControls(kv, bpc)
	if err != nil {
		return zero, err
	}
	grad := gradient.Build(controls, bytesPerComponent, transitions)

	return rendering.New[float64](bpc, gradient.Control{}, countingFn, coloringMethod, addendFn, stripeDensity, interpolationMethod, transferFn, multiplier, offset, grad)
}

func parseGradientControls(kv map[string]string, bpc int) ([]gradient.Control, int, int, error) {
	raw, ok := kv["gradient"]
	if !ok {
		return []gradient.Control{{R: 0, G: 0, B: 0}, {R: 0xffff, G: 0xffff, B: 0xffff}}, bpc, gradient.DefaultTransitions, nil
	}
	fields := strings.Split(raw, ";")
	controls := make([]gradient.Control, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts := strings.Fields(f)
		if len(parts) != 3 {
			return nil, 0, 0, ferrors.Parsef("gradient control %q: expected \"R G B\"", f)
		}
		r, err1 := strconv.ParseUint(parts[0], 10, 16)
		g, err2 := strconv.ParseUint(parts[1], 10, 16)
		b, err3 := strconv.ParseUint(parts[2], 10, 16)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, 0, 0, ferrors.Parsef("gradient control %q: malformed component", f)
		}
		controls = append(controls, gradient.Control{R: uint16(r), G: uint16(g), B: uint16(b)})
	}
	if len(controls) == 0 {
		return nil, 0, 0, ferrors.Parsef("gradient key present but empty")
	}
	return controls, bpc, gradient.DefaultTransitions, nil
}
