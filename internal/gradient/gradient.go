// Package gradient builds the sampled RGB lookup table the renderer
// indexes into after the transfer-function stage. Control colours are
// blended in perceptual Lab space via go-colorful so that the sampled
// ramp holds up under the wrap-around indexing the kernels perform.
package gradient

import "github.com/lucasb-eyer/go-colorful"

// DefaultTransitions is the number of LUT entries generated between two
// consecutive control colours when none is specified explicitly.
const DefaultTransitions = 65536

// RGB8 is a packed 8-bit-per-channel colour.
type RGB8 struct {
	R, G, B uint8
}

// RGB16 is a packed 16-bit-per-channel colour (big-endian on the wire,
// native here).
type RGB16 struct {
	R, G, B uint16
}

// Gradient is an immutable sampled lookup table built once from an
// ordered list of control colours (spec §3's Gradient entity).
type Gradient struct {
	bytesPerComponent int
	table8            []RGB8
	table16           []RGB16
}

// BytesPerComponent reports whether the gradient was built for 1- or
// 2-byte channels.
func (g *Gradient) BytesPerComponent() int {
	return g.bytesPerComponent
}

// Len returns the number of sampled entries in the table.
func (g *Gradient) Len() int {
	if g.bytesPerComponent == 2 {
		return len(g.table16)
	}
	return len(g.table8)
}

// At returns the colour at index idx, wrapping (not clamping) indices
// outside [0, Len()) as spec §9 requires ("gradient lookup with unsigned
// wrap-around ... implement with an explicit index mod length").
func (g *Gradient) At(idx int) (r, gr, b uint32) {
	n := g.Len()
	if n == 0 {
		return 0, 0, 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	if g.bytesPerComponent == 2 {
		c := g.table16[idx]
		return uint32(c.R), uint32(c.G), uint32(c.B)
	}
	c := g.table8[idx]
	return uint32(c.R), uint32(c.G), uint32(c.B)
}

// Control is one stop in the gradient editor's control-colour list.
type Control struct {
	R, G, B uint16 // always specified at full 16-bit precision
}

// Build samples a gradient table from an ordered list of control colours.
// transitionsPerSegment is the number of LUT entries generated between
// each pair of consecutive controls; pass <= 0 for DefaultTransitions.
// len(controls) must be >= 1.
func Build(controls []Control, bytesPerComponent int, transitionsPerSegment int) *Gradient {
	if transitionsPerSegment <= 0 {
		transitionsPerSegment = DefaultTransitions
	}
	g := &Gradient{bytesPerComponent: bytesPerComponent}

	if len(controls) == 1 {
		appendSample(g, controls[0])
		return g
	}

	lab := make([]colorful.Color, len(controls))
	for i, c := range controls {
		lab[i] = colorful.Color{
			R: float64(c.R) / 65535,
			G: float64(c.G) / 65535,
			B: float64(c.B) / 65535,
		}
	}

	for seg := 0; seg < len(controls)-1; seg++ {
		a, b := lab[seg], lab[seg+1]
		for t := 0; t < transitionsPerSegment; t++ {
			frac := float64(t) / float64(transitionsPerSegment)
			blended := a.BlendLab(b, frac)
			appendSample(g, fromColorful(blended))
		}
	}
	// Close the table with the final control colour so wrap-around lands
	// exactly on a defined stop rather than one step short of it.
	appendSample(g, controls[len(controls)-1])
	return g
}

func fromColorful(c colorful.Color) Control {
	clampTo16 := func(v float64) uint16 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 65535
		}
		return uint16(v * 65535)
	}
	return Control{R: clampTo16(c.R), G: clampTo16(c.G), B: clampTo16(c.B)}
}

func appendSample(g *Gradient, c Control) {
	if g.bytesPerComponent == 2 {
		g.table16 = append(g.table16, RGB16{R: c.R, G: c.G, B: c.B})
	} else {
		g.table8 = append(g.table8, RGB8{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8)})
	}
}
