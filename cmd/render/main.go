// Command render is the batch fractal renderer (spec.md §6.3): it reads
// a fractal descriptor and a rendering descriptor, draws the image with
// the tile scheduler, optionally runs one of the anti-aliasing modes,
// and writes a binary PPM to disk.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fractalnow-go/fractalnow/internal/config"
	"github.com/fractalnow-go/fractalnow/internal/ferrors"
	"github.com/fractalnow-go/fractalnow/internal/filter"
	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/logx"
	"github.com/fractalnow-go/fractalnow/internal/ppm"
	"github.com/fractalnow-go/fractalnow/internal/raster"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
	"github.com/fractalnow-go/fractalnow/internal/scheduler"
	"github.com/fractalnow-go/fractalnow/internal/task"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

type options struct {
	help          bool
	quiet, verbose bool
	fractalFile   string
	renderFile    string
	outFile       string
	width, height int
	nbThreads     int
	aaMode        string
	aaSize        float64
	aaThreshold   float64
	quadSide      int
	quadThreshold float64
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	o := &options{}
	fs.BoolVarP(&o.help, "help", "h", false, "show help and exit")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "quiet mode")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "verbose mode")
	fs.StringVarP(&o.fractalFile, "fractal", "c", "", "fractal description file")
	fs.StringVarP(&o.renderFile, "rendering", "r", "", "rendering description file")
	fs.StringVarP(&o.outFile, "output", "o", "", "output PPM path")
	fs.IntVarP(&o.width, "width", "x", 0, "image width")
	fs.IntVarP(&o.height, "height", "y", 0, "image height")
	fs.IntVarP(&o.nbThreads, "threads", "j", 0, "worker thread count (0 = NumCPU)")
	fs.StringVarP(&o.aaMode, "antialiasing", "a", "none", "none|blur|oversampling|adaptive")
	fs.Float64VarP(&o.aaSize, "aa-size", "s", 0, "AA size parameter")
	fs.Float64VarP(&o.aaThreshold, "aa-threshold", "p", -1, "adaptive AA threshold")
	fs.IntVarP(&o.quadSide, "quad-side", "i", 5, "quad interpolation side Q")
	fs.Float64VarP(&o.quadThreshold, "quad-threshold", "t", 0.0035, "quad dissimilarity threshold")

	if err := fs.Parse(args); err != nil {
		return nil, ferrors.Usagef("%v", err)
	}
	if o.help {
		return o, nil
	}
	if o.quiet && o.verbose {
		return nil, ferrors.Usagef("-q and -v are mutually exclusive")
	}
	if o.fractalFile == "" {
		return nil, ferrors.Usagef("-c <file> is required")
	}
	if o.renderFile == "" {
		return nil, ferrors.Usagef("-r <file> is required")
	}
	if o.outFile == "" {
		return nil, ferrors.Usagef("-o <file> is required")
	}
	if o.width == 0 && o.height == 0 {
		return nil, ferrors.Usagef("at least one of -x or -y is required")
	}
	if o.width != 0 && o.width < 2 {
		return nil, ferrors.Usagef("-x must be >= 2")
	}
	if o.height != 0 && o.height < 2 {
		return nil, ferrors.Usagef("-y must be >= 2")
	}
	switch strings.ToLower(o.aaMode) {
	case "none", "blur", "oversampling", "adaptive":
	default:
		return nil, ferrors.Usagef("-a must be one of none|blur|oversampling|adaptive")
	}
	if o.aaThreshold >= 0 && strings.ToLower(o.aaMode) != "adaptive" {
		return nil, ferrors.Usagef("-p is only legal for -a adaptive")
	}
	return o, nil
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	if o.help {
		fmt.Println("usage: render -c fractal.cfg -r rendering.cfg -o out.ppm -x 800 -y 600")
		return nil
	}

	level := zerolog.InfoLevel
	if o.quiet {
		level = zerolog.Disabled
	} else if o.verbose {
		level = zerolog.DebugLevel
	}
	log := logx.New(os.Stderr, level)

	fractalFh, err := os.Open(o.fractalFile)
	if err != nil {
		return ferrors.Wrap(ferrors.ErrIO, "open fractal file", err)
	}
	defer fractalFh.Close()
	f, err := config.ParseFractal(fractalFh)
	if err != nil {
		return err
	}

	renderFh, err := os.Open(o.renderFile)
	if err != nil {
		return ferrors.Wrap(ferrors.ErrIO, "open rendering file", err)
	}
	defer renderFh.Close()
	r, err := config.ParseRendering(renderFh)
	if err != nil {
		return err
	}

	width, height := deriveDimensions(&f, o.width, o.height)

	img, err := raster.Create(width, height, r.BytesPerComponent)
	if err != nil {
		return err
	}

	pool := task.New(o.nbThreads)
	log.Infof("rendering %dx%d with %d workers", width, height, pool.Count())

	effectiveQuadSide := o.quadSide
	aaMode := strings.ToLower(o.aaMode)
	if aaMode == "oversampling" {
		factor := o.aaSize
		if factor <= 1 {
			return ferrors.Usagef("-s must be > 1 for oversampling")
		}
		img, err = raster.Create(width*int(factor), height*int(factor), r.BytesPerComponent)
		if err != nil {
			return err
		}
	}

	drawTask := scheduler.DrawFractalTask[float64](img, &f, &r, effectiveQuadSide, o.quadThreshold, pool.Count())
	if err := runTask(drawTask, pool, log); err != nil {
		return err
	}

	switch aaMode {
	case "blur":
		radius := int(o.aaSize)
		if radius <= 0 {
			return ferrors.Usagef("-s must be > 0 for blur")
		}
		img = filter.Blur[float64](img, radius)
	case "oversampling":
		img = downsample(img, int(o.aaSize), r.BytesPerComponent)
	case "adaptive":
		size := int(o.aaSize)
		if size <= 1 || float64(size) != o.aaSize {
			return ferrors.Usagef("-s must be an integer > 1 for adaptive AA")
		}
		threshold := o.aaThreshold
		if threshold < 0 {
			threshold = 0.0505
		}
		aaTask := scheduler.AntiAliaseTask[float64](img, &f, &r, size, threshold, pool.Count())
		if err := runTask(aaTask, pool, log); err != nil {
			return err
		}
	}

	out, err := os.Create(o.outFile)
	if err != nil {
		return ferrors.Wrap(ferrors.ErrIO, "create output file", err)
	}
	defer out.Close()
	if err := ppm.Write(out, img); err != nil {
		return err
	}
	log.Infof("wrote %s", o.outFile)
	return nil
}

func runTask(t *task.Task, pool *task.Threads, log logx.Logger) error {
	if err := task.Launch(t, pool); err != nil {
		return err
	}
	status, err := task.Result(t)
	if err != nil {
		return err
	}
	log.Progress(t.Message(), task.Progress(t))
	if status == task.Cancelled {
		return ferrors.Usagef("task %q was cancelled", t.Message())
	}
	return nil
}

func deriveDimensions(f *fractal.Fractal[float64], width, height int) (int, int) {
	if width != 0 && height != 0 {
		return width, height
	}
	aspect := f.SpanX / f.SpanY
	if width != 0 {
		return width, int(float64(width)/aspect)
	}
	return int(float64(height) * aspect), height
}

// downsample box-filters an oversampled image back down by an integer
// factor, the cheapest legitimate reading of "linear factor for
// oversampling" in spec.md §6.3 that does not require re-rendering.
func downsample(img *raster.Image, factor, bpc int) *raster.Image {
	if factor <= 1 {
		return img
	}
	w, h := img.Width/factor, img.Height/factor
	out, err := raster.Create(w, h, bpc)
	if err != nil {
		return img
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, n uint32
			for dy := 0; dy < factor; dy++ {
				for dx := 0; dx < factor; dx++ {
					p := img.At(x*factor+dx, y*factor+dy)
					r += p.R
					g += p.G
					b += p.B
					n++
				}
			}
			out.Set(x, y, r/n, g/n, b/n)
		}
	}
	return out
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
