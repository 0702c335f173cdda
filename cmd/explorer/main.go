// Command explorer is the interactive pan/zoom fractal viewer spec.md
// lists as an out-of-scope external collaborator ("the interactive
// zoom/pan explorer"). It consumes the core only through
// DrawFractalTask/Threads/Task, exactly the upward API spec §6.1
// describes, the way the teacher's GUI loop consumed its own
// (now-replaced) per-fragment renderer.
//
// Unlike the teacher, this explorer never distributes work over the
// network: the master/slave gRPC split was the teacher's answer to
// scaling across machines, and nothing in this specification calls for
// a networked rendering mode, so panning and zooming here only ever
// drive the in-process worker pool harder or softer.
package main

import (
	"fmt"
	"math"
	"runtime"

	"github.com/fractalnow-go/fractalnow/internal/fractal"
	"github.com/fractalnow-go/fractalnow/internal/gradient"
	"github.com/fractalnow-go/fractalnow/internal/numeric"
	"github.com/fractalnow-go/fractalnow/internal/raster"
	"github.com/fractalnow-go/fractalnow/internal/rendering"
	"github.com/fractalnow-go/fractalnow/internal/scheduler"
	"github.com/fractalnow-go/fractalnow/internal/task"
	"github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	screenWidth  int32 = 1024
	screenHeight int32 = 768
)

type explorer struct {
	pool *task.Threads
	img  *raster.Image
	canvas rl.RenderTexture2D
	pixels []rl.Color

	f fractal.Fractal[float64]
	r rendering.Params[float64]

	centreX, centreY float64
	zoomLevel        float64
	needUpdate       bool
	lastProgress     float64
}

func newExplorer() (*explorer, error) {
	img, err := raster.Create(int(screenWidth), int(screenHeight), 1)
	if err != nil {
		return nil, err
	}
	grad := gradient.Build([]gradient.Control{
		{R: 0, G: 0, B: 0x8fff},
		{R: 0xffff, G: 0xffff, B: 0xffff},
		{R: 0xffff, G: 0x9fff, B: 0},
		{R: 0, G: 0, B: 0},
	}, 1, 2048)
	r, err := rendering.New[float64](1, gradient.Control{}, rendering.Smooth, rendering.IterationCount, rendering.NoAddend, 0, rendering.NoInterpolation, rendering.TransferLog, 1, 0, grad)
	if err != nil {
		return nil, err
	}

	e := &explorer{
		pool:       task.New(runtime.NumCPU()),
		img:        img,
		pixels:     make([]rl.Color, int(screenWidth)*int(screenHeight)),
		r:          r,
		centreX:    -0.7,
		centreY:    0,
		zoomLevel:  0,
		needUpdate: true,
	}
	if err := e.rebuildFractal(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *explorer) span() float64 {
	return 3.5 / math.Exp2(e.zoomLevel)
}

func (e *explorer) rebuildFractal() error {
	span := e.span()
	aspect := float64(screenHeight) / float64(screenWidth)
	maxIter := 100 + int(50*e.zoomLevel)
	f, err := fractal.New[float64](fractal.Mandelbrot, e.centreX, e.centreY, span, span*aspect, numeric.C(0.0, 0.0), 2, 4, maxIter)
	if err != nil {
		return err
	}
	e.f = f
	return nil
}

func (e *explorer) update() error {
	if !e.needUpdate {
		return nil
	}
	e.needUpdate = false

	t := scheduler.DrawFractalTask[float64](e.img, &e.f, &e.r, 5, 0.0035, e.pool.Count())
	if err := task.Launch(t, e.pool); err != nil {
		return err
	}
	status, err := task.Result(t)
	if err != nil {
		return err
	}
	e.lastProgress = task.Progress(t)
	if status != task.Completed {
		return nil
	}

	for i, p := range e.img.Pixels {
		e.pixels[i] = rl.NewColor(uint8(p.R), uint8(p.G), uint8(p.B), 255)
	}
	return nil
}

func (e *explorer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	rl.UpdateTexture(e.canvas.Texture, e.pixels)
	rl.DrawTexture(e.canvas.Texture, 0, 0, rl.RayWhite)

	raygui.SetStyleProperty(raygui.GlobalTextFontsize, 14.0)
	raygui.Label(rl.NewRectangle(8, 8, 300, 16), fmt.Sprintf("zoom: %.2f  iter: %d  progress: %.0f%%", e.zoomLevel, e.f.MaxIter, e.lastProgress*100))
	raygui.Label(rl.NewRectangle(8, 26, 300, 16), "arrows: pan   a/s: zoom in/out")

	rl.EndDrawing()
}

func (e *explorer) processKeyboard() {
	step := e.span() * 0.05
	if rl.IsKeyDown(rl.KeyLeft) {
		e.centreX -= step
		e.needUpdate = true
	}
	if rl.IsKeyDown(rl.KeyRight) {
		e.centreX += step
		e.needUpdate = true
	}
	if rl.IsKeyDown(rl.KeyUp) {
		e.centreY -= step
		e.needUpdate = true
	}
	if rl.IsKeyDown(rl.KeyDown) {
		e.centreY += step
		e.needUpdate = true
	}
	if rl.IsKeyDown(rl.KeyA) {
		e.zoomLevel += 0.05
		e.needUpdate = true
	}
	if rl.IsKeyDown(rl.KeyS) {
		e.zoomLevel -= 0.05
		if e.zoomLevel < 0 {
			e.zoomLevel = 0
		}
		e.needUpdate = true
	}
	if e.needUpdate {
		if err := e.rebuildFractal(); err != nil {
			e.needUpdate = false
		}
	}
}

func main() {
	rl.InitWindow(screenWidth, screenHeight, "fractalnow explorer")
	rl.SetTargetFPS(30)

	e, err := newExplorer()
	if err != nil {
		rl.CloseWindow()
		fmt.Println(err)
		return
	}
	e.canvas = rl.LoadRenderTexture(screenWidth, screenHeight)

	for !rl.WindowShouldClose() {
		if err := e.update(); err != nil {
			fmt.Println(err)
			break
		}
		e.draw()
		e.processKeyboard()
	}

	rl.UnloadTexture(e.canvas.Texture)
	rl.CloseWindow()
}
