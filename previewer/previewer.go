// Package previewer is a small fyne desktop window that runs a fragment
// shader over a screen-space grid and paints the resulting RGBA pixels —
// the fyne analogue of the teacher's register/memory GUI debugger,
// retargeted from memory cells to pixels. It uses fyne's core canvas and
// widget APIs directly rather than an image-processing dependency: since
// every pixel already comes from running the VM (not decoding or
// resizing an existing image), there is nothing for golang.org/x/image or
// github.com/nfnt/resize to do here.
package previewer

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/benjcooley/milo832/vm"
)

// Preview renders one shader's output across a width x height grid of
// (u,v) sample points, one VM run per pixel.
type Preview struct {
	App    fyne.App
	Window fyne.Window

	Program []uint64
	Width   int
	Height  int

	status *widget.Label
}

// New builds a preview window for the given assembled program.
func New(program []uint64, width, height int) *Preview {
	p := &Preview{
		App:     app.New(),
		Program: program,
		Width:   width,
		Height:  height,
	}
	p.Window = p.App.NewWindow("Milo832 Fragment Preview")
	p.build()
	return p
}

func (p *Preview) build() {
	raster := canvas.NewRasterWithPixels(p.pixelAt)
	raster.SetMinSize(fyne.NewSize(float32(p.Width), float32(p.Height)))

	p.status = widget.NewLabel("ready")
	content := container.NewBorder(nil, p.status, nil, nil, raster)
	p.Window.SetContent(content)
	p.Window.Resize(fyne.NewSize(float32(p.Width), float32(p.Height)+40))
}

// pixelAt runs the shader for the (u,v) sample corresponding to screen
// position (x,y) within a w x h raster and returns its fragColor.
func (p *Preview) pixelAt(x, y, w, h int) color.Color {
	u := float32(x) / float32(w)
	v := float32(y) / float32(h)

	machine := vm.New()
	machine.LoadProgram(p.Program)
	machine.BindFragmentInputs(vm.FragmentInputs{Texcoord: [2]float32{u, v}})
	machine.Run()
	r, g, b, a := machine.ExtractFragmentOutput()

	return color.NRGBA{
		R: toByte(r),
		G: toByte(g),
		B: toByte(b),
		A: toByte(a),
	}
}

func toByte(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f * 255)
}

// Image renders the preview to an in-memory image, useful for tests and
// headless snapshot comparisons without opening a window.
func (p *Preview) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := p.pixelAt(x, y, p.Width, p.Height)
			img.Set(x, y, c)
		}
	}
	return img
}

// Run shows the window and blocks until it's closed.
func (p *Preview) Run() {
	p.Window.ShowAndRun()
}
