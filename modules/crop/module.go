// Package crop provides a filter that forwards a rectangle of each input
// frame. It copies no pixels: the output reference is a view into the
// input buffer.
package crop

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/specialistvlad/framegrid/internal/registry"
)

// Name is the stage name grids refer to.
const Name = "crop"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Priv holds the crop rectangle. A zero width or height extends the
// rectangle to the right or bottom edge of the input.
type Priv struct {
	X      int `hcl:"x,optional"`
	Y      int `hcl:"y,optional"`
	Width  int `hcl:"width,optional"`
	Height int `hcl:"height,optional"`

	// view is the cropped plane origin of the in-flight frame.
	view frame.Planes
}

// rect resolves the rectangle against the input geometry.
func (p *Priv) rect(inW, inH int) (x, y, w, h int, err error) {
	x, y, w, h = p.X, p.Y, p.Width, p.Height
	if w == 0 {
		w = inW - x
	}
	if h == 0 {
		h = inH - y
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > inW || y+h > inH {
		return 0, 0, 0, 0, fmt.Errorf("%w: %dx%d+%d+%d in %dx%d", frame.ErrCropBounds, w, h, x, y, inW, inH)
	}
	return x, y, w, h, nil
}

// Stage returns the crop descriptor.
func Stage() *graph.Stage {
	return &graph.Stage{
		Name:        Name,
		Description: "Forward a rectangle of the input.",
		NewPriv:     func() any { return &Priv{} },
		Init: func(inst *graph.Instance) error {
			p := inst.Priv.(*Priv)
			if p.X < 0 || p.Y < 0 || p.Width < 0 || p.Height < 0 {
				return fmt.Errorf("%w: negative crop %dx%d+%d+%d", frame.ErrCropBounds, p.Width, p.Height, p.X, p.Y)
			}
			return nil
		},
		Inputs: []graph.Pad{{
			Name:       "default",
			StartFrame: startFrame,
			DrawSlice:  drawSlice,
			EndFrame:   endFrame,
		}},
		Outputs: []graph.Pad{{
			Name:         "default",
			ConfigProps:  configProps,
			RequestFrame: graph.RequestFromInput,
		}},
	}
}

// Register registers the stage with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Stage())
}

func configProps(link *graph.Link) error {
	in := link.Src.Input(0)
	if in == nil {
		return nil
	}
	_, _, w, h, err := link.Src.Priv.(*Priv).rect(in.W, in.H)
	if err != nil {
		return err
	}
	link.W, link.H, link.Format = w, h, in.Format
	return nil
}

func startFrame(link *graph.Link, ref *frame.Ref) error {
	if err := graph.DefaultStartFrame(link, ref); err != nil {
		return err
	}
	out := link.Dst.Output(0)
	if out == nil {
		return nil
	}
	p := link.Dst.Priv.(*Priv)
	x, y, w, h, err := p.rect(ref.W, ref.H)
	if err != nil {
		return err
	}
	view, err := ref.Crop(x, y, w, h)
	if err != nil {
		return err
	}
	p.view = view.Data
	return out.StartFrame(view)
}

// drawSlice forwards the part of the band that falls inside the rectangle,
// translated to output rows.
func drawSlice(link *graph.Link, _ frame.Planes, y, h int) error {
	out := link.Dst.Output(0)
	if out == nil {
		return nil
	}
	p := link.Dst.Priv.(*Priv)
	top := max(y, p.Y)
	bottom := min(y+h, p.Y+out.H)
	if bottom <= top {
		return nil
	}
	return out.DrawSlice(p.view, top-p.Y, bottom-top)
}

func endFrame(link *graph.Link) error {
	p := link.Dst.Priv.(*Priv)
	p.view = frame.Planes{}

	var err error
	if out := link.Dst.Output(0); out != nil && out.InFlight() {
		err = out.EndFrame()
	}
	return errors.Join(err, graph.DefaultEndFrame(link))
}
