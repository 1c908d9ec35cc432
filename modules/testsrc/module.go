// Package testsrc provides a synthetic video source. It produces frames
// only when pulled and pushes each one downstream as horizontal bands.
package testsrc

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/specialistvlad/framegrid/internal/registry"
)

// Name is the stage name grids refer to.
const Name = "testsrc"

const (
	PatternGradient = "gradient"
	PatternSolid    = "solid"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Priv holds the arguments and running state of one testsrc instance.
type Priv struct {
	Width       int    `hcl:"width,optional"`
	Height      int    `hcl:"height,optional"`
	Format      string `hcl:"format,optional"`
	SliceHeight int    `hcl:"slice_height,optional"`
	Pattern     string `hcl:"pattern,optional"`
	Value       int    `hcl:"value,optional"`

	format frame.PixelFormat
	frames uint64
}

// Frames returns how many frames the instance has produced.
func (p *Priv) Frames() uint64 {
	return p.frames
}

func newPriv() any {
	return &Priv{
		Width:       320,
		Height:      240,
		Format:      frame.FormatYUV420P.String(),
		SliceHeight: 16,
		Pattern:     PatternGradient,
	}
}

func (p *Priv) validate() error {
	var errs []error
	format, err := frame.ParsePixelFormat(p.Format)
	if err != nil {
		errs = append(errs, err)
	}
	p.format = format
	if p.Width <= 0 || p.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", frame.ErrInvalidGeometry, p.Width, p.Height))
	}
	if p.SliceHeight <= 0 {
		errs = append(errs, fmt.Errorf("slice_height must be positive, got %d", p.SliceHeight))
	}
	if p.Pattern != PatternGradient && p.Pattern != PatternSolid {
		errs = append(errs, fmt.Errorf("unknown pattern %q", p.Pattern))
	}
	if p.Value < 0 || p.Value > 255 {
		errs = append(errs, fmt.Errorf("value %d out of range 0-255", p.Value))
	}
	return errors.Join(errs...)
}

// Stage returns the testsrc descriptor.
func Stage() *graph.Stage {
	return &graph.Stage{
		Name:        Name,
		Description: "Synthetic frames in a gradient or solid pattern.",
		NewPriv:     newPriv,
		Init: func(inst *graph.Instance) error {
			return inst.Priv.(*Priv).validate()
		},
		Outputs: []graph.Pad{{
			Name:         "default",
			ConfigProps:  configProps,
			RequestFrame: requestFrame,
		}},
	}
}

// Register registers the stage with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Stage())
}

func configProps(link *graph.Link) error {
	p := link.Src.Priv.(*Priv)
	if err := p.validate(); err != nil {
		return err
	}
	link.W, link.H, link.Format = p.Width, p.Height, p.format
	return nil
}

// requestFrame fills a fresh buffer and pushes it: the downstream gets its
// own reference in StartFrame, then one DrawSlice per band, then EndFrame.
func requestFrame(link *graph.Link) error {
	p := link.Src.Priv.(*Priv)

	ref, err := link.GetVideoBuffer(frame.PermWrite)
	if err != nil {
		return err
	}
	defer ref.Release()

	p.fill(ref)
	if err := link.StartFrame(ref.Duplicate()); err != nil {
		return err
	}
	for y := 0; y < ref.H; y += p.SliceHeight {
		if err := link.DrawSlice(ref.Data, y, min(p.SliceHeight, ref.H-y)); err != nil {
			return errors.Join(err, link.EndFrame())
		}
	}
	if err := link.EndFrame(); err != nil {
		return err
	}
	p.frames++
	return nil
}

// fill paints the pattern into every visible row of ref. Gradients move
// by one step per frame.
func (p *Priv) fill(ref *frame.Ref) {
	yuv := ref.Format().NumPlanes() == 3
	for i := 0; i < ref.Format().NumPlanes(); i++ {
		for y, row := range ref.Rows(i) {
			for x := range row {
				switch {
				case i > 0 && yuv:
					row[x] = 128
				case p.Pattern == PatternSolid:
					row[x] = byte(p.Value)
				default:
					row[x] = byte(x + y + int(p.frames))
				}
			}
		}
	}
}
