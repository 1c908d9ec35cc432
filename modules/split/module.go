// Package split provides a filter that delivers every input frame to two
// outputs. Both consumers get their own reference to the same buffer, so
// the storage is released only after the last of them is done with it.
package split

import (
	"errors"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/specialistvlad/framegrid/internal/registry"
)

// Name is the stage name grids refer to.
const Name = "split"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Stage returns the split descriptor.
func Stage() *graph.Stage {
	return &graph.Stage{
		Name:        Name,
		Description: "Send every frame to both outputs.",
		Inputs: []graph.Pad{{
			Name:       "default",
			StartFrame: startFrame,
			DrawSlice:  drawSlice,
			EndFrame:   endFrame,
		}},
		Outputs: []graph.Pad{
			{Name: "output0", ConfigProps: graph.SameAsInput, RequestFrame: requestFrame},
			{Name: "output1", ConfigProps: graph.SameAsInput, RequestFrame: requestFrame},
		},
	}
}

// Register registers the stage with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Stage())
}

// outputs returns the linked outputs of inst in pad order.
func outputs(inst *graph.Instance) []*graph.Link {
	var links []*graph.Link
	for n := 0; n < inst.NumOutputs(); n++ {
		if out := inst.Output(n); out != nil {
			links = append(links, out)
		}
	}
	return links
}

func startFrame(link *graph.Link, ref *frame.Ref) error {
	if err := graph.DefaultStartFrame(link, ref); err != nil {
		return err
	}
	var started []*graph.Link
	for _, out := range outputs(link.Dst) {
		if err := out.StartFrame(ref.Duplicate()); err != nil {
			errs := []error{err}
			for _, done := range started {
				errs = append(errs, done.EndFrame())
			}
			return errors.Join(errs...)
		}
		started = append(started, out)
	}
	return nil
}

func drawSlice(link *graph.Link, planes frame.Planes, y, h int) error {
	var errs []error
	for _, out := range outputs(link.Dst) {
		if out.InFlight() {
			errs = append(errs, out.DrawSlice(planes, y, h))
		}
	}
	return errors.Join(errs...)
}

func endFrame(link *graph.Link) error {
	var errs []error
	for _, out := range outputs(link.Dst) {
		if out.InFlight() {
			errs = append(errs, out.EndFrame())
		}
	}
	errs = append(errs, graph.DefaultEndFrame(link))
	return errors.Join(errs...)
}

// requestFrame pulls upstream only for the lowest linked output. One pull
// feeds every output, so requests from the others are satisfied by it.
func requestFrame(link *graph.Link) error {
	if links := outputs(link.Src); len(links) > 0 && links[0] != link {
		return nil
	}
	return graph.RequestFromInput(link)
}
