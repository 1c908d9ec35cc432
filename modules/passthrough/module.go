// Package passthrough provides a filter that forwards frames unchanged.
// Upstream buffers are requested from the downstream link, so a frame can
// travel through any number of passthrough instances in one buffer.
package passthrough

import (
	"errors"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/specialistvlad/framegrid/internal/registry"
)

// Name is the stage name grids refer to.
const Name = "passthrough"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Stage returns the passthrough descriptor.
func Stage() *graph.Stage {
	return &graph.Stage{
		Name:        Name,
		Description: "Forward frames unchanged.",
		Inputs: []graph.Pad{{
			Name:           "default",
			GetVideoBuffer: getVideoBuffer,
			StartFrame:     startFrame,
			DrawSlice:      drawSlice,
			EndFrame:       endFrame,
		}},
		Outputs: []graph.Pad{{
			Name:         "default",
			ConfigProps:  graph.SameAsInput,
			RequestFrame: graph.RequestFromInput,
		}},
	}
}

// Register registers the stage with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Stage())
}

// getVideoBuffer hands out storage from the downstream link. A nil result
// makes the caller fall back to its own allocator.
func getVideoBuffer(link *graph.Link, perms frame.Perms) *frame.Ref {
	out := link.Dst.Output(0)
	if out == nil {
		return nil
	}
	ref, err := out.GetVideoBuffer(perms)
	if err != nil {
		return nil
	}
	return ref
}

func startFrame(link *graph.Link, ref *frame.Ref) error {
	if err := graph.DefaultStartFrame(link, ref); err != nil {
		return err
	}
	if out := link.Dst.Output(0); out != nil {
		return out.StartFrame(ref.Duplicate())
	}
	return nil
}

func drawSlice(link *graph.Link, planes frame.Planes, y, h int) error {
	if out := link.Dst.Output(0); out != nil {
		return out.DrawSlice(planes, y, h)
	}
	return nil
}

func endFrame(link *graph.Link) error {
	var err error
	if out := link.Dst.Output(0); out != nil && out.InFlight() {
		err = out.EndFrame()
	}
	return errors.Join(err, graph.DefaultEndFrame(link))
}
