package testutil

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/stretchr/testify/require"
)

// CaptureStageName is the name CaptureStage registers under.
const CaptureStageName = "capture"

// CapturedFrame is a copy of one frame received by a capture sink.
type CapturedFrame struct {
	W, H   int
	Format frame.PixelFormat
	// Planes holds the visible bytes of each plane, rows concatenated.
	Planes [][]byte
	// Bands lists the DrawSlice calls as {y, h} pairs.
	Bands [][2]int
	// Buffer is the storage the frame arrived in.
	Buffer *frame.Buffer
}

// Capture is the private state of a capture sink.
type Capture struct {
	Frames []CapturedFrame
	bands  [][2]int
}

// Last returns the most recent frame, or nil.
func (c *Capture) Last() *CapturedFrame {
	if len(c.Frames) == 0 {
		return nil
	}
	return &c.Frames[len(c.Frames)-1]
}

// CaptureStage returns a one-input sink that copies every frame it
// receives into its *Capture private state.
func CaptureStage() *graph.Stage {
	return &graph.Stage{
		Name:    CaptureStageName,
		NewPriv: func() any { return &Capture{} },
		Inputs: []graph.Pad{{
			Name: "default",
			DrawSlice: func(link *graph.Link, _ frame.Planes, y, h int) error {
				c := link.Dst.Priv.(*Capture)
				c.bands = append(c.bands, [2]int{y, h})
				return nil
			},
			EndFrame: func(link *graph.Link) error {
				c := link.Dst.Priv.(*Capture)
				ref := link.Cur
				captured := CapturedFrame{
					W:      ref.W,
					H:      ref.H,
					Format: ref.Format(),
					Bands:  c.bands,
					Buffer: ref.Buffer(),
				}
				for i := 0; i < ref.Format().NumPlanes(); i++ {
					captured.Planes = append(captured.Planes, bytes.Join(ref.Rows(i), nil))
				}
				c.Frames = append(c.Frames, captured)
				c.bands = nil
				return graph.DefaultEndFrame(link)
			},
		}},
	}
}

// Chain creates one instance per stage, links output 0 of each to input 0
// of the next and initializes them in order. Instances are destroyed when
// the test ends.
func Chain(t *testing.T, stages ...*graph.Stage) []*graph.Instance {
	t.Helper()
	instances := make([]*graph.Instance, len(stages))
	for i, s := range stages {
		instances[i] = graph.Create(s)
	}
	for i := 1; i < len(instances); i++ {
		_, err := graph.Connect(instances[i-1], 0, instances[i], 0)
		require.NoError(t, err)
	}
	for _, inst := range instances {
		require.NoError(t, inst.Init())
	}
	t.Cleanup(func() {
		for _, inst := range instances {
			inst.Destroy()
		}
	})
	return instances
}
