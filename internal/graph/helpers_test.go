package graph

import (
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// mapCatalog is a minimal Catalog for tests.
type mapCatalog map[string]*Stage

func (c mapCatalog) Lookup(name string) (*Stage, bool) {
	s, ok := c[name]
	return s, ok
}

// recorder collects the callbacks test stages receive, in order.
type recorder struct {
	events  []string
	configs int
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

// sourceStage returns a one-output stage producing w×h gray frames when
// pulled, pushed as a single band.
func sourceStage(rec *recorder, w, h int) *Stage {
	return &Stage{
		Name: "src",
		Outputs: []Pad{{
			Name: "default",
			ConfigProps: func(link *Link) error {
				rec.configs++
				link.W, link.H, link.Format = w, h, frame.FormatGray8
				return nil
			},
			RequestFrame: func(link *Link) error {
				rec.add("request")
				ref, err := link.GetVideoBuffer(frame.PermWrite)
				if err != nil {
					return err
				}
				if err := link.StartFrame(ref.Duplicate()); err != nil {
					return err
				}
				if err := link.DrawSlice(ref.Data, 0, ref.H); err != nil {
					return err
				}
				if err := link.EndFrame(); err != nil {
					return err
				}
				ref.Release()
				return nil
			},
		}},
	}
}

// sinkStage returns a one-input stage that records slices. With custom set
// it also overrides StartFrame and EndFrame, still delegating to the
// defaults.
func sinkStage(rec *recorder, custom bool) *Stage {
	pad := Pad{
		Name: "default",
		DrawSlice: func(link *Link, planes frame.Planes, y, h int) error {
			rec.add("draw %d+%d", y, h)
			return nil
		},
	}
	if custom {
		pad.StartFrame = func(link *Link, ref *frame.Ref) error {
			rec.add("start %dx%d", ref.W, ref.H)
			return DefaultStartFrame(link, ref)
		}
		pad.EndFrame = func(link *Link) error {
			rec.add("end")
			return DefaultEndFrame(link)
		}
	}
	return &Stage{Name: "sink", Inputs: []Pad{pad}}
}

// filterStage is a one-in one-out stage with no frame callbacks.
func filterStage(rec *recorder) *Stage {
	out := Pad{
		Name: "default",
		ConfigProps: func(link *Link) error {
			rec.configs++
			return nil
		},
	}
	return &Stage{
		Name:    "filter",
		Inputs:  []Pad{{Name: "default"}},
		Outputs: []Pad{out},
	}
}
