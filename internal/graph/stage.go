package graph

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// Pad is a connection point of a stage. Every callback is optional except
// ConfigProps on output pads. Absent StartFrame, EndFrame and GetVideoBuffer
// fall back to the Default* functions; absent DrawSlice and RequestFrame
// have no fallback.
type Pad struct {
	Name string

	// GetVideoBuffer lets an input pad supply storage for frames pushed to
	// it. Returning nil falls back to the default allocator.
	GetVideoBuffer func(link *Link, perms frame.Perms) *frame.Ref

	// StartFrame is called on input pads when a new frame begins.
	StartFrame func(link *Link, ref *frame.Ref) error

	// DrawSlice is called on input pads for each horizontal band of the
	// in-flight frame. planes point at the top-left of the frame.
	DrawSlice func(link *Link, planes frame.Planes, y, h int) error

	// EndFrame is called on input pads once the frame is complete.
	EndFrame func(link *Link) error

	// RequestFrame is called on output pads when the downstream side pulls.
	RequestFrame func(link *Link) error

	// ConfigProps negotiates the link's width, height and format. Required
	// on output pads.
	ConfigProps func(link *Link) error
}

// Stage is an immutable descriptor of a filter type.
type Stage struct {
	Name        string
	Description string

	Inputs  []Pad
	Outputs []Pad

	// NewPriv returns a fresh private-state block for an instance. It may
	// be nil for stages without state.
	NewPriv func() any

	// Init prepares an instance after its arguments are in place.
	Init func(inst *Instance) error
	// Uninit releases whatever Init acquired. It is best-effort.
	Uninit func(inst *Instance)
}

// Validate checks the descriptor's structural rules: a name, unique pad
// names per direction and a ConfigProps callback on every output.
func (s *Stage) Validate() error {
	if s == nil {
		return errors.New("stage is nil")
	}
	if s.Name == "" {
		return errors.New("stage has no name")
	}
	var errs []error
	if err := checkPadNames(s.Inputs); err != nil {
		errs = append(errs, fmt.Errorf("stage %q inputs: %w", s.Name, err))
	}
	if err := checkPadNames(s.Outputs); err != nil {
		errs = append(errs, fmt.Errorf("stage %q outputs: %w", s.Name, err))
	}
	for i, p := range s.Outputs {
		if p.ConfigProps == nil {
			errs = append(errs, fmt.Errorf("stage %q output %d (%s): %w", s.Name, i, p.Name, ErrNoConfigProps))
		}
	}
	return errors.Join(errs...)
}

func checkPadNames(pads []Pad) error {
	seen := make(map[string]struct{}, len(pads))
	for i, p := range pads {
		if p.Name == "" {
			return fmt.Errorf("pad %d has no name", i)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate pad name %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// InputIndex returns the index of the named input pad, or -1.
func (s *Stage) InputIndex(name string) int {
	return padIndex(s.Inputs, name)
}

// OutputIndex returns the index of the named output pad, or -1.
func (s *Stage) OutputIndex(name string) int {
	return padIndex(s.Outputs, name)
}

func padIndex(pads []Pad, name string) int {
	for i, p := range pads {
		if p.Name == name {
			return i
		}
	}
	return -1
}
