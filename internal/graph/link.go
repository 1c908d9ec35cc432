package graph

import (
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// Link connects one output pad to one input pad. It carries the negotiated
// geometry and the frame currently between StartFrame and EndFrame.
type Link struct {
	Src    *Instance
	SrcPad int
	Dst    *Instance
	DstPad int

	W, H   int
	Format frame.PixelFormat

	// Cur is the in-flight frame recorded by the default StartFrame.
	Cur *frame.Ref

	inFlight bool
	frames   uint64
}

// Connect links output pad srcPad of src to input pad dstPad of dst and
// negotiates the link's geometry through the source pad. Either pad being
// linked already fails with ErrPadOccupied and changes nothing.
func Connect(src *Instance, srcPad int, dst *Instance, dstPad int) (*Link, error) {
	if src.destroyed || dst.destroyed {
		return nil, ErrDestroyed
	}
	if srcPad < 0 || srcPad >= len(src.outputs) {
		return nil, fmt.Errorf("%w: %s has no output %d", ErrPadIndex, src, srcPad)
	}
	if dstPad < 0 || dstPad >= len(dst.inputs) {
		return nil, fmt.Errorf("%w: %s has no input %d", ErrPadIndex, dst, dstPad)
	}
	if src.outputs[srcPad] != nil {
		return nil, fmt.Errorf("%w: %s output %d", ErrPadOccupied, src, srcPad)
	}
	if dst.inputs[dstPad] != nil {
		return nil, fmt.Errorf("%w: %s input %d", ErrPadOccupied, dst, dstPad)
	}

	link := &Link{
		Src:    src,
		SrcPad: srcPad,
		Dst:    dst,
		DstPad: dstPad,
	}
	src.outputs[srcPad] = link
	dst.inputs[dstPad] = link

	if err := link.configure(); err != nil {
		link.unlink()
		return nil, err
	}
	return link, nil
}

func (l *Link) srcPad() *Pad {
	return &l.Src.Stage.Outputs[l.SrcPad]
}

func (l *Link) dstPad() *Pad {
	return &l.Dst.Stage.Inputs[l.DstPad]
}

func (l *Link) configure() error {
	pad := l.srcPad()
	if pad.ConfigProps == nil {
		return fmt.Errorf("%s: %w", l, ErrNoConfigProps)
	}
	if err := pad.ConfigProps(l); err != nil {
		return fmt.Errorf("%s: negotiating geometry: %w", l, err)
	}
	return nil
}

// unlink clears the link from both endpoint slots. An in-flight frame is
// released.
func (l *Link) unlink() {
	if l.Src != nil && l.Src.outputs != nil && l.Src.outputs[l.SrcPad] == l {
		l.Src.outputs[l.SrcPad] = nil
	}
	if l.Dst != nil && l.Dst.inputs != nil && l.Dst.inputs[l.DstPad] == l {
		l.Dst.inputs[l.DstPad] = nil
	}
	if l.Cur != nil {
		l.Cur.Release()
		l.Cur = nil
	}
	l.inFlight = false
}

// InFlight reports whether a frame has been started and not yet ended.
func (l *Link) InFlight() bool {
	return l.inFlight
}

// Frames returns how many frames have completed on this link.
func (l *Link) Frames() uint64 {
	return l.frames
}

// String renders the link as "src:pad -> dst:pad".
func (l *Link) String() string {
	return fmt.Sprintf("%s:%s -> %s:%s",
		l.Src, l.Src.Stage.Outputs[l.SrcPad].Name,
		l.Dst, l.Dst.Stage.Inputs[l.DstPad].Name)
}
