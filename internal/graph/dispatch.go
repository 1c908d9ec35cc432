package graph

import (
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// DefaultGetVideoBuffer allocates fresh storage matching the link's
// negotiated geometry and wraps it in a single reference.
func DefaultGetVideoBuffer(link *Link, perms frame.Perms) (*frame.Ref, error) {
	buf, err := link.Dst.allocator().Alloc(link.Format, link.W, link.H)
	if err != nil {
		return nil, fmt.Errorf("%s: allocating %dx%d %v: %w", link, link.W, link.H, link.Format, err)
	}
	return frame.NewRef(buf, perms), nil
}

// DefaultStartFrame records ref as the link's in-flight frame.
func DefaultStartFrame(link *Link, ref *frame.Ref) error {
	link.Cur = ref
	return nil
}

// DefaultEndFrame releases the link's in-flight frame.
func DefaultEndFrame(link *Link) error {
	if link.Cur != nil {
		link.Cur.Release()
		link.Cur = nil
	}
	return nil
}

// GetVideoBuffer asks the destination pad for storage, falling back to
// DefaultGetVideoBuffer when it has no allocator or declines.
func (l *Link) GetVideoBuffer(perms frame.Perms) (*frame.Ref, error) {
	if get := l.dstPad().GetVideoBuffer; get != nil {
		if ref := get(l, perms); ref != nil {
			return ref, nil
		}
	}
	return DefaultGetVideoBuffer(l, perms)
}

// StartFrame begins delivering ref across the link. Once dispatched,
// ownership of ref passes to the destination. If the destination fails,
// the link returns to idle and both ref and any recorded frame are
// released. A start rejected with ErrFrameInFlight is never dispatched and
// the caller keeps ref.
func (l *Link) StartFrame(ref *frame.Ref) error {
	if l.inFlight {
		return fmt.Errorf("%s: %w", l, ErrFrameInFlight)
	}
	l.inFlight = true

	start := l.dstPad().StartFrame
	if start == nil {
		start = DefaultStartFrame
	}
	if err := start(l, ref); err != nil {
		if l.Cur != nil && l.Cur != ref && l.Cur.Buffer() != nil {
			l.Cur.Release()
		}
		l.Cur = nil
		if ref.Buffer() != nil {
			ref.Release()
		}
		l.inFlight = false
		return err
	}
	return nil
}

// DrawSlice delivers the band [y, y+h) of the in-flight frame. Bands are
// expected in increasing order covering the frame once; only their bounds
// are checked here.
func (l *Link) DrawSlice(planes frame.Planes, y, h int) error {
	if !l.inFlight {
		return fmt.Errorf("%s: %w", l, ErrNoFrameInFlight)
	}
	draw := l.dstPad().DrawSlice
	if draw == nil {
		return fmt.Errorf("%s: %w", l, ErrNoDrawSlice)
	}
	if y < 0 || h <= 0 || y+h > l.H {
		return fmt.Errorf("%s: %w: rows %d+%d of %d", l, ErrSliceBounds, y, h, l.H)
	}
	return draw(l, planes, y, h)
}

// EndFrame completes the in-flight frame. The link is idle afterwards even
// when the destination reports an error.
func (l *Link) EndFrame() error {
	if !l.inFlight {
		return fmt.Errorf("%s: %w", l, ErrNoFrameInFlight)
	}
	end := l.dstPad().EndFrame
	if end == nil {
		end = DefaultEndFrame
	}
	err := end(l)
	l.inFlight = false
	l.frames++
	return err
}

// RequestFrame asks the source side of the link to produce a frame. The
// source is expected to push it across this link before returning.
func (l *Link) RequestFrame() error {
	request := l.srcPad().RequestFrame
	if request == nil {
		return fmt.Errorf("%s: %w", l, ErrNoRequestFrame)
	}
	return request(l)
}
