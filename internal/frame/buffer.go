package frame

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrCropBounds is returned when a crop rectangle leaves the source view.
var ErrCropBounds = errors.New("crop rectangle outside frame")

// Buffer is shared pixel storage. It is owned collectively by every Ref
// pointing at it and released when the last of them goes away.
type Buffer struct {
	Format   PixelFormat
	W, H     int
	Data     Planes
	Linesize Linesizes
	refs     atomic.Int32
	release  func(*Buffer)
	released atomic.Bool
}

// NewBuffer wraps caller-provided planes. The count starts at zero: the
// Buffer belongs to the caller until the first NewRef. release may be nil.
func NewBuffer(format PixelFormat, w, h int, data Planes, linesize Linesizes, release func(*Buffer)) *Buffer {
	return &Buffer{
		Format:   format,
		W:        w,
		H:        h,
		Data:     data,
		Linesize: linesize,
		release:  release,
	}
}

// RefCount returns the number of outstanding references.
func (b *Buffer) RefCount() int {
	return int(b.refs.Load())
}

// Released reports whether the release callback has already run.
func (b *Buffer) Released() bool {
	return b.released.Load()
}

func (b *Buffer) unref() {
	n := b.refs.Add(-1)
	if n < 0 {
		panic("frame: buffer reference count dropped below zero")
	}
	if n == 0 && b.released.CompareAndSwap(false, true) && b.release != nil {
		b.release(b)
	}
}

// Ref is a handle onto a Buffer. Width and height may describe a
// sub-rectangle of the buffer; Data then points at its top-left sample.
type Ref struct {
	buf      *Buffer
	W, H     int
	Perms    Perms
	Data     Planes
	Linesize Linesizes
}

// NewRef creates a handle covering the whole buffer and takes one count on
// it.
func NewRef(buf *Buffer, perms Perms) *Ref {
	if buf.Released() {
		panic("frame: reference to released buffer")
	}
	buf.refs.Add(1)
	return &Ref{
		buf:      buf,
		W:        buf.W,
		H:        buf.H,
		Perms:    perms,
		Data:     buf.Data,
		Linesize: buf.Linesize,
	}
}

// Buffer returns the storage behind the reference, nil once released.
func (r *Ref) Buffer() *Buffer {
	return r.buf
}

// Format is a shorthand for the underlying buffer's pixel format.
func (r *Ref) Format() PixelFormat {
	if r.buf == nil {
		return FormatNone
	}
	return r.buf.Format
}

// Duplicate returns a new handle with the same view and permissions,
// sharing the storage.
func (r *Ref) Duplicate() *Ref {
	if r.buf == nil {
		panic("frame: duplicate of released reference")
	}
	r.buf.refs.Add(1)
	dup := *r
	return &dup
}

// Release drops this handle's count on the buffer. The handle is unusable
// afterwards; releasing it again panics.
func (r *Ref) Release() {
	if r.buf == nil {
		panic("frame: reference released twice")
	}
	buf := r.buf
	r.buf = nil
	r.Data = Planes{}
	buf.unref()
}

// Crop returns a duplicated handle viewing the w×h rectangle at (x, y) of
// this view. For subsampled formats the chroma origin is rounded down.
func (r *Ref) Crop(x, y, w, h int) (*Ref, error) {
	if r.buf == nil {
		panic("frame: crop of released reference")
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > r.W || y+h > r.H {
		return nil, fmt.Errorf("%w: %dx%d+%d+%d in %dx%d", ErrCropBounds, w, h, x, y, r.W, r.H)
	}

	out := r.Duplicate()
	out.W, out.H = w, h

	format := r.buf.Format
	sw, sh := format.ChromaShift()
	for i := 0; i < format.NumPlanes(); i++ {
		px, py := x*format.BytesPerPixel(), y
		if i > 0 {
			px, py = x>>sw, y>>sh
		}
		off := py*r.Linesize[i] + px
		if off > len(r.Data[i]) {
			off = len(r.Data[i])
		}
		out.Data[i] = r.Data[i][off:]
	}
	return out, nil
}

// Rows returns the visible bytes of every row of plane i, trimming stride
// padding and any part of the buffer outside this view.
func (r *Ref) Rows(i int) [][]byte {
	if r.buf == nil || i < 0 || i >= r.buf.Format.NumPlanes() {
		return nil
	}
	format := r.buf.Format
	sw, sh := format.ChromaShift()
	width, height := r.W*format.BytesPerPixel(), r.H
	if i > 0 {
		width, height = ceilShift(r.W, sw), ceilShift(r.H, sh)
	}

	rows := make([][]byte, 0, height)
	for y := 0; y < height; y++ {
		start := y * r.Linesize[i]
		if start+width > len(r.Data[i]) {
			break
		}
		rows = append(rows, r.Data[i][start:start+width])
	}
	return rows
}
