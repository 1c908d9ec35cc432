// Package rawsink provides the terminal stage of a grid. It writes the
// visible rows of every completed frame to a file, plane after plane, and
// keeps counters describing what it received.
package rawsink

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/specialistvlad/framegrid/internal/registry"
)

// Name is the stage name grids refer to.
const Name = "rawsink"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Priv holds the output path and the counters of one rawsink instance.
// An empty Path discards the frames after counting them.
type Priv struct {
	Path string `hcl:"path,optional"`

	file     *os.File
	w        *bufio.Writer
	frames   uint64
	bytes    int64
	checksum uint32
	err      error
}

// Frames returns the number of completed frames.
func (p *Priv) Frames() uint64 { return p.frames }

// Bytes returns the number of bytes written.
func (p *Priv) Bytes() int64 { return p.bytes }

// Checksum returns the CRC-32 (IEEE) of the last frame's visible bytes.
func (p *Priv) Checksum() uint32 { return p.checksum }

// Err returns the first write, flush or close error, if any.
func (p *Priv) Err() error { return p.err }

func (p *Priv) fail(err error) error {
	if p.err == nil {
		p.err = err
	}
	return err
}

// LogValue implements slog.LogValuer.
func (p *Priv) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("path", p.Path),
		slog.Uint64("frames", p.frames),
		slog.Int64("bytes", p.bytes),
		slog.String("crc32", fmt.Sprintf("%08x", p.checksum)),
	}
	if p.err != nil {
		attrs = append(attrs, slog.String("error", p.err.Error()))
	}
	return slog.GroupValue(attrs...)
}

// Stage returns the rawsink descriptor.
func Stage() *graph.Stage {
	return &graph.Stage{
		Name:        Name,
		Description: "Write raw frames to a file.",
		NewPriv:     func() any { return &Priv{} },
		Init:        initSink,
		Uninit:      uninitSink,
		Inputs: []graph.Pad{{
			Name:      "default",
			DrawSlice: drawSlice,
			EndFrame:  endFrame,
		}},
	}
}

// Register registers the stage with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Stage())
}

func initSink(inst *graph.Instance) error {
	p := inst.Priv.(*Priv)
	if p.file != nil {
		return nil
	}
	if p.Path == "" {
		p.w = bufio.NewWriter(io.Discard)
		return nil
	}
	f, err := os.Create(p.Path)
	if err != nil {
		return err
	}
	p.file = f
	p.w = bufio.NewWriter(f)
	return nil
}

func uninitSink(inst *graph.Instance) {
	p, ok := inst.Priv.(*Priv)
	if !ok || p.file == nil {
		return
	}
	if err := p.w.Flush(); err != nil {
		p.fail(fmt.Errorf("flushing %s: %w", p.Path, err))
	}
	if err := p.file.Close(); err != nil {
		p.fail(fmt.Errorf("closing %s: %w", p.Path, err))
	}
	p.file = nil
}

// drawSlice accepts bands as they arrive; the frame is written whole in
// endFrame.
func drawSlice(*graph.Link, frame.Planes, int, int) error {
	return nil
}

func endFrame(link *graph.Link) error {
	defer graph.DefaultEndFrame(link)

	p := link.Dst.Priv.(*Priv)
	ref := link.Cur
	if ref == nil || p.w == nil {
		return fmt.Errorf("%s: %w", link.Dst, graph.ErrNoFrameInFlight)
	}

	sum := crc32.NewIEEE()
	out := io.MultiWriter(p.w, sum)
	for i := 0; i < ref.Format().NumPlanes(); i++ {
		for _, row := range ref.Rows(i) {
			n, err := out.Write(row)
			p.bytes += int64(n)
			if err != nil {
				return p.fail(fmt.Errorf("%s: writing frame %d: %w", link.Dst, p.frames, err))
			}
		}
	}
	if err := p.w.Flush(); err != nil {
		return p.fail(fmt.Errorf("%s: writing frame %d: %w", link.Dst, p.frames, err))
	}
	p.checksum = sum.Sum32()
	p.frames++
	return nil
}
