package frame

import (
	"errors"
	"fmt"
	"strings"
)

// MaxPlanes is the largest number of planes any supported format uses.
const MaxPlanes = 4

// Planes holds per-plane pixel data.
type Planes [MaxPlanes][]byte

// Linesizes holds per-plane strides in bytes.
type Linesizes [MaxPlanes]int

var (
	// ErrUnknownFormat is returned for pixel formats the engine does not know.
	ErrUnknownFormat = errors.New("unknown pixel format")
	// ErrInvalidGeometry is returned for non-positive dimensions.
	ErrInvalidGeometry = errors.New("invalid frame geometry")
)

// PixelFormat identifies a raw pixel layout.
type PixelFormat int

const (
	FormatNone PixelFormat = iota
	FormatGray8
	FormatRGB24
	FormatRGBA
	FormatYUV420P
	FormatYUV422P
	FormatYUV444P
)

type formatInfo struct {
	name   string
	planes int
	// bytes per pixel in plane 0; chroma planes use one byte per sample
	bpp         int
	log2ChromaW uint
	log2ChromaH uint
}

var formats = map[PixelFormat]formatInfo{
	FormatGray8:   {name: "gray8", planes: 1, bpp: 1},
	FormatRGB24:   {name: "rgb24", planes: 1, bpp: 3},
	FormatRGBA:    {name: "rgba", planes: 1, bpp: 4},
	FormatYUV420P: {name: "yuv420p", planes: 3, bpp: 1, log2ChromaW: 1, log2ChromaH: 1},
	FormatYUV422P: {name: "yuv422p", planes: 3, bpp: 1, log2ChromaW: 1},
	FormatYUV444P: {name: "yuv444p", planes: 3, bpp: 1},
}

// ParsePixelFormat maps a case-insensitive format name such as "yuv420p" to
// its PixelFormat.
func ParsePixelFormat(name string) (PixelFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, info := range formats {
		if info.name == name {
			return f, nil
		}
	}
	return FormatNone, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// String returns the canonical lower-case name of the format.
func (f PixelFormat) String() string {
	if info, ok := formats[f]; ok {
		return info.name
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// Valid reports whether f is a known format.
func (f PixelFormat) Valid() bool {
	_, ok := formats[f]
	return ok
}

// NumPlanes returns how many planes the format uses, 0 for unknown formats.
func (f PixelFormat) NumPlanes() int {
	return formats[f].planes
}

// BytesPerPixel returns the size of one plane-0 pixel.
func (f PixelFormat) BytesPerPixel() int {
	return formats[f].bpp
}

// ChromaShift returns the log2 horizontal and vertical subsampling of the
// chroma planes.
func (f PixelFormat) ChromaShift() (uint, uint) {
	info := formats[f]
	return info.log2ChromaW, info.log2ChromaH
}

// PlaneLayout computes the stride and row count of every plane for a w×h
// picture. Strides are unpadded.
func (f PixelFormat) PlaneLayout(w, h int) (Linesizes, [MaxPlanes]int, error) {
	var linesizes Linesizes
	var heights [MaxPlanes]int

	info, ok := formats[f]
	if !ok {
		return linesizes, heights, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if w <= 0 || h <= 0 {
		return linesizes, heights, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, w, h)
	}

	linesizes[0] = w * info.bpp
	heights[0] = h
	for i := 1; i < info.planes; i++ {
		linesizes[i] = ceilShift(w, info.log2ChromaW)
		heights[i] = ceilShift(h, info.log2ChromaH)
	}
	return linesizes, heights, nil
}

// ceilShift divides v by 2^s rounding up, which is how subsampled chroma
// planes cover odd luma dimensions.
func ceilShift(v int, s uint) int {
	return (v + (1 << s) - 1) >> s
}
