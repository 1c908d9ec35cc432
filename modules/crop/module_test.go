package crop

import (
	"testing"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/specialistvlad/framegrid/internal/testutil"
	"github.com/specialistvlad/framegrid/modules/testsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(w, h, slice int, format string) *graph.Stage {
	s := testsrc.Stage()
	s.NewPriv = func() any {
		return &testsrc.Priv{Width: w, Height: h, Format: format, SliceHeight: slice, Pattern: testsrc.PatternGradient}
	}
	return s
}

func cropStage(x, y, w, h int) *graph.Stage {
	s := Stage()
	s.NewPriv = func() any { return &Priv{X: x, Y: y, Width: w, Height: h} }
	return s
}

func TestCrop_ForwardsSubRectangle(t *testing.T) {
	insts := testutil.Chain(t, source(8, 6, 2, "gray8"), cropStage(2, 1, 4, 3), testutil.CaptureStage())
	out := insts[2].Input(0)
	assert.Equal(t, 4, out.W)
	assert.Equal(t, 3, out.H)

	require.NoError(t, out.RequestFrame())

	got := insts[2].Priv.(*testutil.Capture).Last()
	require.NotNil(t, got)
	assert.Equal(t, 4, got.W)
	assert.Equal(t, 3, got.H)
	assert.Equal(t, []byte{
		3, 4, 5, 6,
		4, 5, 6, 7,
		5, 6, 7, 8,
	}, got.Planes[0])
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, got.Bands)
	assert.True(t, got.Buffer.Released())
	assert.False(t, insts[1].Input(0).InFlight())
}

func TestCrop_SubsampledChroma(t *testing.T) {
	insts := testutil.Chain(t, source(8, 4, 4, "yuv420p"), cropStage(2, 2, 4, 2), testutil.CaptureStage())
	require.NoError(t, insts[2].Input(0).RequestFrame())

	got := insts[2].Priv.(*testutil.Capture).Last()
	require.NotNil(t, got)
	require.Len(t, got.Planes, 3)
	assert.Equal(t, []byte{4, 5, 6, 7, 5, 6, 7, 8}, got.Planes[0])
	assert.Equal(t, []byte{128, 128}, got.Planes[1])
	assert.Equal(t, []byte{128, 128}, got.Planes[2])
	assert.Equal(t, frame.FormatYUV420P, got.Format)
}

func TestCrop_ZeroSizeExtendsToEdge(t *testing.T) {
	insts := testutil.Chain(t, source(8, 6, 6, "gray8"), cropStage(3, 2, 0, 0), testutil.CaptureStage())
	link := insts[2].Input(0)
	assert.Equal(t, 5, link.W)
	assert.Equal(t, 4, link.H)
}

func TestCrop_OutOfBounds(t *testing.T) {
	testCases := []struct {
		name       string
		x, y, w, h int
	}{
		{name: "too wide", x: 4, w: 5},
		{name: "too tall", y: 5, h: 2},
		{name: "origin outside", x: 8},
		{name: "negative", x: -1, w: 2, h: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := graph.Create(source(8, 6, 2, "gray8"))
			c := graph.Create(cropStage(tc.x, tc.y, tc.w, tc.h))
			_, err := graph.Connect(src, 0, c, 0)
			require.NoError(t, err)

			_, err = graph.Connect(c, 0, graph.Create(testutil.CaptureStage()), 0)
			require.ErrorIs(t, err, frame.ErrCropBounds)
		})
	}
}

func TestCrop_WithoutConsumer(t *testing.T) {
	src := graph.Create(source(4, 4, 2, "gray8"))
	c := graph.Create(cropStage(0, 0, 2, 2))
	link, err := graph.Connect(src, 0, c, 0)
	require.NoError(t, err)

	require.NoError(t, link.RequestFrame())
	assert.Equal(t, uint64(1), link.Frames())
}
