package graph

import (
	"testing"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relayStage() *Stage {
	return &Stage{
		Name: "relay",
		Inputs: []Pad{{
			Name:      "default",
			DrawSlice: func(*Link, frame.Planes, int, int) error { return nil },
		}},
		Outputs: []Pad{{
			Name:         "default",
			ConfigProps:  SameAsInput,
			RequestFrame: RequestFromInput,
		}},
	}
}

func TestSameAsInput(t *testing.T) {
	rec := &recorder{}
	src := Create(sourceStage(rec, 6, 2))
	relay := Create(relayStage())
	sink := Create(sinkStage(rec, false))

	out, err := Connect(relay, 0, sink, 0)
	require.NoError(t, err)
	assert.Zero(t, out.W, "no input yet")

	_, err = Connect(src, 0, relay, 0)
	require.NoError(t, err)
	require.NoError(t, relay.Init())
	assert.Equal(t, 6, out.W)
	assert.Equal(t, 2, out.H)
	assert.Equal(t, frame.FormatGray8, out.Format)
}

func TestRequestFromInput(t *testing.T) {
	rec := &recorder{}
	relay := Create(relayStage())
	out, err := Connect(relay, 0, Create(sinkStage(rec, false)), 0)
	require.NoError(t, err)

	require.ErrorIs(t, out.RequestFrame(), ErrNoRequestFrame)

	in, err := Connect(Create(sourceStage(rec, 6, 2)), 0, relay, 0)
	require.NoError(t, err)
	require.NoError(t, out.RequestFrame())
	assert.Equal(t, []string{"request"}, rec.events, "relay consumes frames without forwarding")
	assert.Equal(t, uint64(1), in.Frames())
}
