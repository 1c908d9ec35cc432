package graph

import (
	"testing"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestGraph builds a graph over a catalog with a source, a pass-through
// filter and a sink.
func createTestGraph(t *testing.T, rec *recorder, alloc frame.Allocator) *Graph {
	t.Helper()
	catalog := mapCatalog{
		"src":    sourceStage(rec, 4, 2),
		"filter": filterStage(rec),
		"sink":   sinkStage(rec, true),
	}
	return New(catalog, alloc)
}

func TestGraph_CreateAndLookup(t *testing.T) {
	rec := &recorder{}
	g := createTestGraph(t, rec, nil)

	a, err := g.Create("src", "a")
	require.NoError(t, err)
	assert.Equal(t, "a", a.Name)

	s, err := g.Create("sink", "")
	require.NoError(t, err)
	assert.Equal(t, "sink", s.Name)

	_, err = g.Create("sink", "a")
	require.ErrorIs(t, err, ErrDuplicateInstance)

	_, err = g.Create("nope", "b")
	require.ErrorIs(t, err, ErrStageNotFound)

	got, ok := g.Instance("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = g.Instance("b")
	assert.False(t, ok)

	assert.Equal(t, []*Instance{a, s}, g.Instances())
	assert.Equal(t, []*Instance{s}, g.Sinks())
	assert.IsType(t, frame.HeapAllocator{}, g.Allocator())
}

func TestGraph_ConnectByName(t *testing.T) {
	rec := &recorder{}
	g := createTestGraph(t, rec, nil)
	_, err := g.Create("src", "a")
	require.NoError(t, err)
	_, err = g.Create("sink", "out")
	require.NoError(t, err)

	_, err = g.Connect("a", 0, "missing", 0)
	require.ErrorIs(t, err, ErrInstanceNotFound)
	_, err = g.Connect("missing", 0, "out", 0)
	require.ErrorIs(t, err, ErrInstanceNotFound)

	link, err := g.Connect("a", 0, "out", 0)
	require.NoError(t, err)
	require.NoError(t, link.RequestFrame())
	assert.Equal(t, []string{"request", "start 4x2", "draw 0+2", "end"}, rec.events)
}

func TestGraph_DefaultBuffersUseGraphAllocator(t *testing.T) {
	rec := &recorder{}
	pool := frame.NewPool(2)
	g := createTestGraph(t, rec, pool)
	_, err := g.Create("src", "a")
	require.NoError(t, err)
	_, err = g.Create("sink", "out")
	require.NoError(t, err)
	link, err := g.Connect("a", 0, "out", 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, link.RequestFrame())
	}
	stats := pool.Stats()
	assert.Equal(t, uint64(1), stats.Allocs)
	assert.Equal(t, uint64(2), stats.Reuses)
}

func TestGraph_RemoveAndClose(t *testing.T) {
	rec := &recorder{}
	g := createTestGraph(t, rec, nil)
	var uninits []string
	for _, name := range []string{"a", "b", "c"} {
		inst, err := g.Create("filter", name)
		require.NoError(t, err)
		inst.Stage = &Stage{
			Name:    inst.Stage.Name,
			Inputs:  inst.Stage.Inputs,
			Outputs: inst.Stage.Outputs,
			Uninit: func(inst *Instance) {
				uninits = append(uninits, inst.Name)
			},
		}
	}
	_, err := g.Connect("a", 0, "b", 0)
	require.NoError(t, err)
	_, err = g.Connect("b", 0, "c", 0)
	require.NoError(t, err)

	require.NoError(t, g.Remove("b"))
	require.ErrorIs(t, g.Remove("b"), ErrInstanceNotFound)

	a, _ := g.Instance("a")
	c, _ := g.Instance("c")
	assert.Nil(t, a.Output(0))
	assert.Nil(t, c.Input(0))

	g.Close()
	assert.Equal(t, []string{"b", "c", "a"}, uninits)
	assert.Empty(t, g.Instances())
	assert.True(t, a.Destroyed())
}
