package graph

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// Catalog resolves stage names to descriptors. *registry.Registry
// implements it.
type Catalog interface {
	Lookup(name string) (*Stage, bool)
}

// Instance is a live instantiation of a Stage. It owns one link slot per
// declared pad and the stage's private state.
type Instance struct {
	Stage *Stage
	// Name identifies the instance in diagnostics. It defaults to the
	// stage name.
	Name string
	// Priv is the private state created by Stage.NewPriv.
	Priv any

	inputs    []*Link
	outputs   []*Link
	graph     *Graph
	destroyed bool
}

// Create instantiates stage with empty pad slots and fresh private state.
func Create(stage *Stage) *Instance {
	inst := &Instance{
		Stage:   stage,
		Name:    stage.Name,
		inputs:  make([]*Link, len(stage.Inputs)),
		outputs: make([]*Link, len(stage.Outputs)),
	}
	if stage.NewPriv != nil {
		inst.Priv = stage.NewPriv()
	}
	return inst
}

// CreateByName looks name up in catalog and instantiates it.
func CreateByName(catalog Catalog, name string) (*Instance, error) {
	stage, ok := catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStageNotFound, name)
	}
	return Create(stage), nil
}

// String renders the instance as "name (stage)" or just the stage name.
func (i *Instance) String() string {
	if i.Name == "" || i.Name == i.Stage.Name {
		return i.Stage.Name
	}
	return i.Name + " (" + i.Stage.Name + ")"
}

// LogValue implements slog.LogValuer.
func (i *Instance) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", i.Name),
		slog.String("stage", i.Stage.Name),
	)
}

// NumInputs returns the number of declared input pads.
func (i *Instance) NumInputs() int { return len(i.inputs) }

// NumOutputs returns the number of declared output pads.
func (i *Instance) NumOutputs() int { return len(i.outputs) }

// Input returns the link attached to input pad n, or nil.
func (i *Instance) Input(n int) *Link {
	if n < 0 || n >= len(i.inputs) {
		return nil
	}
	return i.inputs[n]
}

// Output returns the link attached to output pad n, or nil.
func (i *Instance) Output(n int) *Link {
	if n < 0 || n >= len(i.outputs) {
		return nil
	}
	return i.outputs[n]
}

// Destroyed reports whether Destroy has run.
func (i *Instance) Destroyed() bool {
	return i.destroyed
}

// Init runs the stage's Init callback, then renegotiates every linked
// output so fresh settings reach downstream immediately. A failing Init is
// returned without rollback; the caller decides whether to Destroy.
func (i *Instance) Init() error {
	if i.destroyed {
		return fmt.Errorf("%s: %w", i, ErrDestroyed)
	}
	if i.Stage.Init != nil {
		if err := i.Stage.Init(i); err != nil {
			return fmt.Errorf("%s: %w: %w", i, ErrInitFailed, err)
		}
	}
	for n, link := range i.outputs {
		if link == nil {
			continue
		}
		if err := link.configure(); err != nil {
			return fmt.Errorf("%s output %d: %w", i, n, err)
		}
	}
	return nil
}

// Destroy runs Uninit and then detaches every link from both of its
// endpoints, so no surviving neighbor keeps a pointer to it. A frame still
// in flight on a detached link is released. Destroy is idempotent.
func (i *Instance) Destroy() {
	if i.destroyed {
		return
	}
	if i.Stage.Uninit != nil {
		i.Stage.Uninit(i)
	}
	for _, link := range i.inputs {
		if link != nil {
			link.unlink()
		}
	}
	for _, link := range i.outputs {
		if link != nil {
			link.unlink()
		}
	}
	i.inputs = nil
	i.outputs = nil
	i.Priv = nil
	i.destroyed = true
}

func (i *Instance) allocator() frame.Allocator {
	if i.graph != nil && i.graph.alloc != nil {
		return i.graph.alloc
	}
	return frame.HeapAllocator{}
}
