package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/endpoint"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/specialistvlad/framegrid/internal/model"
)

var (
	// ErrUnexpectedArguments is returned when a filter passes arguments to
	// a stage without private state.
	ErrUnexpectedArguments = errors.New("stage takes no arguments")
	// ErrInstanceName is returned for filter names no link endpoint can address.
	ErrInstanceName = errors.New("invalid instance name")
	// ErrUnconnectedInput is returned when an input pad has no link.
	ErrUnconnectedInput = errors.New("input pad is not connected")
	// ErrLinkOrder is returned when links form a cycle.
	ErrLinkOrder = errors.New("links cannot be ordered")
)

// Build creates, connects and initializes the graph declared by grid.
// Stages are looked up in catalog; default buffers come from alloc.
func Build(ctx context.Context, grid *model.Grid, catalog graph.Catalog, alloc frame.Allocator) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building graph", "filters", len(grid.Filters), "links", len(grid.Links))

	evalCtx, err := grid.EvalContext()
	if err != nil {
		return nil, err
	}

	g := graph.New(catalog, alloc)
	if err := build(ctx, g, grid, evalCtx); err != nil {
		g.Close()
		return nil, err
	}

	logger.Debug("Graph built", "instances", len(g.Instances()), "sinks", len(g.Sinks()))
	return g, nil
}

func build(ctx context.Context, g *graph.Graph, grid *model.Grid, evalCtx *hcl.EvalContext) error {
	for _, f := range grid.Filters {
		if err := createInstance(ctx, g, f, evalCtx); err != nil {
			return err
		}
	}

	links, err := resolveLinks(g, grid.Links)
	if err != nil {
		return err
	}
	if err := connectInOrder(ctx, links); err != nil {
		return err
	}

	order, err := initOrder(g)
	if err != nil {
		return err
	}
	for _, inst := range order {
		if err := inst.Init(); err != nil {
			return err
		}
	}
	return nil
}

func createInstance(ctx context.Context, g *graph.Graph, f *model.Filter, evalCtx *hcl.EvalContext) error {
	if !endpoint.ValidName(f.Name) {
		return fmt.Errorf("filter %q in %s: %w", f.Name, f.FSInformation, ErrInstanceName)
	}
	inst, err := g.Create(f.Stage, f.Name)
	if err != nil {
		return fmt.Errorf("filter %q in %s: %w", f.Name, f.FSInformation, err)
	}
	ctxlog.FromContext(ctxlog.ForFilter(ctx, f.Stage, f.Name)).Debug("Created instance", "inputs", len(inst.Stage.Inputs), "outputs", len(inst.Stage.Outputs))

	if f.Arguments == nil {
		return nil
	}
	if inst.Priv == nil {
		// An empty schema rejects both attributes and nested blocks.
		if diags := gohcl.DecodeBody(f.Arguments, evalCtx, &struct{}{}); diags.HasErrors() {
			return fmt.Errorf("filter %q in %s: %w: %s: %w", f.Name, f.FSInformation, ErrUnexpectedArguments, f.Stage, diags)
		}
		return nil
	}
	if diags := gohcl.DecodeBody(f.Arguments, evalCtx, inst.Priv); diags.HasErrors() {
		return fmt.Errorf("filter %q in %s: decoding arguments: %w", f.Name, f.FSInformation, diags)
	}
	return nil
}

// initOrder returns every instance after all of its upstream instances.
func initOrder(g *graph.Graph) ([]*graph.Instance, error) {
	instances := g.Instances()
	pending := make(map[*graph.Instance]int, len(instances))
	var ready []*graph.Instance
	for _, inst := range instances {
		for n := 0; n < inst.NumInputs(); n++ {
			if inst.Input(n) == nil {
				return nil, fmt.Errorf("%s input %q: %w", inst, inst.Stage.Inputs[n].Name, ErrUnconnectedInput)
			}
		}
		pending[inst] = inst.NumInputs()
		if inst.NumInputs() == 0 {
			ready = append(ready, inst)
		}
	}

	order := make([]*graph.Instance, 0, len(instances))
	for len(ready) > 0 {
		inst := ready[0]
		ready = ready[1:]
		order = append(order, inst)
		for n := 0; n < inst.NumOutputs(); n++ {
			link := inst.Output(n)
			if link == nil {
				continue
			}
			pending[link.Dst]--
			if pending[link.Dst] == 0 {
				ready = append(ready, link.Dst)
			}
		}
	}
	if len(order) != len(instances) {
		return nil, fmt.Errorf("%w: instances form a cycle", ErrLinkOrder)
	}
	return order, nil
}
