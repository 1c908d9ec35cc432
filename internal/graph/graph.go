package graph

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// Graph owns a set of named instances, the catalog they are created from
// and the allocator their default buffers come from.
type Graph struct {
	catalog   Catalog
	alloc     frame.Allocator
	instances []*Instance
	byName    map[string]*Instance
}

// New creates an empty graph. A nil alloc selects frame.HeapAllocator.
func New(catalog Catalog, alloc frame.Allocator) *Graph {
	if alloc == nil {
		alloc = frame.HeapAllocator{}
	}
	return &Graph{
		catalog: catalog,
		alloc:   alloc,
		byName:  make(map[string]*Instance),
	}
}

// Allocator returns the allocator used for default buffers.
func (g *Graph) Allocator() frame.Allocator {
	return g.alloc
}

// Create instantiates the named stage under instanceName.
// An empty instanceName defaults to the stage name.
func (g *Graph) Create(stageName, instanceName string) (*Instance, error) {
	if instanceName == "" {
		instanceName = stageName
	}
	if _, exists := g.byName[instanceName]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateInstance, instanceName)
	}
	inst, err := CreateByName(g.catalog, stageName)
	if err != nil {
		return nil, err
	}
	inst.Name = instanceName
	inst.graph = g
	g.instances = append(g.instances, inst)
	g.byName[inst.Name] = inst
	return inst, nil
}

// Instance returns the instance called name.
func (g *Graph) Instance(name string) (*Instance, bool) {
	inst, ok := g.byName[name]
	return inst, ok
}

// Instances returns the live instances in creation order.
func (g *Graph) Instances() []*Instance {
	return slices.Clone(g.instances)
}

// Sinks returns the instances whose stage declares no outputs.
func (g *Graph) Sinks() []*Instance {
	var sinks []*Instance
	for _, inst := range g.instances {
		if inst.NumOutputs() == 0 {
			sinks = append(sinks, inst)
		}
	}
	return sinks
}

// Connect links two instances of the graph by name and pad index.
func (g *Graph) Connect(srcName string, srcPad int, dstName string, dstPad int) (*Link, error) {
	src, ok := g.byName[srcName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInstanceNotFound, srcName)
	}
	dst, ok := g.byName[dstName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInstanceNotFound, dstName)
	}
	return Connect(src, srcPad, dst, dstPad)
}

// Remove destroys the named instance and forgets it.
func (g *Graph) Remove(name string) error {
	inst, ok := g.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInstanceNotFound, name)
	}
	inst.Destroy()
	delete(g.byName, name)
	g.instances = slices.DeleteFunc(g.instances, func(i *Instance) bool { return i == inst })
	return nil
}

// Close destroys every instance, newest first.
func (g *Graph) Close() {
	for i := len(g.instances) - 1; i >= 0; i-- {
		g.instances[i].Destroy()
	}
	g.instances = nil
	clear(g.byName)
}
