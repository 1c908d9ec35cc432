package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/framegrid/internal/graph"
)

// Module is the interface that all stage packages implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds stage descriptors sorted by name.
type Registry struct {
	stages []*graph.Stage
}

var _ graph.Catalog = (*Registry)(nil)

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// RegisterModules lets every module add its stages.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}

// Register validates stage and inserts it in name order.
func (r *Registry) Register(stage *graph.Stage) {
	if err := stage.Validate(); err != nil {
		panic(fmt.Sprintf("invalid stage descriptor: %v", err))
	}
	i, found := r.search(stage.Name)
	if found {
		panic(fmt.Sprintf("stage with name '%s' already registered", stage.Name))
	}
	r.stages = slices.Insert(r.stages, i, stage)
}

// Lookup returns the stage registered under name.
func (r *Registry) Lookup(name string) (*graph.Stage, bool) {
	i, found := r.search(name)
	if !found {
		return nil, false
	}
	return r.stages[i], true
}

// Names returns the registered stage names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.stages))
	for i, s := range r.stages {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of registered stages.
func (r *Registry) Len() int {
	return len(r.stages)
}

// UnregisterAll empties the registry.
func (r *Registry) UnregisterAll() {
	clear(r.stages)
	r.stages = r.stages[:0]
}

func (r *Registry) search(name string) (int, bool) {
	return slices.BinarySearchFunc(r.stages, name, func(s *graph.Stage, name string) int {
		return strings.Compare(s.Name, name)
	})
}
