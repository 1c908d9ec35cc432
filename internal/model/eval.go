// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file builds the evaluation context that filter arguments are decoded
// under: the resolved locals as "local.<name>" plus a small function library.
package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Functions returns the functions callable from grid expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"abs":    stdlib.AbsoluteFunc,
		"ceil":   stdlib.CeilFunc,
		"floor":  stdlib.FloorFunc,
		"format": stdlib.FormatFunc,
		"lower":  stdlib.LowerFunc,
		"max":    stdlib.MaxFunc,
		"min":    stdlib.MinFunc,
		"upper":  stdlib.UpperFunc,
	}
}

// EvalContext resolves the grid's locals and returns the context filter
// arguments are evaluated in. Locals may refer to each other in any order;
// a reference to an undeclared local or a reference cycle is an error.
func (g *Grid) EvalContext() (*hcl.EvalContext, error) {
	declared := make(map[string]*Local, len(g.Locals))
	for _, l := range g.Locals {
		declared[l.Name] = l
	}

	resolved := make(map[string]cty.Value, len(g.Locals))
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: Functions(),
	}

	pending := slices.Clone(g.Locals)
	sortLocals(pending)
	for len(pending) > 0 {
		var next []*Local
		for _, l := range pending {
			deps, err := localRefs(l, declared)
			if err != nil {
				return nil, err
			}
			if !allResolved(deps, resolved) {
				next = append(next, l)
				continue
			}
			evalCtx.Variables["local"] = cty.ObjectVal(resolved)
			val, diags := l.Expr.Value(evalCtx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("evaluating local %q in %s: %w", l.Name, l.FSInformation, diags)
			}
			resolved[l.Name] = val
		}
		if len(next) == len(pending) {
			names := make([]string, len(next))
			for i, l := range next {
				names[i] = l.Name
			}
			return nil, fmt.Errorf("locals reference each other in a cycle: %s", strings.Join(names, ", "))
		}
		pending = next
	}

	evalCtx.Variables["local"] = cty.ObjectVal(resolved)
	return evalCtx, nil
}

// localRefs returns the names of the locals l refers to.
func localRefs(l *Local, declared map[string]*Local) ([]string, error) {
	var refs []string
	for _, traversal := range l.Expr.Variables() {
		if traversal.RootName() != "local" {
			continue
		}
		split := traversal.SimpleSplit()
		if len(split.Rel) == 0 {
			return nil, fmt.Errorf("local %q in %s: bare \"local\" reference", l.Name, l.FSInformation)
		}
		attr, ok := split.Rel[0].(hcl.TraverseAttr)
		if !ok {
			return nil, fmt.Errorf("local %q in %s: locals must be referenced as local.<name>", l.Name, l.FSInformation)
		}
		if _, ok := declared[attr.Name]; !ok {
			return nil, fmt.Errorf("local %q in %s: reference to undeclared local %q", l.Name, l.FSInformation, attr.Name)
		}
		refs = append(refs, attr.Name)
	}
	return refs, nil
}

func allResolved(names []string, resolved map[string]cty.Value) bool {
	for _, n := range names {
		if _, ok := resolved[n]; !ok {
			return false
		}
	}
	return true
}

func sortLocals(locals []*Local) {
	slices.SortFunc(locals, func(a, b *Local) int {
		return strings.Compare(a.Name, b.Name)
	})
}
