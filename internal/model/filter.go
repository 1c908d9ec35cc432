// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Filter, one "filter" block: a named instance of a
// registered stage plus its raw arguments.
package model

import (
	"github.com/hashicorp/hcl/v2"
)

// Filter is the format-agnostic representation of a "filter" block.
type Filter struct {
	Stage         string
	Name          string
	FSInformation *FSInfo

	// Arguments is the body of the "arguments" block, or nil when the
	// block is absent.
	Arguments hcl.Body
	// BodyRange points into the block body for diagnostics.
	BodyRange hcl.Range
}

// hclFilter represents a single "filter" block for initial decoding.
type hclFilter struct {
	Stage string   `hcl:"stage,label"`
	Name  string   `hcl:"name,label"`
	Body  hcl.Body `hcl:",remain"`
}

var filterBodySchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "arguments"},
	},
}

// newFilterFromHCL creates a Filter from a decoded "filter" block.
func newFilterFromHCL(parsed *hclFilter, filePath string) (*Filter, hcl.Diagnostics) {
	content, diags := parsed.Body.Content(filterBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	f := &Filter{
		Stage:         parsed.Stage,
		Name:          parsed.Name,
		FSInformation: NewFSInfo(filePath),
		BodyRange:     parsed.Body.MissingItemRange(),
	}

	argBlock, blockDiags := findUniqueBlock(content.Blocks, "arguments")
	diags = append(diags, blockDiags...)
	if blockDiags.HasErrors() {
		return nil, diags
	}
	if argBlock != nil {
		f.Arguments = argBlock.Body
	}
	return f, diags
}

// findUniqueBlock returns the single block of the given type, or nil. More
// than one such block is an error.
func findUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type == name {
			if found != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate \"" + name + "\" block",
					Detail:   "Only one \"" + name + "\" block is allowed.",
					Subject:  &block.DefRange,
				})
			}
			found = block
		}
	}

	return found, diags
}
