// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Grid structure, the root container for everything
// loaded from a user's .hcl files. A grid may be split across many files;
// loading merges them and rejects names declared twice.
package model

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/fsutil"
)

// Grid represents the user's filter graph definition.
type Grid struct {
	Filters []*Filter
	Links   []*Link
	Locals  []*Local
}

// NewGrid creates and returns an initialized Grid.
func NewGrid() *Grid {
	return &Grid{
		Filters: []*Filter{},
		Links:   []*Link{},
		Locals:  []*Local{},
	}
}

// hclGridFile represents the top-level structure of a grid file for decoding.
type hclGridFile struct {
	Filters []*hclFilter      `hcl:"filter,block"`
	Links   []*hclLink        `hcl:"link,block"`
	Locals  []*hclLocalsBlock `hcl:"locals,block"`
}

// Filter returns the filter declared under name.
func (g *Grid) Filter(name string) (*Filter, bool) {
	for _, f := range g.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Merge adds the declarations of other to g. Filter and local names must
// stay unique.
func (g *Grid) Merge(other *Grid) error {
	for _, f := range other.Filters {
		if prev, ok := g.Filter(f.Name); ok {
			return fmt.Errorf("duplicate filter %q: declared in %s and %s", f.Name, prev.FSInformation, f.FSInformation)
		}
		g.Filters = append(g.Filters, f)
	}
	for _, l := range other.Locals {
		if i := slices.IndexFunc(g.Locals, func(p *Local) bool { return p.Name == l.Name }); i >= 0 {
			return fmt.Errorf("duplicate local %q: declared in %s and %s", l.Name, g.Locals[i].FSInformation, l.FSInformation)
		}
		g.Locals = append(g.Locals, l)
	}
	g.Links = append(g.Links, other.Links...)
	return nil
}

// newGridFromHCL parses a single HCL file into a Grid.
func newGridFromHCL(filePath string, parser *hclparse.Parser) (*Grid, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}
	return decodeGridBody(hclFile.Body, filePath)
}

// ParseGrid parses grid source held in memory. filename is used in
// diagnostics only.
func ParseGrid(src []byte, filename string) (*Grid, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decodeGridBody(hclFile.Body, filename)
}

func decodeGridBody(body hcl.Body, filePath string) (*Grid, error) {
	var parsedFile hclGridFile
	diags := gohcl.DecodeBody(body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	grid := NewGrid()
	for _, parsed := range parsedFile.Filters {
		f, fDiags := newFilterFromHCL(parsed, filePath)
		if fDiags.HasErrors() {
			return nil, fmt.Errorf("error parsing filter %q in file %s: %w", parsed.Name, filePath, fDiags)
		}
		if err := grid.Merge(&Grid{Filters: []*Filter{f}}); err != nil {
			return nil, err
		}
	}
	for _, parsed := range parsedFile.Links {
		if strings.TrimSpace(parsed.From) == "" || strings.TrimSpace(parsed.To) == "" {
			return nil, fmt.Errorf("link in file %s: from and to must not be empty", filePath)
		}
		grid.Links = append(grid.Links, &Link{
			From:          parsed.From,
			To:            parsed.To,
			FSInformation: NewFSInfo(filePath),
		})
	}
	for _, block := range parsedFile.Locals {
		locals, lDiags := newLocalsFromHCL(block, filePath)
		if lDiags.HasErrors() {
			return nil, fmt.Errorf("error parsing locals in file %s: %w", filePath, lDiags)
		}
		if err := grid.Merge(&Grid{Locals: locals}); err != nil {
			return nil, err
		}
	}
	return grid, nil
}

// LoadGridsRecursively finds and parses all HCL files in a given path into a
// single Grid. gridPath may be a directory or one file.
func LoadGridsRecursively(ctx context.Context, gridPath string) (*Grid, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading grid from path", "path", gridPath)

	files, err := fsutil.FindFilesByExtension(gridPath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find grid files in %s: %w", gridPath, err)
	}

	grid := NewGrid()
	if len(files) == 0 {
		logger.Warn("No .hcl grid files found in path, returning empty grid", "path", gridPath)
		return grid, nil
	}

	parser := hclparse.NewParser()
	for _, file := range files {
		fileGrid, err := newGridFromHCL(file, parser)
		if err != nil {
			return nil, err
		}
		if err := grid.Merge(fileGrid); err != nil {
			return nil, err
		}
		logger.Debug("Loaded grid file", "file", file,
			"filters", len(fileGrid.Filters), "links", len(fileGrid.Links), "locals", len(fileGrid.Locals))
	}

	return grid, nil
}
