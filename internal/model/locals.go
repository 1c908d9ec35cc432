// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file handles "locals" blocks. Every attribute of every locals block
// becomes a Local; names are shared across all files of a grid.
package model

import "github.com/hashicorp/hcl/v2"

// Local is one named expression from a "locals" block.
type Local struct {
	Name          string
	Expr          hcl.Expression
	FSInformation *FSInfo
}

// hclLocalsBlock is a struct to allow the parser to recognize "locals" blocks.
type hclLocalsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// newLocalsFromHCL returns the attributes of a locals block sorted by name.
func newLocalsFromHCL(block *hclLocalsBlock, filePath string) ([]*Local, hcl.Diagnostics) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	locals := make([]*Local, 0, len(attrs))
	for _, attr := range attrs {
		locals = append(locals, &Local{
			Name:          attr.Name,
			Expr:          attr.Expr,
			FSInformation: NewFSInfo(filePath),
		})
	}
	sortLocals(locals)
	return locals, diags
}
