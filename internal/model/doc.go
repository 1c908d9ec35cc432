// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model is the in-memory form of framegrid grid files. A grid
// declares filter instances, the links between their pads and shared
// locals:
//
//	locals {
//	  w = 320
//	}
//
//	filter "testsrc" "src" {
//	  arguments {
//	    width = local.w
//	  }
//	}
//
//	filter "rawsink" "out" {}
//
//	link {
//	  from = "src"
//	  to   = "out"
//	}
//
// Arguments are kept as a raw hcl.Body. Only the stage that receives them
// knows their shape, so decoding happens when the graph is built, under the
// evaluation context returned by Grid.EvalContext.
package model
