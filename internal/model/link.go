// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Link, one "link" block connecting an output pad to an
// input pad. Endpoints stay strings here and are parsed by the builder.
package model

// Link is the format-agnostic representation of a "link" block.
type Link struct {
	From          string
	To            string
	FSInformation *FSInfo
}

// hclLink represents a single "link" block for initial decoding.
type hclLink struct {
	From string `hcl:"from,attr"`
	To   string `hcl:"to,attr"`
}

func (l *Link) String() string {
	return l.From + " -> " + l.To
}
