// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// FSInfo ties a parsed block back to the file it came from, so errors can
// name the file.
package model

// FSInfo stores file system metadata of a parsed block.
type FSInfo struct {
	FilePath string
}

// NewFSInfo creates an FSInfo for filePath.
func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}

func (f *FSInfo) String() string {
	if f == nil {
		return "<unknown>"
	}
	return f.FilePath
}
