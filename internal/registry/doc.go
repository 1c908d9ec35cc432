// Package registry is the stage catalog: the place where stage packages
// publish their descriptors and where the graph builder looks them up by
// name.
//
// Stages are kept sorted by name so lookups are a binary search. There is
// no process-wide registry; callers create one, register the modules they
// want and hand it to whatever builds graphs.
//
// Registration happens at startup, so an invalid descriptor or a
// duplicate name is a programming error and panics.
package registry
