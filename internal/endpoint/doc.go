/*
Package endpoint parses the pad addresses used by link blocks in grid files.

An address names an instance and, optionally, one of its pads:

	src        first pad of src
	split[1]   pad 1 of split
	crop.out   the pad of crop called "out"

Whether the pad is an input or an output depends on which side of the link
the address appears; Resolve is given the matching pad list.
*/
package endpoint
