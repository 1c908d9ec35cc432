package endpoint

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/specialistvlad/framegrid/internal/graph"
)

// ErrUnknownPad is returned by Resolve when the address names a pad the
// stage does not declare.
var ErrUnknownPad = errors.New("unknown pad")

// Address is the structured form of a link endpoint.
type Address struct {
	Instance string
	// Pad is the pad name, or empty when the pad is given by index or
	// omitted.
	Pad string
	// Index is the pad index; -1 indicates no index is present.
	Index int
}

// HasIndex returns true if the address carries an explicit pad index.
func (a *Address) HasIndex() bool {
	return a.Index != -1
}

// String serializes the Address into its canonical form.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	switch {
	case a.Pad != "":
		return a.Instance + "." + a.Pad
	case a.HasIndex():
		return a.Instance + "[" + strconv.Itoa(a.Index) + "]"
	default:
		return a.Instance
	}
}

// Equal checks two addresses for equality.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return *a == *other
}

// Resolve maps the address onto pads, the pad list of the side it refers
// to. A bare instance name resolves to pad 0.
func (a *Address) Resolve(pads []graph.Pad) (int, error) {
	if a.Pad != "" {
		for i, p := range pads {
			if p.Name == a.Pad {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%s: %w %q", a.Instance, ErrUnknownPad, a.Pad)
	}
	idx := max(a.Index, 0)
	if idx >= len(pads) {
		return -1, fmt.Errorf("%s: %w: index %d of %d", a.Instance, graph.ErrPadIndex, idx, len(pads))
	}
	return idx, nil
}
