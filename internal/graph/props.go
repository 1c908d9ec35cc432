package graph

import "fmt"

// SameAsInput is a ConfigProps callback for filters whose output has the
// geometry of their first input. With the input not linked yet the output
// is left unconfigured; it is negotiated again once the input arrives.
func SameAsInput(link *Link) error {
	in := link.Src.Input(0)
	if in == nil {
		return nil
	}
	link.W, link.H, link.Format = in.W, in.H, in.Format
	return nil
}

// RequestFromInput is a RequestFrame callback that pulls from the
// instance's first input.
func RequestFromInput(link *Link) error {
	in := link.Src.Input(0)
	if in == nil {
		return fmt.Errorf("%s: input 0: %w", link.Src, ErrNoRequestFrame)
	}
	return in.RequestFrame()
}
