// Package graph is the filter graph engine: stage descriptors and their
// pads, live instances, the links between them, and the push and pull
// protocols that move frames across links.
//
// # Building
//
// A Stage describes a filter type. Create turns it into an Instance with
// one empty slot per pad. Connect binds an output pad to an input pad,
// storing the new Link in both slots, and immediately asks the source pad
// to negotiate width, height and format. Instance.Init runs the stage's
// own Init and then renegotiates every linked output.
//
// Destroy runs the stage's Uninit and detaches each link from both of its
// endpoints before dropping it.
//
// # Moving frames
//
// Pushing a frame across a link is the sequence
//
//	link.StartFrame(ref)
//	link.DrawSlice(planes, y, h) // zero or more bands
//	link.EndFrame()
//
// Pulling is link.RequestFrame, which calls the source pad and expects it
// to push a frame synchronously before returning.
//
// Each call dispatches to the destination (or, for RequestFrame, source)
// pad's callback. StartFrame, EndFrame and GetVideoBuffer have defaults
// that record, release and allocate the in-flight frame. DrawSlice and
// RequestFrame have none: a pad without them cannot take part in that half
// of the protocol.
//
// # Concurrency
//
// A graph is single-threaded. Every call runs to completion on the
// caller's stack; nothing here takes locks or honours cancellation.
package graph
