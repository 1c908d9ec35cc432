package graph

import "errors"

var (
	// ErrStageNotFound is returned when a stage name is not in the catalog.
	ErrStageNotFound = errors.New("stage not found")
	// ErrPadOccupied is returned when connecting a pad that already has a link.
	ErrPadOccupied = errors.New("pad already linked")
	// ErrPadIndex is returned for pad indices outside the stage's declaration.
	ErrPadIndex = errors.New("pad index out of range")
	// ErrDestroyed is returned when operating on a destroyed instance.
	ErrDestroyed = errors.New("instance destroyed")
	// ErrInitFailed wraps the error returned by a stage's Init callback.
	ErrInitFailed = errors.New("stage initialization failed")
	// ErrNoConfigProps is returned when an output pad cannot negotiate geometry.
	ErrNoConfigProps = errors.New("output pad has no geometry negotiation")
	// ErrFrameInFlight is returned by StartFrame while a frame is in flight.
	ErrFrameInFlight = errors.New("frame already in flight on link")
	// ErrNoFrameInFlight is returned by DrawSlice and EndFrame without a StartFrame.
	ErrNoFrameInFlight = errors.New("no frame in flight on link")
	// ErrNoDrawSlice is returned when the destination pad cannot accept pushed slices.
	ErrNoDrawSlice = errors.New("input pad has no slice handler")
	// ErrNoRequestFrame is returned when the source pad cannot be pulled from.
	ErrNoRequestFrame = errors.New("output pad has no frame request handler")
	// ErrSliceBounds is returned for bands outside the negotiated height.
	ErrSliceBounds = errors.New("slice outside frame")
	// ErrDuplicateInstance is returned when a graph already has an instance of that name.
	ErrDuplicateInstance = errors.New("duplicate instance name")
	// ErrInstanceNotFound is returned when a graph has no instance of that name.
	ErrInstanceNotFound = errors.New("instance not found")
)
