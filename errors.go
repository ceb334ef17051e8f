package marquee

import "errors"

// Sentinel errors for the scroll pipeline.
var (
	// ErrNilCollaborator is returned by New when the layout, viewport or
	// mesh sink is nil.
	ErrNilCollaborator = errors.New("marquee: nil layout, viewport or mesh sink")

	// ErrNotPrepared is returned by Schedule and Apply before the first
	// successful Prepare.
	ErrNotPrepared = errors.New("marquee: pipeline not prepared")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("marquee: pipeline is closed")
)
