package openlime

import "errors"

// Sentinel errors. Registration errors are returned synchronously by the
// Subscribe family; projection errors are returned to the caller of the
// projection.
var (
	// ErrInvalidIndex is returned when subscribing to an empty or
	// out-of-range pointer slot.
	ErrInvalidIndex = errors.New("openlime: invalid pointer index")

	// ErrMissingHandlerSet is returned when a listener lacks a handler for a
	// gesture type it registers for.
	ErrMissingHandlerSet = errors.New("openlime: listener is missing required handlers")

	// ErrMissingPriority is returned when a listener is registered without a
	// priority.
	ErrMissingPriority = errors.New("openlime: listener has no priority")

	// ErrDegenerateBasis is returned by look-at math when eye and target
	// coincide or the up vector is parallel to the view direction.
	ErrDegenerateBasis = errors.New("openlime: degenerate look-at basis")

	// ErrEmptyBoundingBox is returned by helpers that need a box with area.
	// Camera.Fit treats an empty box as a no-op instead.
	ErrEmptyBoundingBox = errors.New("openlime: empty bounding box")
)
