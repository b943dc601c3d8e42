package openlime

import (
	"fmt"
	"io"
	"os"
)

// debugOut receives debug lines. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// debugf prints one "[openlime]" line when debug mode is on.
func (pm *PointerManager) debugf(format string, args ...any) {
	if !pm.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[openlime] "+format+"\n", args...)
}

// warnf prints one "[openlime]" line regardless of debug mode.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(debugOut, "[openlime] "+format+"\n", args...)
}

// SetDebugMode enables logging of recognizer allocation, reaping, timer
// firings and ignored transitions.
func (pm *PointerManager) SetDebugMode(on bool) {
	pm.debug = on
}

// debugCheckCameraLimits warns on stderr when bounds produced inverted zoom
// limits, which SetBoundingBox then repairs.
func debugCheckCameraLimits(minZoom, maxZoom float64) {
	if maxZoom < minZoom {
		_, _ = fmt.Fprintf(debugOut, "[openlime] warning: max zoom %g below min zoom %g, raising max\n",
			maxZoom, minZoom)
	}
}
