package geom2d

import "errors"

// Sentinel errors for the geometry pipeline. Stages wrap these with
// context via fmt.Errorf("...: %w", err) so callers can test with
// errors.Is regardless of where in the pipeline the failure occurred.
var (
	// ErrInvalidInput marks a malformed or empty region passed between
	// pipeline stages.
	ErrInvalidInput = errors.New("geom2d: invalid input geometry")

	// ErrUnrepairable marks a self-union repair attempt that collapsed
	// a region to zero area.
	ErrUnrepairable = errors.New("geom2d: geometry unrepairable")

	// ErrInvalidParameter marks a configuration value outside its
	// documented range.
	ErrInvalidParameter = errors.New("geom2d: invalid parameter")

	// ErrExtrusionFailed marks a 2D-to-3D triangulation that produced
	// no faces.
	ErrExtrusionFailed = errors.New("geom2d: extrusion failed")
)
