package paint

import "errors"

// Resolution failures. Handlers skip the transition silently when one of
// these is returned; the avatar leaving while its events are in flight is
// routine.
var (
	ErrAgentNotFound = errors.New("paint: agent not found")
	ErrMeshNotFound  = errors.New("paint: mesh not found")
	ErrMeshHidden    = errors.New("paint: mesh hidden")
	ErrNoSnapshot    = errors.New("paint: no material snapshot")
)

func isResolution(err error) bool {
	return errors.Is(err, ErrAgentNotFound) ||
		errors.Is(err, ErrMeshNotFound) ||
		errors.Is(err, ErrMeshHidden) ||
		errors.Is(err, ErrNoSnapshot)
}
