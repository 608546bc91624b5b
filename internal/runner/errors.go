package runner

import "errors"

// errQuit signals that the frontend asked to stop the emulation.
var errQuit = errors.New("quit requested")

// IsQuit returns whether the error returned by Step signals a quit request.
func IsQuit(err error) bool {
	return errors.Is(err, errQuit)
}
