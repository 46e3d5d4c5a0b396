package enact

import "errors"

// ErrNotFound is returned by journal lookups when no record matches.
var ErrNotFound = errors.New("not found")

// ErrEnactmentNotFound is returned by a registry lookup for an unknown
// enactment id.
var ErrEnactmentNotFound = errors.New("enactment not found")

// ErrStopped is the cooperative stop signal. An enactment returns it
// from Play to terminate the run; the enactable transitions to Stopped
// and hands the same error to the caller.
type ErrStopped struct {
	Reason string
}

func (err ErrStopped) Error() string {
	if err.Reason == `` {
		return `stopped`
	}

	return `stopped: ` + err.Reason
}

// Stop returns an ErrStopped carrying reason.
func Stop(reason string) error {
	return ErrStopped{Reason: reason}
}

func IsErrStopped(err error) bool {
	return errors.As(err, &ErrStopped{})
}
