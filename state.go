package enact

import "fmt"

// EnactableID identifies an enactable within a workflow application.
type EnactableID string

// State is the control state of an enactable.
//
// The zero value is Waiting.
type State uint8

const (
	// Waiting means the input data has not been provided yet.
	Waiting State = iota
	// Ready means the input data is set and the enactable can be played.
	Ready
	// Running means the enactment is in progress.
	Running
	// Paused means the enactment is suspended and can be played again.
	Paused
	// Stopped means the enactment was terminated by a stop signal.
	Stopped
	// Finished means the enactment completed and produced its output.
	Finished
)

func (s State) String() string {
	switch s {
	case Waiting:
		return `waiting`
	case Ready:
		return `ready`
	case Running:
		return `running`
	case Paused:
		return `paused`
	case Stopped:
		return `stopped`
	case Finished:
		return `finished`
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Terminal reports whether no further enactment progress is possible.
func (s State) Terminal() bool {
	return s == Stopped || s == Finished
}

// ParseState returns the state named by s. It accepts exactly the
// values State.String produces.
func ParseState(s string) (State, error) {
	switch s {
	case `waiting`:
		return Waiting, nil
	case `ready`:
		return Ready, nil
	case `running`:
		return Running, nil
	case `paused`:
		return Paused, nil
	case `stopped`:
		return Stopped, nil
	case `finished`:
		return Finished, nil
	default:
		return Waiting, fmt.Errorf("unknown state %q", s)
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	parsed, err := ParseState(string(b))
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// Snapshot is a point in time view of an enactable.
type Snapshot struct {
	ID          EnactableID       `json:"id"`
	State       State             `json:"state"`
	Annotations map[string]string `json:"annotations"`
}

func (s *Snapshot) SetAnnotation(name, value string) {
	if s.Annotations == nil {
		s.Annotations = make(map[string]string)
	}
	s.Annotations[name] = value
}

func (s *Snapshot) CopyTo(to *Snapshot) *Snapshot {
	to.ID = s.ID
	to.State = s.State
	for k, v := range s.Annotations {
		to.SetAnnotation(k, v)
	}

	return to
}
