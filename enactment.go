package enact

import "context"

// EnactmentID identifies a kind of enactment in a registry.
type EnactmentID string

// Enactment is the replaceable behavior behind an enactable.
//
// Init consumes the input data and prepares the enactment for a run; it
// may be called again later to reset for another run. Play performs the
// enactment until it finishes, is stopped or fails; implementations
// should honor ctx cancellation. Pause halts in flight Play work while
// preserving internal progress so a later Play resumes.
type Enactment interface {
	Init(input Document) error
	Play(ctx context.Context) (Document, error)
	Pause() error
}

// EnactmentFuncs adapts plain functions to the Enactment interface.
// A nil func is a no-op; a nil PlayFunc returns an empty Document.
type EnactmentFuncs struct {
	InitFunc  func(input Document) error
	PlayFunc  func(ctx context.Context) (Document, error)
	PauseFunc func() error
}

func (f EnactmentFuncs) Init(input Document) error {
	if f.InitFunc == nil {
		return nil
	}

	return f.InitFunc(input)
}

func (f EnactmentFuncs) Play(ctx context.Context) (Document, error) {
	if f.PlayFunc == nil {
		return Document{}, nil
	}

	return f.PlayFunc(ctx)
}

func (f EnactmentFuncs) Pause() error {
	if f.PauseFunc == nil {
		return nil
	}

	return f.PauseFunc()
}
