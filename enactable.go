package enact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
)

const (
	// RunAnnotation carries the id of the current play run.
	RunAnnotation = `enact.run`
	// StopReasonAnnotation carries the reason of the last stop signal.
	StopReasonAnnotation = `enact.stop.reason`
)

// An Enactable wires an Enactment into the control state contract: it
// tracks the current State, performs the lifecycle transitions and
// notifies registered listeners about each of them.
//
// Init, Play, Pause and SetState transition regardless of the prior
// state; sequencing them according to the lifecycle protocol is the
// caller's job.
type Enactable struct {
	id        EnactableID
	enactment Enactment
	l         *slog.Logger

	state atomic.Uint32

	// mu serializes transitions and guards the listener list; held
	// while listeners are notified.
	mu        sync.Mutex
	listeners []StateListener

	annotsMu    sync.Mutex
	annotations map[string]string
}

type Option func(*Enactable)

func WithID(id EnactableID) Option {
	return func(en *Enactable) {
		en.id = id
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(en *Enactable) {
		en.l = l
	}
}

func WithStateListeners(ls ...StateListener) Option {
	return func(en *Enactable) {
		for _, l := range ls {
			en.AddStateListener(l)
		}
	}
}

func WithAnnotation(name, value string) Option {
	return func(en *Enactable) {
		en.SetAnnotation(name, value)
	}
}

// New returns an enactable in state Waiting driven by enactment. A
// generated ULID is used when no id is given.
func New(enactment Enactment, opts ...Option) *Enactable {
	en := &Enactable{
		enactment: enactment,

		l: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{})),
	}

	for _, opt := range opts {
		opt(en)
	}

	if en.id == `` {
		en.id = EnactableID(ulid.Make().String())
	}

	return en
}

func (en *Enactable) ID() EnactableID {
	return en.id
}

// State returns the current control state. It never blocks; called
// from a listener callback it still reports the state being left.
func (en *Enactable) State() State {
	return State(en.state.Load())
}

// Init hands the input data to the enactment and transitions to Ready,
// whatever the prior state was. Calling it on a finished or stopped
// enactable resets it for another run.
//
// If the enactment's Init fails the error is returned and no
// transition happens.
func (en *Enactable) Init(input Document) error {
	if err := en.enactment.Init(input); err != nil {
		return fmt.Errorf("%T: init: %w", en.enactment, err)
	}

	en.mu.Lock()
	from := en.setState(Ready)
	en.mu.Unlock()

	logTransition(en.l, `init`, en, from, Ready)
	return nil
}

// Play transitions to Running, performs the enactment and transitions
// to Finished, returning the output data.
//
// A run terminated by the enactment with an ErrStopped transitions to
// Stopped, records the reason under StopReasonAnnotation and returns
// the same error. Any other enactment error is returned as is without
// a transition: the enactable stays Running.
func (en *Enactable) Play(ctx context.Context) (Document, error) {
	runID := ulid.Make().String()
	en.SetAnnotation(RunAnnotation, runID)

	en.mu.Lock()
	from := en.setState(Running)
	en.mu.Unlock()

	logTransition(en.l, `play`, en, from, Running, `run`, runID)

	output, err := en.enactment.Play(ctx)
	if err != nil {
		stopErr := &ErrStopped{}
		if !errors.As(err, stopErr) {
			return nil, err
		}

		en.SetAnnotation(StopReasonAnnotation, stopErr.Reason)

		en.mu.Lock()
		from = en.setState(Stopped)
		en.mu.Unlock()

		logTransition(en.l, `stop`, en, from, Stopped, `run`, runID, `reason`, stopErr.Reason)
		return nil, err
	}

	en.mu.Lock()
	from = en.setState(Finished)
	en.mu.Unlock()

	logTransition(en.l, `finish`, en, from, Finished, `run`, runID)
	return output, nil
}

// Pause tells the enactment to halt its in flight Play work and
// transitions to Paused. A later Play resumes from the progress the
// enactment preserved.
//
// If the enactment's Pause fails the error is returned and no
// transition happens.
func (en *Enactable) Pause() error {
	if err := en.enactment.Pause(); err != nil {
		return fmt.Errorf("%T: pause: %w", en.enactment, err)
	}

	en.mu.Lock()
	from := en.setState(Paused)
	en.mu.Unlock()

	logTransition(en.l, `pause`, en, from, Paused)
	return nil
}

// SetState performs a raw transition to next without touching the
// enactment. Listeners observe it like any lifecycle transition.
func (en *Enactable) SetState(next State) {
	en.mu.Lock()
	from := en.setState(next)
	en.mu.Unlock()

	logTransition(en.l, `set state`, en, from, next)
}

// setState notifies listeners first, then stores the new state.
// Callers must hold mu.
func (en *Enactable) setState(next State) State {
	from := State(en.state.Load())
	for _, l := range en.listeners {
		l.StateChanged(en, from, next)
	}
	en.state.Store(uint32(next))

	return from
}

// AddStateListener registers l for transition notifications, keeping
// registration order. Adding a listener value that compares equal to a
// registered one is a no-op; values of uncomparable types always count
// as new registrations.
func (en *Enactable) AddStateListener(l StateListener) {
	en.mu.Lock()
	defer en.mu.Unlock()

	for _, cur := range en.listeners {
		if sameListener(cur, l) {
			return
		}
	}

	en.listeners = append(en.listeners, l)
}

// RemoveStateListener removes the first registered listener comparing
// equal to l. Removing an unknown listener is a no-op.
func (en *Enactable) RemoveStateListener(l StateListener) {
	en.mu.Lock()
	defer en.mu.Unlock()

	for i, cur := range en.listeners {
		if sameListener(cur, l) {
			en.listeners = append(en.listeners[:i], en.listeners[i+1:]...)
			return
		}
	}
}

// StateListeners returns the registered listeners in notification
// order.
func (en *Enactable) StateListeners() []StateListener {
	en.mu.Lock()
	defer en.mu.Unlock()

	return append([]StateListener(nil), en.listeners...)
}

func (en *Enactable) SetAnnotation(name, value string) {
	en.annotsMu.Lock()
	defer en.annotsMu.Unlock()

	if en.annotations == nil {
		en.annotations = make(map[string]string)
	}
	en.annotations[name] = value
}

func (en *Enactable) Annotations() map[string]string {
	en.annotsMu.Lock()
	defer en.annotsMu.Unlock()

	if en.annotations == nil {
		return nil
	}

	annots := make(map[string]string, len(en.annotations))
	for k, v := range en.annotations {
		annots[k] = v
	}

	return annots
}

// Snapshot returns a point in time view of the enactable. Safe to call
// from a listener callback; the state reported is the one being left.
func (en *Enactable) Snapshot() Snapshot {
	return Snapshot{
		ID:          en.id,
		State:       en.State(),
		Annotations: en.Annotations(),
	}
}

func sameListener(a, b StateListener) bool {
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}

	return a == b
}
