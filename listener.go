package enact

// A StateListener is notified synchronously about every control state
// transition of an enactable it is registered with.
//
// StateChanged runs before the enactable stores the new state: during
// the callback en.State() still reports from. Listeners run in
// registration order and must not transition en or alter its listener
// set from within the callback.
type StateListener interface {
	StateChanged(en *Enactable, from, to State)
}

// StateListenerFunc adapts a function to the StateListener interface.
//
// Func values are not comparable, so every StateListenerFunc counts as
// a distinct registration and cannot be removed by value. Implement
// StateListener on a pointer type where removal or idempotent
// registration matters.
type StateListenerFunc func(en *Enactable, from, to State)

func (f StateListenerFunc) StateChanged(en *Enactable, from, to State) {
	f(en, from, to)
}
