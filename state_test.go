package enact_test

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
)

func TestStateString(t *testing.T) {
	f := func(s enact.State, exp string) {
		t.Helper()

		if act := s.String(); act != exp {
			t.Fatalf("expected: %q, got: %q", exp, act)
		}
	}

	f(enact.Waiting, `waiting`)
	f(enact.Ready, `ready`)
	f(enact.Running, `running`)
	f(enact.Paused, `paused`)
	f(enact.Stopped, `stopped`)
	f(enact.Finished, `finished`)
	f(enact.State(42), `state(42)`)
}

func TestParseState(t *testing.T) {
	f := func(exp enact.State) {
		t.Helper()

		act, err := enact.ParseState(exp.String())
		if err != nil {
			t.Fatalf("parse state %q: %v", exp.String(), err)
		}
		if act != exp {
			t.Fatalf("expected: %v, got: %v", exp, act)
		}
	}

	f(enact.Waiting)
	f(enact.Ready)
	f(enact.Running)
	f(enact.Paused)
	f(enact.Stopped)
	f(enact.Finished)

	if _, err := enact.ParseState(`sleeping`); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, err := enact.ParseState(``); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestStateTextRoundTrip(t *testing.T) {
	f := func(exp enact.State) {
		t.Helper()

		b, err := exp.MarshalText()
		if err != nil {
			t.Fatalf("marshal text: %v", err)
		}

		var act enact.State
		if err := act.UnmarshalText(b); err != nil {
			t.Fatalf("unmarshal text: %v", err)
		}
		if act != exp {
			t.Fatalf("expected: %v, got: %v", exp, act)
		}
	}

	f(enact.Running)
	f(enact.Paused)
	f(enact.Finished)
}

func TestStateTerminal(t *testing.T) {
	f := func(s enact.State, exp bool) {
		t.Helper()

		if act := s.Terminal(); act != exp {
			t.Fatalf("%v: expected terminal=%v, got %v", s, exp, act)
		}
	}

	f(enact.Waiting, false)
	f(enact.Ready, false)
	f(enact.Running, false)
	f(enact.Paused, false)
	f(enact.Stopped, true)
	f(enact.Finished, true)
}
