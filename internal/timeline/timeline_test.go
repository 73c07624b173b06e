package timeline

import (
	"testing"
)

func states(ss []Stage) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.State
	}
	return out
}

func assertStates(t *testing.T, got []Stage, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].State != want[i] {
			t.Fatalf("stage %d (%s): got %q, want %q (all: %v)", i, got[i].Name, got[i].State, want[i], states(got))
		}
	}
}

func TestDeriveMidLifecycle(t *testing.T) {
	assertStates(t, Derive("InTransit"),
		StateDone, StateDone, StateCurrent, StateUpcoming, StateUpcoming)
}

func TestDeriveFirstAndLast(t *testing.T) {
	assertStates(t, Derive("Pending"),
		StateCurrent, StateUpcoming, StateUpcoming, StateUpcoming, StateUpcoming)
	assertStates(t, Derive("Delivered"),
		StateDone, StateDone, StateDone, StateDone, StateCurrent)
}

func TestDeriveSpacedSpelling(t *testing.T) {
	// "In Transit" and "Out For Delivery" circulate alongside the compact
	// forms and must resolve to the same stage.
	assertStates(t, Derive("In Transit"),
		StateDone, StateDone, StateCurrent, StateUpcoming, StateUpcoming)
	assertStates(t, Derive("Out For Delivery"),
		StateDone, StateDone, StateDone, StateCurrent, StateUpcoming)
}

func TestDeriveUnrecognizedStatus(t *testing.T) {
	for _, status := range []string{"", "Cancelled", "Returned", "garbage"} {
		assertStates(t, Derive(status),
			StateUpcoming, StateUpcoming, StateUpcoming, StateUpcoming, StateUpcoming)
	}
}
