// server/internal/timeline/timeline.go
package timeline

import (
	"strings"
)

// Stage states.
const (
	StateDone     = "done"
	StateCurrent  = "current"
	StateUpcoming = "upcoming"
)

// Stage is one entry of the shipment lifecycle timeline.
type Stage struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// stages is the fixed ordered list of main-line lifecycle stages. Cancelled
// and Returned are side-branches and never appear on the timeline.
var stages = []string{"Pending", "Processing", "InTransit", "OutForDelivery", "Delivered"}

// Derive labels each stage by its position relative to the current status:
// stages before it are done, the matching one is current, the rest upcoming.
// The derivation is purely positional, no timestamps involved. An
// unrecognized status matches no stage, so every stage comes back upcoming.
//
// Status strings are recognized in both the compact ("InTransit") and spaced
// ("In Transit") spellings; both forms are in circulation and neither is
// silently rewritten.
func Derive(status string) []Stage {
	current := -1
	normalized := strings.ReplaceAll(status, " ", "")
	for i, s := range stages {
		if s == normalized {
			current = i
			break
		}
	}

	out := make([]Stage, len(stages))
	for i, s := range stages {
		state := StateUpcoming
		switch {
		case current >= 0 && i < current:
			state = StateDone
		case i == current:
			state = StateCurrent
		}
		out[i] = Stage{Name: s, State: state}
	}
	return out
}
