package scenario

import "fmt"

// EventKind classifies transcript events.
type EventKind string

const (
	EventSet    EventKind = "set"
	EventUpdate EventKind = "update"
	EventEffect EventKind = "effect"
	EventRead   EventKind = "read"
	EventReject EventKind = "reject"
	EventCheck  EventKind = "check"
)

// Event is one transcript entry.
type Event struct {
	Step   int       `json:"step"`
	Kind   EventKind `json:"kind"`
	Name   string    `json:"name"`
	Value  int64     `json:"value"`
	Detail string    `json:"detail,omitempty"`
}

// String renders the event for terminal output. Effect runs are indented
// under the step that caused them.
func (e Event) String() string {
	switch e.Kind {
	case EventSet:
		return fmt.Sprintf("#%d set %s = %d", e.Step, e.Name, e.Value)
	case EventUpdate:
		return fmt.Sprintf("#%d update %s -> %d", e.Step, e.Name, e.Value)
	case EventEffect:
		return fmt.Sprintf("     effect %s [%s]", e.Name, e.Detail)
	case EventRead:
		return fmt.Sprintf("#%d read %s = %d", e.Step, e.Name, e.Value)
	case EventReject:
		return fmt.Sprintf("#%d rejected %s: %s", e.Step, e.Name, e.Detail)
	case EventCheck:
		return fmt.Sprintf("#%d fired %s %d times", e.Step, e.Name, e.Value)
	default:
		return fmt.Sprintf("#%d %s %s", e.Step, e.Kind, e.Name)
	}
}

// Result is the outcome of a run. On failure it holds everything recorded
// up to the failing step.
type Result struct {
	Name   string         `json:"name"`
	Events []Event        `json:"events"`
	Fired  map[string]int `json:"fired"`

	// Steps is the number of steps that completed.
	Steps int `json:"steps"`
}
