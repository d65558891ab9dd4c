package lifecycle

import "sync"

// State is the host-visible lifecycle state of the add-in.
type State int

const (
	// Unloaded: not connected to a host. Initial and final state.
	Unloaded State = iota
	// Connected: the host delivered Connect and has not disconnected yet.
	// UI and activation events are expected in this state.
	Connected
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Event is a lifecycle signal delivered by the host.
type Event int

const (
	EventConnect Event = iota + 1
	EventDisconnect
	EventAddInsUpdate
	EventStartupComplete
	EventBeginShutdown
)

func (e Event) String() string {
	switch e {
	case EventConnect:
		return "Connect"
	case EventDisconnect:
		return "Disconnect"
	case EventAddInsUpdate:
		return "AddInsUpdate"
	case EventStartupComplete:
		return "StartupComplete"
	case EventBeginShutdown:
		return "BeginShutdown"
	default:
		return "Unknown"
	}
}

// Transition is the outcome of applying one event.
type Transition struct {
	Event Event
	From  State
	To    State

	// Violation is set when the host delivered the event in a state where
	// the host contract does not allow it. The transition is still applied
	// as a no-op or idempotent re-entry.
	Violation bool
}

// Changed reports whether the transition moved to a different state.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Machine tracks the lifecycle state. The zero value is an Unloaded machine
// ready for use.
type Machine struct {
	mu          sync.Mutex
	state       State
	connects    int
	disconnects int
}

// NewMachine returns a machine in the Unloaded state.
func NewMachine() *Machine {
	return &Machine{}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Counts returns how many Connect and Disconnect events were applied.
func (m *Machine) Counts() (connects, disconnects int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connects, m.disconnects
}

// Apply applies e and returns the resulting transition. Apply is total: every
// (state, event) pair has a defined outcome and nothing is ever rejected.
func (m *Machine) Apply(e Event) Transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Transition{Event: e, From: m.state, To: m.state}

	switch e {
	case EventConnect:
		m.connects++
		if m.state == Connected {
			t.Violation = true
		}
		t.To = Connected
	case EventDisconnect:
		m.disconnects++
		if m.state == Unloaded {
			t.Violation = true
		}
		t.To = Unloaded
	case EventAddInsUpdate, EventStartupComplete, EventBeginShutdown:
		if m.state == Unloaded {
			t.Violation = true
		}
	default:
		t.Violation = true
	}

	m.state = t.To
	return t
}
