package lifecycle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name          string
		from          State
		event         Event
		wantTo        State
		wantViolation bool
	}{
		{"connect from unloaded", Unloaded, EventConnect, Connected, false},
		{"connect while connected", Connected, EventConnect, Connected, true},
		{"disconnect while connected", Connected, EventDisconnect, Unloaded, false},
		{"disconnect while unloaded", Unloaded, EventDisconnect, Unloaded, true},
		{"startup complete while connected", Connected, EventStartupComplete, Connected, false},
		{"begin shutdown while connected", Connected, EventBeginShutdown, Connected, false},
		{"add-ins update while connected", Connected, EventAddInsUpdate, Connected, false},
		{"add-ins update while unloaded", Unloaded, EventAddInsUpdate, Unloaded, true},
		{"startup complete while unloaded", Unloaded, EventStartupComplete, Unloaded, true},
		{"begin shutdown while unloaded", Unloaded, EventBeginShutdown, Unloaded, true},
		{"unknown event", Connected, Event(99), Connected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			if tt.from == Connected {
				m.Apply(EventConnect)
			}

			tr := m.Apply(tt.event)

			assert.Equal(t, tt.event, tr.Event)
			assert.Equal(t, tt.from, tr.From)
			assert.Equal(t, tt.wantTo, tr.To)
			assert.Equal(t, tt.wantViolation, tr.Violation)
			assert.Equal(t, tt.wantTo, m.State())
		})
	}
}

func TestMachineZeroValue(t *testing.T) {
	var m Machine
	assert.Equal(t, Unloaded, m.State())
	assert.True(t, m.Apply(EventConnect).Changed())
	assert.Equal(t, Connected, m.State())
}

func TestMachineCounts(t *testing.T) {
	m := NewMachine()
	m.Apply(EventConnect)
	m.Apply(EventStartupComplete)
	m.Apply(EventDisconnect)
	m.Apply(EventConnect)

	connects, disconnects := m.Counts()
	assert.Equal(t, 2, connects)
	assert.Equal(t, 1, disconnects)
	assert.Equal(t, Connected, m.State())
}

// Sequences that respect Connect < notifications < Disconnect end Unloaded
// exactly when every Connect was matched by a Disconnect.
func TestMachineOrderedSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(20261018))
	notifications := []Event{EventAddInsUpdate, EventStartupComplete, EventBeginShutdown}

	for i := 0; i < 500; i++ {
		m := NewMachine()
		cycles := 1 + rng.Intn(4)
		closeLast := rng.Intn(2) == 0

		for c := 0; c < cycles; c++ {
			tr := m.Apply(EventConnect)
			assert.False(t, tr.Violation)

			for n := rng.Intn(6); n > 0; n-- {
				tr = m.Apply(notifications[rng.Intn(len(notifications))])
				assert.False(t, tr.Violation)
				assert.Equal(t, Connected, tr.To)
			}

			if c < cycles-1 || closeLast {
				tr = m.Apply(EventDisconnect)
				assert.False(t, tr.Violation)
			}
		}

		connects, disconnects := m.Counts()
		assert.Equal(t, connects == disconnects, m.State() == Unloaded,
			"sequence %d: connects=%d disconnects=%d state=%s", i, connects, disconnects, m.State())
	}
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "unloaded", Unloaded.String())
	assert.Equal(t, "connected", Connected.String())
	assert.Equal(t, "unknown", State(9).String())

	assert.Equal(t, "Connect", EventConnect.String())
	assert.Equal(t, "Disconnect", EventDisconnect.String())
	assert.Equal(t, "AddInsUpdate", EventAddInsUpdate.String())
	assert.Equal(t, "StartupComplete", EventStartupComplete.String())
	assert.Equal(t, "BeginShutdown", EventBeginShutdown.String())
	assert.Equal(t, "Unknown", Event(0).String())
}
