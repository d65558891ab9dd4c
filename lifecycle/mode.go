// Package lifecycle implements the add-in lifecycle state machine driven by
// the host's connect, disconnect and notification events.
package lifecycle

import (
	"fmt"
	"strconv"
	"strings"
)

// ConnectMode is the reason the host gives for connecting the add-in.
type ConnectMode int32

const (
	// ConnectAfterStartup: connected after the host finished starting.
	ConnectAfterStartup ConnectMode = 0
	// ConnectStartup: connected during host startup.
	ConnectStartup ConnectMode = 1
	// ConnectExternal: connected by an external caller.
	ConnectExternal ConnectMode = 2
	// ConnectCommandLine: connected from the command line.
	ConnectCommandLine ConnectMode = 3
)

var connectModeNames = map[ConnectMode]string{
	ConnectAfterStartup: "AfterStartup",
	ConnectStartup:      "Startup",
	ConnectExternal:     "External",
	ConnectCommandLine:  "CommandLine",
}

// String returns the mode name, or ConnectMode(n) for values the host
// defines but this module does not know about.
func (m ConnectMode) String() string {
	if name, ok := connectModeNames[m]; ok {
		return name
	}
	return "ConnectMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseConnectMode parses a mode name (case-insensitive) or its number.
func ParseConnectMode(s string) (ConnectMode, error) {
	for mode, name := range connectModeNames {
		if strings.EqualFold(name, s) {
			return mode, nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return ConnectMode(n), nil
	}
	return 0, fmt.Errorf("unknown connect mode %q", s)
}

// DisconnectMode is the reason the host gives for disconnecting the add-in.
type DisconnectMode int32

const (
	// DisconnectHostShutdown: the host is shutting down.
	DisconnectHostShutdown DisconnectMode = 0
	// DisconnectUserClosed: the user disabled or removed the add-in.
	DisconnectUserClosed DisconnectMode = 1
)

var disconnectModeNames = map[DisconnectMode]string{
	DisconnectHostShutdown: "HostShutdown",
	DisconnectUserClosed:   "UserClosed",
}

func (m DisconnectMode) String() string {
	if name, ok := disconnectModeNames[m]; ok {
		return name
	}
	return "DisconnectMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseDisconnectMode parses a mode name (case-insensitive) or its number.
func ParseDisconnectMode(s string) (DisconnectMode, error) {
	for mode, name := range disconnectModeNames {
		if strings.EqualFold(name, s) {
			return mode, nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return DisconnectMode(n), nil
	}
	return 0, fmt.Errorf("unknown disconnect mode %q", s)
}
