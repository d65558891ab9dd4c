// Package hostinfo describes the process hosting the add-in.
package hostinfo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"
)

// Info identifies the host process and machine.
type Info struct {
	PID       int32     `json:"pid"`
	PPID      int32     `json:"ppid"`
	Name      string    `json:"name"`
	Exe       string    `json:"exe,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
	Hostname  string    `json:"hostname,omitempty"`
	Platform  string    `json:"platform,omitempty"`
}

// Current describes the calling process. An add-in runs inside its host, so
// this is the host application.
func Current(ctx context.Context) (Info, error) {
	return Lookup(ctx, int32(os.Getpid()))
}

// Lookup describes the process with the given pid. Only the process name is
// required; fields the platform cannot report are left empty.
func Lookup(ctx context.Context, pid int32) (Info, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return Info{}, fmt.Errorf("process %d: %w", pid, err)
	}

	info := Info{PID: pid}
	if exe, err := p.ExeWithContext(ctx); err == nil {
		info.Exe = exe
	}
	name, err := p.NameWithContext(ctx)
	if err != nil || name == "" {
		if info.Exe == "" {
			return Info{}, fmt.Errorf("process %d name: %w", pid, err)
		}
		name = filepath.Base(info.Exe)
	}
	info.Name = name

	if ppid, err := p.PpidWithContext(ctx); err == nil {
		info.PPID = ppid
	}
	if ms, err := p.CreateTimeWithContext(ctx); err == nil && ms > 0 {
		info.StartedAt = time.UnixMilli(ms)
	}
	if h, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = h.Hostname
		info.Platform = h.Platform
	}
	return info, nil
}

// Attrs returns the info as key/value pairs for a diagnostic record.
func (i Info) Attrs() []any {
	return []any{"host", i.Name, "pid", i.PID}
}
