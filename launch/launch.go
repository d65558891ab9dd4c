// Package launch starts the external exporter when the user activates the
// ribbon button.
//
// Launches are fire-and-forget: the launched process runs independently of
// the add-in and of the host, in the caller's interactive session, and its
// exit status is never observed. Only a failure to start is reported.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/zero-day-ai/notebridge/fault"
)

// Window is the initial window state requested for the launched program.
type Window int

const (
	WindowNormal Window = iota
	WindowHidden
	WindowMinimized
)

func (w Window) String() string {
	switch w {
	case WindowNormal:
		return "normal"
	case WindowHidden:
		return "hidden"
	case WindowMinimized:
		return "minimized"
	default:
		return fmt.Sprintf("Window(%d)", int(w))
	}
}

// Request describes one launch.
type Request struct {
	// Target is the path of the script or executable to start (required).
	Target string

	// Args are passed to the target (optional).
	Args []string

	// WorkDir is the working directory of the launched program (optional).
	// Empty means the directory containing Target.
	WorkDir string

	// Window is the requested initial window state.
	Window Window
}

// Handle identifies a started program.
type Handle struct {
	Target    string
	PID       int
	StartedAt time.Time
}

// Launcher starts programs without waiting for them.
type Launcher interface {
	Launch(ctx context.Context, req Request) (*Handle, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, req Request) (*Handle, error)

// Launch calls f.
func (f LauncherFunc) Launch(ctx context.Context, req Request) (*Handle, error) {
	return f(ctx, req)
}

// Resolve checks that target names an existing regular file the caller may
// access. Failures are activation faults coded TARGET_NOT_FOUND,
// INVALID_TARGET or PERMISSION_DENIED.
func Resolve(target string) (fs.FileInfo, error) {
	if target == "" {
		return nil, fault.Activation("launch.Resolve", fault.CodeInvalidTarget, errors.New("target is empty"))
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, classify("launch.Resolve", target, err)
	}
	if info.IsDir() {
		return nil, fault.Activation("launch.Resolve", fault.CodeInvalidTarget,
			fmt.Errorf("%s is a directory", target))
	}
	if !info.Mode().IsRegular() {
		return nil, fault.Activation("launch.Resolve", fault.CodeInvalidTarget,
			fmt.Errorf("%s is not a regular file", target))
	}
	return info, nil
}

// classify maps a start or stat failure to an activation fault.
func classify(op, target string, err error) error {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return err
	}

	code := fault.CodeExecutionFailed
	switch {
	case isNoAssociation(err):
		code = fault.CodeAssociationFailed
	case errors.Is(err, fs.ErrNotExist) || isNotFound(err):
		code = fault.CodeTargetNotFound
	case errors.Is(err, fs.ErrPermission) || isAccessDenied(err):
		code = fault.CodePermissionDenied
	}
	return fault.Activation(op, code, err).WithContext(map[string]any{"target": target})
}

// ShellLauncher starts targets through the operating system shell: file
// associations on Windows, direct execution or the desktop opener elsewhere.
type ShellLauncher struct {
	// Verb is the shell verb used on Windows. Empty means "open".
	Verb string

	// Opener overrides the desktop opener used for non-executable targets on
	// Unix. Empty means xdg-open, or open on macOS.
	Opener string

	now func() time.Time
}

// NewShellLauncher returns a ShellLauncher with default settings.
func NewShellLauncher() *ShellLauncher {
	return &ShellLauncher{Verb: "open", now: time.Now}
}

// Launch resolves req.Target and starts it. It returns as soon as the program
// has been started; it never waits for it to finish. Two calls start two
// independent programs.
func (l *ShellLauncher) Launch(ctx context.Context, req Request) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fault.Activation("launch", fault.CodeExecutionFailed, err)
	}

	info, err := Resolve(req.Target)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(req.Target); err == nil {
		req.Target = abs
	}

	now := time.Now
	if l.now != nil {
		now = l.now
	}
	handle := &Handle{Target: req.Target, StartedAt: now()}

	pid, err := l.start(req, info)
	if err != nil {
		return nil, classify("launch", req.Target, err)
	}
	handle.PID = pid
	return handle, nil
}
