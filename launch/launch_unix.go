//go:build !windows

package launch

import (
	"io/fs"
	"os/exec"
	"path/filepath"
	"runtime"
	"syscall"
)

// start runs executable targets directly in their own process group and
// hands other files to the desktop opener. The child is reaped in the background so it
// never lingers as a zombie; its exit status is discarded.
func (l *ShellLauncher) start(req Request, info fs.FileInfo) (int, error) {
	name := req.Target
	args := req.Args
	if info.Mode().Perm()&0o111 == 0 {
		opener, err := l.opener()
		if err != nil {
			return 0, &associationError{target: req.Target, err: err}
		}
		name = opener
		args = append([]string{req.Target}, req.Args...)
	}

	cmd := exec.Command(name, args...)
	cmd.Dir = req.WorkDir
	if cmd.Dir == "" {
		cmd.Dir = filepath.Dir(req.Target)
	}
	// Own process group, same session: signals to the host's group do not
	// reach the child, and it keeps the host's controlling terminal.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return 0, err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return cmd.Process.Pid, nil
}

// OpenerName returns the desktop opener used for non-executable targets.
func (l *ShellLauncher) OpenerName() string {
	if l.Opener != "" {
		return l.Opener
	}
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

func (l *ShellLauncher) opener() (string, error) {
	return exec.LookPath(l.OpenerName())
}

// associationError reports that no program is associated with the target.
type associationError struct {
	target string
	err    error
}

func (e *associationError) Error() string {
	return "no program associated with " + e.target + ": " + e.err.Error()
}

func (e *associationError) Unwrap() error {
	return e.err
}

func isNotFound(err error) bool {
	return false
}

func isAccessDenied(err error) bool {
	return false
}

func isNoAssociation(err error) bool {
	_, ok := err.(*associationError)
	return ok
}
