//go:build windows

package launch

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

func showCommand(w Window) int32 {
	switch w {
	case WindowHidden:
		return windows.SW_HIDE
	case WindowMinimized:
		return windows.SW_SHOWMINIMIZED
	default:
		return windows.SW_SHOWNORMAL
	}
}

// OpenerName returns "": ShellExecute resolves file associations itself.
func (l *ShellLauncher) OpenerName() string {
	return ""
}

// start hands the target to ShellExecute, which resolves the file
// association (cmd.exe for .bat) and starts it in the interactive session of
// the caller. ShellExecute does not report a process id.
func (l *ShellLauncher) start(req Request, _ fs.FileInfo) (int, error) {
	verb := l.Verb
	if verb == "" {
		verb = "open"
	}
	workDir := req.WorkDir
	if workDir == "" {
		workDir = filepath.Dir(req.Target)
	}

	verbPtr, err := windows.UTF16PtrFromString(verb)
	if err != nil {
		return 0, err
	}
	filePtr, err := windows.UTF16PtrFromString(req.Target)
	if err != nil {
		return 0, err
	}
	dirPtr, err := windows.UTF16PtrFromString(workDir)
	if err != nil {
		return 0, err
	}
	var argsPtr *uint16
	if len(req.Args) > 0 {
		quoted := make([]string, len(req.Args))
		for i, a := range req.Args {
			quoted[i] = windows.EscapeArg(a)
		}
		argsPtr, err = windows.UTF16PtrFromString(strings.Join(quoted, " "))
		if err != nil {
			return 0, err
		}
	}

	if err := windows.ShellExecute(0, verbPtr, filePtr, argsPtr, dirPtr, showCommand(req.Window)); err != nil {
		return 0, err
	}
	return 0, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, windows.ERROR_FILE_NOT_FOUND) || errors.Is(err, windows.ERROR_PATH_NOT_FOUND)
}

func isAccessDenied(err error) bool {
	return errors.Is(err, windows.ERROR_ACCESS_DENIED)
}

func isNoAssociation(err error) bool {
	return errors.Is(err, windows.ERROR_NO_ASSOCIATION)
}
