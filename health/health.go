package health

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// TargetCheck verifies that the launch target exists and is a regular file.
//
// Example:
//
//	status := health.TargetCheck(`C:\Users\me\run_onenote_export.bat`)
//	if status.IsUnhealthy() {
//	    log.Println("activation will fail:", status.Message)
//	}
func TargetCheck(path string) Status {
	if path == "" {
		return Unhealthy("launch target is not configured", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Unhealthy(
				fmt.Sprintf("launch target '%s' does not exist", path),
				map[string]any{"path": path},
			)
		}
		return Unhealthy(
			fmt.Sprintf("failed to stat launch target '%s'", path),
			map[string]any{
				"path":  path,
				"error": err.Error(),
			},
		)
	}

	if !info.Mode().IsRegular() {
		return Unhealthy(
			fmt.Sprintf("launch target '%s' is not a regular file", path),
			map[string]any{
				"path": path,
				"mode": info.Mode().String(),
			},
		)
	}

	return Healthy(fmt.Sprintf("launch target '%s' exists", path))
}

// LogTargetCheck verifies that diagnostic records can be appended to path.
// Diagnostics are best effort, so failures degrade rather than fail.
func LogTargetCheck(path string) Status {
	if path == "" {
		return Degraded("diagnostic log is not configured", nil)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return Degraded(
			fmt.Sprintf("diagnostic log directory '%s' is not accessible", dir),
			map[string]any{
				"path":  path,
				"error": err.Error(),
			},
		)
	}
	if !info.IsDir() {
		return Degraded(
			fmt.Sprintf("'%s' is not a directory", dir),
			map[string]any{"path": path},
		)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		// The log is created on the first record; only the directory matters.
		if err := probeDir(dir); err != nil {
			return Degraded(
				fmt.Sprintf("diagnostic log directory '%s' is not writable", dir),
				map[string]any{
					"path":  path,
					"error": err.Error(),
				},
			)
		}
		return Healthy(fmt.Sprintf("diagnostic log '%s' can be created", path))
	}

	if err := probeAppend(path); err != nil {
		return Degraded(
			fmt.Sprintf("diagnostic log '%s' is not writable", path),
			map[string]any{
				"path":  path,
				"error": err.Error(),
			},
		)
	}
	return Healthy(fmt.Sprintf("diagnostic log '%s' is writable", path))
}

// probeAppend opens an existing file for append without creating it.
func probeAppend(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

// probeDir checks that files can be created in dir. The scratch file is
// removed again.
func probeDir(dir string) error {
	f, err := os.CreateTemp(dir, ".notebridge-health-*")
	if err != nil {
		return err
	}
	name := f.Name()
	closeErr := f.Close()
	if err := os.Remove(name); err != nil {
		return err
	}
	return closeErr
}

// BinaryCheck verifies that a binary exists and is executable in the system
// PATH.
func BinaryCheck(name string) Status {
	if name == "" {
		return Unhealthy("binary name cannot be empty", nil)
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return Unhealthy(
			fmt.Sprintf("binary '%s' not found in PATH", name),
			map[string]any{
				"binary": name,
				"error":  err.Error(),
			},
		)
	}

	return Healthy(fmt.Sprintf("binary '%s' found at %s", name, path))
}

// Combine aggregates named checks into a single status. The worst status
// wins:
//   - If any check is unhealthy, the result is unhealthy
//   - If any check is degraded (and none unhealthy), the result is degraded
//   - If all checks are healthy, the result is healthy
//
// The result's details hold every check's status under its name.
func Combine(checks ...Check) Status {
	if len(checks) == 0 {
		return Healthy("no checks provided")
	}

	details := make(map[string]any, len(checks))
	var unhealthy, degraded []string
	for i, check := range checks {
		name := check.Name
		if name == "" {
			name = fmt.Sprintf("check_%d", i)
		}
		details[name] = check.Status

		switch check.Status.Status {
		case StatusUnhealthy:
			unhealthy = append(unhealthy, name)
		case StatusDegraded:
			degraded = append(degraded, name)
		}
	}

	if len(unhealthy) > 0 {
		details["failed_checks"] = unhealthy
		return Unhealthy(fmt.Sprintf("%d check(s) failed", len(unhealthy)), details)
	}
	if len(degraded) > 0 {
		details["degraded_checks"] = degraded
		return Degraded(fmt.Sprintf("%d check(s) degraded", len(degraded)), details)
	}
	return Status{
		Status:  StatusHealthy,
		Message: fmt.Sprintf("all %d check(s) passed", len(checks)),
		Details: details,
	}
}
