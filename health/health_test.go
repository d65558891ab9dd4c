package health

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTargetCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "run_onenote_export.bat")
	if err := os.WriteFile(file, []byte("@echo off"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		path          string
		expectHealthy bool
	}{
		{name: "existing file", path: file, expectHealthy: true},
		{name: "missing file", path: filepath.Join(dir, "missing.bat")},
		{name: "directory", path: dir},
		{name: "empty path", path: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := TargetCheck(tt.path)
			if tt.expectHealthy && !status.IsHealthy() {
				t.Errorf("expected healthy status, got %s: %s", status.Status, status.Message)
			}
			if !tt.expectHealthy && !status.IsUnhealthy() {
				t.Errorf("expected unhealthy status, got %s: %s", status.Status, status.Message)
			}
			if status.Message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}

func TestLogTargetCheck(t *testing.T) {
	dir := t.TempDir()

	status := LogTargetCheck(filepath.Join(dir, "onenote_addin_log.txt"))
	if !status.IsHealthy() {
		t.Errorf("expected healthy status, got %s: %s", status.Status, status.Message)
	}

	status = LogTargetCheck(filepath.Join(dir, "missing", "log.txt"))
	if !status.IsDegraded() {
		t.Errorf("expected degraded status, got %s: %s", status.Status, status.Message)
	}

	status = LogTargetCheck("")
	if !status.IsDegraded() {
		t.Errorf("expected degraded status, got %s", status.Status)
	}
}

func TestLogTargetCheck_LeavesNoTrace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "onenote_addin_log.txt")

	status := LogTargetCheck(path)
	if !status.IsHealthy() {
		t.Fatalf("expected healthy status, got %s: %s", status.Status, status.Message)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected an untouched directory, found %d entries", len(entries))
	}
}

func TestLogTargetCheck_ExistingLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onenote_addin_log.txt")
	if err := os.WriteFile(path, []byte("2024-01-02 03:04:05  OnConnection\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	status := LogTargetCheck(path)
	if !status.IsHealthy() {
		t.Fatalf("expected healthy status, got %s: %s", status.Status, status.Message)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "2024-01-02 03:04:05  OnConnection\n" {
		t.Errorf("log content changed: %q", data)
	}
}

func TestBinaryCheck(t *testing.T) {
	if status := BinaryCheck("sh"); !status.IsHealthy() {
		t.Errorf("expected healthy status for sh, got %s: %s", status.Status, status.Message)
	}
	if status := BinaryCheck("this-binary-definitely-does-not-exist-12345"); !status.IsUnhealthy() {
		t.Errorf("expected unhealthy status, got %s", status.Status)
	}
	if status := BinaryCheck(""); !status.IsUnhealthy() {
		t.Errorf("expected unhealthy status, got %s", status.Status)
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name   string
		checks []Check
		want   string
	}{
		{name: "no checks", want: StatusHealthy},
		{
			name:   "all healthy",
			checks: []Check{Named("a", Healthy("ok")), Named("b", Healthy("ok"))},
			want:   StatusHealthy,
		},
		{
			name:   "degraded wins over healthy",
			checks: []Check{Named("a", Healthy("ok")), Named("b", Degraded("meh", nil))},
			want:   StatusDegraded,
		},
		{
			name:   "unhealthy wins",
			checks: []Check{Named("a", Degraded("meh", nil)), Named("b", Unhealthy("bad", nil))},
			want:   StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.checks...)
			if got.Status != tt.want {
				t.Errorf("expected %s, got %s: %s", tt.want, got.Status, got.Message)
			}
			for _, c := range tt.checks {
				if _, ok := got.Details[c.Name]; !ok {
					t.Errorf("expected details for %s", c.Name)
				}
			}
		})
	}

	got := Combine(Named("", Unhealthy("bad", nil)))
	failed, ok := got.Details["failed_checks"].([]string)
	if !ok || len(failed) != 1 || failed[0] != "check_0" {
		t.Errorf("unexpected failed checks: %v", got.Details["failed_checks"])
	}
}
