package addin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/notebridge/health"
	"github.com/zero-day-ai/notebridge/launch"
)

func TestHealth(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "run_onenote_export.bat")
	require.NoError(t, os.WriteFile(target, []byte("@echo off\r\n"), 0o644))

	f := newFixture(t, func(cfg *Config) {
		cfg.Request = launch.Request{Target: target}
		cfg.LogPath = filepath.Join(dir, "onenote_addin_log.txt")
	})

	status := f.addin.Health(context.Background())
	require.True(t, status.IsHealthy(), status.Message)
	for _, name := range []string{"launch_target", "diagnostics", "contract", "lifecycle"} {
		assert.Contains(t, status.Details, name)
	}
	assert.NotContains(t, status.Details, "desktop_opener")
}

func TestHealth_MissingTarget(t *testing.T) {
	f := newFixture(t, func(cfg *Config) {
		cfg.Request = launch.Request{Target: filepath.Join(t.TempDir(), "missing.bat")}
	})

	status := f.addin.Health(context.Background())
	assert.True(t, status.IsUnhealthy())
	assert.Equal(t, []string{"launch_target"}, status.Details["failed_checks"])
}

func TestHealth_DroppedRecords(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "run_onenote_export.bat")
	require.NoError(t, os.WriteFile(target, []byte("@echo off\r\n"), 0o644))

	f := newFixture(t, func(cfg *Config) {
		cfg.Request = launch.Request{Target: target}
	})
	f.sink.FailWith(os.ErrPermission)
	f.addin.OnStartupComplete(nil)

	status := f.addin.Health(context.Background())
	assert.True(t, status.IsDegraded())
	diagnostics, ok := status.Details["diagnostics"].(health.Status)
	require.True(t, ok)
	assert.Equal(t, "1 diagnostic record(s) dropped", diagnostics.Message)
}
