package monitor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aiopsmon/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOnceWritesReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	m := testMonitor(&stubCollector{name: "docker"})

	snap, err := m.RunOnce(context.Background(), &render.JSONRenderer{}, out)
	require.NoError(t, err)
	require.NotNil(t, snap)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"system_health"`)
}

func TestRunOnceWriteFailure(t *testing.T) {
	m := testMonitor(&stubCollector{name: "docker"})
	_, err := m.RunOnce(context.Background(), &render.JSONRenderer{}, filepath.Join(t.TempDir(), "missing", "report.json"))
	assert.Error(t, err)
}

// Cancellation must interrupt the sleep between cycles rather than waiting
// for the interval to elapse.
func TestWatchCancellation(t *testing.T) {
	m := testMonitor(&stubCollector{name: "docker"})
	m.cfg.Interval = time.Hour
	out := filepath.Join(t.TempDir(), "report.json")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Watch(ctx, &render.JSONRenderer{}, out)
	}()

	// let the first cycle run, then cancel mid-sleep
	require.Eventually(t, func() bool {
		_, err := os.Stat(out)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancellation")
	}
}

// A failing cycle must not terminate the continuous loop.
func TestWatchContinuesAfterCycleFailure(t *testing.T) {
	m := testMonitor(&stubCollector{name: "docker"})
	m.cfg.Interval = 10 * time.Millisecond
	// unwritable output path makes every cycle fail
	badOut := filepath.Join(t.TempDir(), "missing", "report.json")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := m.Watch(ctx, &render.JSONRenderer{}, badOut)
	assert.NoError(t, err, "loop exits cleanly on cancellation despite failed cycles")
}
