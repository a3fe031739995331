package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"aiopsmon/internal/entities/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSnapshot() *snapshot.Snapshot {
	cpu := 42.5
	mem := 18.0
	return &snapshot.Snapshot{
		Timestamp:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		DeploymentType: snapshot.DeploymentAll,
		Environment:    "staging",
		Services: []snapshot.ServiceRecord{
			{Name: "aiops-api-1", Status: "running", Image: "aiops/api:1.2", Healthy: true, CpuUsage: &cpu, MemUsage: &mem},
			{Name: "aiops-redis-1", Status: "exited", Image: "redis:7", Healthy: false, RestartCount: 5},
		},
		Resources: []snapshot.WorkloadRecord{
			{Kind: snapshot.KindDeployment, Name: "api", Namespace: "aiops-staging", DesiredReplicas: 3, ReadyReplicas: 2},
			{Kind: snapshot.KindPod, Name: "api-1", Namespace: "aiops-staging", Phase: "Running", Ready: true},
			{Kind: snapshot.KindService, Name: "api", Namespace: "aiops-staging", Ready: true, ServiceType: "ClusterIP", ClusterIP: "10.0.0.10"},
		},
		HealthChecks: []snapshot.HealthCheckResult{
			{Service: "api", PortStatus: snapshot.PortOpen, HTTPStatus: snapshot.HTTPHealthy, ResponseTimeMs: 34},
			{Service: "redis", PortStatus: snapshot.PortClosed, CommandStatus: snapshot.CommandFail},
		},
		ResourceUsage: snapshot.ResourceUsage{
			CpuPercent: 37.2,
			Memory:     snapshot.MemoryUsage{Total: 16 << 30, Used: 8 << 30, Free: 8 << 30, Percent: 50},
			Disks:      []snapshot.DiskUsage{{Mount: "/", Total: 100 << 30, Used: 93 << 30, Percent: 93}},
			Network:    []snapshot.NetCounters{{Name: "eth0", BytesSent: 1 << 20, BytesRecv: 2 << 20}},
		},
		Alerts: []snapshot.Alert{
			{Type: snapshot.AlertPortClosed, Service: "redis", Message: "service redis port is not reachable", Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
			{Type: snapshot.AlertHighDisk, Resource: "/", Threshold: 90, Value: 93, Message: "disk / usage 93.0% exceeds 90%", Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		},
		Summary: snapshot.Summary{
			TotalServices: 2, HealthyServices: 1, UnhealthyServices: 1,
			TotalResources: 3, ReadyResources: 2, NotReadyResources: 1,
			TotalAlerts: 2, CriticalAlerts: 1, WarningAlerts: 1,
			SystemHealth: snapshot.HealthCritical,
		},
	}
}

func TestNewRendererSelection(t *testing.T) {
	for format, want := range map[string]Renderer{
		"console": &ConsoleRenderer{},
		"json":    &JSONRenderer{},
		"html":    &HTMLRenderer{},
		"":        &ConsoleRenderer{},
	} {
		r, err := New(format)
		require.NoError(t, err)
		assert.IsType(t, want, r)
	}

	_, err := New("yaml")
	assert.Error(t, err)
}

// Rendering the same snapshot twice must produce identical bytes, for every
// renderer.
func TestRenderIdempotence(t *testing.T) {
	snap := fixtureSnapshot()
	for _, format := range []string{"console", "json", "html"} {
		t.Run(format, func(t *testing.T) {
			r, err := New(format)
			require.NoError(t, err)

			first, err := r.Render(snap)
			require.NoError(t, err)
			second, err := r.Render(snap)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestOutputToFileAndStdout(t *testing.T) {
	snap := fixtureSnapshot()
	path := filepath.Join(t.TempDir(), "report.html")

	require.NoError(t, Output(&HTMLRenderer{}, snap, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")

	err = Output(&HTMLRenderer{}, snap, filepath.Join(t.TempDir(), "no", "such", "dir.html"))
	assert.Error(t, err)
}
