package monitor

import (
	"context"
	"errors"
	"testing"

	"aiopsmon/internal/entities/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCollector writes canned records into one snapshot slot.
type stubCollector struct {
	name    string
	err     error
	collect func(snap *snapshot.Snapshot)
}

func (s *stubCollector) Name() string { return s.name }

func (s *stubCollector) Collect(ctx context.Context, snap *snapshot.Snapshot) error {
	if s.err != nil {
		return s.err
	}
	if s.collect != nil {
		s.collect(snap)
	}
	return nil
}

func testMonitor(collectors ...Collector) *Monitor {
	return &Monitor{
		cfg: Config{
			DeploymentType: snapshot.DeploymentAll,
			Environment:    "development",
			Project:        "aiops",
		},
		thresholds: DefaultThresholds(),
		collectors: collectors,
	}
}

// One unavailable backend must not affect the records of the others or the
// service counts in the summary.
func TestRunCycleCollectorIsolation(t *testing.T) {
	containers := &stubCollector{name: "docker", collect: func(snap *snapshot.Snapshot) {
		snap.Services = []snapshot.ServiceRecord{
			{Name: "api", Status: "running", Healthy: true},
			{Name: "redis", Status: "running", Healthy: true},
		}
	}}
	orchestrator := &stubCollector{name: "kubernetes", err: errors.New("connection refused")}

	snap := testMonitor(containers, orchestrator).RunCycle(context.Background())

	require.Len(t, snap.Services, 2)
	assert.Empty(t, snap.Resources)
	assert.Equal(t, 2, snap.Summary.TotalServices)
	assert.Equal(t, 2, snap.Summary.HealthyServices)
	assert.Equal(t, snapshot.HealthHealthy, snap.Summary.SystemHealth)
}

func TestRunCycleEvaluatesAfterCollection(t *testing.T) {
	containers := &stubCollector{name: "docker", collect: func(snap *snapshot.Snapshot) {
		cpu := 95.0
		snap.Services = []snapshot.ServiceRecord{
			{Name: "api", Status: "running", Healthy: true, CpuUsage: &cpu},
		}
	}}

	snap := testMonitor(containers).RunCycle(context.Background())

	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, snapshot.AlertHighCPU, snap.Alerts[0].Type)
	assert.Equal(t, 1, snap.Summary.TotalAlerts)
	assert.Equal(t, snapshot.HealthWarning, snap.Summary.SystemHealth)
}

// Each cycle owns an independent snapshot: consecutive runs never alias.
func TestRunCycleIndependentSnapshots(t *testing.T) {
	calls := 0
	counter := &stubCollector{name: "docker", collect: func(snap *snapshot.Snapshot) {
		calls++
		if calls == 1 {
			snap.Services = []snapshot.ServiceRecord{{Name: "api", Status: "running", Healthy: true}}
		}
	}}

	m := testMonitor(counter)
	first := m.RunCycle(context.Background())
	second := m.RunCycle(context.Background())

	assert.NotSame(t, first, second)
	assert.Len(t, first.Services, 1)
	assert.Empty(t, second.Services)
}

func TestNewWiresCollectorsByDeploymentType(t *testing.T) {
	tests := []struct {
		dt   snapshot.DeploymentType
		want []string
	}{
		{snapshot.DeploymentDockerCompose, []string{"docker", "probes", "system"}},
		{snapshot.DeploymentKubernetes, []string{"kubernetes", "probes", "system"}},
		{snapshot.DeploymentAll, []string{"docker", "kubernetes", "probes", "system"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.dt), func(t *testing.T) {
			m := New(Config{DeploymentType: tt.dt, Environment: "development"})
			var names []string
			for _, c := range m.collectors {
				names = append(names, c.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
