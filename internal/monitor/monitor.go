// Package monitor implements the collection and evaluation pipeline: four
// collector adapters feed one snapshot per cycle, which is then run through
// the threshold evaluator and the summary calculator before rendering.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aiopsmon/internal/entities/snapshot"
)

// DefaultProject is the canonical project / namespace stem used when
// environment-specific lookup fails.
const DefaultProject = "aiops"

// collectTimeout bounds one collector invocation so a hung backend cannot
// stall the whole cycle.
const collectTimeout = 10 * time.Second

// Config selects which backends a monitor polls and how.
type Config struct {
	DeploymentType snapshot.DeploymentType
	Environment    string
	Project        string
	Interval       time.Duration
	Continuous     bool
	ThresholdFile  string
}

// Collector is one adapter that queries a single external backend and writes
// normalized records into its own slot of the snapshot. A returned error
// means the backend is unavailable; it never aborts the cycle and never
// represents an unhealthy-but-reachable target.
type Collector interface {
	Name() string
	Collect(ctx context.Context, snap *snapshot.Snapshot) error
}

// Monitor runs monitoring cycles over a fixed set of collectors.
type Monitor struct {
	cfg        Config
	thresholds Thresholds
	collectors []Collector
}

// New builds a monitor for the given config, wiring up the collectors that
// match the requested deployment type. The threshold store is loaded once
// here and is read-only afterwards.
func New(cfg Config) *Monitor {
	if cfg.Project == "" {
		cfg.Project = DefaultProject
	}
	m := &Monitor{
		cfg:        cfg,
		thresholds: LoadThresholds(cfg.ThresholdFile),
	}

	if cfg.DeploymentType == snapshot.DeploymentDockerCompose || cfg.DeploymentType == snapshot.DeploymentAll {
		m.collectors = append(m.collectors, newDockerCollector(cfg.Project, cfg.Environment))
	}
	if cfg.DeploymentType == snapshot.DeploymentKubernetes || cfg.DeploymentType == snapshot.DeploymentAll {
		m.collectors = append(m.collectors, newKubeCollector(cfg.Project, cfg.Environment))
	}
	m.collectors = append(m.collectors,
		newProbeCollector(defaultProbes()),
		newSystemCollector(),
	)
	return m
}

// Thresholds returns the loaded threshold store.
func (m *Monitor) Thresholds() Thresholds {
	return m.thresholds
}

// RunCycle performs one full collection cycle and returns the finished
// snapshot. Collectors run concurrently but write disjoint snapshot slots;
// evaluation starts only after every collector has returned, so the
// evaluator never sees a partially populated snapshot.
func (m *Monitor) RunCycle(ctx context.Context) *snapshot.Snapshot {
	snap := &snapshot.Snapshot{
		Timestamp:      time.Now().UTC(),
		DeploymentType: m.cfg.DeploymentType,
		Environment:    m.cfg.Environment,
		Services:       []snapshot.ServiceRecord{},
		Resources:      []snapshot.WorkloadRecord{},
		HealthChecks:   []snapshot.HealthCheckResult{},
		Alerts:         []snapshot.Alert{},
	}

	var wg sync.WaitGroup
	for _, c := range m.collectors {
		wg.Add(1)
		go func(c Collector) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, collectTimeout)
			defer cancel()
			if err := c.Collect(cctx, snap); err != nil {
				slog.Warn("Backend unavailable, skipping collector", "collector", c.Name(), "err", err)
			}
		}(c)
	}
	wg.Wait()

	snap.Alerts = Evaluate(snap, m.thresholds)
	snap.Summary = Summarize(snap)
	return snap
}
