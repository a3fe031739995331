package monitor

import (
	"context"
	"log/slog"
	"time"

	"aiopsmon/internal/entities/snapshot"
	"aiopsmon/internal/render"
)

// RunOnce performs a single cycle, renders it and writes it to outputPath
// (stdout when empty). The finished snapshot is returned so callers can act
// on the verdict.
func (m *Monitor) RunOnce(ctx context.Context, r render.Renderer, outputPath string) (*snapshot.Snapshot, error) {
	snap := m.RunCycle(ctx)
	if err := render.Output(r, snap, outputPath); err != nil {
		return snap, err
	}
	return snap, nil
}

// Watch repeats cycles at the configured interval until ctx is cancelled.
// Cancellation interrupts the sleep, so shutdown is prompt. A failed cycle
// (a render or write error) is logged and the loop continues; every cycle
// builds an independent snapshot.
func (m *Monitor) Watch(ctx context.Context, r render.Renderer, outputPath string) error {
	interval := m.cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Monitoring stopped")
			return nil
		case <-timer.C:
		}

		if _, err := m.RunOnce(ctx, r, outputPath); err != nil {
			slog.Error("Monitoring cycle failed", "err", err)
		}
		timer.Reset(interval)
	}
}
