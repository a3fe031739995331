package monitor

import "aiopsmon/internal/entities/snapshot"

// Summarize reduces a snapshot's collected records and alerts into the
// aggregate verdict. It is a pure function of the snapshot, so a summary can
// be re-derived from a persisted snapshot without re-polling.
//
// The verdict is critical when any critical-severity alert exists, warning
// when any alert exists or any service or workload is unhealthy, healthy
// otherwise.
func Summarize(snap *snapshot.Snapshot) snapshot.Summary {
	var s snapshot.Summary

	for _, svc := range snap.Services {
		s.TotalServices++
		if svc.Healthy {
			s.HealthyServices++
		} else {
			s.UnhealthyServices++
		}
	}

	for _, w := range snap.Resources {
		s.TotalResources++
		if w.Ready {
			s.ReadyResources++
		} else {
			s.NotReadyResources++
		}
	}

	for _, a := range snap.Alerts {
		s.TotalAlerts++
		if a.Severity() == snapshot.SeverityCritical {
			s.CriticalAlerts++
		} else {
			s.WarningAlerts++
		}
	}

	switch {
	case s.CriticalAlerts > 0:
		s.SystemHealth = snapshot.HealthCritical
	case s.TotalAlerts > 0 || s.UnhealthyServices > 0 || s.NotReadyResources > 0:
		s.SystemHealth = snapshot.HealthWarning
	default:
		s.SystemHealth = snapshot.HealthHealthy
	}
	return s
}
