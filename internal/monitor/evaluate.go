package monitor

import (
	"fmt"
	"time"

	"aiopsmon/internal/entities/snapshot"
)

// maxRestarts is the restart count above which a container is flagged.
const maxRestarts = 3

// Evaluate derives the snapshot's alerts from its collected records and the
// threshold store. It is a pure function: the same snapshot and thresholds
// always produce the same alerts. Metric comparisons are strictly
// greater-than, so a value equal to its threshold does not alert.
func Evaluate(snap *snapshot.Snapshot, th Thresholds) []snapshot.Alert {
	e := evaluator{ts: snap.Timestamp, th: th, alerts: []snapshot.Alert{}}

	for _, svc := range snap.Services {
		e.evalService(svc)
	}
	for _, w := range snap.Resources {
		e.evalWorkload(w)
	}
	for _, hc := range snap.HealthChecks {
		e.evalHealthCheck(hc)
	}
	e.evalHostUsage(snap.ResourceUsage)

	return e.alerts
}

type evaluator struct {
	ts     time.Time
	th     Thresholds
	alerts []snapshot.Alert
}

// exceeds emits one alert when value is strictly above the threshold.
func (e *evaluator) exceeds(value, threshold float64, a snapshot.Alert) {
	if value <= threshold {
		return
	}
	a.Value = value
	a.Threshold = threshold
	a.Timestamp = e.ts
	e.alerts = append(e.alerts, a)
}

func (e *evaluator) add(a snapshot.Alert) {
	a.Timestamp = e.ts
	e.alerts = append(e.alerts, a)
}

func (e *evaluator) evalService(svc snapshot.ServiceRecord) {
	if svc.CpuUsage != nil {
		e.exceeds(*svc.CpuUsage, e.th.CpuUsage, snapshot.Alert{
			Type:    snapshot.AlertHighCPU,
			Service: svc.Name,
			Message: fmt.Sprintf("container %s CPU usage %.1f%% exceeds %.0f%%", svc.Name, *svc.CpuUsage, e.th.CpuUsage),
		})
	}
	if svc.MemUsage != nil {
		e.exceeds(*svc.MemUsage, e.th.MemoryUsage, snapshot.Alert{
			Type:    snapshot.AlertHighMemory,
			Service: svc.Name,
			Message: fmt.Sprintf("container %s memory usage %.1f%% exceeds %.0f%%", svc.Name, *svc.MemUsage, e.th.MemoryUsage),
		})
	}
	e.exceeds(float64(svc.RestartCount), maxRestarts, snapshot.Alert{
		Type:    snapshot.AlertHighRestarts,
		Service: svc.Name,
		Message: fmt.Sprintf("container %s restarted %d times", svc.Name, svc.RestartCount),
	})
	if !svc.Healthy {
		e.add(snapshot.Alert{
			Type:    snapshot.AlertContainerUnhealthy,
			Service: svc.Name,
			Message: fmt.Sprintf("container %s is not healthy (status: %s)", svc.Name, svc.Status),
		})
	}
}

func (e *evaluator) evalWorkload(w snapshot.WorkloadRecord) {
	if w.Ready {
		return
	}
	switch w.Kind {
	case snapshot.KindDeployment:
		e.add(snapshot.Alert{
			Type:     snapshot.AlertDeploymentNotReady,
			Resource: w.Name,
			Message:  fmt.Sprintf("deployment %s/%s has %d/%d replicas ready", w.Namespace, w.Name, w.ReadyReplicas, w.DesiredReplicas),
		})
	case snapshot.KindStatefulSet:
		e.add(snapshot.Alert{
			Type:     snapshot.AlertStatefulSetNotReady,
			Resource: w.Name,
			Message:  fmt.Sprintf("statefulset %s/%s has %d/%d replicas ready", w.Namespace, w.Name, w.ReadyReplicas, w.DesiredReplicas),
		})
	case snapshot.KindPod:
		e.add(snapshot.Alert{
			Type:     snapshot.AlertPodNotReady,
			Resource: w.Name,
			Message:  fmt.Sprintf("pod %s/%s is %s and not ready", w.Namespace, w.Name, w.Phase),
		})
	}
}

func (e *evaluator) evalHealthCheck(hc snapshot.HealthCheckResult) {
	if hc.PortStatus == snapshot.PortClosed {
		e.add(snapshot.Alert{
			Type:    snapshot.AlertPortClosed,
			Service: hc.Service,
			Message: fmt.Sprintf("service %s port is not reachable", hc.Service),
		})
	}
	if hc.HTTPStatus == snapshot.HTTPDown {
		e.add(snapshot.Alert{
			Type:    snapshot.AlertHTTPUnhealthy,
			Service: hc.Service,
			Message: fmt.Sprintf("service %s health endpoint is unhealthy", hc.Service),
		})
	}
	if hc.CommandStatus == snapshot.CommandFail {
		e.add(snapshot.Alert{
			Type:    snapshot.AlertCommandFailed,
			Service: hc.Service,
			Message: fmt.Sprintf("service %s health command failed", hc.Service),
		})
	}
	if hc.HTTPStatus == snapshot.HTTPHealthy {
		e.exceeds(hc.ResponseTimeMs, e.th.ResponseTime, snapshot.Alert{
			Type:    snapshot.AlertSlowResponse,
			Service: hc.Service,
			Message: fmt.Sprintf("service %s responded in %.0fms", hc.Service, hc.ResponseTimeMs),
		})
	}
}

func (e *evaluator) evalHostUsage(usage snapshot.ResourceUsage) {
	e.exceeds(usage.CpuPercent, e.th.CpuUsage, snapshot.Alert{
		Type:     snapshot.AlertHighCPU,
		Resource: "host",
		Message:  fmt.Sprintf("host CPU usage %.1f%% exceeds %.0f%%", usage.CpuPercent, e.th.CpuUsage),
	})
	e.exceeds(usage.Memory.Percent, e.th.MemoryUsage, snapshot.Alert{
		Type:     snapshot.AlertHighMemory,
		Resource: "host",
		Message:  fmt.Sprintf("host memory usage %.1f%% exceeds %.0f%%", usage.Memory.Percent, e.th.MemoryUsage),
	})
	for _, d := range usage.Disks {
		e.exceeds(d.Percent, e.th.DiskUsage, snapshot.Alert{
			Type:     snapshot.AlertHighDisk,
			Resource: d.Mount,
			Message:  fmt.Sprintf("disk %s usage %.1f%% exceeds %.0f%%", d.Mount, d.Percent, e.th.DiskUsage),
		})
	}
}
