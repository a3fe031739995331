package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"aiopsmon/internal/entities/snapshot"

	"github.com/fatih/color"
)

var (
	healthyColor  = color.New(color.FgGreen).SprintFunc()
	warningColor  = color.New(color.FgYellow).SprintFunc()
	criticalColor = color.New(color.FgRed, color.Bold).SprintFunc()
	headerColor   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// ConsoleRenderer produces the human-readable report: a summary block
// followed by the collected records grouped by kind and the alert list,
// severity-coded.
type ConsoleRenderer struct{}

func (r *ConsoleRenderer) Render(snap *snapshot.Snapshot) ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintln(&b, headerColor("=== AIOps Platform Monitoring Report ==="))
	fmt.Fprintf(&b, "Time: %s | Environment: %s | Target: %s\n\n",
		snap.Timestamp.Format("2006-01-02 15:04:05 MST"), snap.Environment, snap.DeploymentType)

	r.writeSummary(&b, snap.Summary)
	r.writeServices(&b, snap.Services)
	r.writeWorkloads(&b, snap.Resources)
	r.writeHealthChecks(&b, snap.HealthChecks)
	r.writeResourceUsage(&b, snap.ResourceUsage)
	r.writeAlerts(&b, snap.Alerts)

	return b.Bytes(), nil
}

func healthString(h snapshot.SystemHealth) string {
	switch h {
	case snapshot.HealthCritical:
		return criticalColor(strings.ToUpper(string(h)))
	case snapshot.HealthWarning:
		return warningColor(strings.ToUpper(string(h)))
	default:
		return healthyColor(strings.ToUpper(string(h)))
	}
}

func (r *ConsoleRenderer) writeSummary(b *bytes.Buffer, s snapshot.Summary) {
	fmt.Fprintf(b, "System health: %s\n", healthString(s.SystemHealth))
	fmt.Fprintf(b, "  Services:  %d total, %d healthy, %d unhealthy\n",
		s.TotalServices, s.HealthyServices, s.UnhealthyServices)
	fmt.Fprintf(b, "  Workloads: %d total, %d ready, %d not ready\n",
		s.TotalResources, s.ReadyResources, s.NotReadyResources)
	fmt.Fprintf(b, "  Alerts:    %d total, %d critical, %d warning\n\n",
		s.TotalAlerts, s.CriticalAlerts, s.WarningAlerts)
}

func (r *ConsoleRenderer) writeServices(b *bytes.Buffer, services []snapshot.ServiceRecord) {
	if len(services) == 0 {
		return
	}
	fmt.Fprintln(b, headerColor("Containers"))
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tSTATUS\tHEALTH\tRESTARTS\tCPU\tMEM\tIMAGE")
	for _, svc := range services {
		health := warningColor("unhealthy")
		if svc.Healthy {
			health = healthyColor("healthy")
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			svc.Name, svc.Status, health, svc.RestartCount,
			percentOrDash(svc.CpuUsage), percentOrDash(svc.MemUsage), svc.Image)
	}
	tw.Flush()
	fmt.Fprintln(b)
}

func percentOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func (r *ConsoleRenderer) writeWorkloads(b *bytes.Buffer, workloads []snapshot.WorkloadRecord) {
	if len(workloads) == 0 {
		return
	}
	fmt.Fprintln(b, headerColor("Workloads"))
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  KIND\tNAMESPACE\tNAME\tSTATUS")
	// stable grouping by kind, preserving collection order within a kind
	for _, kind := range []snapshot.WorkloadKind{
		snapshot.KindDeployment, snapshot.KindStatefulSet, snapshot.KindService, snapshot.KindPod,
	} {
		for _, w := range workloads {
			if w.Kind != kind {
				continue
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", w.Kind, w.Namespace, w.Name, workloadStatus(w))
		}
	}
	tw.Flush()
	fmt.Fprintln(b)
}

func workloadStatus(w snapshot.WorkloadRecord) string {
	switch w.Kind {
	case snapshot.KindDeployment, snapshot.KindStatefulSet:
		status := fmt.Sprintf("%d/%d ready", w.ReadyReplicas, w.DesiredReplicas)
		if !w.Ready {
			return warningColor(status)
		}
		return status
	case snapshot.KindPod:
		if !w.Ready {
			return warningColor(w.Phase)
		}
		return w.Phase
	case snapshot.KindService:
		if w.ClusterIP != "" {
			return fmt.Sprintf("%s %s", w.ServiceType, w.ClusterIP)
		}
		return w.ServiceType
	}
	return ""
}

func (r *ConsoleRenderer) writeHealthChecks(b *bytes.Buffer, checks []snapshot.HealthCheckResult) {
	if len(checks) == 0 {
		return
	}
	fmt.Fprintln(b, headerColor("Health checks"))
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  SERVICE\tPORT\tHTTP\tCOMMAND")
	for _, hc := range checks {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			hc.Service,
			probeOutcome(hc.PortStatus, snapshot.PortOpen),
			probeOutcome(hc.HTTPStatus, snapshot.HTTPHealthy),
			probeOutcome(hc.CommandStatus, snapshot.CommandOK))
	}
	tw.Flush()
	fmt.Fprintln(b)
}

// probeOutcome renders one probe result, dimming unconfigured probes and
// highlighting failures.
func probeOutcome(status, good string) string {
	switch status {
	case "":
		return "-"
	case good:
		return healthyColor(status)
	default:
		return criticalColor(status)
	}
}

func (r *ConsoleRenderer) writeResourceUsage(b *bytes.Buffer, usage snapshot.ResourceUsage) {
	fmt.Fprintln(b, headerColor("Host resources"))
	fmt.Fprintf(b, "  CPU: %.1f%%  Memory: %.1f%% (%s / %s)\n",
		usage.CpuPercent, usage.Memory.Percent,
		formatBytes(usage.Memory.Used), formatBytes(usage.Memory.Total))
	for _, d := range usage.Disks {
		fmt.Fprintf(b, "  Disk %s: %.1f%% (%s / %s)\n",
			d.Mount, d.Percent, formatBytes(d.Used), formatBytes(d.Total))
	}
	for _, n := range usage.Network {
		fmt.Fprintf(b, "  Net %s: sent %s, recv %s\n",
			n.Name, formatBytes(n.BytesSent), formatBytes(n.BytesRecv))
	}
	fmt.Fprintln(b)
}

func (r *ConsoleRenderer) writeAlerts(b *bytes.Buffer, alerts []snapshot.Alert) {
	if len(alerts) == 0 {
		fmt.Fprintln(b, healthyColor("No active alerts"))
		return
	}
	fmt.Fprintln(b, headerColor("Alerts"))
	for _, a := range alerts {
		label := warningColor("[warning]")
		if a.Severity() == snapshot.SeverityCritical {
			label = criticalColor("[critical]")
		}
		fmt.Fprintf(b, "  %s %s: %s\n", label, a.Type, a.Message)
	}
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
