// Package snapshot defines the data model for one monitoring cycle.
//
// A Snapshot is built fresh at the start of every cycle, populated by the
// collectors, extended with alerts by the evaluator, reduced into a Summary,
// and finally rendered. It is never shared between cycles.
package snapshot

import "time"

// DeploymentType selects which backends a cycle polls.
type DeploymentType string

const (
	DeploymentDockerCompose DeploymentType = "docker-compose"
	DeploymentKubernetes    DeploymentType = "kubernetes"
	DeploymentAll           DeploymentType = "all"
)

// WorkloadKind discriminates WorkloadRecord variants.
type WorkloadKind string

const (
	KindDeployment  WorkloadKind = "deployment"
	KindStatefulSet WorkloadKind = "statefulset"
	KindPod         WorkloadKind = "pod"
	KindService     WorkloadKind = "service"
)

// Snapshot is the complete result of one monitoring cycle.
type Snapshot struct {
	Timestamp      time.Time           `json:"timestamp"`
	DeploymentType DeploymentType      `json:"deployment_type"`
	Environment    string              `json:"environment"`
	Services       []ServiceRecord     `json:"services"`
	Resources      []WorkloadRecord    `json:"resources"`
	HealthChecks   []HealthCheckResult `json:"health_checks"`
	ResourceUsage  ResourceUsage       `json:"resource_usage"`
	Alerts         []Alert             `json:"alerts"`
	Summary        Summary             `json:"summary"`
}

// ServiceRecord describes one container belonging to the monitored project.
// CpuUsage and MemUsage are nil when the backend exposed no stats for the
// container.
type ServiceRecord struct {
	Name         string   `json:"name"`
	Status       string   `json:"status"`
	Image        string   `json:"image"`
	Healthy      bool     `json:"healthy"`
	RestartCount int      `json:"restart_count"`
	CpuUsage     *float64 `json:"cpu_usage,omitempty"`
	MemUsage     *float64 `json:"memory_usage,omitempty"`
}

// WorkloadRecord describes one orchestrator object, discriminated by Kind.
// Replica counts apply to deployments and statefulsets, Phase and Ready to
// pods, ClusterIP and ServiceType to services.
type WorkloadRecord struct {
	Kind            WorkloadKind `json:"kind"`
	Name            string       `json:"name"`
	Namespace       string       `json:"namespace"`
	DesiredReplicas int32        `json:"desired_replicas,omitempty"`
	ReadyReplicas   int32        `json:"ready_replicas,omitempty"`
	Phase           string       `json:"phase,omitempty"`
	Ready           bool         `json:"ready"`
	ServiceType     string       `json:"service_type,omitempty"`
	ClusterIP       string       `json:"cluster_ip,omitempty"`
}

// Probe outcome classifications. An empty string means the probe was not
// configured for the service.
const (
	PortOpen    = "open"
	PortClosed  = "closed"
	HTTPHealthy = "healthy"
	HTTPDown    = "unhealthy"
	CommandOK   = "ok"
	CommandFail = "failed"
)

// HealthCheckResult carries up to three independent probe outcomes for one
// logical service.
type HealthCheckResult struct {
	Service        string  `json:"service"`
	PortStatus     string  `json:"port_status,omitempty"`
	HTTPStatus     string  `json:"http_status,omitempty"`
	CommandStatus  string  `json:"command_status,omitempty"`
	ResponseTimeMs float64 `json:"response_time_ms,omitempty"`
}

// MemoryUsage is host memory utilization in bytes plus used percent.
type MemoryUsage struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// DiskUsage is utilization of one mounted filesystem.
type DiskUsage struct {
	Mount   string  `json:"mount"`
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Percent float64 `json:"percent"`
}

// NetCounters holds cumulative traffic counters for one interface.
type NetCounters struct {
	Name      string `json:"name"`
	BytesSent uint64 `json:"bytes_sent"`
	BytesRecv uint64 `json:"bytes_recv"`
}

// ResourceUsage is the host-level resource sample for one cycle.
type ResourceUsage struct {
	CpuPercent float64       `json:"cpu_percent"`
	Memory     MemoryUsage   `json:"memory"`
	Disks      []DiskUsage   `json:"disks"`
	Network    []NetCounters `json:"network"`
}

// SystemHealth is the overall verdict for one snapshot.
type SystemHealth string

const (
	HealthHealthy  SystemHealth = "healthy"
	HealthWarning  SystemHealth = "warning"
	HealthCritical SystemHealth = "critical"
)

// Summary is the aggregate reduction of a snapshot's other collections.
// SystemHealth is always derived, never set independently.
type Summary struct {
	TotalServices     int          `json:"total_services"`
	HealthyServices   int          `json:"healthy_services"`
	UnhealthyServices int          `json:"unhealthy_services"`
	TotalResources    int          `json:"total_resources"`
	ReadyResources    int          `json:"ready_resources"`
	NotReadyResources int          `json:"not_ready_resources"`
	TotalAlerts       int          `json:"total_alerts"`
	CriticalAlerts    int          `json:"critical_alerts"`
	WarningAlerts     int          `json:"warning_alerts"`
	SystemHealth      SystemHealth `json:"system_health"`
}
