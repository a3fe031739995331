package snapshot

import "time"

// AlertType identifies what condition an alert reports.
type AlertType string

const (
	AlertHighCPU             AlertType = "high_cpu"
	AlertHighMemory          AlertType = "high_memory"
	AlertHighDisk            AlertType = "high_disk"
	AlertHighRestarts        AlertType = "high_restarts"
	AlertContainerUnhealthy  AlertType = "container_unhealthy"
	AlertPortClosed          AlertType = "port_closed"
	AlertHTTPUnhealthy       AlertType = "http_unhealthy"
	AlertCommandFailed       AlertType = "command_failed"
	AlertSlowResponse        AlertType = "slow_response"
	AlertDeploymentNotReady  AlertType = "deployment_not_ready"
	AlertStatefulSetNotReady AlertType = "statefulset_not_ready"
	AlertPodNotReady         AlertType = "pod_not_ready"
)

// Severity partitions alert types for the overall health verdict.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// criticalTypes is the single source of truth for severity classification.
// Renderers and the summary calculator must use Severity() rather than
// keeping their own lists.
var criticalTypes = map[AlertType]struct{}{
	AlertPortClosed:          {},
	AlertHTTPUnhealthy:       {},
	AlertDeploymentNotReady:  {},
	AlertStatefulSetNotReady: {},
	AlertPodNotReady:         {},
}

// Severity returns the severity class for the alert type.
func (t AlertType) Severity() Severity {
	if _, ok := criticalTypes[t]; ok {
		return SeverityCritical
	}
	return SeverityWarning
}

// Alert is a single derived finding within one snapshot. Service, Resource,
// Threshold and Value are populated only where they apply to the alert type.
type Alert struct {
	Type      AlertType `json:"type"`
	Service   string    `json:"service,omitempty"`
	Resource  string    `json:"resource,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Value     float64   `json:"value,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Severity is shorthand for a.Type.Severity().
func (a Alert) Severity() Severity {
	return a.Type.Severity()
}
