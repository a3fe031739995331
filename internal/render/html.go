package render

import (
	"bytes"
	"fmt"
	"html/template"

	"aiopsmon/internal/entities/snapshot"
)

// HTMLRenderer produces a self-contained static document with inline CSS,
// suitable for emailing or archiving.
type HTMLRenderer struct{}

func (r *HTMLRenderer) Render(snap *snapshot.Snapshot) ([]byte, error) {
	var b bytes.Buffer
	if err := htmlTemplate.Execute(&b, snap); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"severity": func(t snapshot.AlertType) snapshot.Severity { return t.Severity() },
	"pct": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.1f%%", *v)
	},
	"pctv":  func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"bytes": formatBytes,
}).Parse(htmlReport))

const htmlReport = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AIOps Platform Monitoring Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
h2 { font-size: 1.1em; margin-top: 1.6em; border-bottom: 1px solid #ddd; padding-bottom: 0.2em; }
.meta { color: #666; margin-bottom: 1.5em; }
.cards { display: flex; gap: 1em; flex-wrap: wrap; }
.card { border: 1px solid #ddd; border-radius: 6px; padding: 1em 1.4em; min-width: 9em; text-align: center; }
.card .num { font-size: 1.6em; font-weight: bold; }
.card .label { color: #666; font-size: 0.85em; }
.healthy { color: #1a7f37; }
.warning { color: #9a6700; }
.critical { color: #cf222e; }
table { border-collapse: collapse; width: 100%; margin-top: 0.5em; }
th, td { text-align: left; padding: 0.35em 0.8em; border-bottom: 1px solid #eee; font-size: 0.9em; }
th { background: #f6f8fa; }
ul.alerts { list-style: none; padding: 0; }
ul.alerts li { padding: 0.4em 0.8em; margin-bottom: 0.3em; border-left: 4px solid; background: #f6f8fa; }
ul.alerts li.warning { border-color: #9a6700; }
ul.alerts li.critical { border-color: #cf222e; }
</style>
</head>
<body>
<h1>AIOps Platform Monitoring Report</h1>
<p class="meta">{{.Timestamp.Format "2006-01-02 15:04:05 MST"}} &middot; environment: {{.Environment}} &middot; target: {{.DeploymentType}}</p>

<div class="cards">
  <div class="card"><div class="num {{.Summary.SystemHealth}}">{{.Summary.SystemHealth}}</div><div class="label">system health</div></div>
  <div class="card"><div class="num">{{.Summary.HealthyServices}}/{{.Summary.TotalServices}}</div><div class="label">services healthy</div></div>
  <div class="card"><div class="num">{{.Summary.ReadyResources}}/{{.Summary.TotalResources}}</div><div class="label">workloads ready</div></div>
  <div class="card"><div class="num">{{.Summary.TotalAlerts}}</div><div class="label">alerts ({{.Summary.CriticalAlerts}} critical)</div></div>
</div>

{{if .Services}}
<h2>Containers</h2>
<table>
<tr><th>Name</th><th>Status</th><th>Health</th><th>Restarts</th><th>CPU</th><th>Memory</th><th>Image</th></tr>
{{range .Services}}
<tr>
  <td>{{.Name}}</td>
  <td>{{.Status}}</td>
  <td>{{if .Healthy}}<span class="healthy">healthy</span>{{else}}<span class="warning">unhealthy</span>{{end}}</td>
  <td>{{.RestartCount}}</td>
  <td>{{pct .CpuUsage}}</td>
  <td>{{pct .MemUsage}}</td>
  <td>{{.Image}}</td>
</tr>
{{end}}
</table>
{{end}}

{{if .Resources}}
<h2>Workloads</h2>
<table>
<tr><th>Kind</th><th>Namespace</th><th>Name</th><th>Replicas</th><th>Phase</th><th>Ready</th></tr>
{{range .Resources}}
<tr>
  <td>{{.Kind}}</td>
  <td>{{.Namespace}}</td>
  <td>{{.Name}}</td>
  <td>{{if .DesiredReplicas}}{{.ReadyReplicas}}/{{.DesiredReplicas}}{{else}}-{{end}}</td>
  <td>{{if .Phase}}{{.Phase}}{{else}}-{{end}}</td>
  <td>{{if .Ready}}<span class="healthy">yes</span>{{else}}<span class="critical">no</span>{{end}}</td>
</tr>
{{end}}
</table>
{{end}}

{{if .HealthChecks}}
<h2>Health checks</h2>
<table>
<tr><th>Service</th><th>Port</th><th>HTTP</th><th>Command</th><th>Response time</th></tr>
{{range .HealthChecks}}
<tr>
  <td>{{.Service}}</td>
  <td>{{if .PortStatus}}{{.PortStatus}}{{else}}-{{end}}</td>
  <td>{{if .HTTPStatus}}{{.HTTPStatus}}{{else}}-{{end}}</td>
  <td>{{if .CommandStatus}}{{.CommandStatus}}{{else}}-{{end}}</td>
  <td>{{if .ResponseTimeMs}}{{printf "%.0f ms" .ResponseTimeMs}}{{else}}-{{end}}</td>
</tr>
{{end}}
</table>
{{end}}

<h2>Host resources</h2>
<table>
<tr><th>Resource</th><th>Usage</th></tr>
<tr><td>CPU</td><td>{{pctv .ResourceUsage.CpuPercent}}</td></tr>
<tr><td>Memory</td><td>{{pctv .ResourceUsage.Memory.Percent}} ({{bytes .ResourceUsage.Memory.Used}} of {{bytes .ResourceUsage.Memory.Total}})</td></tr>
{{range .ResourceUsage.Disks}}
<tr><td>Disk {{.Mount}}</td><td>{{pctv .Percent}} ({{bytes .Used}} of {{bytes .Total}})</td></tr>
{{end}}
{{range .ResourceUsage.Network}}
<tr><td>Net {{.Name}}</td><td>sent {{bytes .BytesSent}}, received {{bytes .BytesRecv}}</td></tr>
{{end}}
</table>

<h2>Alerts</h2>
{{if .Alerts}}
<ul class="alerts">
{{range .Alerts}}
<li class="{{severity .Type}}"><strong>{{.Type}}</strong> {{.Message}}</li>
{{end}}
</ul>
{{else}}
<p class="healthy">No active alerts.</p>
{{end}}

</body>
</html>
`
