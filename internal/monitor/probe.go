package monitor

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"sync"
	"time"

	"aiopsmon/internal/entities/snapshot"
)

const (
	portDialTimeout = 3 * time.Second
	httpTimeout     = 5 * time.Second
	commandTimeout  = 5 * time.Second
)

// ProbeSpec configures up to three independent checks for one logical
// service. A zero Port, empty HealthURL or empty Command disables the
// corresponding check.
type ProbeSpec struct {
	Service   string
	Host      string
	Port      int
	HealthURL string
	Command   []string
}

// defaultProbes covers the core services of the aiops stack.
func defaultProbes() []ProbeSpec {
	return []ProbeSpec{
		{Service: "gateway", Port: 8080, HealthURL: "http://localhost:8080/health"},
		{Service: "api", Port: 3000, HealthURL: "http://localhost:3000/api/health"},
		{Service: "frontend", Port: 80, HealthURL: "http://localhost:80/"},
		{Service: "postgres", Port: 5432, Command: []string{"pg_isready", "-q"}},
		{Service: "redis", Port: 6379, Command: []string{"redis-cli", "ping"}},
	}
}

// probeCollector runs the configured endpoint checks. Failed checks are data
// outcomes recorded per service; the collector itself never reports the
// backend unavailable.
type probeCollector struct {
	probes     []ProbeSpec
	httpClient *http.Client
	dialer     net.Dialer
}

func newProbeCollector(probes []ProbeSpec) *probeCollector {
	return &probeCollector{
		probes: probes,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

func (p *probeCollector) Name() string { return "probes" }

// Collect runs every configured probe and populates snap.HealthChecks. The
// three checks per service are independent: a service can be reachable on
// its port while its health endpoint reports unhealthy.
func (p *probeCollector) Collect(ctx context.Context, snap *snapshot.Snapshot) error {
	results := make([]snapshot.HealthCheckResult, len(p.probes))

	var wg sync.WaitGroup
	for i, spec := range p.probes {
		wg.Add(1)
		go func(i int, spec ProbeSpec) {
			defer wg.Done()
			results[i] = p.probeService(ctx, spec)
		}(i, spec)
	}
	wg.Wait()

	snap.HealthChecks = results
	return nil
}

func (p *probeCollector) probeService(ctx context.Context, spec ProbeSpec) snapshot.HealthCheckResult {
	result := snapshot.HealthCheckResult{Service: spec.Service}

	if spec.Port > 0 {
		result.PortStatus = p.checkPort(ctx, spec)
	}
	if spec.HealthURL != "" {
		start := time.Now()
		result.HTTPStatus = p.checkHTTP(ctx, spec.HealthURL)
		result.ResponseTimeMs = float64(time.Since(start).Milliseconds())
	}
	if len(spec.Command) > 0 {
		result.CommandStatus = p.checkCommand(ctx, spec.Command)
	}
	return result
}

func (p *probeCollector) checkPort(ctx context.Context, spec ProbeSpec) string {
	host := spec.Host
	if host == "" {
		host = "localhost"
	}
	dialCtx, cancel := context.WithTimeout(ctx, portDialTimeout)
	defer cancel()

	conn, err := p.dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(host, fmt.Sprint(spec.Port)))
	if err != nil {
		return snapshot.PortClosed
	}
	conn.Close()
	return snapshot.PortOpen
}

// checkHTTP classifies 2xx/3xx as healthy; any other status or transport
// error is unhealthy.
func (p *probeCollector) checkHTTP(ctx context.Context, healthURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return snapshot.HTTPDown
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return snapshot.HTTPDown
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return snapshot.HTTPHealthy
	}
	return snapshot.HTTPDown
}

func (p *probeCollector) checkCommand(ctx context.Context, command []string) string {
	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, command[0], command[1:]...)
	if err := cmd.Run(); err != nil {
		return snapshot.CommandFail
	}
	return snapshot.CommandOK
}
