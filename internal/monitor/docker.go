package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"aiopsmon/internal/entities/container"
	"aiopsmon/internal/entities/snapshot"

	"github.com/blang/semver"
)

const (
	// Docker API request timeout
	dockerTimeout = 3 * time.Second
	// Limit on concurrent per-container requests
	dockerMaxConcurrency = 5
)

// composeProjectLabel carries the compose project name on every container
// docker compose starts.
const composeProjectLabel = "com.docker.compose.project"

// dockerCollector queries the Docker Engine API for containers belonging to
// the monitored project and normalizes them into ServiceRecords.
type dockerCollector struct {
	client      *http.Client
	project     string
	environment string

	versionOnce sync.Once
	oneShot     bool // engine >= 25.0.0, one-shot stats work correctly
}

func newDockerCollector(project, environment string) *dockerCollector {
	return &dockerCollector{
		client:      newDockerClient(),
		project:     project,
		environment: environment,
	}
}

func (d *dockerCollector) Name() string { return "docker" }

// newDockerClient builds an HTTP client for the engine API, honoring
// DOCKER_HOST (unix or tcp) and defaulting to the standard socket path.
func newDockerClient() *http.Client {
	dockerHost := os.Getenv("DOCKER_HOST")
	if dockerHost == "" {
		dockerHost = "unix:///var/run/docker.sock"
	}

	transport := &http.Transport{DisableCompression: true}

	parsedURL, err := url.Parse(dockerHost)
	if err != nil {
		parsedURL = &url.URL{Scheme: "unix", Path: "/var/run/docker.sock"}
	}
	switch parsedURL.Scheme {
	case "tcp", "http", "https":
		host := parsedURL.Host
		transport.DialContext = func(ctx context.Context, _, _ string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, "tcp", host)
		}
	default:
		socketPath := parsedURL.Path
		transport.DialContext = func(ctx context.Context, _, _ string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, "unix", socketPath)
		}
	}

	return &http.Client{
		Timeout:   dockerTimeout,
		Transport: transport,
	}
}

func (d *dockerCollector) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://localhost"+path, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("docker api %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// checkVersion probes the engine version once. One-shot stats requests are
// only reliable on engine 25.0.0 and later.
func (d *dockerCollector) checkVersion(ctx context.Context) {
	d.versionOnce.Do(func() {
		var ver container.ApiVersion
		if err := d.get(ctx, "/version", &ver); err != nil {
			return
		}
		parsed, err := semver.ParseTolerant(ver.Version)
		if err != nil {
			return
		}
		d.oneShot = parsed.GTE(semver.MustParse("25.0.0"))
	})
}

// listProjectContainers resolves the monitored container set: an exact
// compose project label of <project>-<environment> first, then the bare
// project label, then a name-prefix match over all containers.
func (d *dockerCollector) listProjectContainers(ctx context.Context) ([]*container.ApiInfo, error) {
	for _, label := range []string{d.project + "-" + d.environment, d.project} {
		filters := fmt.Sprintf(`{"label":[%q]}`, composeProjectLabel+"="+label)
		var list []*container.ApiInfo
		err := d.get(ctx, "/containers/json?all=true&filters="+url.QueryEscape(filters), &list)
		if err != nil {
			return nil, err
		}
		if len(list) > 0 {
			return list, nil
		}
	}

	var all []*container.ApiInfo
	if err := d.get(ctx, "/containers/json?all=true", &all); err != nil {
		return nil, err
	}
	matched := make([]*container.ApiInfo, 0, len(all))
	for _, c := range all {
		if strings.HasPrefix(c.Name(), d.project) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// Collect populates snap.Services. Per-container inspect and stats requests
// fan out behind a semaphore like the engine list itself; a failed stats
// request leaves the usage fields nil rather than failing the container.
func (d *dockerCollector) Collect(ctx context.Context, snap *snapshot.Snapshot) error {
	d.checkVersion(ctx)

	list, err := d.listProjectContainers(ctx)
	if err != nil {
		return fmt.Errorf("listing containers: %w", err)
	}

	records := make([]snapshot.ServiceRecord, len(list))
	var wg sync.WaitGroup
	sem := make(chan struct{}, dockerMaxConcurrency)

	for i, c := range list {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, c *container.ApiInfo) {
			defer wg.Done()
			defer func() { <-sem }()
			records[i] = d.collectContainer(ctx, c)
		}(i, c)
	}
	wg.Wait()

	snap.Services = records
	return nil
}

func (d *dockerCollector) collectContainer(ctx context.Context, c *container.ApiInfo) snapshot.ServiceRecord {
	rec := snapshot.ServiceRecord{
		Name:   c.Name(),
		Status: c.State,
		Image:  c.Image,
	}

	var inspect container.ApiInspect
	if err := d.get(ctx, "/containers/"+c.Id+"/json", &inspect); err == nil {
		rec.RestartCount = inspect.RestartCount
		rec.Healthy = inspect.Healthy()
	} else {
		rec.Healthy = c.State == "running"
	}

	// stats are only meaningful for running containers
	if c.State != "running" {
		return rec
	}

	statsPath := "/containers/" + c.Id + "/stats?stream=false"
	if d.oneShot {
		statsPath += "&one-shot=true"
	}
	var stats container.ApiStats
	if err := d.get(ctx, statsPath, &stats); err == nil {
		cpu := stats.CpuPercent()
		mem := stats.MemPercent()
		rec.CpuUsage = &cpu
		rec.MemUsage = &mem
	}
	return rec
}
