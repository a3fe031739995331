// Package container defines the subset of the Docker Engine API types the
// container collector consumes.
package container

// ApiInfo is one entry from GET /containers/json.
type ApiInfo struct {
	Id     string
	Names  []string
	Image  string
	State  string
	Status string
	Labels map[string]string
}

// Name returns the primary container name without the leading slash.
func (c *ApiInfo) Name() string {
	if len(c.Names) == 0 {
		return c.Id
	}
	name := c.Names[0]
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	return name
}

// ApiInspect is the subset of GET /containers/{id}/json used for restart
// counts and health state.
type ApiInspect struct {
	RestartCount int `json:"RestartCount"`
	State        struct {
		Status string `json:"Status"`
		Health *struct {
			Status string `json:"Status"`
		} `json:"Health"`
	} `json:"State"`
}

// Running reports whether the container is in the running state.
func (i *ApiInspect) Running() bool {
	return i.State.Status == "running"
}

// Healthy reports the health verdict: a configured healthcheck must report
// "healthy"; without a healthcheck, running is good enough.
func (i *ApiInspect) Healthy() bool {
	if i.State.Health != nil {
		return i.State.Health.Status == "healthy"
	}
	return i.Running()
}

// ApiVersion is the subset of GET /version used for the one-shot stats gate.
type ApiVersion struct {
	Version string `json:"Version"`
}
