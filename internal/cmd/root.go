// Package cmd wires the CLI surface of the monitoring engine.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"aiopsmon/internal/entities/snapshot"
	"aiopsmon/internal/monitor"
	"aiopsmon/internal/render"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var opts struct {
	deploymentType string
	environment    string
	continuous     bool
	interval       int
	format         string
	output         string
	thresholds     string
	project        string
}

var rootCmd = &cobra.Command{
	Use:   "aiopsmon",
	Short: "Monitoring and alerting engine for the aiops platform",
	Long: `aiopsmon polls the container runtime, the Kubernetes API, service
health endpoints and host resources, evaluates the results against
configurable thresholds and renders one aggregated report per cycle.`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.deploymentType, "type", "t", "all", "deployment type: docker-compose, kubernetes or all")
	flags.StringVarP(&opts.environment, "environment", "e", "development", "environment: development, staging or production")
	flags.BoolVarP(&opts.continuous, "continuous", "c", false, "repeat cycles until interrupted")
	flags.IntVarP(&opts.interval, "interval", "i", 30, "seconds between cycles in continuous mode")
	flags.StringVarP(&opts.format, "format", "f", "console", "output format: console, json or html")
	flags.StringVarP(&opts.output, "output", "o", "", "write the report to this file instead of stdout")
	flags.StringVar(&opts.thresholds, "thresholds", "", "path to a JSON alert threshold config")
	flags.StringVar(&opts.project, "project", monitor.DefaultProject, "compose project / namespace stem to monitor")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var validEnvironments = map[string]struct{}{
	"development": {}, "staging": {}, "production": {},
}

func validateOpts() (snapshot.DeploymentType, error) {
	dt := snapshot.DeploymentType(opts.deploymentType)
	switch dt {
	case snapshot.DeploymentDockerCompose, snapshot.DeploymentKubernetes, snapshot.DeploymentAll:
	default:
		return "", fmt.Errorf("invalid deployment type %q", opts.deploymentType)
	}
	if _, ok := validEnvironments[opts.environment]; !ok {
		return "", fmt.Errorf("invalid environment %q", opts.environment)
	}
	if opts.interval < 1 {
		return "", fmt.Errorf("interval must be at least 1 second")
	}
	return dt, nil
}

// setupLogging configures slog from the LOG_LEVEL environment variable.
func setupLogging() {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	}
}

func run(cmd *cobra.Command, args []string) error {
	dt, err := validateOpts()
	if err != nil {
		return err
	}
	setupLogging()

	renderer, err := render.New(opts.format)
	if err != nil {
		return err
	}

	m := monitor.New(monitor.Config{
		DeploymentType: dt,
		Environment:    opts.environment,
		Project:        opts.project,
		Interval:       time.Duration(opts.interval) * time.Second,
		Continuous:     opts.continuous,
		ThresholdFile:  opts.thresholds,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.continuous {
		return m.Watch(ctx, renderer, opts.output)
	}

	snap, err := m.RunOnce(ctx, renderer, opts.output)
	if err != nil {
		return err
	}
	if snap.Summary.SystemHealth == snapshot.HealthCritical {
		return errors.New("system health is critical")
	}
	return nil
}
