package main

import (
	"fmt"
	"log/slog"

	"github.com/scitags/nlmon-go/backends/prometheus"
	"github.com/scitags/nlmon-go/plugins/netlink"
)

// backend is what the watch loop expects from a backend: it's notified of
// each message and of the stamp of every record printed.
type backend interface {
	netlink.Observer
	Stamp(stamp int64)
	Run()
	Cleanup() error
}

func createBackends(c *Config) ([]backend, error) {
	backends := []backend{}

	if c.Backends != nil {
		if c.Backends.Prometheus != nil {
			b, err := prometheus.NewPrometheusBackend(c.Backends.Prometheus)
			if err != nil {
				return nil, fmt.Errorf("error initialising the prometheus backend: %w", err)
			}
			backends = append(backends, b)
		}
	}

	for _, b := range backends {
		b.Run()
	}

	return backends, nil
}

func cleanupBackends(backends []backend) {
	for _, b := range backends {
		if err := b.Cleanup(); err != nil {
			slog.Error("error cleaning up backend", "backend", b, "err", err)
		}
	}
}

// fanout notifies every backend in turn.
type fanout []backend

func (f fanout) Record(event string) {
	for _, b := range f {
		b.Record(event)
	}
}

func (f fanout) Dropped(group, reason string) {
	for _, b := range f {
		b.Dropped(group, reason)
	}
}
