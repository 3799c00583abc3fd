package prometheus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scitags/nlmon-go/types"
)

var logger = slog.New(slog.DiscardHandler)

// PrometheusBackend counts records and dropped messages and exposes the
// counters on /metrics. It implements netlink.Observer.
type PrometheusBackend struct {
	Config

	m      *metrics
	reg    *prometheus.Registry
	server *http.Server
}

func (b *PrometheusBackend) String() string {
	return "Prometheus"
}

func NewPrometheusBackend(c *Config) (*PrometheusBackend, error) {
	if c == nil {
		c = &DefaultConfig
	}

	if c.Log {
		logger = slog.Default().With("t", "prometheus")
	} else {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initialising the prometheus backend")

	b := PrometheusBackend{Config: *c}

	// Create a non-global registry.
	b.reg = prometheus.NewRegistry()

	b.m = newMetrics()
	if err := b.m.register(b.reg); err != nil {
		return nil, fmt.Errorf("error registering the metrics: %w", err)
	}

	handler := http.NewServeMux()
	handler.Handle("/metrics", promhttp.HandlerFor(b.reg, promhttp.HandlerOpts{Registry: b.reg}))

	b.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", b.BindAddress, b.Port),
		Handler: handler,
	}

	return &b, nil
}

// Run starts serving the metrics in the background.
func (b *PrometheusBackend) Run() {
	logger.Debug("running the prometheus backend", "addr", b.server.Addr)

	go func() {
		if err := b.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("the prometheus backend stopped listening", "err", err)
			return
		}
		logger.Info("stopped listening")
	}()
}

func (b *PrometheusBackend) Record(event string) {
	b.m.Records.WithLabelValues(event).Inc()
}

func (b *PrometheusBackend) Dropped(group, reason string) {
	logger.Log(context.Background(), types.LevelTrace, "message dropped", "group", group, "reason", reason)
	b.m.Dropped.WithLabelValues(group, reason).Inc()
}

// Stamp publishes the stamp of the last record handed to the consumer.
func (b *PrometheusBackend) Stamp(stamp int64) {
	b.m.LastStamp.Set(float64(stamp))
}

func (b *PrometheusBackend) Cleanup() error {
	logger.Debug("cleaning up the prometheus backend")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs error
	if err := b.server.Shutdown(ctx); err != nil {
		errs = errors.Join(errs, err)
	}

	return errs
}
